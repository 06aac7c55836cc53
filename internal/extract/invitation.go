package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/dateparse"
	"github.com/amondji/docextract/internal/textnorm"
)

// InvitationLetterExtractor reads host invitation letters. Organizational
// letterheads dominate the real-world corpus, so known organization names
// are matched literally before any generic "I, NAME, residing at" rule.
type InvitationLetterExtractor struct {
	now clock
}

func NewInvitationLetterExtractor(now func() time.Time) *InvitationLetterExtractor {
	if now == nil {
		now = systemClock
	}
	return &InvitationLetterExtractor{now: now}
}

func (e *InvitationLetterExtractor) DocumentType() constants.DocumentType {
	return constants.InvitationLetter
}

func (e *InvitationLetterExtractor) RequiredFields() []string {
	return []string{"inviter_name", "invitee_name", "purpose"}
}

var (
	inviterNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:I|JE),?\s+([A-Z][A-Z' -]+?),?\s+(?:RESIDING|RESIDANT|HEREBY|PAR LA PRESENTE)`),
		regexp.MustCompile(`(?:UNDERSIGNED|SOUSSIGNEE?)[,:\s]+([A-Z][A-Z' -]+?)\s*(?:,|\n|RESIDING|RESIDANT|HEREBY|CERTIFIE|DECLARE)`),
		regexp.MustCompile(`(?m)(?:INVITER|INVITANT|HOST|HOTE)\s*:\s*([A-Z][A-Z' -]+?)\s*$`),
		regexp.MustCompile(`\b(?:MR|MRS|MS|MME|MLLE)[.:\s]+([A-Z][A-Z' -]+?),?\s+(?:RESIDING|RESIDANT|LIVING)`),
	}
	inviterAddressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:RESIDING\s+AT|RESIDANT\s+A|ADDRESS|ADRESSE)\s*:?\s*([^\n,]+(?:,\s*[^\n]+)?)`),
		regexp.MustCompile(`(?:LIVING\s+AT|HABITANT\s+A)\s*:?\s*([^\n]+)`),
	}
	inviterPhone = regexp.MustCompile(`(?:TEL|PHONE|TELEPHONE)[:\s.]*(\+?\d[\d -]{8,})`)
	emailPattern = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	inviterIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:CNI|CARTE\s*(?:D')?IDENTITE|IDENTITY\s*CARD)\s*(?:NO|N°)?[:\s#]*([A-Z0-9-]+)`),
		regexp.MustCompile(`(?:PASSPORT|PASSEPORT)\s*(?:NO|N°)?\s*:?\s*([A-Z0-9]{6,})`),
	}

	inviteeNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:NOUS\s+INVITONS|TO\s+INVITE|INVITING|\bINVITEE?\b)\s*:?\s*(?:MR|MRS|MS|MME)?[.:\s]*([A-Z][A-Z' -]+?)\s*(?:,|\n|PASSPORT|PASSEPORT|NATIONALITY|NATIONALITE|HOLDER|TITULAIRE|BORN|NEE?\s+LE)`),
		regexp.MustCompile(`(?m)(?:GUEST|VISITEUR|VISITOR)\s*:?\s*([A-Z][A-Z' -]+?)\s*$`),
		regexp.MustCompile(`MY\s+(?:FRIEND|RELATIVE|BROTHER|SISTER|FATHER|MOTHER)[,:\s]+(?:MR|MRS|MS|MME)?[.:\s]*([A-Z][A-Z' -]+?)\s*(?:,|\n|PASSPORT|PASSEPORT|HOLDER|BORN)`),
	}
	inviteePassport    = regexp.MustCompile(`(?:PASSPORT|PASSEPORT)\s*(?:(?:NO|N°|NUMBER)\s*:?\s*)?([A-Z]{1,2}\d{6,9})`)
	inviteeNationality = []*regexp.Regexp{
		regexp.MustCompile(`(?:NATIONALITY|NATIONALITE)\s*:?\s*([A-Z]+)`),
		regexp.MustCompile(`(?:CITIZEN\s+OF|RESSORTISSANTE?\s+(?:DE|DU))\s*:?\s*([A-Z]+)`),
	}

	durationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:FOR|POUR|PENDANT|DURING)\s+(\d{1,3})\s*(?:DAYS?|JOURS?)`),
		regexp.MustCompile(`(?:STAY|SEJOUR)\s*(?:OF|DE)?\s*(\d{1,3})\s*(?:DAYS?|JOURS?)`),
		regexp.MustCompile(`(?:DURATION|DUREE|STAY)[:\s]+(\d{1,3})\s*(?:DAYS?|JOURS?)`),
		regexp.MustCompile(`\b(\d{1,3})\s*(?:DAYS?|JOURS?)\b`),
	}

	numericPeriod  = regexp.MustCompile(`(?:FROM|DU|A\s+PARTIR\s+DU)\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})\s*(?:TO|AU|A|UNTIL|JUSQU'?AU?)\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`)
	arrivalLabeled = regexp.MustCompile(`(?:ARRIVAL|ARRIVEE)[:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`)
	textualDayName = regexp.MustCompile(`\b(\d{1,2})(?:ST|ND|RD|TH|ER)?\s+([A-Z]{3,9})\.?\s*(\d{4})?`)
	textualNameDay = regexp.MustCompile(`\b([A-Z]{3,9})\.?\s+(\d{1,2})\b(?:ST|ND|RD|TH)?,?\s*(\d{4})?`)

	accommodationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:STAYING\s+AT|HEBERGEE?\s+A|ACCOMMODATION|HEBERGEMENT)\s*:?\s*([^\n]+)`),
		regexp.MustCompile(`(?:WILL\s+STAY|VA\s+SEJOURNER)\s+(?:AT|A|CHEZ)\s*:?\s*([^\n]+)`),
		regexp.MustCompile(`(?:LOGERA?\s+CHEZ|SERA?\s+HEBERGEE?\s+(?:A|CHEZ))\s*:?\s*([^\n]+)`),
	}
	accommodationProvidedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:HEBERGEMENT|ACCOMMODATION)\s*(?:FOURNI|PROVIDED|ASSURE|GARANTI)`),
		regexp.MustCompile(`(?:LOGERA?|SERA?\s+HEBERGEE?)\s+(?:CHEZ\s+(?:MOI|NOUS)|A\s+MON\s+DOMICILE)`),
		regexp.MustCompile(`(?:I\s+WILL\s+PROVIDE|JE\s+FOURNIRAI)\s*(?:ACCOMMODATION|HEBERGEMENT)`),
		regexp.MustCompile(`STAY(?:ING)?\s+WITH\s+(?:ME|US)`),
		regexp.MustCompile(`CHEZ\s+(?:MOI|L'?INVITANT|L'?HOTE)`),
	}

	notaryKeywords = []string{"NOTARY", "NOTAIRE", "NOTARIZED", "LEGALIZED", "LEGALISE", "CERTIFIED", "CERTIFIE"}
	notaryName     = regexp.MustCompile(`(?:NOTARY|NOTAIRE)\s*:?\s*(?:MR|ME|MAITRE)?[.:\s]*([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|LEGALI|CERTIF|DATE|ON\s|LE\s|$)`)
	notaryDate     = regexp.MustCompile(`(?:NOTARIZED|LEGALIZED|LEGALISEE?|CERTIFIEE?)\s*(?:ON|LE)?[:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`)
	stampPattern   = regexp.MustCompile(`STAMP|CACHET|SEAL|SCEAU`)

	relationshipMatchers = buildRelationshipMatchers()
)

type keywordMatcher struct {
	label    string
	matchers []*regexp.Regexp
}

// Word-boundary matching keeps FRIEND's "AMI" from firing inside
// "FAMILIALE" and the like.
func buildRelationshipMatchers() []keywordMatcher {
	out := make([]keywordMatcher, 0, len(constants.RelationshipOrder))
	for _, label := range constants.RelationshipOrder {
		out = append(out, keywordMatcher{label: label, matchers: buildWordMatchers(constants.Relationships[label])})
	}
	return out
}

func (e *InvitationLetterExtractor) Extract(text string, meta *entity.OCRMetadata) entity.ExtractionResult {
	res := entity.NewExtractionResult(constants.InvitationLetter)
	now := e.now()
	normalized := textnorm.Normalize(text)
	prepared := textnorm.Uppercase(normalized)

	e.extractInviter(&res, prepared, normalized)
	e.extractInvitee(&res, prepared)
	res.Set("relationship", relationship(prepared), ConfidencePattern, entity.SourcePattern)
	e.extractVisitDetails(&res, prepared, now)
	e.extractLegalization(&res, prepared, now)

	res.ComputeSuccess(e.RequiredFields())
	return res
}

func (e *InvitationLetterExtractor) extractInviter(res *entity.ExtractionResult, prepared, normalized string) {
	matched := false
	for _, org := range constants.KnownInviterOrgs {
		if strings.Contains(prepared, org) {
			res.Set("inviter_name", org, ConfidencePattern, entity.SourcePattern)
			res.Set("inviter_is_organization", true, ConfidencePattern, entity.SourcePattern)
			matched = true
			break
		}
	}
	if !matched {
		if v, ok := firstMatch(prepared, inviterNamePatterns); ok {
			res.Set("inviter_name", textnorm.NormalizeName(v), ConfidencePattern, entity.SourcePattern)
		}
	}

	if v, ok := firstMatch(prepared, inviterAddressPatterns); ok {
		res.Set("inviter_address", v, ConfidencePattern, entity.SourcePattern)
	}
	if city, ok := findCity(prepared); ok {
		res.Set("inviter_city", city, ConfidencePattern, entity.SourcePattern)
	}
	if m := inviterPhone.FindStringSubmatch(prepared); m != nil {
		res.Set("inviter_phone", strings.ReplaceAll(m[1], " ", ""), ConfidencePattern, entity.SourcePattern)
	}
	// Email matching runs on the case-preserving view.
	if m := emailPattern.FindStringSubmatch(normalized); m != nil {
		res.Set("inviter_email", strings.ToLower(m[1]), ConfidencePattern, entity.SourcePattern)
	}
	if v, ok := firstMatch(prepared, inviterIDPatterns); ok {
		res.Set("inviter_id_number", v, ConfidencePattern, entity.SourcePattern)
	}
}

func (e *InvitationLetterExtractor) extractInvitee(res *entity.ExtractionResult, prepared string) {
	if v, ok := firstMatch(prepared, inviteeNamePatterns); ok {
		res.Set("invitee_name", textnorm.NormalizeName(v), ConfidencePattern, entity.SourcePattern)
	}
	if m := inviteePassport.FindStringSubmatch(prepared); m != nil {
		res.Set("invitee_passport_number", m[1], ConfidencePattern, entity.SourcePattern)
	}
	if v, ok := firstMatch(prepared, inviteeNationality); ok {
		res.Set("invitee_nationality", v, ConfidencePattern, entity.SourcePattern)
	}
}

// relationship prefers the professional-context indicators: a trainer
// invited "en sa qualite de formateur" is an EMPLOYER relationship even
// when no keyword from the table appears.
func relationship(prepared string) string {
	if _, ok := containsAny(prepared, constants.ProfessionalIndicators); ok {
		return "EMPLOYER"
	}
	for _, km := range relationshipMatchers {
		for _, re := range km.matchers {
			if re.MatchString(prepared) {
				return km.label
			}
		}
	}
	return ""
}

func visitPurpose(prepared string) string {
	for _, label := range constants.VisitPurposeOrder {
		for _, kw := range constants.VisitPurposes[label] {
			if strings.Contains(prepared, kw) {
				return label
			}
		}
	}
	return ""
}

func (e *InvitationLetterExtractor) extractVisitDetails(res *entity.ExtractionResult, prepared string, now time.Time) {
	res.Set("purpose", visitPurpose(prepared), ConfidencePattern, entity.SourcePattern)

	durationDays := 0
	for _, re := range durationPatterns {
		m := re.FindStringSubmatch(prepared)
		if m == nil {
			continue
		}
		days, err := strconv.Atoi(m[1])
		if err != nil || days < 1 || days > 365 {
			continue
		}
		durationDays = days
		res.Set("duration_days", days, ConfidencePattern, entity.SourcePattern)
		break
	}

	var arrival, departure string
	if m := numericPeriod.FindStringSubmatch(prepared); m != nil {
		arrival, _ = dateparse.Parse(m[1], dateparse.ContextAuto, now)
		departure, _ = dateparse.Parse(m[2], dateparse.ContextAuto, now)
	} else if m := arrivalLabeled.FindStringSubmatch(prepared); m != nil {
		arrival, _ = dateparse.Parse(m[1], dateparse.ContextAuto, now)
	}
	if arrival == "" {
		if dates := harvestTextualDates(prepared, now); len(dates) > 0 {
			arrival = dates[0]
			if len(dates) > 1 {
				departure = dates[len(dates)-1]
			}
		}
	}
	if arrival != "" && departure == "" && durationDays > 0 {
		if d, ok := addDays(arrival, durationDays); ok {
			departure = d
		}
	}
	res.Set("arrival_date", arrival, ConfidencePattern, entity.SourcePattern)
	res.Set("departure_date", departure, ConfidencePattern, entity.SourcePattern)

	if v, ok := firstMatch(prepared, accommodationPatterns); ok {
		res.Set("accommodation_address", strings.TrimRight(v, " ."), ConfidencePattern, entity.SourcePattern)
	}
	provided := false
	for _, re := range accommodationProvidedPatterns {
		if re.MatchString(prepared) {
			provided = true
			break
		}
	}
	res.Set("accommodation_provided", provided, ConfidencePattern, entity.SourcePattern)
}

// harvestTextualDates collects day-month-name dates in both orders, fills
// a missing year with the current one, and returns the sorted ISO list.
func harvestTextualDates(prepared string, now time.Time) []string {
	var dates []string
	seen := map[string]bool{}
	add := func(candidate string) {
		iso, ok := dateparse.Parse(candidate, dateparse.ContextAuto, now)
		if ok && !seen[iso] {
			seen[iso] = true
			dates = append(dates, iso)
		}
	}
	for _, m := range textualDayName.FindAllStringSubmatch(prepared, -1) {
		year := m[3]
		if year == "" {
			year = strconv.Itoa(now.Year())
		}
		add(m[1] + " " + m[2] + " " + year)
	}
	for _, m := range textualNameDay.FindAllStringSubmatch(prepared, -1) {
		year := m[3]
		if year == "" {
			year = strconv.Itoa(now.Year())
		}
		add(m[1] + " " + m[2] + ", " + year)
	}
	sort.Strings(dates)
	return dates
}

func (e *InvitationLetterExtractor) extractLegalization(res *entity.ExtractionResult, prepared string, now time.Time) {
	_, notarized := containsAny(prepared, notaryKeywords)
	res.Set("notarized", notarized, ConfidencePattern, entity.SourcePattern)
	if !notarized {
		return
	}
	if m := notaryName.FindStringSubmatch(prepared); m != nil {
		res.Set("notary_name", textnorm.NormalizeName(m[1]), ConfidencePattern, entity.SourcePattern)
	}
	if m := notaryDate.FindStringSubmatch(prepared); m != nil {
		if iso, ok := dateparse.Parse(m[1], dateparse.ContextAuto, now); ok {
			res.Set("notary_date", iso, ConfidencePattern, entity.SourcePattern)
		}
	}
	res.Set("stamp_present", stampPattern.MatchString(prepared), ConfidencePattern, entity.SourcePattern)
}
