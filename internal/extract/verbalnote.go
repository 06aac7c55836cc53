package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/dateparse"
	"github.com/amondji/docextract/internal/textnorm"
)

// TravelDates is the requested travel period of a note verbale.
type TravelDates struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AuthenticityIndicators are surface signals a genuine note carries.
type AuthenticityIndicators struct {
	OfficialLetterhead     bool `json:"official_letterhead"`
	OfficialStamp          bool `json:"official_stamp"`
	SignaturePresent       bool `json:"signature_present"`
	AddressedToCIEmbassy   bool `json:"addressed_to_ci_embassy"`
	DiplomatIdentified     bool `json:"diplomat_identified"`
	ReferenceNumberPresent bool `json:"reference_number_present"`
}

// VerbalNoteExtractor reads diplomatic notes verbales accompanying
// DIPLOMATIQUE and SERVICE passport applications.
type VerbalNoteExtractor struct {
	now clock
}

func NewVerbalNoteExtractor(now func() time.Time) *VerbalNoteExtractor {
	if now == nil {
		now = systemClock
	}
	return &VerbalNoteExtractor{now: now}
}

func (e *VerbalNoteExtractor) DocumentType() constants.DocumentType {
	return constants.VerbalNote
}

func (e *VerbalNoteExtractor) RequiredFields() []string {
	return []string{"sending_entity", "diplomat_name", "date"}
}

var noteFormats = []struct {
	label    string
	keywords []string
}{
	{"VERBAL_NOTE", []string{"NOTE VERBALE", "VERBAL NOTE"}},
	{"DIPLOMATIC_NOTE", []string{"NOTE DIPLOMATIQUE", "DIPLOMATIC NOTE"}},
	{"THIRD_PERSON_NOTE", []string{"NOTE EN TROISIEME PERSONNE", "THIRD PERSON NOTE"}},
}

var requestedVisaTypes = buildVisaTypeMatchers()

type visaTypeMatcher struct {
	label    string
	matchers []*regexp.Regexp
}

// A keyword counts only adjacent to VISA or ENTRY; a bare "SERVICE"
// elsewhere in the note is not a request.
func buildVisaTypeMatchers() []visaTypeMatcher {
	table := []struct {
		label    string
		keywords []string
	}{
		{"DIPLOMATIC", []string{"DIPLOMATIQUE", "DIPLOMATIC"}},
		{"SERVICE", []string{"SERVICE", "OFFICIAL", "OFFICIEL"}},
		{"COURTESY", []string{"COURTOISIE", "COURTESY"}},
		{"TRANSIT", []string{"TRANSIT"}},
	}
	out := make([]visaTypeMatcher, 0, len(table))
	for _, row := range table {
		matchers := make([]*regexp.Regexp, 0, len(row.keywords))
		for _, kw := range row.keywords {
			matchers = append(matchers, regexp.MustCompile(`(?:VISA|ENTRY)\s*`+kw+`|`+kw+`\s*(?:VISA|ENTRY)`))
		}
		out = append(out, visaTypeMatcher{label: row.label, matchers: matchers})
	}
	return out
}

var (
	sendingEntityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:EMBASSY|AMBASSADE)\s+(?:OF|DE)\s+(?:THE\s+|LA\s+)?([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|PRESENTS|PRESENTE|TO\s)`),
		regexp.MustCompile(`(?:MINISTRY|MINISTERE)\s+(?:OF|DE[S]?)\s+(?:THE\s+)?([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|PRESENTS|PRESENTE)`),
		regexp.MustCompile(`(?:PERMANENT\s+)?(?:MISSION|DELEGATION)\s+(?:OF|DE)\s+(?:THE\s+|LA\s+)?([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|PRESENTS|PRESENTE|TO\s)`),
		regexp.MustCompile(`(?m)^([A-Z][A-Z' -]+(?:EMBASSY|AMBASSADE|MINISTRY|MISSION))\s*$`),
	}

	receivingEntityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:AMBASSADE|EMBASSY)\s+(?:DE|OF)\s+(?:LA\s+)?(?:REPUBLIQUE\s+(?:DE\s+)?)?(?:COTE\s*D'?IVOIRE|IVORY\s*COAST)`),
		regexp.MustCompile(`(?:COTE\s*D'?IVOIRE|IVORY\s*COAST)\s+(?:EMBASSY|AMBASSADE)`),
		regexp.MustCompile(`(?:\bTO\b|DESTINATAIRE)[:\s]+[^.\n]*(?:IVOIRE|IVORY)`),
	}

	noteReferencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:REF|REFERENCE|N°|NO)\b[.:\s]*([A-Z0-9/-]*\d[A-Z0-9/-]*)`),
		regexp.MustCompile(`VERBAL\s*NOTE\s*(?:N°|NO)?[.:\s]*([A-Z0-9/-]*\d[A-Z0-9/-]*)`),
		regexp.MustCompile(`\b([A-Z]{2,5}[/-]\d{2,4}[/-][A-Z0-9]+)\b`),
	}

	noteDateLabeled = regexp.MustCompile(`(?:DATE|DATED|\bDU\b|\bLE\b)[:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`)
	noteDateTextual = regexp.MustCompile(`(\d{1,2}\s+[A-Z]{3,9}\s+\d{4})`)

	subjectPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:OBJET|SUBJECT|\bRE\b|CONCERNING)[:\s]+([^\n]+)`),
		regexp.MustCompile(`REQUEST\s+FOR\s+([^\n]+)`),
	}

	diplomatNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:H\.E\.|HIS\s+EXCELLENCY|HER\s+EXCELLENCY|SON\s+EXCELLENCE|S\.E\.|\bMR\b|\bMRS\b|\bMS\b)[.:\s]+([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|PASSPORT|PASSEPORT|HOLDER|TITULAIRE|WHO|AND\s)`),
		regexp.MustCompile(`(?:DIPLOMAT|OFFICIAL|OFFICER)\s*:\s*([A-Z][A-Z' -]+?)\s*(?:,|\.|\n)`),
		regexp.MustCompile(`(?:NAME|NOM)\s*:\s*([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|PASSPORT|PASSEPORT)`),
	}
	diplomatTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:TITLE|TITRE|FUNCTION|FONCTION)\s*:\s*([A-Z][A-Z' -]+?)\s*(?:,|\.|\n)`),
		regexp.MustCompile(`\b(AMBASSADOR|AMBASSADEUR|COUNSELLOR|CONSEILLER|FIRST\s+SECRETARY|SECOND\s+SECRETARY|ATTACHE)\b`),
	}
	diplomatPassport = regexp.MustCompile(`(?:PASSPORT|PASSEPORT)\s*(?:NO|N°|NUMBER)?[:\s]*([A-Z0-9]{6,})`)

	missionPurposePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:PURPOSE|OBJET\s+(?:DE\s+LA\s+)?MISSION)[:\s]+([^\n.]+)`),
		regexp.MustCompile(`(?:OFFICIAL\s+)?(?:VISIT|VISITE)\s+(?:TO|EN)\s+([^\n.]+)`),
	}

	travelPeriodPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:FROM|DU)\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})\s*(?:TO|AU|UNTIL)\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
		regexp.MustCompile(`(?:PERIOD|PERIODE)[:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})\s*[-–]\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
	}

	accompanyingPattern = regexp.MustCompile(`(?:ACCOMPANIED\s+BY|ACCOMPAGNEE?\s+DE|SPOUSE|EPOUSE?|WIFE|HUSBAND|CHILD|ENFANT)[:\s]+([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|AND\s|ET\s|$)`)

	letterheadPattern = regexp.MustCompile(`EMBASSY|AMBASSADE|MINISTRY|MINISTERE|MISSION`)
	signaturePattern  = regexp.MustCompile(`SIGNED|SIGNE|SIGNATURE|\bS/`)
	diplomatPresence  = regexp.MustCompile(`(?:MR|MRS|H\.E\.|EXCELLENCY)[.:\s]+[A-Z]`)
	refPresence       = regexp.MustCompile(`\b(?:REF|N°|NO)\b[.:\s]*[A-Z0-9/-]*\d`)
)

func (e *VerbalNoteExtractor) Extract(text string, meta *entity.OCRMetadata) entity.ExtractionResult {
	res := entity.NewExtractionResult(constants.VerbalNote)
	now := e.now()
	prepared := prepare(text)

	res.Set("note_type", noteType(prepared), ConfidencePattern, entity.SourcePattern)
	res.Set("sending_entity", sendingEntity(prepared), ConfidencePattern, entity.SourcePattern)
	if receivingEntity(prepared) {
		res.Set("receiving_entity", "AMBASSADE DE COTE D'IVOIRE", ConfidencePattern, entity.SourcePattern)
	}
	if v, ok := firstMatch(prepared, noteReferencePatterns); ok {
		res.Set("reference_number", v, ConfidencePattern, entity.SourcePattern)
	}
	if iso, ok := noteDate(prepared, now); ok {
		res.Set("date", iso, ConfidencePattern, entity.SourcePattern)
	}
	if v, ok := firstMatch(prepared, subjectPatterns); ok {
		res.Set("subject", strings.TrimRight(v, " ."), ConfidencePattern, entity.SourcePattern)
	}

	e.extractDiplomat(&res, prepared)

	if td, ok := travelDates(prepared, now); ok {
		res.Fields["travel_dates"] = entity.FieldValue{Value: td, Confidence: ConfidencePattern, Source: entity.SourcePattern}
	}
	res.Set("requested_visa_type", requestedVisaType(prepared), ConfidencePattern, entity.SourcePattern)
	if persons := accompanyingPersons(prepared); len(persons) > 0 {
		res.Fields["accompanying_persons"] = entity.FieldValue{Value: persons, Confidence: ConfidencePattern, Source: entity.SourcePattern}
	}

	res.Fields["authenticity_indicators"] = entity.FieldValue{
		Value:      authenticity(prepared),
		Confidence: ConfidencePattern,
		Source:     entity.SourcePattern,
	}

	res.ComputeSuccess(e.RequiredFields())
	return res
}

func noteType(prepared string) string {
	for _, f := range noteFormats {
		if _, ok := containsAny(prepared, f.keywords); ok {
			return f.label
		}
	}
	return ""
}

// sendingEntity tries the letterhead patterns, then falls back to the
// international-organization table.
func sendingEntity(prepared string) string {
	if v, ok := firstMatch(prepared, sendingEntityPatterns); ok {
		return v
	}
	names := make([]string, 0, len(constants.InternationalOrgs))
	for name := range constants.InternationalOrgs {
		// Two-letter acronyms are too noisy for substring matching.
		if len(name) > 3 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.Contains(prepared, name) {
			return name
		}
	}
	return ""
}

func receivingEntity(prepared string) bool {
	for _, re := range receivingEntityPatterns {
		if re.MatchString(prepared) {
			return true
		}
	}
	return false
}

func noteDate(prepared string, now time.Time) (string, bool) {
	if m := noteDateLabeled.FindStringSubmatch(prepared); m != nil {
		if iso, ok := dateparse.Parse(m[1], dateparse.ContextAuto, now); ok {
			return iso, true
		}
	}
	for _, m := range noteDateTextual.FindAllStringSubmatch(prepared, -1) {
		if iso, ok := dateparse.Parse(m[1], dateparse.ContextAuto, now); ok {
			return iso, true
		}
	}
	return "", false
}

func (e *VerbalNoteExtractor) extractDiplomat(res *entity.ExtractionResult, prepared string) {
	if v, ok := firstMatch(prepared, diplomatNamePatterns); ok {
		res.Set("diplomat_name", textnorm.NormalizeName(v), ConfidencePattern, entity.SourcePattern)
	}
	if v, ok := firstMatch(prepared, diplomatTitlePatterns); ok {
		res.Set("diplomat_title", v, ConfidencePattern, entity.SourcePattern)
	}
	if m := diplomatPassport.FindStringSubmatch(prepared); m != nil {
		res.Set("diplomat_passport_number", m[1], ConfidencePattern, entity.SourcePattern)
	}
	if v, ok := firstMatch(prepared, missionPurposePatterns); ok {
		res.Set("mission_purpose", strings.TrimRight(v, " ."), ConfidencePattern, entity.SourcePattern)
	}
}

func travelDates(prepared string, now time.Time) (TravelDates, bool) {
	for _, re := range travelPeriodPatterns {
		m := re.FindStringSubmatch(prepared)
		if m == nil {
			continue
		}
		from, okFrom := dateparse.Parse(m[1], dateparse.ContextAuto, now)
		to, okTo := dateparse.Parse(m[2], dateparse.ContextAuto, now)
		if okFrom && okTo {
			return TravelDates{From: from, To: to}, true
		}
	}
	return TravelDates{}, false
}

func requestedVisaType(prepared string) string {
	for _, vt := range requestedVisaTypes {
		for _, re := range vt.matchers {
			if re.MatchString(prepared) {
				return vt.label
			}
		}
	}
	return ""
}

func accompanyingPersons(prepared string) []string {
	var persons []string
	seen := map[string]bool{}
	for _, m := range accompanyingPattern.FindAllStringSubmatch(prepared, -1) {
		name := textnorm.NormalizeName(m[1])
		if len(name) > 3 && !seen[name] {
			seen[name] = true
			persons = append(persons, name)
		}
	}
	return persons
}

func authenticity(prepared string) AuthenticityIndicators {
	return AuthenticityIndicators{
		OfficialLetterhead:     letterheadPattern.MatchString(prepared),
		OfficialStamp:          stampPattern.MatchString(prepared),
		SignaturePresent:       signaturePattern.MatchString(prepared),
		AddressedToCIEmbassy:   strings.Contains(prepared, "IVOIRE") || strings.Contains(prepared, "IVORY COAST"),
		DiplomatIdentified:     diplomatPresence.MatchString(prepared),
		ReferenceNumberPresent: refPresence.MatchString(prepared),
	}
}
