package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/dateparse"
	"github.com/amondji/docextract/internal/textnorm"
)

// ResidenceCardExtractor reads residence permits issued by the consular
// district's host countries. Applicants who are not nationals of the
// country they apply from must hold one.
type ResidenceCardExtractor struct {
	now clock
}

func NewResidenceCardExtractor(now func() time.Time) *ResidenceCardExtractor {
	if now == nil {
		now = systemClock
	}
	return &ResidenceCardExtractor{now: now}
}

func (e *ResidenceCardExtractor) DocumentType() constants.DocumentType {
	return constants.ResidenceCard
}

func (e *ResidenceCardExtractor) RequiredFields() []string {
	return []string{"holder_name", "card_number", "expiry_date"}
}

var (
	// Split surname/given layout first; the generic NAME label would
	// otherwise capture only the surname half.
	residenceSplitName = regexp.MustCompile(`(?:SURNAME|FAMILY\s*NAME)\s*:?\s*([A-Z]+)[,\s]+(?:GIVEN(?:\s*NAMES?)?|FIRST(?:\s*NAME)?|PRENOMS?)\s*:?\s*([A-Z]+)`)

	residenceNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:FULL\s*NAME|NAME|NOM|HOLDER|TITULAIRE)\b\s*:?\s*([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|DATE|DOB|BORN|BIRTH|NAISSANCE|NATIONALITY|NATIONALITE|SEX|SEXE|CARD|PERMIT|\bNO\b|$)`),
	}

	// Card numbers must carry a digit; bare labels like PERMIT HOLDER
	// must not yield a capture.
	residenceCardNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:CARD|CARTE|PERMIT|PERMIS)\s*(?:NO|N°|NUMBER)?[.:\s]*([A-Z0-9/-]*\d[A-Z0-9/-]*)`),
		regexp.MustCompile(`\b(?:RESIDENCE|RESIDENT)\s*(?:NO|N°)?[.:\s]*([A-Z0-9-]*\d[A-Z0-9-]*)`),
		regexp.MustCompile(`\b(?:ID|IDENTIFICATION)\s*(?:NO|N°)?[.:\s]*([A-Z0-9-]*\d[A-Z0-9-]*)`),
		// Ethiopian immigration format.
		regexp.MustCompile(`\b(RP[/-]?\d{6,})\b`),
		regexp.MustCompile(`\b([A-Z]{2}\d{6,10})\b`),
	}

	residenceNationalityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:NATIONALITY|NATIONALITE)\s*:?\s*([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|$)`),
		regexp.MustCompile(`(?:CITIZEN\s+OF|RESSORTISSANT)\s*:?\s*(?:DE\s+|DU\s+)?([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|$)`),
		regexp.MustCompile(`COUNTRY\s*OF\s*ORIGIN\s*:?\s*([A-Z][A-Z' -]+?)\s*(?:,|\.|\n|$)`),
	}

	residenceBirthDate = regexp.MustCompile(`(?:DATE\s*OF\s*BIRTH|\bDOB\b|BIRTH|NAISSANCE|BORN|NE\(E\))[.:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`)

	residenceIssueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:ISSUE\s*DATE|DATE\s*(?:OF\s*)?ISSUE|DELIVRANCE|EMIS\s*LE)[.:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
		regexp.MustCompile(`(?:VALID\s*FROM|VALABLE\s*DU)[.:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
	}
	residenceExpiryDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:DATE\s*OF\s*EXPIRY|EXPIRY|EXPIRES?|EXPIRATION|VALID\s*UNTIL|VALABLE\s*JUSQU'?(?:AU)?)[.:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
	}

	residenceEmployerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:EMPLOYER|EMPLOYEUR|COMPANY|SOCIETE|ORGANIZATION)\s*:?\s*([A-Z][A-Z&.' -]+?)\s*(?:,|\n|ADDRESS|ADRESSE|$)`),
		regexp.MustCompile(`(?:WORKS?\s+(?:AT|FOR)|TRAVAILLE\s+(?:CHEZ|POUR))\s*:?\s*([A-Z][A-Z&.' -]+?)\s*(?:,|\n|ADDRESS|ADRESSE|$)`),
	}

	// RESIDENCE alone is too common on permit headers, so the bare label
	// needs an explicit colon.
	residenceAddressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:ADDRESS|ADRESSE)\s*:?\s*([^\n]+)`),
		regexp.MustCompile(`RESIDENCE\s*:\s*([^\n]+)`),
		regexp.MustCompile(`(?:LIVING\s+AT|RESIDANT\s+A)\s*:?\s*([^\n]+)`),
	}

	photoKeywords = []string{"PHOTO", "PHOTOGRAPH", "PICTURE", "IMAGE"}

	jurisdictionCountryMatchers = buildJurisdictionCountryMatchers()
)

type countryMatcher struct {
	canonical string
	matchers  []*regexp.Regexp
}

// Short ISO-style codes like ETH and KEN need word boundaries to avoid
// firing inside ordinary words.
func buildJurisdictionCountryMatchers() []countryMatcher {
	out := make([]countryMatcher, 0, len(constants.JurisdictionCountryOrder))
	for _, country := range constants.JurisdictionCountryOrder {
		keywords := constants.JurisdictionCountries[country]
		matchers := make([]*regexp.Regexp, 0, len(keywords))
		for _, kw := range keywords {
			matchers = append(matchers, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		out = append(out, countryMatcher{canonical: country, matchers: matchers})
	}
	return out
}

func (e *ResidenceCardExtractor) Extract(text string, meta *entity.OCRMetadata) entity.ExtractionResult {
	res := entity.NewExtractionResult(constants.ResidenceCard)
	now := e.now()
	prepared := prepare(text)

	res.Set("holder_name", residenceHolderName(prepared), ConfidencePattern, entity.SourcePattern)
	if v, ok := firstMatch(prepared, residenceCardNumberPatterns); ok {
		res.Set("card_number", v, ConfidencePattern, entity.SourcePattern)
	}
	if v, ok := firstMatch(prepared, residenceNationalityPatterns); ok {
		res.Set("nationality", v, ConfidencePattern, entity.SourcePattern)
	}
	if m := residenceBirthDate.FindStringSubmatch(prepared); m != nil {
		if iso, ok := dateparse.Parse(m[1], dateparse.ContextBirth, now); ok {
			res.Set("date_of_birth", iso, ConfidencePattern, entity.SourcePattern)
		}
	}
	if v, ok := firstMatch(prepared, residenceIssueDatePatterns); ok {
		if iso, ok := dateparse.Parse(v, dateparse.ContextAuto, now); ok {
			res.Set("issue_date", iso, ConfidencePattern, entity.SourcePattern)
		}
	}
	if v, ok := firstMatch(prepared, residenceExpiryDatePatterns); ok {
		if iso, ok := dateparse.Parse(v, dateparse.ContextExpiry, now); ok {
			res.Set("expiry_date", iso, ConfidencePattern, entity.SourcePattern)
		}
	}

	res.Set("issuing_country", issuingCountry(prepared), ConfidencePattern, entity.SourcePattern)
	res.Set("residence_type", residenceType(prepared), ConfidencePattern, entity.SourcePattern)

	if v, ok := firstMatch(prepared, residenceEmployerPatterns); ok {
		res.Set("employer", strings.TrimRight(v, " ."), ConfidencePattern, entity.SourcePattern)
	}
	if v, ok := firstMatch(prepared, residenceAddressPatterns); ok {
		res.Set("address", strings.TrimRight(v, " ."), ConfidencePattern, entity.SourcePattern)
	}

	res.Set("photo_present", photoPresent(prepared, meta), ConfidencePattern, entity.SourcePattern)

	res.ComputeSuccess(e.RequiredFields())
	return res
}

func residenceHolderName(prepared string) string {
	if m := residenceSplitName.FindStringSubmatch(prepared); m != nil {
		return textnorm.NormalizeName(m[1] + " " + m[2])
	}
	if v, ok := firstMatch(prepared, residenceNamePatterns); ok {
		return textnorm.NormalizeName(v)
	}
	return ""
}

func issuingCountry(prepared string) string {
	for _, cm := range jurisdictionCountryMatchers {
		for _, re := range cm.matchers {
			if re.MatchString(prepared) {
				return cm.canonical
			}
		}
	}
	return ""
}

func residenceType(prepared string) string {
	for _, rt := range constants.ResidenceTypeOrder {
		if _, ok := containsAny(prepared, constants.ResidenceTypes[rt]); ok {
			return rt
		}
	}
	return ""
}

// photoPresent trusts the OCR face detector when it fired, otherwise falls
// back to photo box labels printed on the card.
func photoPresent(prepared string, meta *entity.OCRMetadata) bool {
	if meta != nil && meta.FaceDetected {
		return true
	}
	_, ok := containsAny(prepared, photoKeywords)
	return ok
}
