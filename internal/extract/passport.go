package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/crossval"
	"github.com/amondji/docextract/internal/dateparse"
	"github.com/amondji/docextract/internal/mrz"
	"github.com/amondji/docextract/internal/textnorm"
)

// PassportExtractor reads the machine readable zone and the visual zone,
// reconciles them, and infers the passport category.
type PassportExtractor struct {
	now clock
}

func NewPassportExtractor(now func() time.Time) *PassportExtractor {
	if now == nil {
		now = systemClock
	}
	return &PassportExtractor{now: now}
}

func (e *PassportExtractor) DocumentType() constants.DocumentType {
	return constants.Passport
}

func (e *PassportExtractor) RequiredFields() []string {
	return []string{
		"passport_number", "surname", "given_names", "nationality",
		"date_of_birth", "expiry_date", "sex",
	}
}

var (
	vizSurnamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:SURNAME|FAMILY\s*NAME|NOM\s*DE\s*FAMILLE|NOM)[:.\s]*([A-Z' -]+)`),
		regexp.MustCompile(`/SURNAME[:.\s]*([A-Z' -]+)`),
	}
	vizGivenNamesPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:GIVEN\s*NAMES?|PRENOMS?|FIRST\s*NAME)[:.\s]*([A-Z' -]+)`),
		regexp.MustCompile(`/GIVEN\s*NAMES?[:.\s]*([A-Z' -]+)`),
	}
	vizBirthDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:DATE\s*OF\s*BIRTH|DATE\s*DE\s*NAISSANCE|DOB|BIRTH\s*DATE|NE\(E\)\s*LE)[:.\s]*(\d{1,2}[/.\s-]+[A-Z]{3,9}[/.\s-]+\d{2,4})`),
		regexp.MustCompile(`\b(?:DATE\s*OF\s*BIRTH|DATE\s*DE\s*NAISSANCE|DOB|BIRTH\s*DATE|NE\(E\)\s*LE)[:.\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
		regexp.MustCompile(`(\d{2}[/.-]\d{2}[/.-]\d{4})\s*(?:DATE OF BIRTH|NAISSANCE)`),
	}
	vizPlaceOfBirthPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:PLACE\s*OF\s*BIRTH|LIEU\s*DE\s*NAISSANCE)[:.\s]*([A-Z', -]+)`),
	}
	vizNationalityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:NATIONALITY|NATIONALITE)[:.\s]*([A-Z]+)`),
	}
	vizPassportNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:PASSPORT|PASSEPORT)\s*(?:NO|NUMBER|N°?O?)[:.\s]+([A-Z]{1,2}\d{6,9})`),
		regexp.MustCompile(`/PASSPORT\s*NO\.?\s*([A-Z]{1,2}\d{6,9})`),
		regexp.MustCompile(`\b([A-Z]{2}\d{7})\b`),
		regexp.MustCompile(`\b([A-Z]{1,2}\d{6,9})\b`),
	}
	vizIssueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:DATE\s*OF\s*ISSUE|DATE\s*(?:DE\s*)?DELIVRANCE|ISSUE\s*DATE)[:.\s]*(\d{1,2}[/.\s-]+[A-Z]{3,9}[/.\s-]+\d{2,4})`),
		regexp.MustCompile(`\b(?:DATE\s*OF\s*ISSUE|DATE\s*(?:DE\s*)?DELIVRANCE|ISSUE\s*DATE)[:.\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
	}
	vizExpiryDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:DATE\s*OF\s*EXPIRY|EXPIRY\s*DATE|EXPIRES?|VALID\s*UNTIL|EXPIRATION)[:.\s]*(\d{1,2}[/.\s-]+[A-Z]{3,9}[/.\s-]+\d{2,4})`),
		regexp.MustCompile(`\b(?:DATE\s*OF\s*EXPIRY|EXPIRY\s*DATE|EXPIRES?|VALID\s*UNTIL|EXPIRATION)[:.\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
	}
	vizAuthorityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:ISSUING\s*AUTHORITY|AUTHORITY|AUTORITE)[:.\s]*([A-Z .-]+)`),
	}
	vizSexPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:SEX|SEXE)[:.\s]*(M|F|MALE|FEMALE|MASCULIN|FEMININ)\b`),
	}
)

func (e *PassportExtractor) Extract(text string, meta *entity.OCRMetadata) entity.ExtractionResult {
	res := entity.NewExtractionResult(constants.Passport)
	now := e.now()

	var rec *entity.MrzRecord
	if lines, ok := mrz.Locate(text); ok {
		rec = mrz.Decode(lines, now)
		res.Mrz = rec
	}

	prepared := prepare(text)
	viz := e.extractViz(prepared, now)

	typ, typConf := e.passportType(rec, prepared)
	res.Fields["passport_type"] = entity.FieldValue{Value: typ, Confidence: typConf, Source: entity.SourcePattern}

	if rec != nil && len(viz) > 0 {
		res.CrossValidation = crossval.Compare(rec.Fields, viz)
	}

	e.merge(&res, rec, viz)
	res.ComputeSuccess(e.RequiredFields())
	return res
}

// extractViz pulls fields from the visual (human readable) zone.
func (e *PassportExtractor) extractViz(prepared string, now time.Time) map[string]string {
	viz := make(map[string]string)
	set := func(field, value string) {
		if value != "" {
			viz[field] = value
		}
	}

	if v, ok := firstMatch(prepared, vizSurnamePatterns); ok {
		set("surname", textnorm.NormalizeName(v))
	}
	if v, ok := firstMatch(prepared, vizGivenNamesPatterns); ok {
		set("given_names", textnorm.NormalizeName(v))
	}
	if v, ok := firstMatch(prepared, vizBirthDatePatterns); ok {
		if iso, ok := dateparse.Parse(v, dateparse.ContextBirth, now); ok {
			set("date_of_birth", iso)
		}
	}
	if v, ok := firstMatch(prepared, vizPlaceOfBirthPatterns); ok {
		set("place_of_birth", strings.TrimRight(v, ", "))
	}
	if v, ok := firstMatch(prepared, vizNationalityPatterns); ok {
		set("nationality", v)
	}
	if v, ok := firstMatch(prepared, vizPassportNumberPatterns); ok {
		set("passport_number", v)
	}
	if v, ok := firstMatch(prepared, vizIssueDatePatterns); ok {
		if iso, ok := dateparse.Parse(v, dateparse.ContextAuto, now); ok {
			set("issue_date", iso)
		}
	}
	if v, ok := firstMatch(prepared, vizExpiryDatePatterns); ok {
		if iso, ok := dateparse.Parse(v, dateparse.ContextExpiry, now); ok {
			set("expiry_date", iso)
		}
	}
	if v, ok := firstMatch(prepared, vizAuthorityPatterns); ok {
		set("issuing_authority", strings.TrimRight(v, " .-"))
	}
	if v, ok := firstMatch(prepared, vizSexPatterns); ok {
		set("sex", v[:1])
	}
	return viz
}

// passportType infers the category: MRZ type code first, then keyword
// search. Keywords upgrade a generic ORDINAIRE reading but never displace
// a specific MRZ-derived category.
func (e *PassportExtractor) passportType(rec *entity.MrzRecord, prepared string) (string, float64) {
	typ := constants.PassportOrdinaire
	conf := 0.5

	if rec != nil {
		docType := rec.Fields["document_type"]
		combined := docType + rec.Fields["document_subtype"]
		if t, ok := constants.PassportTypeCodes[combined]; ok {
			typ, conf = t, 0.95
		} else if t, ok := constants.PassportTypeCodes[docType]; ok {
			typ, conf = t, 0.90
		}
	}

	if _, ok := containsAny(prepared, constants.DiplomaticKeywords); ok && typ == constants.PassportOrdinaire {
		typ = constants.PassportDiplomatique
		conf = max(conf, 0.85)
	}
	if _, ok := containsAny(prepared, constants.ServiceKeywords); ok && typ == constants.PassportOrdinaire {
		typ = constants.PassportService
		conf = max(conf, 0.80)
	}
	if _, ok := containsAny(prepared, constants.LaissezPasserKeywords); ok && typ == constants.PassportOrdinaire {
		typ = constants.PassportLaissezPasser
		conf = max(conf, 0.90)
	}
	return typ, conf
}

// merge combines the zones, MRZ taking priority; the visual zone supplies
// fields the MRZ cannot carry.
func (e *PassportExtractor) merge(res *entity.ExtractionResult, rec *entity.MrzRecord, viz map[string]string) {
	shared := []string{
		"surname", "given_names", "passport_number", "nationality",
		"date_of_birth", "expiry_date", "sex", "personal_number",
		"issuing_country",
	}
	for _, field := range shared {
		if rec != nil && rec.Fields[field] != "" {
			res.Set(field, rec.Fields[field], ConfidenceMrz, entity.SourceMrz)
		} else if viz[field] != "" {
			res.Set(field, viz[field], ConfidenceViz, entity.SourceViz)
		}
	}
	for _, field := range []string{"place_of_birth", "issue_date", "issuing_authority"} {
		if viz[field] != "" {
			res.Set(field, viz[field], ConfidenceViz, entity.SourceViz)
		}
	}
	if name, ok := constants.CountryCodes[res.GetString("nationality")]; ok {
		res.Set("nationality_name", name, res.Fields["nationality"].Confidence, entity.SourceMerged)
	}
}
