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

// Vaccination is one detected vaccine entry.
type Vaccination struct {
	Type            string `json:"type"`
	Name            string `json:"name"`
	Required        bool   `json:"required"`
	ValidityYears   int    `json:"validity_years"`
	VaccinationDate string `json:"vaccination_date,omitempty"`
	BatchNumber     string `json:"batch_number,omitempty"`
}

// VaccinationCardExtractor focuses on the yellow-fever entry, which entry
// into Côte d'Ivoire requires. Detection cascades from exact name lists
// through fuzzy OCR-tolerant patterns to generic vaccination context.
type VaccinationCardExtractor struct {
	now clock
	// validityWindowDays is the WHO delay before a fresh vaccination
	// becomes effective.
	validityWindowDays int
}

const DefaultValidityWindowDays = 10

func NewVaccinationCardExtractor(now func() time.Time, validityWindowDays int) *VaccinationCardExtractor {
	if now == nil {
		now = systemClock
	}
	if validityWindowDays <= 0 {
		validityWindowDays = DefaultValidityWindowDays
	}
	return &VaccinationCardExtractor{now: now, validityWindowDays: validityWindowDays}
}

func (e *VaccinationCardExtractor) DocumentType() constants.DocumentType {
	return constants.VaccinationCard
}

func (e *VaccinationCardExtractor) RequiredFields() []string {
	return []string{"holder_name", "yellow_fever_date"}
}

var (
	holderNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:NAME|NOM)\s*(?:/\s*(?:NOM|NAME))?\s*:\s*([A-Z][A-Z' -]+?)\s+(?:DATE|DOB|BIRTH|SEX|GENDER|NATIONALITY|COVID|YELLOW|HEPATITIS|\d{1,2}[/-])`),
		regexp.MustCompile(`(?:SURNAME|FAMILY\s*NAME)[:\s]*([A-Z]+)[,\s]+(?:GIVEN\s*NAME|PRENOM)[:\s]*([A-Z]+)`),
		regexp.MustCompile(`(?:HOLDER|TITULAIRE)[:\s]*([A-Z][A-Z' -]+?)\s+(?:DATE|DOB|BIRTH|SEX|\d)`),
	}
	holderNameLine = regexp.MustCompile(`(?:NAME|NOM)\s*(?:/[^:\n]+)?:\s*([A-Z][A-Z' -]+)`)
	nameNoise      = regexp.MustCompile(`\s*(?:DATE|DOB|BIRTH|SEX|GENDER|NATIONALITY|OF|DE|NAISSANCE)\s*$`)

	vaccBirthDate = regexp.MustCompile(`(?:DATE\s*OF\s*BIRTH|DATE\s*DE\s*NAISSANCE|DOB|BIRTH|NE\(E\)\s*LE)[:\s]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`)

	certNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:CERTIFICATE|CERTIFICAT)\s*(?:NO|N°|NUMBER)\.?\s*:?\s*([A-Z0-9][A-Z0-9/-]+)`),
		regexp.MustCompile(`(?:CERTIFICATE|CERTIFICAT)\s*:\s*([A-Z0-9][A-Z0-9/-]+)`),
		regexp.MustCompile(`(?:ICV|YELLOW\s*CARD)\s*(?:NO|N°)?\s*:?\s*(\d[A-Z0-9-]+)`),
		regexp.MustCompile(`\b([A-Z]{2,3}[-/]?\d{6,10})\b`),
	}

	// Fuzzy tier: single-character OCR substitutions (O to 0, E to 3) and
	// certificate context blocks.
	fuzzyYellowFeverPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Y[E3]LL[O0]W\s*F[E3][AV][E3]R`),
		regexp.MustCompile(`FI[E3]VR[E3]\s*J[AU][UN][E3]`),
		regexp.MustCompile(`A?N?T?I?[\s-]?AM[AE]R[I1]L`),
		regexp.MustCompile(`(?:VACCIN|CERTIFICATE|CERTIFICAT)(?s:.{0,50})(?:FEV[AE]R|JAUNE|AMARIL)`),
		regexp.MustCompile(`INTERNATIONAL(?s:.{0,20})CERTIFICATE?(?s:.{0,30})(?:VACCIN|IMMUNIZ)`),
	}

	numericDateCapture = `(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`

	yfDateKeywordPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:YELLOW\s*FE[AV]ER|FIEVRE\s*JAUNE|AMARIL)[^0-9]{0,30}` + numericDateCapture),
		regexp.MustCompile(numericDateCapture + `[^A-Z0-9]{0,10}(?:YELLOW|JAUNE|AMARIL)`),
		regexp.MustCompile(`(?:ANTI[\s-]?AMARIL|YF[\s-]?VAX|17D|STAMARIL)[^0-9]{0,20}` + numericDateCapture),
		regexp.MustCompile(`(?:YELL[O0]W\s*FAV[E3]R|YELL[O0]W\s*F[E3]V[E3]R|FI[E3]VR[E3]\s*JA?UN[E3]?)[^0-9]{0,30}` + numericDateCapture),
		regexp.MustCompile(`(?:YELLOW|JAUNE|AMARIL)[^0-9]{0,30}(\d{1,2}\s*[A-Z]{3,9}\s*\d{2,4})`),
	}
	yfDateContextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:VACCINATION|VACCIN|DATE\s*(?:OF\s*)?VACCINATION)[^0-9]{0,20}` + numericDateCapture),
		regexp.MustCompile(numericDateCapture + `[^A-Z0-9]{0,15}(?:VACCINATION|VACCIN)`),
		regexp.MustCompile(`(?:VALID\s*(?:FROM|UNTIL)?|VALIDE\s*(?:A PARTIR|JUSQU))[^0-9]{0,10}` + numericDateCapture),
		regexp.MustCompile(`(?:VACCINATION|IMMUNIZATION)[^0-9]{0,30}(\d{4}[/-]\d{2}[/-]\d{2})`),
	}
	yfDateCertPattern = regexp.MustCompile(`(?:CERTIFICATE|CERTIFICAT)[^0-9]{0,50}` + numericDateCapture)
	anyDatePattern    = regexp.MustCompile(numericDateCapture)

	centerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:CENTER|CENTRE|CLINIC|CLINIQUE|HOSPITAL|HOPITAL)[:\s]+([A-Z][A-Z .-]+)`),
		regexp.MustCompile(`(?:ADMINISTERING|ADMINISTERED\s*BY|VACCINATED\s*AT)[:\s]+([A-Z][A-Z .-]+)`),
	}
)

// Date extraction tiers, weakest last.
const (
	methodKeyword      = "KEYWORD_MATCH"
	methodContext      = "CONTEXT_MATCH"
	methodCertFallback = "CERTIFICATE_FALLBACK"
	methodFirstDate    = "FIRST_DATE_FALLBACK"
)

var dateMethodConfidence = map[string]float64{
	methodKeyword:      0.95,
	methodContext:      0.75,
	methodCertFallback: 0.60,
	methodFirstDate:    0.50,
}

func (e *VaccinationCardExtractor) Extract(text string, meta *entity.OCRMetadata) entity.ExtractionResult {
	res := entity.NewExtractionResult(constants.VaccinationCard)
	now := e.now()
	prepared := prepare(text)

	if name := e.holderName(prepared); name != "" {
		res.Set("holder_name", name, ConfidencePattern, entity.SourcePattern)
	}
	if m := vaccBirthDate.FindStringSubmatch(prepared); m != nil {
		if iso, ok := dateparse.Parse(m[1], dateparse.ContextBirth, now); ok {
			res.Set("date_of_birth", iso, ConfidencePattern, entity.SourcePattern)
		}
	}
	if v, ok := firstMatch(prepared, certNumberPatterns); ok {
		res.Set("certificate_number", v, ConfidencePattern, entity.SourcePattern)
	}

	vaccinations := e.allVaccinations(prepared, now)
	if len(vaccinations) > 0 {
		res.Fields["vaccinations"] = entity.FieldValue{Value: vaccinations, Confidence: ConfidencePattern, Source: entity.SourcePattern}
	}

	e.applyYellowFever(&res, vaccinations, prepared, now)

	res.ComputeSuccess(e.RequiredFields())
	return res
}

func (e *VaccinationCardExtractor) holderName(prepared string) string {
	// Detection runs over a single line so terminator keywords line up.
	flat := strings.Join(strings.Fields(prepared), " ")
	for _, re := range holderNamePatterns {
		m := re.FindStringSubmatch(flat)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(m) > 2 && m[2] != "" {
			name += " " + strings.TrimSpace(m[2])
		}
		name = nameNoise.ReplaceAllString(name, "")
		name = nameNoise.ReplaceAllString(name, "")
		if name = strings.TrimSpace(name); len(name) > 3 {
			return textnorm.NormalizeName(name)
		}
	}
	if m := holderNameLine.FindStringSubmatch(prepared); m != nil {
		name := strings.TrimSpace(m[1])
		name = nameNoise.ReplaceAllString(name, "")
		if name = strings.TrimSpace(name); len(name) > 3 {
			return textnorm.NormalizeName(name)
		}
	}
	return ""
}

// allVaccinations scans the recognized vaccine tables for exact name hits,
// with the nearest trailing date and batch number.
func (e *VaccinationCardExtractor) allVaccinations(prepared string, now time.Time) []Vaccination {
	var out []Vaccination
	for _, code := range constants.VaccineOrder {
		info := constants.Vaccines[code]
		for _, name := range info.Names {
			probe := textnorm.StripAccents(name)
			if !strings.Contains(prepared, probe) {
				continue
			}
			v := Vaccination{
				Type:          code,
				Name:          name,
				Required:      info.Required,
				ValidityYears: info.ValidityYears,
			}
			dateRe := regexp.MustCompile(regexp.QuoteMeta(probe) + `[^0-9]{0,30}` + numericDateCapture)
			if m := dateRe.FindStringSubmatch(prepared); m != nil {
				if iso, ok := dateparse.Parse(m[1], dateparse.ContextAuto, now); ok {
					v.VaccinationDate = iso
				}
			}
			batchRe := regexp.MustCompile(regexp.QuoteMeta(probe) + `(?s:.{0,40}?)(?:LOT|BATCH)[:\s#]*([A-Z0-9-]+)`)
			if m := batchRe.FindStringSubmatch(prepared); m != nil {
				v.BatchNumber = m[1]
			}
			out = append(out, v)
			break
		}
	}
	return out
}

// applyYellowFever sets the yellow-fever fields from the exact hit when
// present, else from the fuzzy patterns. A missing date is a warning, not
// a detection failure.
func (e *VaccinationCardExtractor) applyYellowFever(res *entity.ExtractionResult, vaccinations []Vaccination, prepared string, now time.Time) {
	var detected bool
	var matchedName, method string
	var exactDate string

	for _, v := range vaccinations {
		if v.Type == constants.YellowFever {
			detected = true
			matchedName = v.Name
			method = "exact_match"
			exactDate = v.VaccinationDate
			break
		}
	}
	if !detected {
		for _, re := range fuzzyYellowFeverPatterns {
			if m := re.FindString(prepared); m != "" {
				detected = true
				matchedName = m
				method = "fuzzy_match"
				break
			}
		}
	}
	if !detected {
		return
	}

	res.Set("yellow_fever_detected", true, ConfidencePattern, entity.SourcePattern)
	res.Set("yellow_fever_match", matchedName, ConfidencePattern, entity.SourcePattern)
	res.Set("yellow_fever_detection_method", method, ConfidencePattern, entity.SourcePattern)

	date, dateMethod := exactDate, methodKeyword
	if date == "" {
		date, dateMethod = e.yellowFeverDate(prepared, now)
	}
	if date == "" {
		res.AddWarning("YELLOW_FEVER_DATE_NOT_FOUND",
			"could not find a date associated with the yellow fever vaccination", now)
		return
	}

	conf := dateMethodConfidence[dateMethod]
	res.Set("yellow_fever_date", date, conf, entity.SourcePattern)
	res.Set("yellow_fever_date_method", dateMethod, conf, entity.SourcePattern)
	if from, ok := addDays(date, e.validityWindowDays); ok {
		res.Set("yellow_fever_valid_from", from, conf, entity.SourcePattern)
	}
	res.Set("yellow_fever_valid_until", "LIFETIME", conf, entity.SourcePattern)

	if v, ok := firstMatch(prepared, centerPatterns); ok {
		res.Set("vaccination_center", strings.TrimRight(v, " .-"), ConfidencePattern, entity.SourcePattern)
	}
}

// yellowFeverDate runs the four date tiers in order of confidence.
func (e *VaccinationCardExtractor) yellowFeverDate(prepared string, now time.Time) (string, string) {
	for _, re := range yfDateKeywordPatterns {
		if m := re.FindStringSubmatch(prepared); m != nil {
			if iso, ok := dateparse.Parse(m[1], dateparse.ContextAuto, now); ok {
				return iso, methodKeyword
			}
		}
	}
	for _, re := range yfDateContextPatterns {
		if m := re.FindStringSubmatch(prepared); m != nil {
			if iso, ok := dateparse.Parse(m[1], dateparse.ContextAuto, now); ok {
				return iso, methodContext
			}
		}
	}
	if m := yfDateCertPattern.FindStringSubmatch(prepared); m != nil {
		if iso, ok := dateparse.Parse(m[1], dateparse.ContextAuto, now); ok && reasonableVaccinationDate(iso, now) {
			return iso, methodCertFallback
		}
	}
	if hasVaccinationContext(prepared) {
		if m := anyDatePattern.FindStringSubmatch(prepared); m != nil {
			if iso, ok := dateparse.Parse(m[1], dateparse.ContextAuto, now); ok && reasonableVaccinationDate(iso, now) {
				return iso, methodFirstDate
			}
		}
	}
	return "", ""
}

// reasonableVaccinationDate bounds candidates to the modern-vaccine era
// and the past.
func reasonableVaccinationDate(iso string, now time.Time) bool {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return false
	}
	return !t.Before(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)) && !t.After(now)
}

// hasVaccinationContext needs at least two distinct indicator hits before
// the weakest fallback may run.
func hasVaccinationContext(prepared string) bool {
	count := 0
	for _, indicator := range constants.VaccinationContextIndicators {
		if strings.Contains(prepared, indicator) {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

func addDays(iso string, days int) (string, bool) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, 0, days).Format("2006-01-02"), true
}
