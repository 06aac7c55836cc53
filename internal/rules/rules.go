// Package rules runs the per-document-type business checks over extraction
// results. Checks are advisory: a failed check marks the report, it never
// blocks extraction.
package rules

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/common"
	"github.com/amondji/docextract/internal/extract"
	"github.com/amondji/docextract/internal/textnorm"
)

// Engine evaluates named checks for one extraction result. A check is
// recorded only when the fields it needs were extracted; absent input is
// not a failure.
type Engine struct {
	now               func() time.Time
	minValidityMonths int
}

func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Engine{
		now:               now,
		minValidityMonths: common.LoadConfig().PassportMinValidityMonths,
	}
}

var (
	passportNumberFormat = regexp.MustCompile(`^[A-Z]{1,2}\d{6,9}$`)
	flightNumberFormat   = regexp.MustCompile(`^[A-Z][A-Z0-9]\d{3,4}$`)
)

const (
	paymentRecencyDays = 30
	noteRecencyMonths  = 6
	maxStayNights      = 90
)

// Validate dispatches on the document type. Unknown types yield an empty
// passing report.
func (e *Engine) Validate(res entity.ExtractionResult) entity.ValidationReport {
	rep := entity.NewValidationReport(res.DocumentType)
	now := e.now()

	switch res.DocumentType {
	case constants.Passport:
		e.passport(&rep, res, now)
	case constants.FlightTicket:
		e.flightTicket(&rep, res, now)
	case constants.HotelReservation:
		e.hotelReservation(&rep, res, now)
	case constants.InvitationLetter:
		e.invitationLetter(&rep, res)
	case constants.VaccinationCard:
		e.vaccinationCard(&rep, res, now)
	case constants.PaymentProof:
		e.paymentProof(&rep, res, now)
	case constants.VerbalNote:
		e.verbalNote(&rep, res, now)
	case constants.ResidenceCard:
		e.residenceCard(&rep, res, now)
	}
	return rep
}

func (e *Engine) passport(rep *entity.ValidationReport, res entity.ExtractionResult, now time.Time) {
	if expiry, ok := parseISO(res.GetString("expiry_date")); ok {
		rep.Record("expiry_valid", expiry.After(now), "passport not expired", nil)
		days := daysBetween(now, expiry)
		rep.Record("expiry_6months", expiry.After(now.AddDate(0, e.minValidityMonths, 0)),
			"minimum remaining validity window", entity.Float(days))
	}
	if res.Has("nationality") {
		candidate := res.GetString("nationality_name")
		if candidate == "" {
			candidate = res.GetString("nationality")
		}
		rep.Record("in_jurisdiction", inJurisdiction(candidate),
			"applicant nationality belongs to the consular district", nil)
	}
	if res.Mrz != nil {
		rep.Record("mrz_valid", res.Mrz.Checksums.AllValid(res.Mrz.Format),
			"machine readable zone check digits verified", nil)
	}
	if num := res.GetString("passport_number"); num != "" {
		rep.Record("passport_number_format", passportNumberFormat.MatchString(num),
			"passport number shape", nil)
	}
}

func (e *Engine) flightTicket(rep *entity.ValidationReport, res entity.ExtractionResult, now time.Time) {
	if arr := res.GetString("arrival_airport"); arr != "" {
		_, ok := constants.CIAirports[arr]
		rep.Record("destination_is_cote_divoire", ok, "arrival airport is in Côte d'Ivoire", nil)
	}
	if dep, ok := parseISO(res.GetString("departure_date")); ok {
		rep.Record("date_is_future", dep.After(now), "departure has not passed", nil)
	}
	if dep := res.GetString("departure_airport"); dep != "" {
		_, ok := constants.JurisdictionAirports[dep]
		rep.Record("departure_in_jurisdiction", ok, "departure airport is in the consular district", nil)
	}
	if name := res.GetString("passenger_name"); name != "" {
		rep.Record("passenger_name_format_valid", len(name) >= 3, "passenger name shape", nil)
	}
	if num := res.GetString("flight_number"); num != "" {
		rep.Record("flight_number_valid", flightNumberFormat.MatchString(num), "flight number shape", nil)
	}
}

func (e *Engine) hotelReservation(rep *entity.ValidationReport, res entity.ExtractionResult, now time.Time) {
	if res.Has("hotel_city") || res.Has("hotel_country") || res.Has("location_is_cote_divoire") {
		located, _ := res.Get("location_is_cote_divoire").(bool)
		rep.Record("location_is_cote_divoire", located, "property located in Côte d'Ivoire", nil)
	}
	checkIn, okIn := parseISO(res.GetString("check_in_date"))
	checkOut, okOut := parseISO(res.GetString("check_out_date"))
	if okIn {
		rep.Record("dates_are_future", checkIn.After(now), "stay has not passed", nil)
	}
	if okIn && okOut {
		rep.Record("dates_coherent", checkOut.After(checkIn), "check-out follows check-in", nil)
	}
	rep.Record("confirmation_number_present", res.Has("confirmation_number"),
		"booking carries a confirmation number", nil)
	if nights, ok := res.Get("nights").(int); ok {
		rep.Record("stay_duration_valid", nights > 0 && nights <= maxStayNights,
			"stay length fits a short-stay visa", entity.Float(float64(nights)))
	}
}

func (e *Engine) invitationLetter(rep *entity.ValidationReport, res entity.ExtractionResult) {
	address := res.GetString("inviter_address")
	inCI := res.Has("inviter_city") ||
		strings.Contains(address, "IVOIRE") || strings.Contains(address, "ABIDJAN")
	rep.Record("inviter_in_cote_divoire", inCI, "inviter located in Côte d'Ivoire", nil)
	rep.Record("dates_specified", res.Has("arrival_date") || res.Has("departure_date"),
		"visit dates stated", nil)
	notarized, _ := res.Get("notarized").(bool)
	rep.Record("legalization_valid", notarized, "letter notarized", nil)
	rep.Record("purpose_clear", res.Has("purpose"), "visit purpose stated", nil)
}

func (e *Engine) vaccinationCard(rep *entity.ValidationReport, res entity.ExtractionResult, now time.Time) {
	rep.Record("yellow_fever_present", res.Has("yellow_fever_date"),
		"yellow fever vaccination found", nil)

	if vac, ok := parseISO(res.GetString("yellow_fever_date")); ok {
		rep.Record("vaccination_date_past", vac.Before(now), "vaccination date is in the past", nil)

		if from, ok := parseISO(res.GetString("yellow_fever_valid_from")); ok {
			valid := from.Before(now)
			var detail *float64
			if !valid {
				detail = entity.Float(math.Ceil(from.Sub(now).Hours() / 24))
			}
			rep.Record("yellow_fever_valid", valid, "immunity window has started", detail)
		} else {
			rep.Record("yellow_fever_valid", false, "immunity window has started", nil)
		}
	}
	if cert := res.GetString("certificate_number"); cert != "" {
		rep.Record("certificate_format_valid", len(cert) >= 6, "certificate number shape", nil)
	}
}

func (e *Engine) paymentProof(rep *entity.ValidationReport, res entity.ExtractionResult, now time.Time) {
	if amount, ok := res.Get("amount").(float64); ok {
		analysis, ok := res.Get("amount_analysis").(extract.AmountAnalysis)
		if !ok {
			analysis = extract.AnalyzeAmount(amount)
		}
		rep.Record("amount_matches_expected", analysis.MatchesExpected,
			"amount matches a visa fee", entity.Float(analysis.Difference))
	}
	if date, ok := parseISO(res.GetString("date")); ok {
		rep.Record("date_is_recent", date.After(now.AddDate(0, 0, -paymentRecencyDays)),
			"payment made within thirty days", entity.Float(daysBetween(date, now)))
	}
	if payee := res.GetString("payee"); payee != "" {
		upper := strings.ToUpper(payee)
		ok := strings.Contains(upper, "TRESOR") ||
			strings.Contains(upper, "AMBASSADE") || strings.Contains(upper, "EMBASSY")
		rep.Record("payee_is_tresor_ci", ok, "beneficiary is the public treasury or the embassy", nil)
	}
	if ref := res.GetString("reference"); ref != "" {
		rep.Record("reference_format_valid", len(ref) >= 6, "payment reference shape", nil)
	}
}

func (e *Engine) verbalNote(rep *entity.ValidationReport, res entity.ExtractionResult, now time.Time) {
	rep.Record("official_letterhead", res.Has("sending_entity"), "sending entity identified", nil)
	rep.Record("addressed_to_ci_embassy",
		strings.Contains(res.GetString("receiving_entity"), "IVOIRE"),
		"note addressed to the Ivorian embassy", nil)
	rep.Record("diplomat_identified", res.Has("diplomat_name"), "diplomat named", nil)
	if date, ok := parseISO(res.GetString("date")); ok {
		rep.Record("date_recent", date.After(now.AddDate(0, -noteRecencyMonths, 0)),
			"note issued within six months", nil)
	}
}

func (e *Engine) residenceCard(rep *entity.ValidationReport, res entity.ExtractionResult, now time.Time) {
	if expiry, ok := parseISO(res.GetString("expiry_date")); ok {
		rep.Record("card_not_expired", expiry.After(now), "residence card still valid", nil)
	}
	if country := res.GetString("issuing_country"); country != "" {
		_, ok := constants.JurisdictionCountries[country]
		rep.Record("issuing_country_in_jurisdiction", ok,
			"card issued by a consular district country", nil)
	}
	photo, _ := res.Get("photo_present").(bool)
	rep.Record("photo_present", photo, "holder photo detected", nil)
	rep.Record("official_format", res.Has("card_number") && res.Has("holder_name"),
		"card carries number and holder name", nil)
	if num := res.GetString("card_number"); num != "" {
		rep.Record("card_number_valid", len(num) >= 6, "card number shape", nil)
	}
}

func parseISO(date string) (time.Time, bool) {
	if date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// daysBetween is the whole-day distance from a to b, negative when b
// precedes a.
func daysBetween(a, b time.Time) float64 {
	return math.Floor(b.Sub(a).Hours() / 24)
}

// inJurisdiction matches the nationality or country name against the
// consular district table by substring over the normalized form.
func inJurisdiction(country string) bool {
	normalized := textnorm.NormalizeName(country)
	if normalized == "" {
		return false
	}
	for _, name := range constants.JurisdictionCountryNames {
		if strings.Contains(normalized, name) {
			return true
		}
	}
	return false
}
