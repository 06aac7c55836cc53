package extract

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/dateparse"
	"github.com/amondji/docextract/internal/textnorm"
)

// HotelReservationExtractor reads booking confirmations: guest, property,
// stay dates, and the locality checked against the gazetteer.
type HotelReservationExtractor struct {
	now clock
}

func NewHotelReservationExtractor(now func() time.Time) *HotelReservationExtractor {
	if now == nil {
		now = systemClock
	}
	return &HotelReservationExtractor{now: now}
}

func (e *HotelReservationExtractor) DocumentType() constants.DocumentType {
	return constants.HotelReservation
}

func (e *HotelReservationExtractor) RequiredFields() []string {
	return []string{"guest_name", "hotel_name", "check_in_date", "check_out_date"}
}

var (
	guestNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:GUEST|CLIENT|CUSTOMER|NAME|NOM)[:\s]+([A-Z][A-Z' -]+)`),
		regexp.MustCompile(`(?:RESERVATION\s*FOR|BOOKING\s*FOR|BOOKED\s*BY)[:\s]+([A-Z][A-Z' -]+)`),
		regexp.MustCompile(`(?:MR|MRS|MS|MLLE|MME)[./\s]+([A-Z][A-Z' -]+)`),
	}
	hotelNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:HOTEL|RESORT|RESIDENCE|APARTHOTEL|MOTEL)[:\s]+([A-Z][A-Z' .-]+)`),
		regexp.MustCompile(`([A-Z][A-Z -]+(?:HOTEL|RESORT|PALACE|INN|SUITES|LODGE))`),
		regexp.MustCompile(`(?:PROPERTY|ACCOMMODATION|LODGING)[:\s]+([A-Z][A-Z' .-]+)`),
	}
	contextualCityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:A|IN|AT)\s+([A-Z][A-Z -]+?),?\s*(?:COTE|IVORY|CI\b)`),
		regexp.MustCompile(`(?:CITY|VILLE)[:\s]+([A-Z][A-Z -]+)`),
		regexp.MustCompile(`(?:LOCATION|LOCALISATION)[:\s]*[^,\n]*,\s*([A-Z][A-Z -]+)`),
	}
	addressPattern = regexp.MustCompile(`(?:ADDRESS|ADRESSE|LOCATION)[:\s]+([^\n]+)`)
	civMention     = regexp.MustCompile(`IVORY\s*COAST|COTE\s*D.?IVOIRE|\bCI\b|\bCIV\b`)

	checkInPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:CHECK[\s-]?IN|ARRIVAL|ARRIVEE|FROM)[:\s]+(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
		regexp.MustCompile(`(?:CHECK[\s-]?IN|ARRIVAL)[:\s]+(\d{1,2}\s+[A-Z]+\s+\d{4})`),
	}
	checkOutPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:CHECK[\s-]?OUT|DEPARTURE|DEPART|TO|UNTIL)[:\s]+(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
		regexp.MustCompile(`(?:CHECK[\s-]?OUT|DEPARTURE)[:\s]+(\d{1,2}\s+[A-Z]+\s+\d{4})`),
	}
	anyNumericDate = regexp.MustCompile(`\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}`)

	confirmationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:CONFIRMATION|BOOKING|RESERVATION)\s*(?:NO|NUMBER|N°|#)?[:\s]+([A-Z0-9-]{6,20})`),
		regexp.MustCompile(`(?:REF|REFERENCE)[:\s]+([A-Z0-9-]{6,20})`),
		regexp.MustCompile(`\b(\d{8,12})\b`),
	}
	genericRoomPattern = regexp.MustCompile(`(?:ROOM|CHAMBRE)\s*(?:TYPE)?[:\s]+([A-Z ]+)`)
	roomTypeMatchers   = buildWordMatchers(constants.RoomTypes)

	totalAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:TOTAL|AMOUNT|MONTANT|PRICE|PRIX)[:\s]*([0-9,.\s]+\s*(?:XOF|CFA|EUR|USD|FCFA)?)`),
		regexp.MustCompile(`([0-9,.\s]+\s*(?:XOF|CFA|EUR|USD|FCFA))`),
	}
)

func (e *HotelReservationExtractor) Extract(text string, meta *entity.OCRMetadata) entity.ExtractionResult {
	res := entity.NewExtractionResult(constants.HotelReservation)
	now := e.now()
	prepared := prepare(text)

	if v, ok := firstMatch(prepared, guestNamePatterns); ok {
		res.Set("guest_name", textnorm.NormalizeName(v), ConfidencePattern, entity.SourcePattern)
	}
	if v, ok := firstMatch(prepared, hotelNamePatterns); ok {
		if name := strings.Join(strings.Fields(v), " "); len(name) > 3 {
			res.Set("hotel_name", name, ConfidencePattern, entity.SourcePattern)
		}
	}

	e.extractLocation(&res, prepared)
	e.extractStay(&res, prepared, now)

	if v, ok := firstMatch(prepared, confirmationPatterns); ok {
		res.Set("confirmation_number", v, ConfidencePattern, entity.SourcePattern)
	}
	if room := e.roomType(prepared); room != "" {
		res.Set("room_type", room, ConfidencePattern, entity.SourcePattern)
	}
	if platform, ok := containsAny(prepared, constants.BookingPlatforms); ok {
		res.Set("booking_platform", platform, ConfidencePattern, entity.SourcePattern)
	}
	if v, ok := firstMatch(prepared, totalAmountPatterns); ok {
		if amount, ok := parseAmount(v); ok {
			res.Fields["total_amount"] = entity.FieldValue{Value: amount, Confidence: ConfidencePattern, Source: entity.SourcePattern}
		}
	}

	res.ComputeSuccess(e.RequiredFields())
	return res
}

// extractLocation finds the property's city against the gazetteer, then
// contextual patterns, then the labeled address line.
func (e *HotelReservationExtractor) extractLocation(res *entity.ExtractionResult, prepared string) {
	city, found := findCity(prepared)

	if !found {
		for _, re := range contextualCityPatterns {
			m := re.FindStringSubmatch(prepared)
			if m == nil {
				continue
			}
			if c, ok := canonicalCity(m[1]); ok {
				city, found = c, true
				break
			}
		}
	}

	if m := addressPattern.FindStringSubmatch(prepared); m != nil {
		address := strings.TrimSpace(m[1])
		res.Set("hotel_address", address, ConfidencePattern, entity.SourcePattern)
		if !found {
			for _, part := range strings.FieldsFunc(address, func(r rune) bool { return r == ',' || r == ';' }) {
				if c, ok := canonicalCity(part); ok {
					city, found = c, true
					break
				}
			}
		}
	}

	if found {
		res.Set("hotel_city", city, ConfidencePattern, entity.SourcePattern)
		res.Set("hotel_country", "COTE D'IVOIRE", ConfidencePattern, entity.SourcePattern)
		res.Set("location_is_cote_divoire", true, ConfidencePattern, entity.SourcePattern)
	} else if civMention.MatchString(prepared) {
		res.Set("hotel_country", "COTE D'IVOIRE", ConfidencePattern, entity.SourcePattern)
		res.Set("location_is_cote_divoire", true, ConfidencePattern, entity.SourcePattern)
	}
}

// extractStay reads labeled check-in/check-out dates, falling back to the
// earliest and latest bare dates in the document.
func (e *HotelReservationExtractor) extractStay(res *entity.ExtractionResult, prepared string, now time.Time) {
	var checkIn, checkOut string
	if v, ok := firstMatch(prepared, checkInPatterns); ok {
		if iso, ok := dateparse.Parse(v, dateparse.ContextAuto, now); ok {
			checkIn = iso
		}
	}
	if v, ok := firstMatch(prepared, checkOutPatterns); ok {
		if iso, ok := dateparse.Parse(v, dateparse.ContextAuto, now); ok {
			checkOut = iso
		}
	}

	if checkIn == "" || checkOut == "" {
		var all []string
		for _, m := range anyNumericDate.FindAllString(prepared, -1) {
			if iso, ok := dateparse.Parse(m, dateparse.ContextAuto, now); ok {
				all = append(all, iso)
			}
		}
		sort.Strings(all)
		if len(all) >= 2 {
			if checkIn == "" {
				checkIn = all[0]
			}
			if checkOut == "" {
				checkOut = all[len(all)-1]
			}
		}
	}

	res.Set("check_in_date", checkIn, ConfidencePattern, entity.SourcePattern)
	res.Set("check_out_date", checkOut, ConfidencePattern, entity.SourcePattern)

	if checkIn != "" && checkOut != "" {
		if nights, ok := nightsBetween(checkIn, checkOut); ok {
			res.Set("nights", nights, ConfidencePattern, entity.SourcePattern)
		}
	}
}

// nightsBetween is ceil of the stay length in days, floored at zero.
// An inverted date pair yields zero nights and fails validation there.
func nightsBetween(checkIn, checkOut string) (int, bool) {
	in, err1 := time.Parse("2006-01-02", checkIn)
	out, err2 := time.Parse("2006-01-02", checkOut)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	nights := int(math.Ceil(out.Sub(in).Hours() / 24))
	if nights < 0 {
		nights = 0
	}
	return nights, true
}

func (e *HotelReservationExtractor) roomType(prepared string) string {
	for i, re := range roomTypeMatchers {
		if re.MatchString(prepared) {
			return constants.RoomTypes[i]
		}
	}
	if m := genericRoomPattern.FindStringSubmatch(prepared); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
