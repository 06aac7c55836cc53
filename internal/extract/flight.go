package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/dateparse"
)

// Flight is one extracted flight segment.
type Flight struct {
	AirlineCode      string `json:"airline_code,omitempty"`
	AirlineName      string `json:"airline_name,omitempty"`
	FlightNumber     string `json:"flight_number,omitempty"`
	DepartureAirport string `json:"departure_airport,omitempty"`
	ArrivalAirport   string `json:"arrival_airport,omitempty"`
	DepartureDate    string `json:"departure_date,omitempty"`
	ArrivalDate      string `json:"arrival_date,omitempty"`
}

// FlightTicketExtractor pulls passenger, segments, and booking identifiers
// out of airline e-tickets and itineraries.
type FlightTicketExtractor struct {
	now clock
}

func NewFlightTicketExtractor(now func() time.Time) *FlightTicketExtractor {
	if now == nil {
		now = systemClock
	}
	return &FlightTicketExtractor{now: now}
}

func (e *FlightTicketExtractor) DocumentType() constants.DocumentType {
	return constants.FlightTicket
}

func (e *FlightTicketExtractor) RequiredFields() []string {
	return []string{
		"passenger_name", "flight_number", "departure_airport",
		"arrival_airport", "departure_date",
	}
}

var (
	passengerNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`PASSENGER\s+NAME\s+([A-Z][A-Z'-]+/[A-Z][A-Z' -]+?)(?:\s+(?:MR|MRS|MS|MLLE|MME))?\s+(?:ISSUE|DATE|FLIGHT|TICKET)`),
		regexp.MustCompile(`(?:PASSENGER\s*NAME\s*/\s*NOM\s*DU\s*PASSAGER|PASSENGER\s*NAME|NOM\s*DU\s*PASSAGER)\s*:?\s*([A-Z][A-Z' /-]+?)(?:\s+(?:MR|MRS|MS|MLLE|MME))?\s+(?:ISSUE|FLIGHT|VOL|BOOKING|DATE|FROM|TO|TICKET|DETAILS|STATUS|CLASS|SEAT|\d)`),
		regexp.MustCompile(`PASSENGER\s*:\s*([A-Z][A-Z' /-]+?)(?:\s+(?:MR|MRS|MS))?\s+(?:ISSUE|FLIGHT|VOL|BOOKING|DATE|FROM|OUTBOUND|RETURN)`),
		regexp.MustCompile(`\b([A-Z]{2,}/[A-Z][A-Z ]+?)\s*(?:MR|MRS|MS)?\s+(?:ISSUE|FLIGHT|VOL|BOOKING|DATE|FROM|E-TICKET|TICKET)`),
	}
	trailingTitle = regexp.MustCompile(`\s+(?:MR|MRS|MS|MLLE|MME|ISSUE|DATE)\s*$`)

	segmentStart  = regexp.MustCompile(`\b([A-Z][A-Z0-9])\s*(\d{3,4})\b`)
	parenAirport  = regexp.MustCompile(`\(([A-Z]{3})\)`)
	slashMonDate  = regexp.MustCompile(`(\d{1,2})[/-]([A-Z]{3})[/-](\d{4})`)
	labeledDate   = regexp.MustCompile(`(?:DATE:?\s*)?(\d{1,2})\s+([A-Z]{3,9})\s+(\d{4})`)
	bareAirport   = regexp.MustCompile(`\b([A-Z]{3})\b`)
	numericDate   = regexp.MustCompile(`\b(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})`)
	textualDate   = regexp.MustCompile(`(\d{1,2})\s+(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC|JANUARY|FEBRUARY|MARCH|APRIL|JUNE|JULY|AUGUST|SEPTEMBER|OCTOBER|NOVEMBER|DECEMBER)\s+(\d{4})`)
	issueDateText = regexp.MustCompile(`ISSUE\s*DATE[:\s]*(\d{1,2})\s+([A-Z]+)\s+(\d{4})`)
	issueDateNear = regexp.MustCompile(`ISSUE\s*DATE`)

	flightFromTo = regexp.MustCompile(`([A-Z]{2})\s*(\d{3,4})\s+FROM:?\s*[^(]*\(([A-Z]{3})\)[^T]*TO:?\s*[^(]*\(([A-Z]{3})\)(?s:.*?)DATE:?\s*(\d{1,2}\s+[A-Z]+\s+\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{4})`)
	flightDepArr = regexp.MustCompile(`([A-Z]{2})\s*(\d{3,4})\s+DEPARTURE:?\s*[^(]*\(([A-Z]{3})\)\s*-?\s*(\d{1,2}\s+[A-Z]+\s+\d{4})(?s:.*?)ARRIVAL:?\s*[^(]*\(([A-Z]{3})\)`)
	flightCompact = regexp.MustCompile(`([A-Z]{2,3})\s*(\d{3,4})\s+(?:FROM\s+)?([A-Z]{3})\s*(?:TO|->|→|-)\s*([A-Z]{3})\s+(\d{1,2}[/-][A-Z0-9]+[/-]\d{2,4}|\d{1,2}\s+[A-Z]+\s+\d{4})`)

	bookingRefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`BOOKING\s+(?:REF(?:ERENCE)?|NO)[:\s#]+([A-Z0-9]{5,8})`),
		regexp.MustCompile(`(?:REF|REFERENCE|PNR|CONFIRMATION|DOSSIER|BOOKING)\s*[:\s#]+([A-Z0-9]{5,8})`),
		regexp.MustCompile(`\b([A-Z0-9]{6})\b\s+(?:BOOKING|REF|CONFIRMATION)`),
	}
	flightShapedRef = regexp.MustCompile(`^(?:ET|KQ|AF|TK|EK)\d{3,4}$`)

	ticketNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:TICKET|BILLET|ETKT|E-TICKET)[:\s#]*(\d{13,14})`),
		regexp.MustCompile(`\b(\d{3}[\s-]?\d{10})\b`),
	}
	ticketSeparators = strings.NewReplacer(" ", "", "-", "")
)

func (e *FlightTicketExtractor) Extract(text string, meta *entity.OCRMetadata) entity.ExtractionResult {
	res := entity.NewExtractionResult(constants.FlightTicket)
	now := e.now()
	prepared := prepare(text)

	if name := e.passengerName(prepared); name != "" {
		res.Set("passenger_name", name, ConfidencePattern, entity.SourcePattern)
	}

	flights, harvested := e.extractFlights(prepared, now)
	conf := ConfidencePattern
	if harvested {
		conf = ConfidenceFallback
	}
	if len(flights) > 0 {
		res.Fields["flights"] = entity.FieldValue{Value: flights, Confidence: conf, Source: entity.SourcePattern}
		e.applyMainFlight(&res, flights, conf)
	}

	if ref := e.bookingReference(prepared); ref != "" {
		res.Set("booking_reference", ref, ConfidencePattern, entity.SourcePattern)
	}
	if num := e.ticketNumber(prepared); num != "" {
		res.Set("ticket_number", num, ConfidencePattern, entity.SourcePattern)
	}
	res.Set("is_round_trip", isRoundTrip(flights), ConfidencePattern, entity.SourcePattern)

	res.ComputeSuccess(e.RequiredFields())
	return res
}

func (e *FlightTicketExtractor) passengerName(prepared string) string {
	for _, re := range passengerNamePatterns {
		m := re.FindStringSubmatch(prepared)
		if m == nil {
			continue
		}
		name := trailingTitle.ReplaceAllString(strings.TrimSpace(m[1]), "")
		name = strings.TrimSpace(name)
		if len(name) > 3 {
			return name
		}
	}
	return ""
}

// extractFlights runs the tiers in order: airline e-ticket segments,
// FROM/TO labeled, Departure/Arrival labeled, compact, then the
// alternative harvest. The boolean reports whether the harvest fired.
func (e *FlightTicketExtractor) extractFlights(prepared string, now time.Time) ([]Flight, bool) {
	if flights := e.extractSegmented(prepared, now); len(flights) > 0 {
		return flights, false
	}
	if flights := e.extractLabeled(prepared, now); len(flights) > 0 {
		return flights, false
	}
	if f, ok := e.extractAlternative(prepared, now); ok {
		return []Flight{f}, true
	}
	return nil, false
}

// extractSegmented splits the text at each known airline-code flight
// number and reads one segment per chunk.
func (e *FlightTicketExtractor) extractSegmented(prepared string, now time.Time) []Flight {
	var starts []int
	var codes []string
	for _, loc := range segmentStart.FindAllStringSubmatchIndex(prepared, -1) {
		code := prepared[loc[2]:loc[3]]
		if _, ok := constants.Airlines[code]; ok {
			starts = append(starts, loc[0])
			codes = append(codes, code)
		}
	}

	var flights []Flight
	for i, start := range starts {
		end := len(prepared)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		segment := prepared[start:end]

		m := segmentStart.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		f := Flight{
			AirlineCode:  codes[i],
			AirlineName:  constants.Airlines[codes[i]],
			FlightNumber: codes[i] + m[2],
		}

		airports := parenAirport.FindAllStringSubmatch(segment, -1)
		switch {
		case len(airports) >= 2:
			f.DepartureAirport = airports[0][1]
			f.ArrivalAirport = airports[1][1]
		case len(airports) == 1:
			if strings.Contains(segment, "DEPART") || strings.Contains(segment, "FROM") {
				f.DepartureAirport = airports[0][1]
			} else {
				f.ArrivalAirport = airports[0][1]
			}
		}

		if dm := slashMonDate.FindString(segment); dm != "" {
			if iso, ok := dateparse.Parse(strings.NewReplacer("/", " ", "-", " ").Replace(dm), dateparse.ContextAuto, now); ok {
				f.DepartureDate = iso
			}
		} else if dm := labeledDate.FindStringSubmatch(segment); dm != nil {
			if iso, ok := dateparse.Parse(dm[1]+" "+dm[2]+" "+dm[3], dateparse.ContextAuto, now); ok {
				f.DepartureDate = iso
			}
		}

		if f.DepartureAirport != "" || f.ArrivalAirport != "" {
			flights = append(flights, f)
		}
	}
	return flights
}

func (e *FlightTicketExtractor) extractLabeled(prepared string, now time.Time) []Flight {
	var flights []Flight
	for _, m := range flightFromTo.FindAllStringSubmatch(prepared, -1) {
		flights = append(flights, Flight{
			AirlineCode:      m[1],
			AirlineName:      airlineName(m[1]),
			FlightNumber:     m[1] + m[2],
			DepartureAirport: m[3],
			ArrivalAirport:   m[4],
			DepartureDate:    parseFlightDate(m[5], now),
		})
	}
	if len(flights) > 0 {
		return flights
	}
	for _, m := range flightDepArr.FindAllStringSubmatch(prepared, -1) {
		flights = append(flights, Flight{
			AirlineCode:      m[1],
			AirlineName:      airlineName(m[1]),
			FlightNumber:     m[1] + m[2],
			DepartureAirport: m[3],
			DepartureDate:    parseFlightDate(m[4], now),
			ArrivalAirport:   m[5],
		})
	}
	if len(flights) > 0 {
		return flights
	}
	for _, m := range flightCompact.FindAllStringSubmatch(prepared, -1) {
		flights = append(flights, Flight{
			AirlineCode:      m[1],
			AirlineName:      airlineName(m[1]),
			FlightNumber:     m[1] + m[2],
			DepartureAirport: m[3],
			ArrivalAirport:   m[4],
			DepartureDate:    parseFlightDate(m[5], now),
		})
	}
	return flights
}

// extractAlternative harvests airport codes, a flight-number-shaped token,
// and the date set independently when no structured tier matched.
func (e *FlightTicketExtractor) extractAlternative(prepared string, now time.Time) (Flight, bool) {
	var f Flight

	seen := make(map[string]bool)
	var valid []string
	for _, m := range bareAirport.FindAllStringSubmatch(prepared, -1) {
		code := m[1]
		if seen[code] || !constants.KnownAirport(code) {
			continue
		}
		seen[code] = true
		valid = append(valid, code)
	}
	if len(valid) >= 2 {
		f.DepartureAirport = valid[0]
		f.ArrivalAirport = valid[1]
	}

	for _, loc := range segmentStart.FindAllStringSubmatchIndex(prepared, -1) {
		// Skip "ET 123 OK TO FLY" style status lines.
		rest := prepared[loc[1]:]
		if strings.HasPrefix(strings.TrimLeft(rest, " "), "OK") {
			continue
		}
		code := prepared[loc[2]:loc[3]]
		f.AirlineCode = code
		f.FlightNumber = code + prepared[loc[4]:loc[5]]
		f.AirlineName = airlineName(code)
		break
	}

	dates := e.harvestDates(prepared, now)
	if len(dates) > 0 {
		f.DepartureDate = dates[0]
		if len(dates) > 1 {
			f.ArrivalDate = dates[len(dates)-1]
		}
	}

	empty := Flight{}
	return f, f != empty
}

// harvestDates collects every travel-shaped date in ascending order,
// excluding the ticket issue date.
func (e *FlightTicketExtractor) harvestDates(prepared string, now time.Time) []string {
	issue := make(map[string]bool)
	if m := issueDateText.FindStringSubmatch(prepared); m != nil {
		if iso, ok := dateparse.Parse(m[1]+" "+m[2]+" "+m[3], dateparse.ContextAuto, now); ok {
			issue[iso] = true
		}
	}

	set := make(map[string]bool)
	for _, m := range slashMonDate.FindAllString(prepared, -1) {
		if iso, ok := dateparse.Parse(strings.NewReplacer("/", " ", "-", " ").Replace(m), dateparse.ContextAuto, now); ok && !issue[iso] {
			set[iso] = true
		}
	}
	for _, m := range numericDate.FindAllString(prepared, -1) {
		if iso, ok := dateparse.Parse(m, dateparse.ContextAuto, now); ok && !issue[iso] {
			set[iso] = true
		}
	}
	for _, loc := range textualDate.FindAllStringIndex(prepared, -1) {
		// A textual date directly preceded by "ISSUE DATE" is not travel.
		window := prepared[max(0, loc[0]-50):loc[0]]
		if issueDateNear.MatchString(window) {
			continue
		}
		if iso, ok := dateparse.Parse(prepared[loc[0]:loc[1]], dateparse.ContextAuto, now); ok && !issue[iso] {
			set[iso] = true
		}
	}

	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// applyMainFlight picks the segment arriving in Côte d'Ivoire (first one,
// else the first segment overall), back-fills its arrival date, and maps
// airports to cities.
func (e *FlightTicketExtractor) applyMainFlight(res *entity.ExtractionResult, flights []Flight, conf float64) {
	main := flights[0]
	for _, f := range flights {
		if _, ok := constants.CIAirports[f.ArrivalAirport]; ok {
			main = f
			break
		}
	}

	if main.ArrivalDate == "" {
		var lastToCI *Flight
		for i := range flights {
			if _, ok := constants.CIAirports[flights[i].ArrivalAirport]; ok {
				lastToCI = &flights[i]
			}
		}
		switch {
		case lastToCI != nil && lastToCI.DepartureDate != "":
			main.ArrivalDate = lastToCI.DepartureDate
		case main.DepartureDate != "":
			main.ArrivalDate = main.DepartureDate
		}
	}

	res.Set("airline", main.AirlineName, conf, entity.SourcePattern)
	res.Set("flight_number", main.FlightNumber, conf, entity.SourcePattern)
	res.Set("departure_airport", main.DepartureAirport, conf, entity.SourcePattern)
	res.Set("arrival_airport", main.ArrivalAirport, conf, entity.SourcePattern)
	res.Set("departure_date", main.DepartureDate, conf, entity.SourcePattern)
	res.Set("arrival_date", main.ArrivalDate, conf, entity.SourcePattern)

	if main.DepartureAirport != "" {
		city := main.DepartureAirport
		if name, ok := constants.JurisdictionAirports[main.DepartureAirport]; ok {
			city = name
		}
		res.Set("departure_city", city, conf, entity.SourcePattern)
	}
	if main.ArrivalAirport != "" {
		city := main.ArrivalAirport
		if name, ok := constants.CIAirports[main.ArrivalAirport]; ok {
			city = name
		}
		res.Set("arrival_city", city, conf, entity.SourcePattern)
	}
}

func (e *FlightTicketExtractor) bookingReference(prepared string) string {
	for _, re := range bookingRefPatterns {
		m := re.FindStringSubmatch(prepared)
		if m == nil {
			continue
		}
		if !flightShapedRef.MatchString(m[1]) {
			return m[1]
		}
	}
	return ""
}

func (e *FlightTicketExtractor) ticketNumber(prepared string) string {
	for _, re := range ticketNumberPatterns {
		if m := re.FindStringSubmatch(prepared); m != nil {
			return ticketSeparators.Replace(m[1])
		}
	}
	return ""
}

func isRoundTrip(flights []Flight) bool {
	if len(flights) < 2 {
		return false
	}
	return flights[0].DepartureAirport == flights[len(flights)-1].ArrivalAirport
}

func airlineName(code string) string {
	if name, ok := constants.Airlines[code]; ok {
		return name
	}
	return code
}

// parseFlightDate normalizes slash and dash separators before handing the
// captured date to the parser. Returns "" when unparseable.
func parseFlightDate(raw string, now time.Time) string {
	cleaned := strings.NewReplacer("/", " ", "-", " ").Replace(raw)
	if iso, ok := dateparse.Parse(cleaned, dateparse.ContextAuto, now); ok {
		return iso
	}
	return ""
}
