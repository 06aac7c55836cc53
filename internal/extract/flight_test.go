package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fltNow() time.Time {
	return time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
}

func TestFlightTicketRoundTrip(t *testing.T) {
	e := NewFlightTicketExtractor(fltNow)
	text := `ETHIOPIAN AIRLINES
E-TICKET ITINERARY
PASSENGER NAME: BEKELE/ABEBE MR
BOOKING REF: XYZ12A
TICKET: 0712345678901
FLIGHT ET 908 ADDIS ABABA (ADD) TO ABIDJAN (ABJ) 15/DEC/2025
FLIGHT ET 909 ABIDJAN (ABJ) TO ADDIS ABABA (ADD) 30/DEC/2025`

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "BEKELE/ABEBE", res.GetString("passenger_name"))
	assert.Equal(t, "Ethiopian Airlines", res.GetString("airline"))
	assert.Equal(t, "ET908", res.GetString("flight_number"))
	assert.Equal(t, "ADD", res.GetString("departure_airport"))
	assert.Equal(t, "ABJ", res.GetString("arrival_airport"))
	assert.Equal(t, "2025-12-15", res.GetString("departure_date"))
	assert.Equal(t, "2025-12-15", res.GetString("arrival_date"))
	assert.Equal(t, "Addis Ababa (Éthiopie)", res.GetString("departure_city"))
	assert.Equal(t, "Abidjan - Félix Houphouët-Boigny", res.GetString("arrival_city"))
	assert.Equal(t, "XYZ12A", res.GetString("booking_reference"))
	assert.Equal(t, "0712345678901", res.GetString("ticket_number"))
	assert.Equal(t, true, res.Get("is_round_trip"))

	flights, ok := res.Get("flights").([]Flight)
	require.True(t, ok)
	require.Len(t, flights, 2)
	assert.Equal(t, "ET909", flights[1].FlightNumber)
	assert.Equal(t, "ABJ", flights[1].DepartureAirport)
	assert.Equal(t, "2025-12-30", flights[1].DepartureDate)
}

func TestFlightTicketSingleLeg(t *testing.T) {
	e := NewFlightTicketExtractor(fltNow)
	text := `PASSENGER: TRAORE/MOUSSA MR FLIGHT DETAILS
KQ 512 FROM: NAIROBI (NBO) TO: ABIDJAN (ABJ) DATE: 10 JANUARY 2026`

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "TRAORE/MOUSSA", res.GetString("passenger_name"))
	assert.Equal(t, "Kenya Airways", res.GetString("airline"))
	assert.Equal(t, "KQ512", res.GetString("flight_number"))
	assert.Equal(t, "NBO", res.GetString("departure_airport"))
	assert.Equal(t, "ABJ", res.GetString("arrival_airport"))
	assert.Equal(t, "2026-01-10", res.GetString("departure_date"))
	assert.Equal(t, "Nairobi (Kenya)", res.GetString("departure_city"))
	assert.Equal(t, false, res.Get("is_round_trip"))
}

func TestFlightTicketHarvestFallback(t *testing.T) {
	e := NewFlightTicketExtractor(fltNow)
	text := `PASSENGER NAME DIALLO/AMADOU MR ISSUE DATE: 05 SEP 2025
ROUTE ADD ABJ
TRAVEL 20/11/2025 RETURN 05/12/2025`

	res := e.Extract(text, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "DIALLO/AMADOU", res.GetString("passenger_name"))
	assert.False(t, res.Has("flight_number"))
	assert.Equal(t, "ADD", res.GetString("departure_airport"))
	assert.Equal(t, "ABJ", res.GetString("arrival_airport"))
	assert.Equal(t, "2025-11-20", res.GetString("departure_date"))
	assert.Equal(t, "2025-12-05", res.GetString("arrival_date"))
	assert.Equal(t, ConfidenceFallback, res.Fields["departure_date"].Confidence)
}

func TestFlightTicketLabeledCharterRoute(t *testing.T) {
	e := NewFlightTicketExtractor(fltNow)
	text := `CHARTER ITINERARY
PASSENGER NAME: KONE/AWA FLIGHT DETAILS
XX 123 FROM: PARIS (CDG) TO: ABIDJAN (ABJ) DATE: 15 JAN 2026`

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "KONE/AWA", res.GetString("passenger_name"))
	assert.Equal(t, "XX123", res.GetString("flight_number"))
	assert.Equal(t, "XX", res.GetString("airline"))
	assert.Equal(t, "CDG", res.GetString("departure_airport"))
	assert.Equal(t, "ABJ", res.GetString("arrival_airport"))
	assert.Equal(t, "2026-01-15", res.GetString("departure_date"))
	assert.Equal(t, "2026-01-15", res.GetString("arrival_date"))
	assert.Equal(t, ConfidencePattern, res.Fields["departure_date"].Confidence)
	assert.Equal(t, false, res.Get("is_round_trip"))

	flights, ok := res.Get("flights").([]Flight)
	require.True(t, ok)
	require.Len(t, flights, 1)
	assert.Equal(t, "XX", flights[0].AirlineCode)
	assert.Equal(t, "2026-01-15", flights[0].DepartureDate)
}
