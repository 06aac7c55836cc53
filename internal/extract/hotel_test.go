package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func hotNow() time.Time {
	return time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
}

func TestHotelReservationAbidjan(t *testing.T) {
	e := NewHotelReservationExtractor(hotNow)
	text := `BOOKING.COM
CONFIRMATION NUMBER: 2458913647
GUEST: KOUAME ADJOUA PATRICIA
HOTEL IVOIRE SOFITEL
ADDRESS: BOULEVARD HASSAN II, COCODY, ABIDJAN
CHECK-IN: 01/12/2025
CHECK-OUT: 08/12/2025
ROOM TYPE: DELUXE DOUBLE
TOTAL: 450,000 XOF`

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "KOUAME ADJOUA PATRICIA", res.GetString("guest_name"))
	assert.Equal(t, "IVOIRE SOFITEL", res.GetString("hotel_name"))
	assert.Equal(t, "BOULEVARD HASSAN II, COCODY, ABIDJAN", res.GetString("hotel_address"))
	assert.Equal(t, "ABIDJAN", res.GetString("hotel_city"))
	assert.Equal(t, "COTE D'IVOIRE", res.GetString("hotel_country"))
	assert.Equal(t, true, res.Get("location_is_cote_divoire"))
	assert.Equal(t, "2025-12-01", res.GetString("check_in_date"))
	assert.Equal(t, "2025-12-08", res.GetString("check_out_date"))
	assert.Equal(t, 7, res.Get("nights"))
	assert.Equal(t, "2458913647", res.GetString("confirmation_number"))
	assert.Equal(t, "DOUBLE", res.GetString("room_type"))
	assert.Equal(t, "BOOKING.COM", res.GetString("booking_platform"))
	assert.Equal(t, Amount{Value: 450000, Currency: "XOF"}, res.Get("total_amount"))
}

func TestHotelReservationCityAlias(t *testing.T) {
	e := NewHotelReservationExtractor(hotNow)
	text := `RESERVATION FOR: BAMBA SALIMATA
HOTEL SOPHIA SAN-PEDRO
ARRIVEE: 10/01/2026
DEPART: 17/01/2026`

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "BAMBA SALIMATA", res.GetString("guest_name"))
	assert.Equal(t, "SOPHIA SAN-PEDRO", res.GetString("hotel_name"))
	assert.Equal(t, "SAN PEDRO", res.GetString("hotel_city"))
	assert.Equal(t, true, res.Get("location_is_cote_divoire"))
	assert.Equal(t, "2026-01-10", res.GetString("check_in_date"))
	assert.Equal(t, "2026-01-17", res.GetString("check_out_date"))
	assert.Equal(t, 7, res.Get("nights"))
	assert.False(t, res.Has("confirmation_number"))
}

func TestHotelReservationBareDatesFallback(t *testing.T) {
	e := NewHotelReservationExtractor(hotNow)
	text := "GUEST: YAO KOFFI\nSTAY 05/03/2026 - 12/03/2026"

	res := e.Extract(text, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "YAO KOFFI", res.GetString("guest_name"))
	assert.False(t, res.Has("hotel_name"))
	assert.Equal(t, "2026-03-05", res.GetString("check_in_date"))
	assert.Equal(t, "2026-03-12", res.GetString("check_out_date"))
	assert.Equal(t, 7, res.Get("nights"))
	assert.False(t, res.Has("location_is_cote_divoire"))
}
