package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vaccNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestVaccinationCardFull(t *testing.T) {
	e := NewVaccinationCardExtractor(vaccNow, 0)
	text := `INTERNATIONAL CERTIFICATE OF VACCINATION
CERTIFICATE NO: ICV-2023-00451
NAME: KOUASSI JEAN MARC DATE OF BIRTH: 12/03/1985
YELLOW FEVER 15/03/2023 LOT: 041B22A
CENTRE: INSTITUT PASTEUR ABIDJAN`

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "KOUASSI JEAN MARC", res.GetString("holder_name"))
	assert.Equal(t, "1985-03-12", res.GetString("date_of_birth"))
	assert.Equal(t, "ICV-2023-00451", res.GetString("certificate_number"))
	assert.Equal(t, true, res.Get("yellow_fever_detected"))
	assert.Equal(t, "exact_match", res.GetString("yellow_fever_detection_method"))
	assert.Equal(t, "2023-03-15", res.GetString("yellow_fever_date"))
	assert.Equal(t, "2023-03-25", res.GetString("yellow_fever_valid_from"))
	assert.Equal(t, "LIFETIME", res.GetString("yellow_fever_valid_until"))

	vaccs, ok := res.Get("vaccinations").([]Vaccination)
	require.True(t, ok)
	require.NotEmpty(t, vaccs)
	assert.Equal(t, "YELLOW_FEVER", vaccs[0].Type)
	assert.Equal(t, "041B22A", vaccs[0].BatchNumber)
	assert.Empty(t, res.Warnings)
}

func TestVaccinationCardOcrMisreadName(t *testing.T) {
	e := NewVaccinationCardExtractor(vaccNow, 0)
	text := "NAME: TRAORE AMINATA DOB: 01/01/1990\nYELL0W FEVER 15/03/2023"

	res := e.Extract(text, nil)

	assert.Equal(t, true, res.Get("yellow_fever_detected"))
	assert.Equal(t, "2023-03-15", res.GetString("yellow_fever_date"))
	assert.Equal(t, "2023-03-25", res.GetString("yellow_fever_valid_from"))
	assert.Equal(t, "LIFETIME", res.GetString("yellow_fever_valid_until"))
}

func TestVaccinationCardFuzzyDetection(t *testing.T) {
	e := NewVaccinationCardExtractor(vaccNow, 0)
	text := "NAME: DIALLO MAMADOU SEX: M\nY3LLOW F3VER VACCINATION 10/01/2022"

	res := e.Extract(text, nil)

	assert.Equal(t, true, res.Get("yellow_fever_detected"))
	assert.Equal(t, "fuzzy_match", res.GetString("yellow_fever_detection_method"))
	assert.Equal(t, "2022-01-10", res.GetString("yellow_fever_date"))
	assert.Equal(t, methodContext, res.GetString("yellow_fever_date_method"))
	assert.InDelta(t, 0.75, res.Fields["yellow_fever_date"].Confidence, 1e-9)
}

func TestVaccinationCardAccentedFrenchName(t *testing.T) {
	e := NewVaccinationCardExtractor(vaccNow, 0)
	text := "NOM: KONE IBRAHIM DATE DE NAISSANCE: 05/07/1978\nFièvre jaune 02 mars 2021"

	res := e.Extract(text, nil)

	assert.Equal(t, true, res.Get("yellow_fever_detected"))
	assert.Equal(t, "2021-03-02", res.GetString("yellow_fever_date"))
}

func TestVaccinationCardMissingDateWarns(t *testing.T) {
	e := NewVaccinationCardExtractor(vaccNow, 0)
	text := "NAME: YAO PATRICK SEX: M\nFIEVRE JAUNE VACCINEE"

	res := e.Extract(text, nil)

	assert.Equal(t, true, res.Get("yellow_fever_detected"))
	assert.False(t, res.Has("yellow_fever_date"))
	assert.False(t, res.Success)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "YELLOW_FEVER_DATE_NOT_FOUND", res.Warnings[0].Code)
}

func TestVaccinationCardNoYellowFever(t *testing.T) {
	e := NewVaccinationCardExtractor(vaccNow, 0)
	text := "NAME: SMITH JOHN DOB: 01/01/1990\nPOLIO 10/02/2020 LOT: P-99"

	res := e.Extract(text, nil)

	assert.False(t, res.Has("yellow_fever_detected"))
	assert.False(t, res.Success)

	vaccs, ok := res.Get("vaccinations").([]Vaccination)
	require.True(t, ok)
	require.Len(t, vaccs, 1)
	assert.Equal(t, "POLIO", vaccs[0].Type)
	assert.Equal(t, "2020-02-10", vaccs[0].VaccinationDate)
}

func TestVaccinationCardUnreasonableFallbackDateRejected(t *testing.T) {
	e := NewVaccinationCardExtractor(vaccNow, 0)
	// Certificate fallback only: the 1950 date predates the modern era.
	text := "NAME: BROWN ALICE SEX: F\nAMAR1L CERTIFICATE ISSUED 01/01/1950"

	res := e.Extract(text, nil)

	assert.Equal(t, true, res.Get("yellow_fever_detected"))
	assert.False(t, res.Has("yellow_fever_date"))
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "YELLOW_FEVER_DATE_NOT_FOUND", res.Warnings[0].Code)
}

func TestVaccinationCardConfigurableWindow(t *testing.T) {
	e := NewVaccinationCardExtractor(vaccNow, 14)
	res := e.Extract("NAME: DOE JOHN DOB: 01/01/1990\nYELLOW FEVER 01/06/2023", nil)

	assert.Equal(t, "2023-06-15", res.GetString("yellow_fever_valid_from"))
}
