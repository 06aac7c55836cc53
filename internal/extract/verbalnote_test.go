package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteNow() time.Time {
	return time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
}

func TestVerbalNoteEmbassyToEmbassy(t *testing.T) {
	e := NewVerbalNoteExtractor(noteNow)
	text := `NOTE VERBALE
REF: AET/2025/00457
THE EMBASSY OF THE FEDERAL DEMOCRATIC REPUBLIC OF ETHIOPIA PRESENTS ITS
COMPLIMENTS TO THE EMBASSY OF COTE D'IVOIRE AND HAS THE HONOUR TO REQUEST
A VISA DIPLOMATIQUE FOR H.E. ALEMAYEHU WORKNEH GEBEYEHU, PASSPORT NO: D0034517,
AMBASSADOR, WHO WILL TRAVEL FROM 10/11/2025 TO 25/11/2025.
ACCOMPANIED BY: WORKNEH TIGIST
DATED: 05/10/2025
[STAMP] SIGNED`

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "VERBAL_NOTE", res.GetString("note_type"))
	assert.Equal(t, "FEDERAL DEMOCRATIC REPUBLIC OF ETHIOPIA", res.GetString("sending_entity"))
	assert.Equal(t, "AMBASSADE DE COTE D'IVOIRE", res.GetString("receiving_entity"))
	assert.Equal(t, "AET/2025/00457", res.GetString("reference_number"))
	assert.Equal(t, "2025-10-05", res.GetString("date"))
	assert.Equal(t, "ALEMAYEHU WORKNEH GEBEYEHU", res.GetString("diplomat_name"))
	assert.Equal(t, "AMBASSADOR", res.GetString("diplomat_title"))
	assert.Equal(t, "D0034517", res.GetString("diplomat_passport_number"))
	assert.Equal(t, "DIPLOMATIC", res.GetString("requested_visa_type"))

	td, ok := res.Get("travel_dates").(TravelDates)
	require.True(t, ok)
	assert.Equal(t, "2025-11-10", td.From)
	assert.Equal(t, "2025-11-25", td.To)

	persons, ok := res.Get("accompanying_persons").([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"WORKNEH TIGIST"}, persons)

	ind, ok := res.Get("authenticity_indicators").(AuthenticityIndicators)
	require.True(t, ok)
	assert.True(t, ind.OfficialLetterhead)
	assert.True(t, ind.OfficialStamp)
	assert.True(t, ind.SignaturePresent)
	assert.True(t, ind.AddressedToCIEmbassy)
	assert.True(t, ind.DiplomatIdentified)
	assert.True(t, ind.ReferenceNumberPresent)
}

func TestVerbalNoteOrganizationFallback(t *testing.T) {
	e := NewVerbalNoteExtractor(noteNow)
	text := "UNITED NATIONS\nNOTE VERBALE\nNAME: SMITH JOHN\nDATED: 01/09/2025"

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "UNITED NATIONS", res.GetString("sending_entity"))
	assert.Equal(t, "SMITH JOHN", res.GetString("diplomat_name"))
	assert.Equal(t, "2025-09-01", res.GetString("date"))
}

func TestVerbalNoteTextualDate(t *testing.T) {
	e := NewVerbalNoteExtractor(noteNow)
	text := "NOTE VERBALE DE L'AMBASSADE DE FRANCE, ADDIS ABEBA, 5 OCTOBRE 2025"

	res := e.Extract(text, nil)

	assert.Equal(t, "2025-10-05", res.GetString("date"))
}

func TestVerbalNoteServiceVisaRequest(t *testing.T) {
	e := NewVerbalNoteExtractor(noteNow)

	res := e.Extract("REQUESTS AN OFFICIAL VISA FOR ITS OFFICER", nil)
	assert.Equal(t, "SERVICE", res.GetString("requested_visa_type"))

	res = e.Extract("THE SERVICE WAS EXCELLENT", nil)
	assert.False(t, res.Has("requested_visa_type"))
}

func TestVerbalNoteMissingDiplomatFails(t *testing.T) {
	e := NewVerbalNoteExtractor(noteNow)
	res := e.Extract("NOTE VERBALE\nMINISTRY OF FOREIGN AFFAIRS PRESENTS ITS COMPLIMENTS\nDATED: 01/10/2025", nil)

	assert.False(t, res.Success)
	assert.Equal(t, "FOREIGN AFFAIRS", res.GetString("sending_entity"))
}
