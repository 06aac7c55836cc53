package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amondji/docextract/entity"
)

func cardNow() time.Time {
	return time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
}

func TestResidenceCardEthiopianWorkPermit(t *testing.T) {
	e := NewResidenceCardExtractor(cardNow)
	text := `FEDERAL DEMOCRATIC REPUBLIC OF ETHIOPIA
IMMIGRATION AND CITIZENSHIP SERVICE
RESIDENCE PERMIT
PERMIT NO: RP-0123456
NAME: TESFAYE ALEMU BEKELE
NATIONALITY: IVORIAN
DATE OF BIRTH: 12/05/1990
ISSUE DATE: 01/02/2024
DATE OF EXPIRY: 01/02/2027
WORK PERMIT - EMPLOYER: ETHIO TELECOM S.C.
ADDRESS: BOLE SUB CITY, WOREDA 03, ADDIS ABABA
PHOTO`

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "TESFAYE ALEMU BEKELE", res.GetString("holder_name"))
	assert.Equal(t, "RP-0123456", res.GetString("card_number"))
	assert.Equal(t, "IVORIAN", res.GetString("nationality"))
	assert.Equal(t, "1990-05-12", res.GetString("date_of_birth"))
	assert.Equal(t, "2024-02-01", res.GetString("issue_date"))
	assert.Equal(t, "2027-02-01", res.GetString("expiry_date"))
	assert.Equal(t, "ETHIOPIA", res.GetString("issuing_country"))
	assert.Equal(t, "WORK", res.GetString("residence_type"))
	assert.Equal(t, "ETHIO TELECOM S.C", res.GetString("employer"))
	assert.Equal(t, "BOLE SUB CITY, WOREDA 03, ADDIS ABABA", res.GetString("address"))
	assert.Equal(t, true, res.Get("photo_present"))
}

func TestResidenceCardSplitNameAndFaceMetadata(t *testing.T) {
	e := NewResidenceCardExtractor(cardNow)
	text := `REPUBLIC OF KENYA
FOREIGNER CERTIFICATE
SURNAME: KOUADIO, GIVEN NAMES: YAO MICHEL
NATIONALITY: IVOIRIENNE
ID NO: KE12345678
VALID UNTIL: 15/08/2026`
	meta := &entity.OCRMetadata{FaceDetected: true}

	res := e.Extract(text, meta)

	assert.True(t, res.Success)
	assert.Equal(t, "KOUADIO YAO", res.GetString("holder_name"))
	assert.Equal(t, "KE12345678", res.GetString("card_number"))
	assert.Equal(t, "IVOIRIENNE", res.GetString("nationality"))
	assert.Equal(t, "2026-08-15", res.GetString("expiry_date"))
	assert.Equal(t, "KENYA", res.GetString("issuing_country"))
	assert.False(t, res.Has("residence_type"))
	assert.Equal(t, true, res.Get("photo_present"))
}

func TestResidenceCardMissingNumberFails(t *testing.T) {
	e := NewResidenceCardExtractor(cardNow)
	text := "CARTE DE SEJOUR\nDJIBOUTI\nTITULAIRE: KONE MAMADOU\nVALABLE JUSQU'AU 01/03/2024"

	res := e.Extract(text, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "KONE MAMADOU", res.GetString("holder_name"))
	assert.False(t, res.Has("card_number"))
	assert.Equal(t, "2024-03-01", res.GetString("expiry_date"))
	assert.Equal(t, "DJIBOUTI", res.GetString("issuing_country"))
	assert.Equal(t, false, res.Get("photo_present"))
}

func TestResidenceTypePrecedence(t *testing.T) {
	assert.Equal(t, "STUDY", residenceType("STUDENT PERMIT FOR FAMILY DEPENDANT"))
	assert.Equal(t, "DIPLOMATIC", residenceType("OFFICIAL PERMANENT MISSION CARD"))
	assert.Equal(t, "REFUGEE", residenceType("UNHCR FAMILY DOCUMENT"))
	assert.Equal(t, "", residenceType("NO CATEGORY PRINTED"))
}
