package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
)

func ppNow() time.Time {
	return time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
}

const (
	ppMrzLine1 = "P<CIVKOUASSI<<AKISSI<FLORENCE<<<<<<<<<<<<<<<"
	ppMrzLine2 = "AB12345671CIV9005123F2702010<<<<<<<<<<<<<<00"
)

func TestPassportMrzAndVizAgree(t *testing.T) {
	e := NewPassportExtractor(ppNow)
	text := `REPUBLIQUE DE COTE D'IVOIRE
PASSEPORT
PASSPORT NO: AB1234567
SURNAME: KOUASSI
GIVEN NAMES: AKISSI FLORENCE
NATIONALITY: IVOIRIENNE
DATE OF BIRTH: 12/05/1990
SEX: F
DATE OF ISSUE: 02/02/2022
DATE OF EXPIRY: 01/02/2027
PLACE OF BIRTH: ABIDJAN
ISSUING AUTHORITY: ONECI

` + ppMrzLine1 + "\n" + ppMrzLine2

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "AB1234567", res.GetString("passport_number"))
	assert.Equal(t, entity.SourceMrz, res.Fields["passport_number"].Source)
	assert.Equal(t, ConfidenceMrz, res.Fields["passport_number"].Confidence)
	assert.Equal(t, "KOUASSI", res.GetString("surname"))
	assert.Equal(t, "AKISSI FLORENCE", res.GetString("given_names"))
	assert.Equal(t, "CIV", res.GetString("nationality"))
	assert.Equal(t, "COTE D'IVOIRE", res.GetString("nationality_name"))
	assert.Equal(t, "1990-05-12", res.GetString("date_of_birth"))
	assert.Equal(t, "2027-02-01", res.GetString("expiry_date"))
	assert.Equal(t, "F", res.GetString("sex"))
	assert.Equal(t, constants.PassportOrdinaire, res.Get("passport_type"))

	assert.Equal(t, "2022-02-02", res.GetString("issue_date"))
	assert.Equal(t, entity.SourceViz, res.Fields["issue_date"].Source)
	assert.Equal(t, "ABIDJAN", res.GetString("place_of_birth"))
	assert.Equal(t, "ONECI", res.GetString("issuing_authority"))

	require.NotNil(t, res.Mrz)
	assert.True(t, res.Mrz.Checksums.AllValid(entity.MrzTD3))

	require.NotNil(t, res.CrossValidation)
	assert.True(t, res.CrossValidation.Consistent)
	assert.True(t, res.CrossValidation.Fields["surname"].Match)
	assert.True(t, res.CrossValidation.Fields["passport_number"].Match)
}

func TestPassportMrzOnly(t *testing.T) {
	e := NewPassportExtractor(ppNow)

	res := e.Extract(ppMrzLine1+"\n"+ppMrzLine2, nil)

	assert.True(t, res.Success)
	assert.Equal(t, "AB1234567", res.GetString("passport_number"))
	assert.Equal(t, "KOUASSI", res.GetString("surname"))
	assert.Equal(t, "AKISSI FLORENCE", res.GetString("given_names"))
	assert.Equal(t, "1990-05-12", res.GetString("date_of_birth"))
	assert.Equal(t, "2027-02-01", res.GetString("expiry_date"))
	assert.Equal(t, entity.SourceMrz, res.Fields["surname"].Source)
	assert.Nil(t, res.CrossValidation)
}

func TestPassportVizOnly(t *testing.T) {
	e := NewPassportExtractor(ppNow)
	text := `PASSEPORT
PASSPORT NO: CI7654321
SURNAME: DIABATE
GIVEN NAMES: SOULEYMANE
NATIONALITY: IVOIRIENNE
DATE OF BIRTH: 03/11/1985
SEX: M
DATE OF EXPIRY: 20/06/2028`

	res := e.Extract(text, nil)

	assert.True(t, res.Success)
	assert.Nil(t, res.Mrz)
	assert.Nil(t, res.CrossValidation)
	assert.Equal(t, "CI7654321", res.GetString("passport_number"))
	assert.Equal(t, entity.SourceViz, res.Fields["passport_number"].Source)
	assert.Equal(t, ConfidenceViz, res.Fields["passport_number"].Confidence)
	assert.Equal(t, "DIABATE", res.GetString("surname"))
	assert.Equal(t, "1985-11-03", res.GetString("date_of_birth"))
	assert.Equal(t, "2028-06-20", res.GetString("expiry_date"))
	assert.Equal(t, "M", res.GetString("sex"))
}

func TestPassportMrzVizSurnameMismatch(t *testing.T) {
	e := NewPassportExtractor(ppNow)
	text := "SURNAME: KOUASSA\nGIVEN NAMES: AKISSI FLORENCE\n" +
		ppMrzLine1 + "\n" + ppMrzLine2

	res := e.Extract(text, nil)

	require.NotNil(t, res.CrossValidation)
	assert.False(t, res.CrossValidation.Consistent)
	cmp := res.CrossValidation.Fields["surname"]
	assert.False(t, cmp.Match)
	assert.Less(t, cmp.Similarity, 0.9)
	assert.Equal(t, "KOUASSI", res.GetString("surname"))
	assert.Equal(t, entity.SourceMrz, res.Fields["surname"].Source)
}

func TestPassportTypeKeywordUpgrade(t *testing.T) {
	e := NewPassportExtractor(ppNow)

	res := e.Extract("PASSEPORT DIPLOMATIQUE\nMISSION PERMANENTE", nil)
	assert.Equal(t, constants.PassportDiplomatique, res.Get("passport_type"))

	res = e.Extract("PASSEPORT DE SERVICE", nil)
	assert.Equal(t, constants.PassportService, res.Get("passport_type"))
}
