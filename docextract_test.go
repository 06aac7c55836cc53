package docextract

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
)

func regNow() time.Time {
	return time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
}

func newTestRegistry() *Registry {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, regNow)
}

func TestProcessPassportEndToEnd(t *testing.T) {
	reg := newTestRegistry()
	raw := entity.RawDocumentText{Text: `REPUBLIQUE DE COTE D'IVOIRE
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

P<CIVKOUASSI<<AKISSI<FLORENCE<<<<<<<<<<<<<<<
AB12345671CIV9005123F2702010<<<<<<<<<<<<<<00`}

	res, rep, err := reg.Process(raw, constants.Passport)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "AB1234567", res.GetString("passport_number"))
	require.NotNil(t, res.Mrz)

	assert.True(t, rep.Checks["expiry_valid"].Passed)
	assert.True(t, rep.Checks["expiry_6months"].Passed)
	assert.True(t, rep.Checks["mrz_valid"].Passed)
	assert.True(t, rep.Checks["passport_number_format"].Passed)
	// An Ivorian national is outside the consular district.
	assert.False(t, rep.Checks["in_jurisdiction"].Passed)
	assert.False(t, rep.Passed)
}

func TestProcessOutputMatchesContract(t *testing.T) {
	reg := newTestRegistry()
	raw := entity.RawDocumentText{Text: `PASSEPORT
PASSPORT NO: CI7654321
SURNAME: DIABATE
GIVEN NAMES: SOULEYMANE
NATIONALITY: IVOIRIENNE
DATE OF BIRTH: 03/11/1985
SEX: M
DATE OF EXPIRY: 20/06/2028`}

	res, rep, err := reg.Process(raw, constants.Passport)
	require.NoError(t, err)

	resJSON, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NoError(t, ValidateResultJSON(resJSON))

	repJSON, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.NoError(t, ValidateReportJSON(repJSON))
}

func TestProcessUnknownType(t *testing.T) {
	reg := newTestRegistry()

	_, _, err := reg.Process(entity.RawDocumentText{Text: "whatever"}, constants.DocumentType("drivers_license"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDocumentType))
}

func TestProcessConcurrent(t *testing.T) {
	reg := newTestRegistry()

	var wg sync.WaitGroup
	for _, dt := range reg.SupportedTypes() {
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(dt constants.DocumentType) {
				defer wg.Done()
				_, _, err := reg.Process(entity.RawDocumentText{Text: "NOISY SCAN WITH NOTHING USABLE"}, dt)
				assert.NoError(t, err)
			}(dt)
		}
	}
	wg.Wait()
}

func TestRequiredFields(t *testing.T) {
	reg := newTestRegistry()

	fields, err := reg.RequiredFields(constants.Passport)
	require.NoError(t, err)
	assert.Contains(t, fields, "passport_number")

	_, err = reg.RequiredFields(constants.DocumentType("bank_statement"))
	assert.True(t, errors.Is(err, ErrUnknownDocumentType))
}

func TestContractRejectsMalformedPayloads(t *testing.T) {
	assert.Error(t, ValidateResultJSON([]byte(`{"success":true}`)))
	assert.Error(t, ValidateResultJSON([]byte(`not json`)))
	assert.Error(t, ValidateReportJSON([]byte(`{"document_type":"bank_statement","checks":{},"passed":true}`)))

	valid := `{"document_type":"passport","checks":{"expiry_valid":{"passed":true}},"passed":true}`
	assert.NoError(t, ValidateReportJSON([]byte(valid)))
}
