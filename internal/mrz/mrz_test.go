package mrz

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amondji/docextract/entity"
)

var now = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

// Check digits computed by hand: AB1234567 -> 1, 850101 -> 9, 300101 -> 9,
// empty personal number -> 0, composite -> 0.
const (
	td3Line1 = "P<CIVDOE<<JOHN<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<"
	td3Line2 = "AB12345671CIV8501019M3001019<<<<<<<<<<<<<<00"
)

func TestChecksum(t *testing.T) {
	assert.Equal(t, 1, Checksum("AB1234567"))
	assert.Equal(t, 9, Checksum("850101"))
	assert.Equal(t, 9, Checksum("300101"))
	assert.Equal(t, 0, Checksum("<<<<<<<<<<<<<<"))
	// ICAO 9303 worked example.
	assert.Equal(t, 3, Checksum("520727"))
}

func TestLocateTD3(t *testing.T) {
	text := "REPUBLIQUE DE COTE D'IVOIRE\nPASSEPORT\n" + td3Line1 + "\n" + td3Line2 + "\n"
	lines, ok := Locate(text)
	require.True(t, ok)
	assert.Equal(t, entity.MrzTD3, lines.Format)
	assert.Equal(t, td3Line1, lines.Line1)
	assert.Equal(t, td3Line2, lines.Line2)
}

func TestLocateRepairsOcrFiller(t *testing.T) {
	// OCR reads filler as pipes and brackets, and injects spaces.
	noisy1 := "P|CIVDOE[[JOHN" + strings.Repeat("|", 30)
	noisy2 := "AB12345671CIV 8501019M3001019" + strings.Repeat("]", 14) + "00"
	lines, ok := Locate(noisy1 + "\n" + noisy2)
	require.True(t, ok)
	assert.Equal(t, td3Line1, lines.Line1)
	assert.Equal(t, td3Line2, lines.Line2)
}

func TestLocateSingleLineUnusable(t *testing.T) {
	_, ok := Locate(td3Line1)
	assert.False(t, ok)

	_, ok = Locate("no mrz in this document at all")
	assert.False(t, ok)
}

func TestDecodeTD3(t *testing.T) {
	lines := &Lines{Format: entity.MrzTD3, Line1: td3Line1, Line2: td3Line2}
	rec := Decode(lines, now)

	assert.Equal(t, "P", rec.Fields["document_type"])
	assert.Equal(t, "CIV", rec.Fields["issuing_country"])
	assert.Equal(t, "DOE", rec.Fields["surname"])
	assert.Equal(t, "JOHN", rec.Fields["given_names"])
	assert.Equal(t, "AB1234567", rec.Fields["passport_number"])
	assert.Equal(t, "CIV", rec.Fields["nationality"])
	assert.Equal(t, "1985-01-01", rec.Fields["date_of_birth"])
	assert.Equal(t, "M", rec.Fields["sex"])
	assert.Equal(t, "2030-01-01", rec.Fields["expiry_date"])

	assert.True(t, rec.Checksums.DocumentNumber)
	assert.True(t, rec.Checksums.BirthDate)
	assert.True(t, rec.Checksums.ExpiryDate)
	assert.True(t, rec.Checksums.Personal)
	assert.True(t, rec.Checksums.Composite)
	assert.True(t, rec.Checksums.AllValid(entity.MrzTD3))
}

func TestDecodeTD3MultipleGivenNames(t *testing.T) {
	line1 := normalizeLine("P<CIVN'GUESSAN<<KOUADIO<MARIE", 44)
	lines := &Lines{Format: entity.MrzTD3, Line1: line1, Line2: td3Line2}
	rec := Decode(lines, now)
	assert.Equal(t, "NGUESSAN", rec.Fields["surname"])
	assert.Equal(t, "KOUADIO MARIE", rec.Fields["given_names"])
}

func TestFlippedCharacterFailsChecksum(t *testing.T) {
	fields := map[string][2]int{
		"document_number": {0, 9},
		"birth_date":      {13, 19},
		"expiry_date":     {21, 27},
	}
	for name, span := range fields {
		for pos := span[0]; pos < span[1]; pos++ {
			mutated := []byte(td3Line2)
			if mutated[pos] == '9' {
				mutated[pos] = '8'
			} else {
				mutated[pos] = '9'
			}
			lines := &Lines{Format: entity.MrzTD3, Line1: td3Line1, Line2: string(mutated)}
			rec := Decode(lines, now)
			switch name {
			case "document_number":
				assert.False(t, rec.Checksums.DocumentNumber, "flip at %d", pos)
			case "birth_date":
				assert.False(t, rec.Checksums.BirthDate, "flip at %d", pos)
			case "expiry_date":
				assert.False(t, rec.Checksums.ExpiryDate, "flip at %d", pos)
			}
			assert.False(t, rec.Checksums.AllValid(entity.MrzTD3))
		}
	}
}

func TestInvalidCheckDigitCharFails(t *testing.T) {
	mutated := []byte(td3Line2)
	mutated[9] = 'Z'
	lines := &Lines{Format: entity.MrzTD3, Line1: td3Line1, Line2: string(mutated)}
	rec := Decode(lines, now)
	assert.False(t, rec.Checksums.DocumentNumber)
}

func TestFillerCheckDigitMeansZero(t *testing.T) {
	// Personal-number field is empty, so its checksum is 0; the filler
	// convention accepts '<' in that slot.
	mutated := []byte(td3Line2)
	mutated[42] = '<'
	lines := &Lines{Format: entity.MrzTD3, Line1: td3Line1, Line2: string(mutated)}
	rec := Decode(lines, now)
	assert.True(t, rec.Checksums.Personal)
}

func TestLocateAndDecodeTD1(t *testing.T) {
	number := "AB1234567"
	numCheck := Checksum(number)
	birth, birthCheck := "850101", Checksum("850101")
	expiry, expiryCheck := "300101", Checksum("300101")

	line1 := normalizeLine("I<CIV"+number+string(rune('0'+numCheck)), 30)
	line2Prefix := birth + string(rune('0'+birthCheck)) + "M" + expiry + string(rune('0'+expiryCheck)) + "CIV" + strings.Repeat("<", 11)
	composite := Checksum(line1[5:30] + line2Prefix[0:7] + line2Prefix[8:15] + line2Prefix[18:29])
	line2 := line2Prefix + string(rune('0'+composite))
	line3 := normalizeLine("DOE<<JOHN", 30)

	lines, ok := Locate(line1 + "\n" + line2 + "\n" + line3)
	require.True(t, ok)
	require.Equal(t, entity.MrzTD1, lines.Format)

	rec := Decode(lines, now)
	assert.Equal(t, "AB1234567", rec.Fields["passport_number"])
	assert.Equal(t, "1985-01-01", rec.Fields["date_of_birth"])
	assert.Equal(t, "2030-01-01", rec.Fields["expiry_date"])
	assert.Equal(t, "CIV", rec.Fields["nationality"])
	assert.Equal(t, "DOE", rec.Fields["surname"])
	assert.Equal(t, "JOHN", rec.Fields["given_names"])
	assert.True(t, rec.Checksums.AllValid(entity.MrzTD1))
}
