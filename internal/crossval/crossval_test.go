package crossval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"DOE", "DOE"},
		{"DOE", "D0E"},
		{"N'GUESSAN", "NGUESSAN"},
		{"KOUADIO MARIE", "KOUADIO"},
		{"", "DOE"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
	assert.Equal(t, 1.0, Similarity("DOE", "DOE"))
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilarityIgnoresAccentsAndPunctuation(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("N'Guessan", "N GUESSAN"))
	assert.Equal(t, 1.0, Similarity("Konaté", "KONATE"))
}

func TestCompareConsistent(t *testing.T) {
	mrzFields := map[string]string{
		"surname":         "DOE",
		"given_names":     "JOHN",
		"passport_number": "AB1234567",
		"date_of_birth":   "1985-01-01",
		"expiry_date":     "2030-01-01",
		"sex":             "M",
	}
	viz := map[string]string{
		"surname":         "Doe",
		"given_names":     "John",
		"passport_number": "AB1234567",
		"date_of_birth":   "1985-01-01",
		"expiry_date":     "2030-01-01",
		"sex":             "M",
	}
	res := Compare(mrzFields, viz)
	assert.True(t, res.Consistent)
	assert.Len(t, res.Fields, 6)
	for field, cmp := range res.Fields {
		assert.True(t, cmp.Match, field)
	}
}

func TestCompareDetectsDiscrepancy(t *testing.T) {
	mrzFields := map[string]string{"passport_number": "AB1234567"}
	viz := map[string]string{"passport_number": "AB1234568"}
	res := Compare(mrzFields, viz)
	assert.False(t, res.Consistent)
	assert.False(t, res.Fields["passport_number"].Match)
	assert.InDelta(t, 8.0/9.0, res.Fields["passport_number"].Similarity, 1e-9)
}

func TestCompareToleratesNameNoise(t *testing.T) {
	// One OCR slip in a long surname stays above the 0.9 threshold.
	mrzFields := map[string]string{"surname": "KOUASSIKAN"}
	viz := map[string]string{"surname": "KOUASSIKAM"}
	res := Compare(mrzFields, viz)
	assert.True(t, res.Consistent)
	assert.True(t, res.Fields["surname"].Match)
}

func TestCompareSkipsAbsentFields(t *testing.T) {
	res := Compare(map[string]string{"surname": "DOE"}, map[string]string{"given_names": "JOHN"})
	assert.True(t, res.Consistent)
	assert.Empty(t, res.Fields)
}
