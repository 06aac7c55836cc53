// Package crossval reconciles machine-zone and visual-zone passport
// fields.
package crossval

import (
	"github.com/agext/levenshtein"

	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/textnorm"
)

// Name fields tolerate OCR noise; identifiers and dates must match exactly.
var fieldThresholds = []struct {
	field     string
	threshold float64
}{
	{"surname", 0.9},
	{"given_names", 0.85},
	{"passport_number", 1.0},
	{"date_of_birth", 1.0},
	{"expiry_date", 1.0},
	{"sex", 1.0},
}

// Similarity returns the normalized Levenshtein similarity of the two
// values in [0,1] after name normalization. Two empty strings are equal.
func Similarity(a, b string) float64 {
	a = textnorm.NormalizeName(a)
	b = textnorm.NormalizeName(b)
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.Distance(a, b, nil)
	return 1.0 - float64(dist)/float64(maxLen)
}

// Compare runs the per-field similarity checks over the fields present in
// both zones. Fields absent from either side are skipped, not failed.
func Compare(mrzFields map[string]string, viz map[string]string) *entity.CrossValidationResult {
	res := &entity.CrossValidationResult{
		Fields:     make(map[string]entity.FieldComparison),
		Consistent: true,
	}
	for _, ft := range fieldThresholds {
		mrzValue, okMrz := mrzFields[ft.field]
		vizValue, okViz := viz[ft.field]
		if !okMrz || !okViz || mrzValue == "" || vizValue == "" {
			continue
		}
		sim := Similarity(mrzValue, vizValue)
		match := sim >= ft.threshold
		res.Fields[ft.field] = entity.FieldComparison{
			MrzValue:   mrzValue,
			VizValue:   vizValue,
			Similarity: sim,
			Match:      match,
		}
		if !match {
			res.Consistent = false
		}
	}
	return res
}
