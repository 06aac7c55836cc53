// Package extract implements the per-document-type field extractors.
// Each extractor runs ordered regex cascades over normalized OCR text;
// within a cascade the first matching rule wins, so patterns are declared
// most specific first with generic fallbacks last.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/entity"
	"github.com/amondji/docextract/internal/textnorm"
)

// Field confidence by provenance. MRZ data is checksum-protected, visual
// zone and labeled patterns are OCR-dependent, harvested fallbacks are
// guesses.
const (
	ConfidenceMrz      = 0.95
	ConfidencePattern  = 0.80
	ConfidenceViz      = 0.75
	ConfidenceFallback = 0.60
)

// Extractor turns one document's OCR text into typed fields. Extractors
// never fail: malformed input produces an all-absent result, not an error.
type Extractor interface {
	DocumentType() constants.DocumentType
	RequiredFields() []string
	Extract(text string, meta *entity.OCRMetadata) entity.ExtractionResult
}

// firstMatch tries the patterns in declaration order and returns the first
// non-empty capture group.
func firstMatch(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := strings.TrimSpace(m[1])
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// prepare normalizes the raw OCR text into the uppercase accent-free view
// the cascades match against.
func prepare(text string) string {
	return textnorm.Uppercase(textnorm.Normalize(text))
}

// containsAny reports whether any needle occurs in the haystack.
func containsAny(haystack string, needles []string) (string, bool) {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return n, true
		}
	}
	return "", false
}

// clock abstracts "now" so century pivots and validity windows are
// deterministic under test.
type clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
