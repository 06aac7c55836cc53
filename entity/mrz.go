package entity

// MrzFormat identifies the machine readable zone layout.
type MrzFormat string

const (
	// MrzTD3 is the two-line 44-character passport layout.
	MrzTD3 MrzFormat = "TD3"
	// MrzTD1 is the three-line 30-character ID-card layout.
	MrzTD1 MrzFormat = "TD1"
)

// MrzRecord is a decoded machine readable zone with its per-field
// checksum verdicts.
type MrzRecord struct {
	Format    MrzFormat         `json:"format"`
	RawLines  []string          `json:"raw_lines"`
	Fields    map[string]string `json:"fields"`
	Checksums MrzChecksums      `json:"checksums"`
}

// MrzChecksums records which check digits verified. A false entry means
// the digit did not match the computed value over its protected range.
type MrzChecksums struct {
	DocumentNumber bool `json:"document_number"`
	BirthDate      bool `json:"birth_date"`
	ExpiryDate     bool `json:"expiry_date"`
	Personal       bool `json:"personal,omitempty"`
	Composite      bool `json:"composite"`
}

// AllValid reports whether every applicable check digit verified.
// TD1 has no personal-number check digit, so Personal is ignored there.
func (c MrzChecksums) AllValid(format MrzFormat) bool {
	ok := c.DocumentNumber && c.BirthDate && c.ExpiryDate && c.Composite
	if format == MrzTD3 {
		ok = ok && c.Personal
	}
	return ok
}
