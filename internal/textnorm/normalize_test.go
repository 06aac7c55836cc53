package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsControlChars(t *testing.T) {
	in := "PASSEPORT\x00\x01 N\x7F 12AB34567"
	assert.Equal(t, "PASSEPORT N 12AB34567", Normalize(in))
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	in := "NOM:   DOE\t\tPRENOM:  JOHN  \n\n\n\n\nDATE"
	assert.Equal(t, "NOM: DOE PRENOM: JOHN\n\nDATE", Normalize(in))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  a  b \r\n c \x0b d ",
		"PASSEPORT\nREPUBLIQUE  DE COTE D'IVOIRE",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalizePreservesCase(t *testing.T) {
	assert.Equal(t, "Côte d'Ivoire", Normalize("Côte d'Ivoire"))
}

func TestStripAccents(t *testing.T) {
	assert.Equal(t, "FIEVRE JAUNE", StripAccents("FIÈVRE JAUNE"))
	assert.Equal(t, "Cote d'Ivoire", StripAccents("Côte d'Ivoire"))
	assert.Equal(t, "plain", StripAccents("plain"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "N GUESSAN KOUADIO", NormalizeName("N'Guessan-Kouadio"))
	assert.Equal(t, "DOE", NormalizeName("  Döe. "))
	assert.Equal(t, "", NormalizeName("..."))
}
