package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/amondji/docextract/constants"
	"github.com/amondji/docextract/internal/textnorm"
)

// Amount is a monetary value with its currency code.
type Amount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

var amountPattern = regexp.MustCompile(`(\d{1,3}(?:[,.\s]\d{3})+(?:[,.]\d{2})?|\d+(?:[,.]\d{2})?)\s*(XOF|FCFA|ETB|EUR|USD|CFA)?`)

// parseAmount reads the first money-shaped token. Separators followed by
// exactly three digits are thousands groups; a trailing two-digit group is
// the decimal part. Currency defaults to XOF, the local franc.
func parseAmount(text string) (Amount, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return Amount{}, false
	}

	value, ok := parseAmountValue(m[1])
	if !ok {
		return Amount{}, false
	}
	return Amount{Value: value, Currency: normalizeCurrency(m[2])}, true
}

// parseAmountValue resolves a raw money token's separators: a trailing
// two-digit group is the decimal part, every other separator groups
// thousands.
func parseAmountValue(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	decimal := ""
	if len(raw) > 3 {
		tail := raw[len(raw)-3:]
		if (tail[0] == ',' || tail[0] == '.') && isDigits(tail[1:]) {
			decimal = tail[1:]
			raw = raw[:len(raw)-3]
		}
	}
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	value, err := strconv.ParseFloat(digits.String()+"."+pad2(decimal), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func normalizeCurrency(currency string) string {
	switch strings.TrimSpace(currency) {
	case "", "FCFA", "CFA", "F CFA":
		return "XOF"
	}
	return strings.TrimSpace(currency)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func pad2(s string) string {
	if s == "" {
		return "00"
	}
	return s
}

// cityMatchers pairs a word-boundary pattern with the canonical gazetteer
// spelling it resolves to, canonical cities first then aliases.
var cityMatchers = buildCityMatchers()

type cityMatcher struct {
	re        *regexp.Regexp
	canonical string
}

func buildCityMatchers() []cityMatcher {
	matchers := make([]cityMatcher, 0, len(constants.CICities)+len(constants.CityAliases))
	for _, c := range constants.CICities {
		matchers = append(matchers, cityMatcher{
			re:        regexp.MustCompile(`\b` + regexp.QuoteMeta(c) + `\b`),
			canonical: c,
		})
	}
	aliases := make([]string, 0, len(constants.CityAliases))
	for alias := range constants.CityAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		matchers = append(matchers, cityMatcher{
			re:        regexp.MustCompile(`\b` + regexp.QuoteMeta(alias) + `\b`),
			canonical: constants.CityAliases[alias],
		})
	}
	return matchers
}

// buildWordMatchers compiles one word-boundary pattern per token, index
// aligned with the input slice.
func buildWordMatchers(tokens []string) []*regexp.Regexp {
	matchers := make([]*regexp.Regexp, len(tokens))
	for i, t := range tokens {
		matchers[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(t) + `\b`)
	}
	return matchers
}

// canonicalCity maps a candidate city through the alias table and the
// gazetteer, returning the canonical spelling.
func canonicalCity(city string) (string, bool) {
	upper := strings.TrimSpace(textnorm.StripAccents(strings.ToUpper(city)))
	if canonical, ok := constants.CityAliases[upper]; ok {
		return canonical, true
	}
	for _, c := range constants.CICities {
		if upper == c {
			return c, true
		}
	}
	return "", false
}

// findCity scans prepared text for any gazetteer city or alias.
func findCity(prepared string) (string, bool) {
	for _, m := range cityMatchers {
		if m.re.MatchString(prepared) {
			return m.canonical, true
		}
	}
	return "", false
}
