package quoteweb

import (
	"regexp"
	"strconv"
	"strings"
)

// abbrevScale maps the magnitude suffixes quote pages use.
var abbrevScale = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
	'T': 1e12,
}

// parseAbbrevNumber parses "212.50", "1,234.56", "3.21T", "412.5B".
func parseAbbrevNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" || strings.EqualFold(s, "n/a") {
		return 0, false
	}

	scale := 1.0
	last := s[len(s)-1]
	if mult, ok := abbrevScale[last]; ok {
		scale = mult
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v * scale, true
}

var (
	priceRe     = regexp.MustCompile(`"(?:price|regularMarketPrice|last)"\s*:\s*"?([0-9]+(?:\.[0-9]+)?)"?`)
	marketCapRe = regexp.MustCompile(`(?i)market\s*cap[^0-9$]*\$?([0-9][0-9,.]*\s?[KMBT]?)`)
)

// regexPrice scans raw HTML for an embedded price value.
func regexPrice(html string) float64 {
	m := priceRe.FindStringSubmatch(html)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// regexMarketCap scans raw HTML for a market-cap figure.
func regexMarketCap(html string) float64 {
	m := marketCapRe.FindStringSubmatch(html)
	if m == nil {
		return 0
	}
	v, ok := parseAbbrevNumber(strings.ReplaceAll(m[1], " ", ""))
	if !ok {
		return 0
	}
	return v
}
