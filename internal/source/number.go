package source

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a metadata cell, tolerating decimal commas and
// thousands separators. Anything unparseable becomes NaN.
func ParseNumber(s string) float64 {
	raw := strings.ReplaceAll(s, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	// Decide decimal separator from the last one present
	dec := '.'
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	if cpos > dpos {
		dec = ','
	}
	for _, sep := range []rune{',', '.', ' '} {
		if sep != dec {
			raw = strings.ReplaceAll(raw, string(sep), "")
		}
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
