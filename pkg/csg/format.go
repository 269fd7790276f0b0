package csg

import (
	"math"
	"strconv"
	"strings"
)

// Precision is the number of decimals kept for cylinder parameters.
const Precision = 5

// Round rounds v to the given number of decimal places using the exact
// decimal value of v (ties to even), so identical inputs always emit
// identical text.
func Round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Num renders a float the way solver decks expect it: the shortest string
// that round-trips, always carrying a fractional part ("3.0", "-240.538"),
// and switching to exponent form only for very small or very large values.
func Num(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// line joins the non-empty tokens of a directive with single spaces and
// terminates it with a newline.
func line(tokens ...string) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	b.WriteByte('\n')
	return b.String()
}

func nums(vs ...float64) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = Num(v)
	}
	return out
}
