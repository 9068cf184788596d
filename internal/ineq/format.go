package ineq

import (
	"math"
	"strconv"
	"strings"
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Format renders the canonical expression for display, e.g.
// "2x - 3y + 1 ≥ 0". The output is accepted by the parser.
func Format(l Linear) string {
	var b strings.Builder
	first := true
	write := func(coef float64, v string) {
		if coef == 0 {
			return
		}
		mag := math.Abs(coef)
		switch {
		case first && coef < 0:
			b.WriteString("-")
		case !first && coef < 0:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		first = false
		if mag != 1 || v == "" {
			b.WriteString(formatNumber(mag))
		}
		b.WriteString(v)
	}
	write(l.A, "x")
	write(l.B, "y")
	write(l.C, "")
	if first {
		b.WriteString("0")
	}
	b.WriteString(" ")
	b.WriteString(l.Op.String())
	b.WriteString(" 0")
	return b.String()
}

// Label returns the n-th label (0-based) in the sequence A, B, ... Z, AA,
// AB, ...
func Label(n int) string {
	var buf []byte
	for n >= 0 {
		buf = append([]byte{byte('A' + n%26)}, buf...)
		n = n/26 - 1
	}
	return string(buf)
}
