package ineq

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokVar
	tokPlus
	tokMinus
	tokStar
	tokOp
	tokNotEqual
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	num  float64
	v    byte     // 'x' or 'y' for tokVar
	op   Operator // for tokOp
}

type lexer struct {
	s string
	i int
}

// comparisons lists every spelling of a comparison, longest first so that
// "<=" wins over "<".
var comparisons = []struct {
	text string
	kind tokenKind
	op   Operator
}{
	{"<=", tokOp, LessEq},
	{"=<", tokOp, LessEq},
	{">=", tokOp, GreaterEq},
	{"=>", tokOp, GreaterEq},
	{"!=", tokNotEqual, Equal},
	{"≤", tokOp, LessEq},
	{"≥", tokOp, GreaterEq},
	{"≠", tokNotEqual, Equal},
	{"<", tokOp, Less},
	{">", tokOp, Greater},
	{"=", tokOp, Equal},
}

func (l *lexer) skipSpace() {
	for l.i < len(l.s) {
		r, size := utf8.DecodeRuneInString(l.s[l.i:])
		if !unicode.IsSpace(r) {
			return
		}
		l.i += size
	}
}

func (l *lexer) next() token {
	l.skipSpace()
	if l.i >= len(l.s) {
		return token{kind: tokEOF}
	}

	rest := l.s[l.i:]
	for _, c := range comparisons {
		if len(rest) >= len(c.text) && rest[:len(c.text)] == c.text {
			l.i += len(c.text)
			return token{kind: c.kind, text: c.text, op: c.op}
		}
	}

	r, size := utf8.DecodeRuneInString(rest)
	switch r {
	case '+':
		l.i += size
		return token{kind: tokPlus, text: "+"}
	case '-', '−':
		l.i += size
		return token{kind: tokMinus, text: "-"}
	case '*', '·', '×':
		l.i += size
		return token{kind: tokStar, text: "*"}
	case 'x', 'X':
		l.i += size
		return token{kind: tokVar, text: "x", v: 'x'}
	case 'y', 'Y':
		l.i += size
		return token{kind: tokVar, text: "y", v: 'y'}
	}

	if r == '.' || unicode.IsDigit(r) {
		start := l.i
		l.i = scanNumber(l.s, l.i)
		txt := l.s[start:l.i]
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return token{kind: tokInvalid, text: txt}
		}
		return token{kind: tokNumber, text: txt, num: f}
	}

	l.i += size
	return token{kind: tokInvalid, text: string(r)}
}

func scanNumber(s string, i int) int {
	start := i
	for i < len(s) && unicode.IsDigit(rune(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && unicode.IsDigit(rune(s[i])) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && unicode.IsDigit(rune(s[k])) {
			k++
		}
		if k > j {
			i = k
		}
	}
	if i == start {
		return start + 1
	}
	return i
}

// tokenize runs the lexer to completion. The final token is always tokEOF
// unless an invalid token stopped the scan.
func tokenize(s string) []token {
	l := lexer{s: s}
	var out []token
	for {
		t := l.next()
		out = append(out, t)
		if t.kind == tokEOF || t.kind == tokInvalid {
			return out
		}
	}
}
