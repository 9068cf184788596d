package ineq

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Palette is the fixed set of spell colours, handed out in order.
var Palette = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#42d4f4", // cyan
	"#f032e6", // magenta
	"#bfef45", // lime
}

type memoEntry struct {
	lin Linear
	err error
}

// Parser turns text into inequalities. It owns the label and colour
// allocators and the parse memo, so independent boards never share state.
// A Parser is not safe for concurrent use.
type Parser struct {
	labels int
	colors int
	memo   map[string]memoEntry
}

func NewParser() *Parser {
	return &Parser{memo: make(map[string]memoEntry)}
}

// Reset restarts labels at A and colours at the first palette entry, and
// forgets memoised parses. Call it whenever the board is cleared.
func (p *Parser) Reset() {
	p.labels = 0
	p.colors = 0
	p.memo = make(map[string]memoEntry)
}

// Check canonicalises text without allocating a label or colour.
func (p *Parser) Check(text string) (Linear, error) {
	if e, ok := p.memo[text]; ok {
		return e.lin, e.err
	}
	lin, err := canonical(text)
	p.memo[text] = memoEntry{lin: lin, err: err}
	return lin, err
}

// Parse canonicalises text and, on success, assigns the next label and
// colour.
func (p *Parser) Parse(text string) (Inequality, error) {
	lin, err := p.Check(text)
	if err != nil {
		return Inequality{}, err
	}
	q := Inequality{
		ID:     uuid.New(),
		Linear: lin,
		Label:  Label(p.labels),
		Color:  Palette[p.colors%len(Palette)],
		Text:   Format(lin),
		Source: text,
	}
	p.labels++
	p.colors++
	if q.Equation() {
		q.Solution = Solved(OnLine)
	}
	return q, nil
}

// Peek returns the label and colour the next Parse would assign.
func (p *Parser) Peek() (label, color string) {
	return Label(p.labels), Palette[p.colors%len(Palette)]
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func canonical(text string) (Linear, error) {
	st, err := parseStatement(stripSpace(text))
	if err != nil {
		return Linear{}, err
	}
	f, err := classify(st)
	if err != nil {
		return Linear{}, err
	}
	lin := f.lower()
	if lin.Degenerate() {
		return Linear{}, ErrDegenerate
	}
	return lin, nil
}
