package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"halfplane/internal/ineq"
	"halfplane/internal/render"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "<") && strings.Contains(t, ">")
}

// stripMarkup drops RTF control words and groups, or HTML tags, leaving
// the plain text a rich-text clipboard wraps a spell in.
func stripMarkup(text string) string {
	var b strings.Builder
	runes := []rune(text)
	switch {
	case isRTF(text):
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			switch r {
			case '{', '}':
				continue
			case '\\':
				if i+1 < len(runes) && strings.ContainsRune("\\{}", runes[i+1]) {
					b.WriteRune(runes[i+1])
					i++
					continue
				}
				for i+1 < len(runes) && runes[i+1] != ' ' && runes[i+1] != '\\' && runes[i+1] != '{' && runes[i+1] != '}' && runes[i+1] != '\n' {
					i++
				}
				if i+1 < len(runes) && runes[i+1] == ' ' {
					i++
				}
			default:
				b.WriteRune(r)
			}
		}
	case isHTML(text):
		inTag := false
		for _, r := range runes {
			switch {
			case r == '<':
				inTag = true
			case r == '>':
				inTag = false
			case !inTag:
				b.WriteRune(r)
			}
		}
		return strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&", "&ge;", "≥", "&le;", "≤", "&nbsp;", " ").Replace(b.String())
	default:
		return text
	}
	return b.String()
}

// cleanClipboardSpell returns the first non-blank line of pasted text with
// markup and control characters removed.
func cleanClipboardSpell(text string) string {
	text = stripMarkup(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.Map(func(r rune) rune {
			if r < 32 && r != '\t' {
				return -1
			}
			return r
		}, line)
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// focusedSpell returns the spell whose region control has focus, or the
// most recently cast one.
func (m *model) focusedSpell() (ineq.Inequality, bool) {
	qs := m.session.Inequalities()
	if len(qs) == 0 {
		return ineq.Inequality{}, false
	}
	if f := m.session.Focus(); f.Kind == render.TargetRegion {
		for _, q := range qs {
			if q.ID == f.Inequality {
				return q, true
			}
		}
	}
	return qs[len(qs)-1], true
}

// canvasSize returns the board size in cells.
func (m *model) canvasSize() (cols, rows int) {
	cols, rows = m.width, m.height-statusRows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}
