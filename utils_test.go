package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanClipboardSpell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "2x - 3y + 1 >= 0", "2x - 3y + 1 >= 0"},
		{"first non-blank line", "\n  \r\n  y = 2x + 1  \r\nsecond", "y = 2x + 1"},
		{"html", "<p>x &gt;= 0</p>", "x >= 0"},
		{"html entities", "<span>x + y &le; 4</span>", "x + y ≤ 4"},
		{"rtf", "{\\rtf1\\ansi x + y >= 0}", "x + y >= 0"},
		{"control characters", "x\x00 + y\x07 > 0", "x + y > 0"},
		{"empty", "   \n\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanClipboardSpell(tt.in))
		})
	}
}

func TestFocusedSpell(t *testing.T) {
	m := newTestModel(t)
	_, ok := m.focusedSpell()
	assert.False(t, ok)

	m = castAll(t, m, "x - 1 >= 0", "y - 2 <= 0")
	q, ok := m.focusedSpell()
	assert.True(t, ok)
	assert.Equal(t, "B", q.Label, "without focus the last spell is used")

	m = press(t, m, "tab")
	q, _ = m.focusedSpell()
	assert.Equal(t, "A", q.Label)
}
