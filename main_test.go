package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"halfplane/internal/ineq"
	"halfplane/internal/render"
	"halfplane/internal/session"
)

func testConfig() *Config {
	return &Config{
		Confirmations: true,
		Zoom:          40,
		ExportWidth:   800,
		ExportHeight:  600,
		DebounceMS:    300,
		PanStep:       16,
	}
}

func unwrap(t *testing.T, tm tea.Model) *model {
	t.Helper()
	switch v := tm.(type) {
	case model:
		return &v
	case *model:
		return v
	}
	t.Fatalf("unexpected model type %T", tm)
	return nil
}

// newTestModel is a 100×40 terminal: a 100×38 cell board, 800×608 px.
func newTestModel(t *testing.T) *model {
	t.Helper()
	tm, _ := initialModel(testConfig()).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return unwrap(t, tm)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m *model, msgs ...tea.Msg) (*model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var tm tea.Model
		tm, cmd = m.Update(msg)
		m = unwrap(t, tm)
	}
	return m, cmd
}

func press(t *testing.T, m *model, keys ...string) *model {
	t.Helper()
	for _, k := range keys {
		m, _ = send(t, m, key(k))
	}
	return m
}

func castAll(t *testing.T, m *model, spells ...string) *model {
	t.Helper()
	for _, s := range spells {
		m = press(t, m, "i", s, "enter")
		require.Equal(t, ModeNormal, m.mode, s)
	}
	return m
}

func TestTypingSchedulesCheck(t *testing.T) {
	m := press(t, newTestModel(t), "i")
	require.Equal(t, ModeInput, m.mode)

	m, cmd := send(t, m, key("x+y-4<=0"))
	require.NotNil(t, cmd)
	assert.Equal(t, "x+y-4<=0", m.input)

	m, _ = send(t, m, checkMsg{generation: m.generation - 1, text: m.input})
	assert.Equal(t, session.Message{}, m.preview, "stale ticks are ignored")

	m, _ = send(t, m, checkMsg{generation: m.generation, text: m.input})
	assert.Equal(t, session.MessageInfo, m.preview.Kind)
	assert.Contains(t, m.preview.Text, "A: ")
}

func TestCheckAfterCancelIsNoop(t *testing.T) {
	m := press(t, newTestModel(t), "i", "x >")
	pending := checkMsg{generation: m.generation, text: m.input}

	m = press(t, m, "esc")
	m, _ = send(t, m, pending)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, session.Message{}, m.preview)
}

func TestCheckAfterResetIsNoop(t *testing.T) {
	m := castAll(t, newTestModel(t), "x >= 0")
	m = press(t, m, "i", "y >= 0")
	pending := checkMsg{generation: m.generation, text: m.input}

	m.reset()
	m = press(t, m, "i", "y >= 0")
	m, _ = send(t, m, pending)
	assert.Equal(t, session.Message{}, m.preview)
}

func TestInputEditing(t *testing.T) {
	m := press(t, newTestModel(t), "i", "x>=0", "backspace", "1")
	assert.Equal(t, "x>=1", m.input)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(t, m, " ")
	assert.Equal(t, "x> =1", m.input)
}

func TestInvalidSpellStaysInInput(t *testing.T) {
	m := press(t, newTestModel(t), "i", "banana", "enter")
	assert.Equal(t, ModeInput, m.mode)
	assert.Equal(t, "Invalid spell format", m.session.Message().Text)
	assert.Empty(t, m.undoStack)
}

func TestCastUndoRedo(t *testing.T) {
	m := castAll(t, newTestModel(t), "x+y-4<=0")
	require.Len(t, m.session.Inequalities(), 1)
	id := m.session.Inequalities()[0].ID

	m = press(t, m, "u")
	assert.Empty(t, m.session.Inequalities())

	m = press(t, m, "U")
	require.Len(t, m.session.Inequalities(), 1)
	assert.Equal(t, id, m.session.Inequalities()[0].ID)
}

func TestRemoveUndo(t *testing.T) {
	m := castAll(t, newTestModel(t), "x >= 0", "y >= 0", "x + y - 4 <= 0")
	m.session.SolveAll()
	require.Len(t, m.session.Vertices(), 3)

	m = press(t, m, "d")
	require.Len(t, m.session.Inequalities(), 2)
	assert.Len(t, m.session.Vertices(), 1)

	m = press(t, m, "u")
	require.Len(t, m.session.Inequalities(), 3)
	assert.Equal(t, "C", m.session.Inequalities()[2].Label)
	assert.True(t, m.session.Inequalities()[2].Solution.Solved(), "undo restores the solved state")
	assert.Len(t, m.session.Vertices(), 3)
}

func TestResetConfirmed(t *testing.T) {
	m := castAll(t, newTestModel(t), "x >= 0")
	m = press(t, m, "R")
	assert.Equal(t, ModeConfirm, m.mode)
	m = press(t, m, "n")
	assert.Len(t, m.session.Inequalities(), 1)

	m = press(t, m, "R", "y")
	assert.Empty(t, m.session.Inequalities())
	assert.Empty(t, m.undoStack)

	m = castAll(t, m, "y >= 0")
	assert.Equal(t, "A", m.session.Inequalities()[0].Label)
}

func TestQuitConfirm(t *testing.T) {
	m := press(t, newTestModel(t), "q")
	assert.Equal(t, ModeConfirm, m.mode)
	m = press(t, m, "n")
	assert.Equal(t, ModeNormal, m.mode)

	m = press(t, m, "q")
	_, cmd := send(t, m, key("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func controlCell(t *testing.T, m *model) (int, int) {
	t.Helper()
	for _, op := range m.session.Ops() {
		if rc, ok := op.(render.RegionControl); ok && rc.Correct {
			return int(rc.Center.X / render.CellWidth), int(rc.Center.Y / render.CellHeight)
		}
	}
	t.Fatal("no correct region control")
	return 0, 0
}

func TestMouseClickSolves(t *testing.T) {
	m := castAll(t, newTestModel(t), "y >= 0")
	col, row := controlCell(t, m)

	m, _ = send(t, m,
		tea.MouseMsg{X: col, Y: row, Type: tea.MouseLeft},
		tea.MouseMsg{X: col, Y: row, Type: tea.MouseRelease},
	)
	assert.True(t, m.session.Inequalities()[0].Solution.Solved())
	assert.Equal(t, "Correct!", m.session.Message().Text)
}

func TestMouseDragPans(t *testing.T) {
	m := castAll(t, newTestModel(t), "y >= 0")
	before := m.session.Transform().Origin

	m, _ = send(t, m,
		tea.MouseMsg{X: 10, Y: 10, Type: tea.MouseLeft},
		tea.MouseMsg{X: 15, Y: 12, Type: tea.MouseMotion},
		tea.MouseMsg{X: 15, Y: 12, Type: tea.MouseRelease},
	)
	after := m.session.Transform().Origin
	assert.Equal(t, before.X+5*render.CellWidth, after.X)
	assert.Equal(t, before.Y+2*render.CellHeight, after.Y)
	assert.False(t, m.session.Inequalities()[0].Solution.Solved())
}

func TestVertexClickAndCoordinates(t *testing.T) {
	m := castAll(t, newTestModel(t), "x >= 0", "y >= 0", "x + y - 4 <= 0")
	m.session.SolveAll()

	// the origin sits at pixel (400, 304): cell (50, 19)
	m, _ = send(t, m,
		tea.MouseMsg{X: 50, Y: 19, Type: tea.MouseLeft},
		tea.MouseMsg{X: 50, Y: 19, Type: tea.MouseRelease},
	)
	require.Equal(t, ModeCoords, m.mode)
	i := m.session.ActiveVertex()
	require.GreaterOrEqual(t, i, 0)

	m = press(t, m, "0", "tab", "0.04", "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, ineq.VertexSolved, m.session.Vertices()[i].Status)
}

func TestCoordinatesNeedActiveVertex(t *testing.T) {
	m := press(t, newTestModel(t), "c")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "Select a vertex first", m.errorMessage)
}

func TestKeyboardFocusSolves(t *testing.T) {
	m := castAll(t, newTestModel(t), "x - 1 >= 0")
	m = press(t, m, "tab", " ")
	assert.True(t, m.session.Inequalities()[0].Solution.Solved())
}

func TestPanAndZoomKeys(t *testing.T) {
	m := newTestModel(t)
	before := m.session.Transform()

	m = press(t, m, "l")
	assert.Equal(t, before.Origin.X-16, m.session.Transform().Origin.X)
	m = press(t, m, "J")
	assert.Equal(t, before.Origin.Y-32, m.session.Transform().Origin.Y)

	m = press(t, m, "+")
	assert.Greater(t, m.session.Transform().Zoom, before.Zoom)
}

func TestViewBeforeWindowSize(t *testing.T) {
	m := initialModel(testConfig())
	out := m.View()
	assert.NotEmpty(t, out)

	tm, _ := m.Update(tea.MouseMsg{X: 0, Y: 0, Type: tea.MouseLeft})
	tm, _ = tm.Update(tea.MouseMsg{X: 0, Y: 0, Type: tea.MouseRelease})
	assert.NotEmpty(t, tm.View())
}

func TestWrongClaimMarked(t *testing.T) {
	m := castAll(t, newTestModel(t), "x - 1 >= 0")
	_, err := m.session.ClickRegion(m.session.Inequalities()[0].ID, ineq.RegionB)
	require.NoError(t, err)
	assert.Contains(t, m.View(), "A ✗ x - 1 ≥ 0")
}

func TestView(t *testing.T) {
	m := castAll(t, newTestModel(t), "2x - 3y + 1 >= 0")
	out := m.View()
	assert.Equal(t, 40, strings.Count(out, "\n")+1)
	assert.Contains(t, out, "Mode: NORMAL")
	assert.Contains(t, out, "A ? 2x - 3y + 1 ≥ 0")

	m = press(t, m, "?")
	assert.Contains(t, m.View(), "halfplane Help")
}
