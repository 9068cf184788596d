package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"halfplane/internal/geometry"
	"halfplane/internal/ineq"
	"halfplane/internal/render"
	"halfplane/internal/session"
)

func main() {
	flags := pflag.NewFlagSet("halfplane", pflag.ExitOnError)
	export := flags.String("export", "", "render the spells to this PNG file and exit")
	flags.Int("width", 800, "export width in pixels")
	flags.Int("height", 600, "export height in pixels")
	flags.Float64("zoom", 40, "pixels per unit")
	spells := flags.StringArray("spell", nil, "spell to cast, may be repeated")
	solve := flags.Bool("solve", false, "claim the correct side of every spell")
	rcPath := flags.String("config", defaultRCPath(), "path of the rc file")
	flags.Parse(os.Args[1:])

	config, err := loadConfig(*rcPath, ".env", flags)
	if err != nil {
		log.Fatal(err)
	}

	if *export != "" {
		if err := runExport(config, *export, *spells, *solve); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("saved %s\n", config.GetSavePath(*export))
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("halfplane needs a terminal; use --export to render without one")
	}

	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "halfplane")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := initialModel(config)
	for _, text := range *spells {
		m.castSpell(text)
	}
	if *solve {
		m.session.SolveAll()
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config) model {
	s := session.New(session.Options{Zoom: config.Zoom})
	s.SetMessage(session.MessageInfo, "Press i to cast a spell")
	return model{
		session: s,
		mode:    ModeNormal,
		config:  config,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cols, rows := m.canvasSize()
		m.session.Resize(float64(cols)*render.CellWidth, float64(rows)*render.CellHeight)
		return m, nil

	case checkMsg:
		if msg.generation != m.generation || m.mode != ModeInput || msg.text != m.input {
			return m, nil
		}
		m.preview = m.session.Check(msg.text)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeInput:
			return m.handleInputKey(msg)
		case ModeCoords:
			return m.handleCoordsKey(msg)
		case ModeFileInput:
			return m.handleFileKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m *model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.clearMessages()
	key := msg.String()
	switch key {
	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "i":
		m.startInput("")
	case "tab":
		m.session.FocusNext()
	case " ":
		m.session.Activate()
		m.enterCoordsIfActive()
	case "c":
		if m.session.ActiveVertex() < 0 {
			m.errorMessage = "Select a vertex first"
			return m, nil
		}
		m.startCoords()
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		return m.handleNavigation(key, m.getMoveSpeed(key))
	case "+", "=", "-", "_":
		return m.handleZoom(key)
	case "d":
		q, ok := m.focusedSpell()
		if !ok {
			m.errorMessage = "No spell to remove"
			return m, nil
		}
		removed, i, err := m.session.Remove(q.ID)
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		data := SpellData{Spell: removed, Index: i}
		m.recordAction(ActionRemoveSpell, data, data)
		log.Printf("removed %s: %s", removed.Label, removed.Text)
	case "u":
		m.undo()
	case "U":
		m.redo()
	case "p":
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = "Clipboard: " + err.Error()
			return m, nil
		}
		m.startInput(cleanClipboardSpell(text))
		m.generation++
		return m, m.scheduleCheck()
	case "y":
		q, ok := m.focusedSpell()
		if !ok {
			m.errorMessage = "No spell to copy"
			return m, nil
		}
		if err := writeClipboardText(q.Text); err != nil {
			m.errorMessage = "Clipboard: " + err.Error()
			return m, nil
		}
		m.successMessage = fmt.Sprintf("Copied %s: %s", q.Label, q.Text)
	case "s":
		m.startFileInput(FileOpSavePNG, defaultPNGName)
	case "S":
		m.startFileInput(FileOpSaveVisualTXT, defaultTXTName)
	case "R":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmReset
			return m, nil
		}
		m.reset()
	}
	return m, nil
}

func (m *model) startInput(text string) {
	m.mode = ModeInput
	m.input = text
	m.inputCursor = len([]rune(text))
	m.preview = session.Message{}
}

func (m *model) startCoords() {
	m.mode = ModeCoords
	m.coords = [2]string{}
	m.coordField = 0
}

func (m *model) startFileInput(op FileOperation, name string) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = name
}

// enterCoordsIfActive switches to coordinate entry after a vertex was
// selected.
func (m *model) enterCoordsIfActive() {
	if m.session.ActiveVertex() >= 0 {
		m.startCoords()
	}
}

// scheduleCheck validates the current input once typing pauses.
func (m *model) scheduleCheck() tea.Cmd {
	gen, text := m.generation, m.input
	return tea.Tick(m.config.Debounce(), func(time.Time) tea.Msg {
		return checkMsg{generation: gen, text: text}
	})
}

// castSpell submits text and records it for undo.
func (m *model) castSpell(text string) bool {
	q, err := m.session.Submit(text)
	if err != nil {
		log.Printf("rejected %q: %v", text, err)
		return false
	}
	data := SpellData{Spell: q, Index: len(m.session.Inequalities()) - 1}
	m.recordAction(ActionAddSpell, data, data)
	log.Printf("cast %s: %s", q.Label, q.Text)
	return true
}

func (m *model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	runes := []rune(m.input)
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.input = ""
		m.preview = session.Message{}
		m.generation++
		return m, nil
	case msg.Type == tea.KeyEnter:
		if m.castSpell(m.input) {
			m.mode = ModeNormal
			m.input = ""
			m.preview = session.Message{}
			m.generation++
		}
		return m, nil
	case msg.Type == tea.KeyBackspace:
		if m.inputCursor == 0 {
			return m, nil
		}
		runes = append(runes[:m.inputCursor-1], runes[m.inputCursor:]...)
		m.inputCursor--
	case msg.Type == tea.KeyDelete:
		if m.inputCursor >= len(runes) {
			return m, nil
		}
		runes = append(runes[:m.inputCursor], runes[m.inputCursor+1:]...)
	case msg.Type == tea.KeyLeft:
		if m.inputCursor > 0 {
			m.inputCursor--
		}
		return m, nil
	case msg.Type == tea.KeyRight:
		if m.inputCursor < len(runes) {
			m.inputCursor++
		}
		return m, nil
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		ins := msg.Runes
		if msg.Type == tea.KeySpace {
			ins = []rune{' '}
		}
		tail := append([]rune{}, runes[m.inputCursor:]...)
		runes = append(append(runes[:m.inputCursor], ins...), tail...)
		m.inputCursor += len(ins)
	default:
		return m, nil
	}
	m.input = string(runes)
	m.generation++
	return m, m.scheduleCheck()
}

func (m *model) handleCoordsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
	case msg.Type == tea.KeyTab:
		m.coordField = 1 - m.coordField
	case msg.Type == tea.KeyEnter:
		if m.coordField == 0 && m.coords[1] == "" {
			m.coordField = 1
			return m, nil
		}
		status, err := m.session.SubmitCoordinates(m.coords[0], m.coords[1])
		if err != nil {
			return m, nil
		}
		if status == ineq.VertexActive {
			m.coords = [2]string{}
			m.coordField = 0
			return m, nil
		}
		m.mode = ModeNormal
	case msg.Type == tea.KeyBackspace:
		f := []rune(m.coords[m.coordField])
		if len(f) > 0 {
			m.coords[m.coordField] = string(f[:len(f)-1])
		}
	case msg.Type == tea.KeyRunes:
		m.coords[m.coordField] += string(msg.Runes)
	}
	return m, nil
}

func (m *model) handleFileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
	case msg.Type == tea.KeyEnter:
		if m.filename == "" {
			m.errorMessage = "Enter a filename"
			return m, nil
		}
		path := m.config.GetSavePath(m.filename)
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return m, nil
		}
		m.doExport(path)
	case msg.Type == tea.KeyBackspace:
		f := []rune(m.filename)
		if len(f) > 0 {
			m.filename = string(f[:len(f)-1])
		}
	case msg.Type == tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return m, nil
}

func (m *model) doExport(path string) {
	var err error
	switch m.fileOp {
	case FileOpSavePNG:
		err = m.exportPNG(path)
	case FileOpSaveVisualTXT:
		err = m.exportVisualTXT(path)
	}
	m.mode = ModeNormal
	if err != nil {
		log.Printf("export %s: %v", path, err)
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "Saved " + path
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmReset:
			m.reset()
		case ConfirmOverwriteFile:
			m.doExport(m.config.GetSavePath(m.filename))
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

// reset clears the board. Bumping the generation turns any validation tick
// still in flight into a no-op.
func (m *model) reset() {
	m.session.Reset()
	m.undoStack = nil
	m.redoStack = nil
	m.input = ""
	m.preview = session.Message{}
	m.generation++
	m.mode = ModeNormal
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal && m.mode != ModeCoords {
		return m, nil
	}
	_, rows := m.canvasSize()
	if msg.Y >= rows {
		return m, nil
	}
	p := render.CellCenter(msg.X, msg.Y)
	switch msg.Type {
	case tea.MouseLeft:
		m.session.PointerDown(p)
	case tea.MouseMotion:
		m.session.PointerMove(p)
	case tea.MouseRelease:
		t := m.session.PointerUp(p)
		if t.Kind == render.TargetVertex {
			if m.session.ActiveVertex() >= 0 {
				m.startCoords()
			} else {
				m.mode = ModeNormal
			}
		}
	case tea.MouseWheelUp:
		m.session.Wheel(p, 1)
	case tea.MouseWheelDown:
		m.session.Wheel(p, -1)
	}
	return m, nil
}

func (m *model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m, nil
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a"))
	barStyle     = lipgloss.NewStyle().Bold(true)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	cols, rows := m.canvasSize()
	grid := render.Terminal(m.session.Ops(), cols, rows)

	var result strings.Builder
	result.WriteString(strings.Join(grid.Lines(), "\n"))
	result.WriteString("\n")
	line := lipgloss.NewStyle().MaxWidth(cols)
	result.WriteString(line.Render(m.inputLine()))
	result.WriteString("\n")
	result.WriteString(line.Render(m.statusLine()))
	return result.String()
}

func (m model) inputLine() string {
	switch m.mode {
	case ModeInput:
		label, color := m.session.Next()
		runes := []rune(m.input)
		text := string(runes[:m.inputCursor]) + "█" + string(runes[m.inputCursor:])
		prompt := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(label + ": ")
		return prompt + text + "  " + styleMessage(m.preview)
	case ModeCoords:
		fields := [2]string{"x = " + m.coords[0], "y = " + m.coords[1]}
		fields[m.coordField] = barStyle.Render(fields[m.coordField] + "█")
		return fmt.Sprintf("Vertex: %s, %s", fields[0], fields[1])
	case ModeFileInput:
		op := "Export PNG"
		if m.fileOp == FileOpSaveVisualTXT {
			op = "Export TXT"
		}
		return fmt.Sprintf("%s filename: %s█", op, m.filename)
	case ModeConfirm:
		switch m.confirmAction {
		case ConfirmQuit:
			return "Quit halfplane? (y/n)"
		case ConfirmReset:
			return "Clear the board? (y/n)"
		case ConfirmOverwriteFile:
			return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		}
	}
	return m.spellSummary()
}

// spellSummary lists the spells with a mark for the solved ones.
func (m model) spellSummary() string {
	qs := m.session.Inequalities()
	if len(qs) == 0 {
		return dimStyle.Render("No spells yet")
	}
	parts := make([]string, len(qs))
	for i, q := range qs {
		mark := "?"
		switch {
		case geometry.ClaimCorrect(q):
			mark = "✓"
		case q.Solution.Solved():
			mark = "✗"
		}
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(q.Color))
		parts[i] = st.Render(fmt.Sprintf("%s %s %s", q.Label, mark, q.Text))
	}
	return strings.Join(parts, "  ")
}

func styleMessage(msg session.Message) string {
	switch msg.Kind {
	case session.MessageError:
		return errorStyle.Render(msg.Text)
	case session.MessageSuccess:
		return successStyle.Render(msg.Text)
	default:
		return dimStyle.Render(msg.Text)
	}
}

func (m model) statusLine() string {
	status := fmt.Sprintf("Mode: %s | Zoom: %.0f", m.modeString(), m.session.Transform().Zoom)
	if v := m.session.ActiveVertex(); v >= 0 {
		status += fmt.Sprintf(" | Vertex %d %s", v+1, m.session.Vertices()[v].Status)
	}
	switch {
	case m.errorMessage != "":
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " | " + successStyle.Render(m.successMessage)
	case m.session.Message().Text != "":
		status += " | " + styleMessage(m.session.Message())
	default:
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeInput:
		return "SPELL"
	case ModeCoords:
		return "VERTEX"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"halfplane Help",
	"==============",
	"",
	"Spells:",
	"-------",
	"  i                Type a spell, e.g. 2x - 3y + 1 >= 0 or y = 2x + 1",
	"  Enter            Cast the spell",
	"  Esc              Cancel typing",
	"  p                Paste a spell from the clipboard",
	"  y                Copy the focused (or last) spell",
	"  d                Remove the focused (or last) spell",
	"",
	"Solving:",
	"--------",
	"  Tab              Focus the next region marker or vertex",
	"  Space            Click the focused marker or vertex",
	"  Mouse click      Click a region marker or vertex",
	"  c                Enter coordinates for the selected vertex",
	"                   - Tab switches between x and y",
	"                   - answers are compared to one decimal place",
	"",
	"View:",
	"-----",
	"  h/←/j/↓/k/↑/l/→  Pan",
	"  Shift+h/j/k/l    Pan 2x faster",
	"  +/-              Zoom in/out",
	"  Mouse drag       Pan",
	"  Mouse wheel      Zoom about the pointer",
	"",
	"Files:",
	"------",
	"  s                Export the board as PNG",
	"  S                Export the board as text",
	"",
	"General:",
	"  u                Undo last cast or removal",
	"  U                Redo",
	"  R                Clear the board",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = len(helpLines) - visibleHeight
	}
	if startLine < 0 {
		startLine = 0
	}
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
