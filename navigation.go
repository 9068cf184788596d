package main

import tea "github.com/charmbracelet/bubbletea"

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	step := float64(m.config.PanStep * speed)
	switch key {
	case "h", "left", "H", "shift+left":
		m.session.Pan(step, 0)
	case "l", "right", "L", "shift+right":
		m.session.Pan(-step, 0)
	case "k", "up", "K", "shift+up":
		m.session.Pan(0, step)
	case "j", "down", "J", "shift+down":
		m.session.Pan(0, -step)
	}
	return m, nil
}

func (m *model) handleZoom(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "+", "=":
		m.session.Zoom(1)
	case "-", "_":
		m.session.Zoom(-1)
	}
	return m, nil
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
