package main

import (
	"halfplane/internal/ineq"
	"halfplane/internal/session"
)

type model struct {
	width          int
	height         int
	session        *session.Session
	mode           Mode
	help           bool
	helpScroll     int
	input          string
	inputCursor    int
	preview        session.Message
	generation     int // bumped on every edit; stale validation ticks are dropped
	coords         [2]string
	coordField     int
	filename       string
	fileOp         FileOperation
	confirmAction  ConfirmAction
	undoStack      []Action
	redoStack      []Action
	errorMessage   string
	successMessage string
	config         *Config
}

type Action struct {
	Type    ActionType
	Data    SpellData
	Inverse SpellData
}

// SpellData is a spell together with its position in the board's list.
type SpellData struct {
	Spell ineq.Inequality
	Index int
}

// checkMsg carries a debounced validation request.
type checkMsg struct {
	generation int
	text       string
}
