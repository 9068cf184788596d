package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
	ModeCoords
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSavePNG FileOperation = iota
	FileOpSaveVisualTXT
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmReset
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionAddSpell ActionType = iota
	ActionRemoveSpell
)

const (
	statusRows     = 2 // input line and status line below the board
	defaultPNGName = "halfplane.png"
	defaultTXTName = "halfplane.txt"
)
