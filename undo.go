package main

func (m *model) recordAction(actionType ActionType, data, inverse SpellData) {
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	m.undoStack = append(m.undoStack, action)
	m.redoStack = m.redoStack[:0]
}

// removeSpell pulls a spell off the board, keeping its latest state in d so
// a later redo or undo restores it solved or unsolved as it was.
func (m *model) removeSpell(d *SpellData) bool {
	q, i, err := m.session.Remove(d.Spell.ID)
	if err != nil {
		return false
	}
	d.Spell, d.Index = q, i
	return true
}

func (m *model) undo() {
	if len(m.undoStack) == 0 {
		return
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	switch action.Type {
	case ActionAddSpell:
		if !m.removeSpell(&action.Data) {
			return
		}
	case ActionRemoveSpell:
		data := action.Inverse
		m.session.Insert(data.Index, data.Spell)
	}

	m.redoStack = append(m.redoStack, action)
}

func (m *model) redo() {
	if len(m.redoStack) == 0 {
		return
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	switch action.Type {
	case ActionAddSpell:
		data := action.Data
		m.session.Insert(data.Index, data.Spell)
	case ActionRemoveSpell:
		if !m.removeSpell(&action.Inverse) {
			return
		}
	}

	m.undoStack = append(m.undoStack, action)
}
