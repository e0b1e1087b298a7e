package app

// CycleFocusForward moves focus to the next tile in the order list,
// wrapping around to the first tile after the last.
func (m *Model) CycleFocusForward() {
	if len(m.order) == 0 {
		return
	}
	idx := m.focusedIndex()
	m.focused = m.order[(idx+1)%len(m.order)]
}

// CycleFocusBackward moves focus to the previous tile in the order list,
// wrapping around to the last tile before the first.
func (m *Model) CycleFocusBackward() {
	if len(m.order) == 0 {
		return
	}
	idx := m.focusedIndex()
	m.focused = m.order[(idx-1+len(m.order))%len(m.order)]
}

// FocusTile directly sets focus to the tile with the given ID. If the ID
// is unknown, focus does not change.
func (m *Model) FocusTile(id string) {
	if _, ok := m.tiles[id]; ok {
		m.focused = id
	}
}

// ToggleExpand toggles the focused tile between normal and fullscreen. If
// a different tile is already expanded, expansion moves to the focused
// tile.
func (m *Model) ToggleExpand() {
	if m.focused == "" {
		return
	}
	if m.expanded == m.focused {
		m.expanded = ""
	} else {
		m.expanded = m.focused
	}
}

// focusedIndex returns the index of the focused tile in the order list,
// or 0 if not found.
func (m *Model) focusedIndex() int {
	for i, id := range m.order {
		if id == m.focused {
			return i
		}
	}
	return 0
}
