package desktop

// StartCycle snapshots the currently focused client as cycle_start and
// enters cycling mode, run on the first Tab press with the activating
// modifier held.
func (m *Manager) StartCycle() {
	if m.Cycling {
		return
	}
	m.Cycling = true
	m.CycleStart = m.Focus
}

// Advance moves focus to the next (or, if back is true, previous)
// workspace-filtered registry entry, wrapping at list ends. CycleStart
// is not consulted: traversal does not stop after a full cycle.
func (m *Manager) Advance(back bool) {
	candidates := m.Reg.Collect(m.Current)
	if len(candidates) == 0 {
		return
	}
	if m.Focus == nil {
		m.Focus1(candidates[0])
		return
	}
	idx := -1
	for i, c := range candidates {
		if c == m.Focus {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.Focus1(candidates[0])
		return
	}
	var next int
	if back {
		next = (idx - 1 + len(candidates)) % len(candidates)
	} else {
		next = (idx + 1) % len(candidates)
	}
	m.Focus1(candidates[next])
}

// EndCycle exits cycling mode on modifier release. Focus remains
// wherever it last landed; there is no revert-on-cancel.
func (m *Manager) EndCycle() {
	m.Cycling = false
	m.CycleStart = nil
}
