// Package history keeps a linear undo/redo stack of whole-session
// snapshots. Snapshots are stored serialized; comparing the encoded bytes is
// what lets redundant captures be skipped cheaply.
package history

import (
	"bytes"
	"encoding/json"

	"montage/internal/model"
)

// MaxSnapshots caps the stack; the oldest entries fall off first.
const MaxSnapshots = 100

type Manager struct {
	snapshots [][]byte
	index     int // position of the current snapshot; -1 when empty
	applying  bool
}

func NewManager() *Manager {
	return &Manager{index: -1}
}

// Record captures the state unless it equals the current snapshot or an
// undo/redo application is in flight (the re-entrancy guard). Recording
// after an undo discards the redo tail. Callers debounce: a continuous drag
// should coalesce into one committed snapshot.
func (m *Manager) Record(st *model.EditorState) bool {
	if m.applying {
		return false
	}
	buf, err := json.Marshal(st)
	if err != nil {
		return false
	}
	if m.index >= 0 && bytes.Equal(m.snapshots[m.index], buf) {
		return false
	}
	m.snapshots = append(m.snapshots[:m.index+1], buf)
	if len(m.snapshots) > MaxSnapshots {
		m.snapshots = m.snapshots[len(m.snapshots)-MaxSnapshots:]
	}
	m.index = len(m.snapshots) - 1
	return true
}

func (m *Manager) CanUndo() bool { return m.index > 0 }
func (m *Manager) CanRedo() bool { return m.index >= 0 && m.index < len(m.snapshots)-1 }

// Undo steps back and returns the restored state. The second return is
// false when there is nothing to undo.
func (m *Manager) Undo() (*model.EditorState, bool) {
	if !m.CanUndo() {
		return nil, false
	}
	m.index--
	return m.decode(m.index)
}

func (m *Manager) Redo() (*model.EditorState, bool) {
	if !m.CanRedo() {
		return nil, false
	}
	m.index++
	return m.decode(m.index)
}

// Applying wraps the installation of an undone/redone state so the change
// it causes is not itself recorded.
func (m *Manager) Applying(fn func()) {
	m.applying = true
	defer func() { m.applying = false }()
	fn()
}

func (m *Manager) Len() int { return len(m.snapshots) }

func (m *Manager) decode(i int) (*model.EditorState, bool) {
	var st model.EditorState
	if err := json.Unmarshal(m.snapshots[i], &st); err != nil {
		return nil, false
	}
	if st.MediaProps == nil {
		st.MediaProps = map[string]model.Transform{}
	}
	return &st, true
}
