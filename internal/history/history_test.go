package history

import (
	"fmt"
	"testing"

	"montage/internal/model"
)

func stateAt(zoom float64) *model.EditorState {
	st := model.NewEditorState("proj-1", "Test")
	st.Zoom = zoom
	return st
}

func TestRecord_SkipsRedundantSnapshots(t *testing.T) {
	m := NewManager()
	st := stateAt(1)
	if !m.Record(st) {
		t.Fatalf("first record should capture")
	}
	if m.Record(st) {
		t.Fatalf("unchanged state should not capture")
	}
	st.Zoom = 2
	if !m.Record(st) {
		t.Fatalf("changed state should capture")
	}
	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2", m.Len())
	}
}

func TestUndoRedo_Linear(t *testing.T) {
	m := NewManager()
	for _, z := range []float64{1, 2, 3} {
		m.Record(stateAt(z))
	}

	st, ok := m.Undo()
	if !ok || st.Zoom != 2 {
		t.Fatalf("first undo should restore zoom 2, got %+v ok=%v", st, ok)
	}
	st, ok = m.Undo()
	if !ok || st.Zoom != 1 {
		t.Fatalf("second undo should restore zoom 1")
	}
	if _, ok := m.Undo(); ok {
		t.Fatalf("undo past the first snapshot must fail")
	}
	st, ok = m.Redo()
	if !ok || st.Zoom != 2 {
		t.Fatalf("redo should restore zoom 2")
	}
}

func TestRecord_AfterUndoDiscardsRedoTail(t *testing.T) {
	m := NewManager()
	for _, z := range []float64{1, 2, 3} {
		m.Record(stateAt(z))
	}
	m.Undo() // back to zoom 2
	m.Record(stateAt(9))
	if m.CanRedo() {
		t.Fatalf("recording after undo must discard the redo tail")
	}
	st, _ := m.Undo()
	if st.Zoom != 2 {
		t.Fatalf("undo after branch should land on zoom 2, got %v", st.Zoom)
	}
}

func TestApplying_GuardsReentrantRecord(t *testing.T) {
	m := NewManager()
	m.Record(stateAt(1))
	m.Applying(func() {
		if m.Record(stateAt(5)) {
			t.Fatalf("record during apply must be suppressed")
		}
	})
	if !m.Record(stateAt(5)) {
		t.Fatalf("record after apply should work again")
	}
}

func TestCap_DropsOldest(t *testing.T) {
	m := NewManager()
	for i := 0; i < MaxSnapshots+10; i++ {
		st := stateAt(float64(i))
		st.ProjectName = fmt.Sprintf("v%d", i)
		m.Record(st)
	}
	if m.Len() != MaxSnapshots {
		t.Fatalf("len = %d, want cap %d", m.Len(), MaxSnapshots)
	}
	// Walk all the way back: the oldest surviving snapshot is #10.
	var last *model.EditorState
	for {
		st, ok := m.Undo()
		if !ok {
			break
		}
		last = st
	}
	if last == nil || last.Zoom != 10 {
		t.Fatalf("oldest surviving snapshot should be zoom 10, got %+v", last)
	}
}
