package tui

import (
	"context"
	"fmt"
	"time"

	"montage/internal/model"
	"montage/internal/mutate"
	"montage/internal/playback"
	"montage/internal/store"
	"montage/internal/timeline"

	tea "github.com/charmbracelet/bubbletea"
)

type playTickMsg struct{}

type snapshotTickMsg struct{ seq int }

type pruneTickMsg struct{ seq int }

type statusClearMsg struct{ seq int }

type saveResultMsg struct{ err error }

func playTick(fps int) tea.Cmd {
	if fps <= 0 {
		fps = playback.PreviewHz
	}
	step := time.Second / time.Duration(fps)
	return tea.Tick(step, func(time.Time) tea.Msg { return playTickMsg{} })
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		return m, nil

	case playTickMsg:
		if !m.st.Playing {
			return m, nil
		}
		playback.Advance(m.st, 1.0/float64(m.previewFPS()))
		if m.st.Playing {
			return m, playTick(m.previewFPS())
		}
		return m, nil

	case snapshotTickMsg:
		// Debounced: only the latest scheduled snapshot fires.
		if msg.seq == m.snapshotSeq {
			m.hist.Record(m.st)
		}
		return m, nil

	case pruneTickMsg:
		if msg.seq == m.pruneSeq && m.drag.phase == dragIdle {
			if timeline.PruneEmptyLayers(m.st) > 0 {
				return m.afterMutation()
			}
		}
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.statusIsErr = false
		}
		return m, nil

	case saveResultMsg:
		if msg.err != nil {
			// Nothing in memory is discarded; the user can retry with w.
			return m.flashError(fmt.Sprintf("save failed: %v (state kept, retry with w)", msg.err))
		}
		m.dirty = false
		return m.flash("saved")

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m editorModel) previewFPS() int {
	if m.cfg.PreviewFPS > 0 {
		return m.cfg.PreviewFPS
	}
	return playback.PreviewHz
}

// afterMutation schedules the debounced history snapshot every committed
// change funnels through.
func (m editorModel) afterMutation() (editorModel, tea.Cmd) {
	m.dirty = true
	m.snapshotSeq++
	seq := m.snapshotSeq
	return m, tea.Tick(snapshotDebounce, func(time.Time) tea.Msg { return snapshotTickMsg{seq: seq} })
}

func (m editorModel) schedulePrune() (editorModel, tea.Cmd) {
	m.pruneSeq++
	seq := m.pruneSeq
	return m, tea.Tick(pruneDelay, func(time.Time) tea.Msg { return pruneTickMsg{seq: seq} })
}

func (m editorModel) flash(text string) (editorModel, tea.Cmd) {
	m.statusMsg = text
	m.statusIsErr = false
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusClearMsg{seq: seq} })
}

func (m editorModel) flashError(text string) (editorModel, tea.Cmd) {
	mm, cmd := m.flash(text)
	mm.statusIsErr = true
	return mm, cmd
}

func (m editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		m.releaseLock()
		return m, tea.Quit

	case "?":
		m.modal = modalHelp
		return m, nil

	case " ":
		if m.st.Playing {
			m.st.Playing = false
			return m, nil
		}
		if m.st.CurrentTime >= m.total() {
			m.st.CurrentTime = 0
		}
		m.st.Playing = true
		return m, playTick(m.previewFPS())

	case "0", "home":
		playback.Seek(m.st, 0)
		return m, nil

	case "$", "end":
		playback.Seek(m.st, m.total())
		return m, nil

	case ",":
		playback.Seek(m.st, m.st.CurrentTime-m.cellTime())
		return m, nil

	case ".":
		playback.Seek(m.st, m.st.CurrentTime+m.cellTime())
		return m, nil

	case "+", "=":
		if m.st.Zoom < 8 {
			m.st.Zoom *= 2
		}
		return m, nil

	case "-":
		if m.st.Zoom > 0.25 {
			m.st.Zoom /= 2
		}
		return m, nil

	case "tab", "shift+tab":
		m = m.cycleTab(msg.String() == "tab")
		m.selectedID = ""
		m.markedIDs = map[string]bool{}
		return m, nil

	case "n", "down":
		m.cycleSelection(1)
		return m, nil

	case "p", "up":
		m.cycleSelection(-1)
		return m, nil

	case "v":
		if m.selectedID != "" {
			if m.markedIDs[m.selectedID] {
				delete(m.markedIDs, m.selectedID)
			} else {
				m.markedIDs[m.selectedID] = true
			}
		}
		return m, nil

	case "f":
		m.freezeMode = !m.freezeMode
		if m.freezeMode {
			return m.wrap(m.flash("freeze mode on: end-resize past source length holds the last frame"))
		}
		return m.wrap(m.flash("freeze mode off"))

	case "left", "right":
		return m.nudgeSelected(msg.String() == "right")

	case "K", "shift+up":
		return m.hopLayer(-1)

	case "J", "shift+down":
		return m.hopLayer(1)

	case ">":
		return m.resizeSelected(mutate.EdgeEnd, m.cellTime())

	case "<":
		return m.resizeSelected(mutate.EdgeEnd, -m.cellTime())

	case "]":
		return m.resizeSelected(mutate.EdgeStart, m.cellTime())

	case "[":
		return m.resizeSelected(mutate.EdgeStart, -m.cellTime())

	case "s":
		return m.splitSelected()

	case "x", "delete", "backspace":
		return m.deleteSelected()

	case "g":
		if len(m.markedIDs) == 0 {
			return m.wrap(m.flashError("mark items with v before grouping"))
		}
		m.modal = modalGroupName
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, nil

	case "G":
		return m.ungroupActive(false)

	case "X":
		return m.ungroupActive(true)

	case "c":
		if len(m.components) == 0 {
			return m.wrap(m.flashError("no components in catalog"))
		}
		m.modal = modalComponentPicker
		m.pickerIdx = 0
		return m, nil

	case "a":
		return m.addMediaAtPlayhead()

	case "u":
		return m.applyHistory(m.hist.Undo, "undo")

	case "r":
		return m.applyHistory(m.hist.Redo, "redo")

	case "w":
		return m, m.saveCmd()
	}
	return m, nil
}

// wrap adapts (editorModel, tea.Cmd) helpers to the tea.Model return type.
func (m editorModel) wrap(mm editorModel, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	return mm, cmd
}

func (m editorModel) cycleTab(forward bool) editorModel {
	if len(m.st.Tabs) == 0 {
		return m
	}
	cur := 0
	for i, t := range m.st.Tabs {
		if t.ID == m.st.ActiveTabID {
			cur = i
			break
		}
	}
	if forward {
		cur = (cur + 1) % len(m.st.Tabs)
	} else {
		cur = (cur - 1 + len(m.st.Tabs)) % len(m.st.Tabs)
	}
	m.st.ActiveTabID = m.st.Tabs[cur].ID
	return m
}

func (m *editorModel) cycleSelection(dir int) {
	seq := m.visibleSequence()
	if len(seq) == 0 {
		m.selectedID = ""
		return
	}
	cur := -1
	for i, it := range seq {
		if it.ID == m.selectedID {
			cur = i
			break
		}
	}
	cur += dir
	if cur < 0 {
		cur = len(seq) - 1
	}
	if cur >= len(seq) {
		cur = 0
	}
	m.selectedID = seq[cur].ID
}

func (m editorModel) nudgeSelected(forward bool) (tea.Model, tea.Cmd) {
	it, layer, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	step := m.cellTime()
	if !forward {
		step = -step
	}
	res, err := mutate.MoveItem(m.st, it.ID, layer.ID, layer.ID, it.Start+step, m.resolveCtx())
	if err != nil || !res.Changed {
		return m, nil
	}
	return m.wrap(m.afterMutation())
}

// hopLayer moves the selected item to the neighboring lane, creating a new
// layer when the hop leaves the band.
func (m editorModel) hopLayer(dir int) (tea.Model, tea.Cmd) {
	it, layer, ok := m.selectedItem()
	if !ok || it.Kind == model.ItemGroup {
		return m, nil
	}
	lanes := timeline.LaneLayers(m.st)
	cur := -1
	for i, l := range lanes {
		if l.ID == layer.ID {
			cur = i
			break
		}
	}
	if cur < 0 {
		return m, nil
	}
	target := cur + dir
	var targetID string
	switch {
	case target < 0:
		targetID = timeline.InsertLayerAbove(m.st)
	case target >= len(lanes):
		targetID = timeline.InsertLayerBelow(m.st)
	default:
		targetID = lanes[target].ID
	}
	res, err := mutate.MoveItem(m.st, it.ID, layer.ID, targetID, it.Start, m.resolveCtx())
	if err != nil || !res.Changed {
		return m, nil
	}
	mm, snapCmd := m.afterMutation()
	mm, pruneCmd := mm.schedulePrune()
	return mm, tea.Batch(snapCmd, pruneCmd)
}

func (m editorModel) resizeSelected(edge mutate.Edge, delta float64) (tea.Model, tea.Cmd) {
	it, layer, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	if _, err := mutate.ResizeHandle(m.st, it.ID, layer.ID, edge, delta, m.freezeMode); err != nil {
		return m, nil
	}
	return m.wrap(m.afterMutation())
}

func (m editorModel) splitSelected() (tea.Model, tea.Cmd) {
	it, layer, ok := m.selectedItem()
	if !ok {
		return m.wrap(m.flashError("nothing selected to split"))
	}
	res, err := mutate.SplitAt(m.st, it.ID, layer.ID, m.st.CurrentTime)
	if err != nil {
		return m.wrap(m.flashError(err.Error()))
	}
	if !res.Changed {
		return m.wrap(m.flashError("playhead is outside the selected item"))
	}
	m.selectedID = res.Left.ID
	return m.wrap(m.afterMutation())
}

func (m editorModel) deleteSelected() (tea.Model, tea.Cmd) {
	if m.selectedID == "" {
		return m, nil
	}
	if _, err := mutate.DeleteItem(m.st, m.selectedID); err != nil {
		return m.wrap(m.flashError(err.Error()))
	}
	delete(m.markedIDs, m.selectedID)
	m.selectedID = ""
	mm, snapCmd := m.afterMutation()
	mm, pruneCmd := mm.schedulePrune()
	return mm, tea.Batch(snapCmd, pruneCmd)
}

// ungroupActive dissolves (or with deleteMembers, fully deletes) the group
// backing the active tab.
func (m editorModel) ungroupActive(deleteMembers bool) (tea.Model, tea.Cmd) {
	tab := m.st.ActiveTab()
	if tab.Kind != model.TabGroup {
		return m.wrap(m.flashError("switch to a group tab first"))
	}
	groupID := tab.GroupID
	var err error
	if deleteMembers {
		_, err = mutate.DeleteGroup(m.st, groupID)
	} else {
		_, err = mutate.Ungroup(m.st, groupID)
	}
	if err != nil {
		return m.wrap(m.flashError(err.Error()))
	}
	m.selectedID = ""
	return m.wrap(m.afterMutation())
}

func (m editorModel) addMediaAtPlayhead() (tea.Model, tea.Cmd) {
	if len(m.st.Assets) == 0 {
		return m.wrap(m.flashError("no assets in the project library"))
	}
	layerID := m.dropTargetLayer()
	asset := m.st.Assets[0]
	it, err := mutate.AddMediaItem(m.st, layerID, asset, m.st.CurrentTime, 0)
	if err != nil || it == nil {
		return m.wrap(m.flashError("could not place media item"))
	}
	m.selectedID = it.ID
	return m.wrap(m.afterMutation())
}

// dropTargetLayer picks where fresh drops land: the selected item's layer,
// else the first lane.
func (m editorModel) dropTargetLayer() string {
	if _, layer, ok := m.selectedItem(); ok && layer.ID != model.GroupLayerID {
		return layer.ID
	}
	lanes := timeline.LaneLayers(m.st)
	if len(lanes) > 0 {
		return lanes[0].ID
	}
	return timeline.AddLayer(m.st, 0)
}

func (m editorModel) applyHistory(step func() (*model.EditorState, bool), label string) (tea.Model, tea.Cmd) {
	st, ok := step()
	if !ok {
		return m.wrap(m.flashError("nothing to " + label))
	}
	m.hist.Applying(func() {
		m.st = st
	})
	m.selectedID = ""
	m.markedIDs = map[string]bool{}
	m.dirty = true
	return m.wrap(m.flash(label))
}

func (m editorModel) saveCmd() tea.Cmd {
	s := m.store
	st := m.st.Clone()
	sessionID := m.sessionID
	return func() tea.Msg {
		if err := s.AcquireLock(context.Background(), st.ProjectID, sessionID); err != nil {
			return saveResultMsg{err: err}
		}
		return saveResultMsg{err: s.SaveProject(st)}
	}
}

func (m editorModel) releaseLock() {
	_ = m.store.ReleaseLock(context.Background(), m.st.ProjectID, m.sessionID)
}

func (m editorModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalHelp:
		m.modal = modalNone
		return m, nil

	case modalGroupName:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			return m, nil
		case "enter":
			ids := make([]string, 0, len(m.markedIDs))
			for id := range m.markedIDs {
				ids = append(ids, id)
			}
			res, err := mutate.CreateGroup(m.st, ids, m.nameInput.Value())
			m.modal = modalNone
			if err != nil {
				return m.wrap(m.flashError(err.Error()))
			}
			m.markedIDs = map[string]bool{}
			m.selectedID = ""
			mm, cmd := m.afterMutation()
			mm2, flashCmd := mm.flash(fmt.Sprintf("grouped into %q", res.Group.Group.Name))
			return mm2, tea.Batch(cmd, flashCmd)
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case modalComponentPicker:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			return m, nil
		case "up", "k":
			if m.pickerIdx > 0 {
				m.pickerIdx--
			}
			return m, nil
		case "down", "j":
			if m.pickerIdx < len(m.components)-1 {
				m.pickerIdx++
			}
			return m, nil
		case "enter":
			comp := m.components[m.pickerIdx]
			m.modal = modalNone
			props := store.DefaultProperties(m.components, comp.Type)
			it, err := mutate.AddComponentItem(m.st, m.dropTargetLayer(), comp.ID, comp.Type, props, m.st.CurrentTime, comp.Duration)
			if err != nil || it == nil {
				return m.wrap(m.flashError("could not place component"))
			}
			m.selectedID = it.ID
			return m.wrap(m.afterMutation())
		}
		return m, nil
	}
	return m, nil
}
