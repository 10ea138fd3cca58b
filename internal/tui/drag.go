package tui

import (
	"montage/internal/model"
	"montage/internal/mutate"
	"montage/internal/playback"
	"montage/internal/timeline"

	tea "github.com/charmbracelet/bubbletea"
)

// Layout rows, top to bottom: header, tab strip, preview pane, ruler, lane
// band, status, key help. The mouse mapping below and View share these.

func (m editorModel) laneBandRows() int {
	rows := 0
	for i := range timeline.LaneLayers(m.st) {
		rows += timeline.LaneRows(i)
	}
	return rows
}

// groupLaneRows is the height of the group lane drawn under the layer
// band; zero when no group shell is visible in the active scope.
func (m editorModel) groupLaneRows() int {
	if len(m.groupLaneItems()) > 0 {
		return timeline.GenericLaneRows
	}
	return 0
}

func (m editorModel) previewRows() int {
	// Give the preview what is left after the fixed chrome, within bounds.
	h := m.height - 2 - m.laneBandRows() - m.groupLaneRows() - 1 - 2 - 2
	if h > 12 {
		h = 12
	}
	if h < 4 {
		h = 4
	}
	return h
}

func (m editorModel) rulerRow() int { return 2 + m.previewRows() }

func (m editorModel) laneBandTop() int { return m.rulerRow() + 1 }

// viewOffset is the horizontal scroll of the track band when zoomed past
// the screen width; it follows the playhead.
func (m editorModel) viewOffset() int {
	vw := int(m.virtualWidth())
	tw := m.trackWidth()
	if vw <= tw {
		return 0
	}
	off := m.timeToCol(m.st.CurrentTime) - tw/2
	if off < 0 {
		off = 0
	}
	if off > vw-tw {
		off = vw - tw
	}
	return off
}

// screenToTime maps a screen x back to a timeline time, accounting for the
// lane label gutter and the zoom scroll.
func (m editorModel) screenToTime(x int) float64 {
	col := x - laneLabelWidth - 1 + m.viewOffset()
	if col < 0 {
		col = 0
	}
	return m.colToTime(col)
}

func (m editorModel) itemAt(laneIdx int, t float64) (*model.Item, *model.Layer, bool) {
	lanes := timeline.LaneLayers(m.st)
	if laneIdx < 0 || laneIdx >= len(lanes) {
		return nil, nil, false
	}
	tab := *m.st.ActiveTab()
	for _, it := range timeline.VisibleItems(m.st, lanes[laneIdx], tab) {
		if t >= it.Start && t < it.End() {
			return m.st.FindItem(it.ID)
		}
	}
	return nil, nil, false
}

func (m editorModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		playback.Seek(m.st, m.st.CurrentTime-m.cellTime())
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		playback.Seek(m.st, m.st.CurrentTime+m.cellTime())
		return m, nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.mousePress(msg.X, msg.Y)
	case msg.Action == tea.MouseActionMotion:
		return m.mouseMotion(msg.X, msg.Y)
	case msg.Action == tea.MouseActionRelease:
		return m.mouseRelease()
	}
	return m, nil
}

func (m editorModel) mousePress(x, y int) (tea.Model, tea.Cmd) {
	if y == m.rulerRow() {
		playback.Seek(m.st, m.screenToTime(x))
		return m, nil
	}
	rowOffset := y - m.laneBandTop()
	if rowOffset < 0 || rowOffset >= m.laneBandRows()+m.groupLaneRows() {
		return m, nil
	}
	t := m.screenToTime(x)
	if rowOffset >= m.laneBandRows() {
		return m.groupLanePress(x, y, t)
	}
	laneIdx, zone := timeline.HitTestLane(m.st, rowOffset)
	if zone != timeline.ZoneLane {
		return m, nil
	}
	it, layer, ok := m.itemAt(laneIdx, t)
	if !ok {
		m.selectedID = ""
		return m, nil
	}
	m.selectedID = it.ID
	m.drag = dragState{
		phase:       dragPending,
		itemID:      it.ID,
		fromLayerID: layer.ID,
		startX:      x,
		startY:      y,
		grabOffset:  t - it.Start,
		targetLayer: laneIdx,
		zone:        timeline.ZoneLane,
	}
	return m, nil
}

// groupLanePress selects (and arms a drag for) a group shell. Group drags
// stay on the reserved layer; only the start time moves.
func (m editorModel) groupLanePress(x, y int, t float64) (tea.Model, tea.Cmd) {
	for _, it := range m.groupLaneItems() {
		if t >= it.Start && t < it.End() {
			m.selectedID = it.ID
			m.drag = dragState{
				phase:       dragPending,
				itemID:      it.ID,
				fromLayerID: model.GroupLayerID,
				startX:      x,
				startY:      y,
				grabOffset:  t - it.Start,
				zone:        timeline.ZoneLane,
			}
			return m, nil
		}
	}
	m.selectedID = ""
	return m, nil
}

func (m editorModel) mouseMotion(x, y int) (tea.Model, tea.Cmd) {
	switch m.drag.phase {
	case dragPending:
		dx := x - m.drag.startX
		if dx < 0 {
			dx = -dx
		}
		dy := y - m.drag.startY
		if dy < 0 {
			dy = -dy
		}
		if dx < clickDragThresholdCells && dy < clickDragThresholdCells {
			return m, nil
		}
		m.drag.phase = dragActive
		fallthrough
	case dragActive:
		m.drag.proposedStart = m.screenToTime(x) - m.drag.grabOffset
		m.drag.targetLayer, m.drag.zone = timeline.HitTestLane(m.st, y-m.laneBandTop())
		return m, nil
	}
	return m, nil
}

func (m editorModel) mouseRelease() (tea.Model, tea.Cmd) {
	drag := m.drag
	m.drag = dragState{}
	if drag.phase != dragActive {
		// A plain click: the press already handled selection.
		return m, nil
	}
	lanes := timeline.LaneLayers(m.st)
	var targetID string
	switch {
	case drag.fromLayerID == model.GroupLayerID:
		// Group shells never leave the reserved layer.
		targetID = model.GroupLayerID
	case drag.zone == timeline.ZoneAbove:
		targetID = timeline.InsertLayerAbove(m.st)
	case drag.zone == timeline.ZoneBelow:
		targetID = timeline.InsertLayerBelow(m.st)
	default:
		if drag.targetLayer >= 0 && drag.targetLayer < len(lanes) {
			targetID = lanes[drag.targetLayer].ID
		} else {
			targetID = drag.fromLayerID
		}
	}
	res, err := mutate.MoveItem(m.st, drag.itemID, drag.fromLayerID, targetID, drag.proposedStart, m.resolveCtx())
	if err != nil || !res.Changed {
		// The proposal never left a valid placement; quietly settle.
		mm, pruneCmd := m.schedulePrune()
		return mm, pruneCmd
	}
	mm, snapCmd := m.afterMutation()
	mm, pruneCmd := mm.schedulePrune()
	return mm, tea.Batch(snapCmd, pruneCmd)
}
