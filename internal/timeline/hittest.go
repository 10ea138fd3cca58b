package timeline

import "montage/internal/model"

// Lane heights in rows. The first (primary) lane is taller so the main
// track reads as the anchor of the timeline.
const (
	PrimaryLaneRows = 3
	GenericLaneRows = 2
)

type HitZone int

const (
	ZoneLane HitZone = iota
	// ZoneAbove means the pointer sits above every lane; drops there create
	// a new layer on top.
	ZoneAbove
	// ZoneBelow means the pointer sits past the last lane; drops there
	// create a new layer at the bottom.
	ZoneBelow
)

// LaneLayers lists the hit-testable layers: everything except the reserved
// group layer.
func LaneLayers(st *model.EditorState) []model.Layer {
	var out []model.Layer
	for _, l := range st.Layers {
		if l.ID != model.GroupLayerID {
			out = append(out, l)
		}
	}
	return out
}

// LaneRows is the rendered height of the lane at index.
func LaneRows(index int) int {
	if index == 0 {
		return PrimaryLaneRows
	}
	return GenericLaneRows
}

// HitTestLane resolves a vertical offset inside the lane band to a layer
// index, or to one of the sentinel zones when the offset falls outside the
// band. The offset is measured in rows from the top of the first lane.
func HitTestLane(st *model.EditorState, rowOffset int) (int, HitZone) {
	if rowOffset < 0 {
		return -1, ZoneAbove
	}
	y := 0
	lanes := LaneLayers(st)
	for i := range lanes {
		y += LaneRows(i)
		if rowOffset < y {
			return i, ZoneLane
		}
	}
	return -1, ZoneBelow
}
