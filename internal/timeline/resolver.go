package timeline

import (
	"math"
	"sort"

	"montage/internal/model"
)

// Snap tolerances are expressed in terminal cells (the timeline's pixel
// unit) and converted to time against the current track width, so the felt
// tolerance stays constant across zoom levels.
const (
	// SnapThresholdCells is the on-screen distance within which a proposed
	// placement locks onto zero, the playhead, or a sibling edge.
	SnapThresholdCells = 3.0
	// EndBufferCells reserves a free-placement zone at the tail of the
	// timeline so an item can always be placed flush with or past the
	// current end without fighting the snap logic.
	EndBufferCells = 8.0
)

type SnapReason string

const (
	SnapNone          SnapReason = ""
	SnapToZero        SnapReason = "zero"
	SnapToPlayhead    SnapReason = "playhead"
	SnapAfterSibling  SnapReason = "after-sibling"
	SnapBeforeSibling SnapReason = "before-sibling"
	SnapToEdge        SnapReason = "edge"
)

type Placement struct {
	Start   float64
	Snapped bool
	Reason  SnapReason
}

// Context carries the view-dependent inputs of a resolve call.
type Context struct {
	// WidthCells is the timeline track width used to derive time tolerances.
	WidthCells float64
	Playhead   float64
	// Total is the timeline's total duration at the time of the gesture.
	Total float64
	// Tab scopes which siblings the moved item is checked against.
	Tab model.Tab
}

func (c Context) snapThreshold() float64 {
	w := c.WidthCells
	if w < 1 {
		w = 1
	}
	return SnapThresholdCells / w * c.Total
}

func (c Context) endBuffer() float64 {
	w := c.WidthCells
	if w < 1 {
		w = 1
	}
	return EndBufferCells / w * c.Total
}

// Resolve turns a proposed placement into a committed one. Checks run in a
// fixed priority order: zero snap, playhead snap, tail buffer free zone,
// then sibling overlap and edge snapping scoped to ctx.Tab. A proposal that
// triggers nothing comes back unchanged.
//
// Every returned placement is overlap-free against the scoped siblings: a
// snap candidate that would itself land on an occupied interval is skipped
// and resolution falls through to the next check, so the layer's
// no-overlap invariant holds at commit regardless of which branch fires.
func Resolve(st *model.EditorState, itemID, targetLayerID string, proposed, duration float64, ctx Context) Placement {
	threshold := ctx.snapThreshold()

	var siblings []model.Item
	if layer, ok := st.FindLayer(targetLayerID); ok {
		siblings = scopedSiblings(st, *layer, itemID, ctx.Tab)
	}
	clear := func(start float64) bool {
		for _, sib := range siblings {
			if model.Overlaps(start, duration, sib.Start, sib.Duration) {
				return false
			}
		}
		return true
	}

	if math.Abs(proposed) < threshold && clear(0) {
		return Placement{Start: 0, Snapped: proposed != 0, Reason: SnapToZero}
	}
	if math.Abs(proposed-ctx.Playhead) < threshold && clear(ctx.Playhead) {
		return Placement{Start: ctx.Playhead, Snapped: proposed != ctx.Playhead, Reason: SnapToPlayhead}
	}
	if proposed > ctx.Total-ctx.endBuffer() && clear(proposed) {
		return Placement{Start: proposed}
	}

	proposedEnd := proposed + duration
	for _, sib := range siblings {
		if model.Overlaps(proposed, duration, sib.Start, sib.Duration) {
			// Force out of the overlap toward whichever side needs the
			// smaller correction.
			beforeCorrection := math.Abs(proposedEnd - sib.Start)
			afterCorrection := math.Abs(proposed - sib.End())
			before := sib.Start - duration
			if beforeCorrection < afterCorrection && before >= 0 && clear(before) {
				return Placement{Start: before, Snapped: true, Reason: SnapBeforeSibling}
			}
			// Siblings are start-ordered, so walking past each occupied
			// interval in turn terminates at the first open slot.
			after := sib.End()
			for !clear(after) {
				for _, s2 := range siblings {
					if model.Overlaps(after, duration, s2.Start, s2.Duration) {
						after = s2.End()
						break
					}
				}
			}
			return Placement{Start: after, Snapped: true, Reason: SnapAfterSibling}
		}
		switch {
		case math.Abs(proposed-sib.Start) < threshold && clear(sib.Start):
			return Placement{Start: sib.Start, Snapped: proposed != sib.Start, Reason: SnapToEdge}
		case math.Abs(proposedEnd-sib.Start) < threshold && sib.Start-duration >= 0 && clear(sib.Start-duration):
			return Placement{Start: sib.Start - duration, Snapped: proposed != sib.Start-duration, Reason: SnapToEdge}
		case math.Abs(proposed-sib.End()) < threshold && clear(sib.End()):
			return Placement{Start: sib.End(), Snapped: proposed != sib.End(), Reason: SnapToEdge}
		}
	}
	return Placement{Start: proposed}
}

// scopedSiblings returns the target layer's items visible in the same scope
// as the moved item, excluding the item itself, ordered by start time so
// resolution is deterministic regardless of insertion order.
func scopedSiblings(st *model.EditorState, layer model.Layer, itemID string, tab model.Tab) []model.Item {
	visible := VisibleItems(st, layer, tab)
	out := visible[:0]
	for _, it := range visible {
		if it.ID != itemID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// FindNextAvailableTime places a fresh drop: if the preferred slot collides
// with anything on the layer, the item goes immediately after the item that
// starts last. Simpler than Resolve on purpose; initial drops do not snap.
func FindNextAvailableTime(items []model.Item, preferred, duration float64) float64 {
	collides := false
	for _, it := range items {
		if model.Overlaps(preferred, duration, it.Start, it.Duration) {
			collides = true
			break
		}
	}
	if !collides {
		return preferred
	}
	last := items[0]
	for _, it := range items[1:] {
		if it.Start > last.Start {
			last = it
		}
	}
	return last.End()
}
