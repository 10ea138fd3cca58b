package mutate

import (
	"montage/internal/model"
	"montage/internal/timeline"
)

type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

// MinItemDuration is the floor for any resize result, in seconds.
const MinItemDuration = 1.0

type ResizeResult struct {
	Changed bool
}

// ResizeHandle drags one edge of an item by delta seconds.
//
// End edge: duration grows/shrinks. A video without freeze mode is clamped
// to the source remaining past its crop start, with the crop window tracking
// the new duration so playback speed is preserved. With freeze mode the
// duration may exceed the source; the item then holds the frame at the crop
// boundary for the excess.
//
// Start edge: the start moves and the duration compensates inversely, with
// the crop start shifting the same way, symmetric freeze handling anchored
// at the crop start, and a floor at timeline zero.
//
// Images and groups resize freely apart from the 1s minimum. Both edges
// clamp against the nearest scoped sibling so a resize can never commit an
// overlap.
func ResizeHandle(st *model.EditorState, itemID, layerID string, edge Edge, delta float64, freezeMode bool) (ResizeResult, error) {
	layer, ok := st.FindLayer(layerID)
	if !ok {
		return ResizeResult{}, NotFoundError{Kind: "layer", ID: layerID}
	}
	idx := -1
	for i := range layer.Items {
		if layer.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ResizeResult{}, NotFoundError{Kind: "item", ID: itemID}
	}
	it := &layer.Items[idx]

	prevEnd, nextStart := neighborBounds(st, *layer, *it)

	switch edge {
	case EdgeEnd:
		resizeEnd(it, delta, freezeMode, nextStart)
	case EdgeStart:
		resizeStart(it, delta, freezeMode, prevEnd)
	default:
		return ResizeResult{}, nil
	}

	if g, ok := st.GroupOf(itemID); ok {
		RefreshGroupSpan(st, g.ID)
	}
	return ResizeResult{Changed: true}, nil
}

func resizeEnd(it *model.Item, delta float64, freezeMode bool, nextStart float64) {
	newDur := it.Duration + delta
	if nextStart >= 0 && it.Start+newDur > nextStart {
		newDur = nextStart - it.Start
	}
	if newDur < MinItemDuration {
		newDur = MinItemDuration
	}

	if it.Kind == model.ItemMedia && it.Media.Asset.Kind == model.AssetVideo {
		cropStart := 0.0
		if it.Media.Crop != nil {
			cropStart = it.Media.Crop.Start
		}
		native := it.Media.Asset.NativeDuration
		if !freezeMode {
			if max := native - cropStart; newDur > max && max >= MinItemDuration {
				newDur = max
			}
			it.Media.Crop = &model.VideoCrop{Start: cropStart, End: cropStart + newDur}
			it.Media.Freeze = nil
		} else {
			cropEnd := native
			if it.Media.Crop != nil {
				cropEnd = it.Media.Crop.End
			}
			if newDur > cropEnd-cropStart {
				it.Media.Freeze = &model.FreezeFrame{SourceTime: cropEnd}
			} else {
				it.Media.Crop = &model.VideoCrop{Start: cropStart, End: cropStart + newDur}
				it.Media.Freeze = nil
			}
		}
	}
	it.Duration = newDur
}

func resizeStart(it *model.Item, delta float64, freezeMode bool, prevEnd float64) {
	newStart := it.Start + delta
	if newStart < 0 {
		newStart = 0
	}
	if newStart < prevEnd {
		newStart = prevEnd
	}
	// Moving the start later shrinks the duration, and vice versa.
	d := newStart - it.Start
	newDur := it.Duration - d
	if newDur < MinItemDuration {
		d = it.Duration - MinItemDuration
		newStart = it.Start + d
		newDur = MinItemDuration
	}

	if it.Kind == model.ItemMedia && it.Media.Asset.Kind == model.AssetVideo {
		cropStart, cropEnd := 0.0, it.Media.Asset.NativeDuration
		if it.Media.Crop != nil {
			cropStart, cropEnd = it.Media.Crop.Start, it.Media.Crop.End
		}
		newCropStart := cropStart + d
		if newCropStart < 0 {
			if !freezeMode {
				// Cannot reveal source before its first frame: limit the
				// extension to the crop start.
				d = -cropStart
				newStart = it.Start + d
				newDur = it.Duration - d
				newCropStart = 0
			} else {
				// Freeze mode holds the first source frame for the extra
				// leading time instead.
				newCropStart = 0
				it.Media.Freeze = &model.FreezeFrame{SourceTime: cropStart}
			}
		}
		it.Media.Crop = &model.VideoCrop{Start: newCropStart, End: cropEnd}
	}

	it.Start = newStart
	it.Duration = newDur
}

// neighborBounds finds the closest scoped siblings on either side: the end
// of the latest item finishing at or before this one starts, and the start
// of the earliest item beginning at or after this one ends.
func neighborBounds(st *model.EditorState, layer model.Layer, it model.Item) (prevEnd, nextStart float64) {
	prevEnd = 0
	nextStart = -1
	for _, sib := range timeline.VisibleItems(st, layer, *st.ActiveTab()) {
		if sib.ID == it.ID {
			continue
		}
		if sib.End() <= it.Start && sib.End() > prevEnd {
			prevEnd = sib.End()
		}
		if sib.Start >= it.End() && (nextStart < 0 || sib.Start < nextStart) {
			nextStart = sib.Start
		}
	}
	return prevEnd, nextStart
}
