package mutate

import (
	"montage/internal/model"
)

type SplitResult struct {
	Left    *model.Item
	Right   *model.Item
	Changed bool
}

// SplitAt cuts an item in two at an absolute timeline time. The halves get
// fresh ids, partition the original span exactly, and deep-copy the
// original's property bags. Video items get crop windows so each half plays
// its own slice of the source at native speed; component items get clamped
// animation bounds the same way. A cut at or outside the item's edges is a
// no-op, as is cutting a group.
func SplitAt(st *model.EditorState, itemID, layerID string, at float64) (SplitResult, error) {
	layer, ok := st.FindLayer(layerID)
	if !ok {
		return SplitResult{}, NotFoundError{Kind: "layer", ID: layerID}
	}
	idx := -1
	for i := range layer.Items {
		if layer.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return SplitResult{}, NotFoundError{Kind: "item", ID: itemID}
	}
	orig := layer.Items[idx]
	if orig.Kind == model.ItemGroup {
		return SplitResult{}, nil
	}
	if at <= orig.Start || at >= orig.End() {
		return SplitResult{}, nil
	}

	offset := at - orig.Start
	left := orig.Clone()
	right := orig.Clone()
	left.ID = NewItemID()
	right.ID = NewItemID()
	left.Duration = offset
	right.Start = at
	right.Duration = orig.Duration - offset

	if orig.Kind == model.ItemMedia && orig.Media.Asset.Kind == model.AssetVideo {
		cropStart, cropEnd := 0.0, orig.Media.Asset.NativeDuration
		if orig.Media.Crop != nil {
			cropStart, cropEnd = orig.Media.Crop.Start, orig.Media.Crop.End
		}
		cut := cropStart + offset
		if cut > cropEnd {
			cut = cropEnd
		}
		left.Media.Crop = &model.VideoCrop{Start: cropStart, End: cut}
		right.Media.Crop = &model.VideoCrop{Start: cut, End: cropEnd}
	}
	if orig.Kind == model.ItemComponent {
		animStart, animEnd := 0.0, orig.Duration
		if orig.Component.Anim != nil {
			animStart, animEnd = orig.Component.Anim.Start, orig.Component.Anim.End
		}
		left.Component.Anim = &model.AnimBounds{Start: animStart, End: animStart + offset}
		right.Component.Anim = &model.AnimBounds{Start: animStart + offset, End: animEnd}
	}

	// Property bags keyed by the original id move to both halves.
	if tr, ok := st.MediaProps[orig.ID]; ok {
		st.MediaProps[left.ID] = tr
		st.MediaProps[right.ID] = tr
		delete(st.MediaProps, orig.ID)
	}

	layer.Items[idx] = left
	layer.Items = append(layer.Items, model.Item{})
	copy(layer.Items[idx+2:], layer.Items[idx+1:])
	layer.Items[idx+1] = right

	replaceMembership(st, orig.ID, left.ID, right.ID)

	li := &layer.Items[idx]
	ri := &layer.Items[idx+1]
	return SplitResult{Left: li, Right: ri, Changed: true}, nil
}

// replaceMembership swaps old for the two new ids in every group and group
// tab that referenced it.
func replaceMembership(st *model.EditorState, old string, repl ...string) {
	swap := func(ids []string) []string {
		out := make([]string, 0, len(ids)+len(repl)-1)
		for _, id := range ids {
			if id == old {
				out = append(out, repl...)
			} else {
				out = append(out, id)
			}
		}
		return out
	}
	if gl, ok := st.FindLayer(model.GroupLayerID); ok {
		for i := range gl.Items {
			if gl.Items[i].Group != nil {
				gl.Items[i].Group.MemberIDs = swap(gl.Items[i].Group.MemberIDs)
			}
		}
	}
	for i := range st.Tabs {
		if st.Tabs[i].Kind == model.TabGroup {
			st.Tabs[i].MemberIDs = swap(st.Tabs[i].MemberIDs)
		}
	}
}
