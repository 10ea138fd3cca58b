package mutate

import (
	"montage/internal/model"
	"montage/internal/timeline"
)

type MoveResult struct {
	Placement timeline.Placement
	Changed   bool
}

// MoveItem commits a drag: same-layer moves just update the start time,
// cross-layer moves re-home the item, both after running the proposal
// through the snap resolver against the target layer's scoped siblings.
// Video crop fields ride along untouched. Invalid proposals (negative
// start after resolution, missing ids) are dropped silently; drags must
// never crash the interaction.
func MoveItem(st *model.EditorState, itemID, fromLayerID, toLayerID string, newStart float64, ctx timeline.Context) (MoveResult, error) {
	from, ok := st.FindLayer(fromLayerID)
	if !ok {
		return MoveResult{}, NotFoundError{Kind: "layer", ID: fromLayerID}
	}
	idx := -1
	for i := range from.Items {
		if from.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return MoveResult{}, NotFoundError{Kind: "item", ID: itemID}
	}
	item := from.Items[idx]

	if !model.ValidPlacement(newStart, item.Duration) {
		return MoveResult{}, nil
	}
	placement := timeline.Resolve(st, itemID, toLayerID, newStart, item.Duration, ctx)
	if !model.ValidPlacement(placement.Start, item.Duration) {
		return MoveResult{}, nil
	}

	if fromLayerID == toLayerID {
		from.Items[idx].Start = placement.Start
	} else {
		to, ok := st.FindLayer(toLayerID)
		if !ok {
			return MoveResult{}, NotFoundError{Kind: "layer", ID: toLayerID}
		}
		from.Items = append(from.Items[:idx], from.Items[idx+1:]...)
		item.Start = placement.Start
		item.LayerID = toLayerID
		to.Items = append(to.Items, item)
	}

	if g, ok := st.GroupOf(itemID); ok {
		RefreshGroupSpan(st, g.ID)
	}
	return MoveResult{Placement: placement, Changed: true}, nil
}

// DeleteItem removes an item everywhere: its layer, its property bag, and
// any group membership. A group left without members is deleted too.
func DeleteItem(st *model.EditorState, itemID string) (bool, error) {
	it, _, ok := st.FindItem(itemID)
	if !ok {
		return false, NotFoundError{Kind: "item", ID: itemID}
	}
	if it.Kind == model.ItemGroup {
		return DeleteGroup(st, itemID)
	}
	group, grouped := st.GroupOf(itemID)
	var groupID string
	if grouped {
		groupID = group.ID
	}

	removeItemFromLayers(st, itemID)
	delete(st.MediaProps, itemID)
	dropMembership(st, itemID)
	if grouped {
		RefreshGroupSpan(st, groupID)
	}
	return true, nil
}

func dropMembership(st *model.EditorState, itemID string) {
	drop := func(ids []string) []string {
		out := ids[:0]
		for _, id := range ids {
			if id != itemID {
				out = append(out, id)
			}
		}
		return out
	}
	if gl, ok := st.FindLayer(model.GroupLayerID); ok {
		for i := range gl.Items {
			if gl.Items[i].Group != nil {
				gl.Items[i].Group.MemberIDs = drop(gl.Items[i].Group.MemberIDs)
			}
		}
	}
	for i := range st.Tabs {
		if st.Tabs[i].Kind == model.TabGroup {
			st.Tabs[i].MemberIDs = drop(st.Tabs[i].MemberIDs)
		}
	}
}
