package timeline

import (
	"fmt"

	"montage/internal/model"

	"github.com/google/uuid"
)

// NewLayerID returns a fresh layer id. Layer ids are opaque; the "layer-N"
// prefix only aids debugging.
func NewLayerID() string {
	return "layer-" + uuid.NewString()[:8]
}

// AddLayer inserts an empty visible layer at index. Out-of-range indexes
// clamp to the ends. Returns the new layer's id.
func AddLayer(st *model.EditorState, index int) string {
	if index < 0 {
		index = 0
	}
	if index > len(st.Layers) {
		index = len(st.Layers)
	}
	l := model.Layer{
		ID:      NewLayerID(),
		Name:    fmt.Sprintf("Layer %d", len(st.Layers)+1),
		Visible: true,
	}
	st.Layers = append(st.Layers, model.Layer{})
	copy(st.Layers[index+1:], st.Layers[index:])
	st.Layers[index] = l
	return l.ID
}

// InsertLayerAbove creates a layer before all existing ones, for drags that
// land above the layer band. Returns the new id so the caller can move the
// dragged item straight into it.
func InsertLayerAbove(st *model.EditorState) string {
	return AddLayer(st, 0)
}

// InsertLayerBelow creates a layer after all existing non-reserved layers.
func InsertLayerBelow(st *model.EditorState) string {
	idx := 0
	for i, l := range st.Layers {
		if l.ID == model.GroupLayerID {
			continue
		}
		idx = i + 1
	}
	return AddLayer(st, idx)
}

// RemoveLayer deletes a layer and its items. Group memberships referencing
// the removed items are cleaned up, and groups left empty are deleted along
// with their tabs (an empty group is never kept around).
func RemoveLayer(st *model.EditorState, layerID string) bool {
	idx := -1
	for i := range st.Layers {
		if st.Layers[i].ID == layerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	removed := map[string]bool{}
	for _, it := range st.Layers[idx].Items {
		removed[it.ID] = true
		delete(st.MediaProps, it.ID)
	}
	st.Layers = append(st.Layers[:idx], st.Layers[idx+1:]...)
	stripMembership(st, removed)
	return true
}

// stripMembership removes the given ids from every group's and group tab's
// member set, then drops groups whose membership emptied out.
func stripMembership(st *model.EditorState, ids map[string]bool) {
	gl, ok := st.FindLayer(model.GroupLayerID)
	if !ok {
		return
	}
	var emptied []string
	for i := range gl.Items {
		g := &gl.Items[i]
		if g.Group == nil {
			continue
		}
		g.Group.MemberIDs = filterIDs(g.Group.MemberIDs, ids)
		if len(g.Group.MemberIDs) == 0 {
			emptied = append(emptied, g.ID)
		}
	}
	for i := range st.Tabs {
		if st.Tabs[i].Kind == model.TabGroup {
			st.Tabs[i].MemberIDs = filterIDs(st.Tabs[i].MemberIDs, ids)
		}
	}
	for _, gid := range emptied {
		RemoveGroupShell(st, gid)
	}
}

// RemoveGroupShell deletes a group item and its tab, leaving member items
// (if any remain) untouched. Switches away from the group's tab if it was
// active.
func RemoveGroupShell(st *model.EditorState, groupID string) {
	if gl, ok := st.FindLayer(model.GroupLayerID); ok {
		for i := range gl.Items {
			if gl.Items[i].ID == groupID {
				gl.Items = append(gl.Items[:i], gl.Items[i+1:]...)
				break
			}
		}
	}
	for i := range st.Tabs {
		if st.Tabs[i].Kind == model.TabGroup && st.Tabs[i].GroupID == groupID {
			if st.ActiveTabID == st.Tabs[i].ID {
				st.ActiveTabID = model.MainTabID
			}
			st.Tabs = append(st.Tabs[:i], st.Tabs[i+1:]...)
			break
		}
	}
}

// PruneEmptyLayers drops layers with no items. The reserved group layer and
// the last remaining regular layer survive, so the timeline always has
// somewhere to drop onto. Callers debounce this so a layer the user is
// mid-drag into is not yanked away.
func PruneEmptyLayers(st *model.EditorState) int {
	regular := 0
	for _, l := range st.Layers {
		if l.ID != model.GroupLayerID {
			regular++
		}
	}
	pruned := 0
	out := st.Layers[:0]
	for _, l := range st.Layers {
		if l.ID != model.GroupLayerID && len(l.Items) == 0 && regular-pruned > 1 {
			pruned++
			continue
		}
		out = append(out, l)
	}
	st.Layers = out
	return pruned
}

func filterIDs(ids []string, drop map[string]bool) []string {
	out := ids[:0]
	for _, id := range ids {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}
