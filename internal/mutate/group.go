package mutate

import (
	"fmt"

	"montage/internal/model"
	"montage/internal/timeline"
)

type GroupResult struct {
	Group   *model.Item
	Tab     *model.Tab
	Changed bool
}

// CreateGroup aggregates the named items into a GroupItem spanning their
// bounding interval, creates the matching group tab, and switches the
// editor into the new group's scope. Items already claimed by another group
// are rejected; membership is exclusive.
func CreateGroup(st *model.EditorState, itemIDs []string, name string) (GroupResult, error) {
	var members []string
	for _, id := range itemIDs {
		it, _, ok := st.FindItem(id)
		if !ok || it.Kind == model.ItemGroup {
			continue
		}
		if _, grouped := st.GroupOf(id); grouped {
			return GroupResult{}, ErrAlreadyGrouped
		}
		members = append(members, id)
	}
	if len(members) == 0 {
		return GroupResult{}, ErrNothingToGroup
	}
	start, dur, ok := timeline.GroupBoundingSpan(st, members)
	if !ok {
		return GroupResult{}, ErrNothingToGroup
	}

	gl, ok := st.FindLayer(model.GroupLayerID)
	if !ok {
		st.Layers = append(st.Layers, model.Layer{ID: model.GroupLayerID, Name: "Groups", Visible: true})
		gl = &st.Layers[len(st.Layers)-1]
	}
	if name == "" {
		name = fmt.Sprintf("Group %d", len(gl.Items)+1)
	}

	group := model.Item{
		ID:       NewItemID(),
		Kind:     model.ItemGroup,
		Start:    start,
		Duration: dur,
		LayerID:  model.GroupLayerID,
		Group:    &model.GroupFields{Name: name, MemberIDs: members},
	}
	gl.Items = append(gl.Items, group)

	tab := model.Tab{
		ID:        NewTabID(),
		Name:      name,
		Kind:      model.TabGroup,
		MemberIDs: append([]string(nil), members...),
		GroupID:   group.ID,
	}
	st.Tabs = append(st.Tabs, tab)
	st.ActiveTabID = tab.ID
	st.SelectedIDs = nil

	gi := &gl.Items[len(gl.Items)-1]
	ti := &st.Tabs[len(st.Tabs)-1]
	return GroupResult{Group: gi, Tab: ti, Changed: true}, nil
}

// Ungroup dissolves a group shell. Members are untouched; they simply show
// up under the main scope again, since visibility is scope-derived rather
// than stored per item.
func Ungroup(st *model.EditorState, groupID string) (bool, error) {
	if !groupExists(st, groupID) {
		return false, NotFoundError{Kind: "group", ID: groupID}
	}
	timeline.RemoveGroupShell(st, groupID)
	return true, nil
}

// DeleteGroup removes the group shell, its tab, and every member item.
func DeleteGroup(st *model.EditorState, groupID string) (bool, error) {
	gl, ok := st.FindLayer(model.GroupLayerID)
	if !ok {
		return false, NotFoundError{Kind: "group", ID: groupID}
	}
	var members []string
	found := false
	for _, g := range gl.Items {
		if g.ID == groupID && g.Group != nil {
			members = append(members, g.Group.MemberIDs...)
			found = true
			break
		}
	}
	if !found {
		return false, NotFoundError{Kind: "group", ID: groupID}
	}
	for _, id := range members {
		removeItemFromLayers(st, id)
		delete(st.MediaProps, id)
	}
	timeline.RemoveGroupShell(st, groupID)
	return true, nil
}

// RefreshGroupSpan rederives a group's span from its members after one of
// them moved, resized, or disappeared. A group whose members all resolved
// away is deleted outright.
func RefreshGroupSpan(st *model.EditorState, groupID string) {
	gl, ok := st.FindLayer(model.GroupLayerID)
	if !ok {
		return
	}
	for i := range gl.Items {
		g := &gl.Items[i]
		if g.ID != groupID || g.Group == nil {
			continue
		}
		start, dur, ok := timeline.GroupBoundingSpan(st, g.Group.MemberIDs)
		if !ok {
			timeline.RemoveGroupShell(st, groupID)
			return
		}
		g.Start, g.Duration = start, dur
		return
	}
}

func groupExists(st *model.EditorState, groupID string) bool {
	gl, ok := st.FindLayer(model.GroupLayerID)
	if !ok {
		return false
	}
	for _, g := range gl.Items {
		if g.ID == groupID && g.Group != nil {
			return true
		}
	}
	return false
}

func removeItemFromLayers(st *model.EditorState, itemID string) bool {
	for li := range st.Layers {
		l := &st.Layers[li]
		for ii := range l.Items {
			if l.Items[ii].ID == itemID {
				l.Items = append(l.Items[:ii], l.Items[ii+1:]...)
				return true
			}
		}
	}
	return false
}
