package model

// NewEditorState returns a minimal valid session: one empty layer, the main
// tab, default zoom.
func NewEditorState(projectID, projectName string) *EditorState {
	return &EditorState{
		ProjectID:   projectID,
		ProjectName: projectName,
		Layers: []Layer{
			{ID: "layer-1", Name: "Layer 1", Visible: true},
		},
		Tabs: []Tab{
			{ID: MainTabID, Name: "Main", Kind: TabMain},
		},
		ActiveTabID: MainTabID,
		Zoom:        1,
		MediaProps:  map[string]Transform{},
	}
}

func (st *EditorState) FindLayer(id string) (*Layer, bool) {
	for i := range st.Layers {
		if st.Layers[i].ID == id {
			return &st.Layers[i], true
		}
	}
	return nil, false
}

// FindItem scans every layer for the item. Returns the owning layer too,
// since most callers need both.
func (st *EditorState) FindItem(id string) (*Item, *Layer, bool) {
	for li := range st.Layers {
		l := &st.Layers[li]
		for ii := range l.Items {
			if l.Items[ii].ID == id {
				return &l.Items[ii], l, true
			}
		}
	}
	return nil, nil, false
}

func (st *EditorState) FindTab(id string) (*Tab, bool) {
	for i := range st.Tabs {
		if st.Tabs[i].ID == id {
			return &st.Tabs[i], true
		}
	}
	return nil, false
}

func (st *EditorState) ActiveTab() *Tab {
	if t, ok := st.FindTab(st.ActiveTabID); ok {
		return t
	}
	// Self-heal a dangling active tab rather than failing the render path.
	st.ActiveTabID = MainTabID
	t, _ := st.FindTab(MainTabID)
	return t
}

// GroupOf returns the group item whose membership contains itemID. An item
// belongs to at most one group.
func (st *EditorState) GroupOf(itemID string) (*Item, bool) {
	gl, ok := st.FindLayer(GroupLayerID)
	if !ok {
		return nil, false
	}
	for i := range gl.Items {
		g := &gl.Items[i]
		if g.Group == nil {
			continue
		}
		for _, id := range g.Group.MemberIDs {
			if id == itemID {
				return g, true
			}
		}
	}
	return nil, false
}

// GroupedIDs is the set of item ids referenced by any group's membership.
func (st *EditorState) GroupedIDs() map[string]bool {
	out := map[string]bool{}
	gl, ok := st.FindLayer(GroupLayerID)
	if !ok {
		return out
	}
	for _, g := range gl.Items {
		if g.Group == nil {
			continue
		}
		for _, id := range g.Group.MemberIDs {
			out[id] = true
		}
	}
	return out
}

func (st *EditorState) FindAsset(id string) (Asset, bool) {
	for _, a := range st.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// Clone deep-copies the whole session. History and tests rely on snapshots
// sharing nothing with the live state.
func (st *EditorState) Clone() *EditorState {
	cp := *st
	cp.Layers = make([]Layer, len(st.Layers))
	for i, l := range st.Layers {
		nl := l
		nl.Items = make([]Item, len(l.Items))
		for j, it := range l.Items {
			nl.Items[j] = it.Clone()
		}
		cp.Layers[i] = nl
	}
	cp.Tabs = make([]Tab, len(st.Tabs))
	for i, t := range st.Tabs {
		nt := t
		nt.MemberIDs = append([]string(nil), t.MemberIDs...)
		cp.Tabs[i] = nt
	}
	cp.MediaProps = make(map[string]Transform, len(st.MediaProps))
	for k, v := range st.MediaProps {
		cp.MediaProps[k] = v
	}
	cp.Assets = append([]Asset(nil), st.Assets...)
	cp.SelectedIDs = append([]string(nil), st.SelectedIDs...)
	return &cp
}

// Clone deep-copies an item, including its property bag.
func (it Item) Clone() Item {
	cp := it
	if it.Media != nil {
		m := *it.Media
		if it.Media.Crop != nil {
			c := *it.Media.Crop
			m.Crop = &c
		}
		if it.Media.Freeze != nil {
			f := *it.Media.Freeze
			m.Freeze = &f
		}
		cp.Media = &m
	}
	if it.Component != nil {
		c := *it.Component
		c.Properties = cloneProps(it.Component.Properties)
		if it.Component.Anim != nil {
			a := *it.Component.Anim
			c.Anim = &a
		}
		cp.Component = &c
	}
	if it.Group != nil {
		g := *it.Group
		g.MemberIDs = append([]string(nil), it.Group.MemberIDs...)
		cp.Group = &g
	}
	return cp
}

func cloneProps(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch vv := v.(type) {
		case map[string]any:
			out[k] = cloneProps(vv)
		case []any:
			cpList := make([]any, len(vv))
			for i, e := range vv {
				if m, ok := e.(map[string]any); ok {
					cpList[i] = cloneProps(m)
				} else {
					cpList[i] = e
				}
			}
			out[k] = cpList
		default:
			out[k] = v
		}
	}
	return out
}
