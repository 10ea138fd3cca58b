package timeline

import (
	"testing"

	"montage/internal/model"
)

func TestAddLayer_InsertsAtIndex(t *testing.T) {
	st := model.NewEditorState("proj-1", "Test")
	top := InsertLayerAbove(st)
	if st.Layers[0].ID != top {
		t.Fatalf("InsertLayerAbove should place the new layer first")
	}
	bottom := InsertLayerBelow(st)
	if st.Layers[len(st.Layers)-1].ID != bottom {
		t.Fatalf("InsertLayerBelow should place the new layer last")
	}
}

func TestInsertLayerBelow_StaysAboveGroupLayer(t *testing.T) {
	st := model.NewEditorState("proj-1", "Test")
	st.Layers = append(st.Layers, model.Layer{ID: model.GroupLayerID, Name: "Groups", Visible: true})
	id := InsertLayerBelow(st)
	if st.Layers[1].ID != id {
		t.Fatalf("new layer should slot after the last regular layer, before the group layer")
	}
	if st.Layers[len(st.Layers)-1].ID != model.GroupLayerID {
		t.Fatalf("group layer must remain last")
	}
}

func TestRemoveLayer_CleansGroupMembership(t *testing.T) {
	st := stateWithLayer(mediaItem("item-a", 0, 5))
	second := AddLayer(st, 1)
	l, _ := st.FindLayer(second)
	b := mediaItem("item-b", 6, 2)
	b.LayerID = second
	l.Items = append(l.Items, b)

	st.Layers = append(st.Layers, model.Layer{ID: model.GroupLayerID, Name: "Groups", Visible: true, Items: []model.Item{
		{
			ID: "item-g", Kind: model.ItemGroup, Start: 0, Duration: 8, LayerID: model.GroupLayerID,
			Group: &model.GroupFields{Name: "G", MemberIDs: []string{"item-a", "item-b"}},
		},
	}})
	st.Tabs = append(st.Tabs, model.Tab{ID: "tab-g", Name: "G", Kind: model.TabGroup, MemberIDs: []string{"item-a", "item-b"}, GroupID: "item-g"})

	if !RemoveLayer(st, second) {
		t.Fatalf("RemoveLayer failed")
	}
	g, ok := st.GroupOf("item-a")
	if !ok {
		t.Fatalf("group should survive with remaining member")
	}
	if len(g.Group.MemberIDs) != 1 || g.Group.MemberIDs[0] != "item-a" {
		t.Fatalf("membership should drop item-b, got %v", g.Group.MemberIDs)
	}
	tab, _ := st.FindTab("tab-g")
	if len(tab.MemberIDs) != 1 || tab.MemberIDs[0] != "item-a" {
		t.Fatalf("tab membership should drop item-b, got %v", tab.MemberIDs)
	}
}

func TestRemoveLayer_DeletesEmptiedGroup(t *testing.T) {
	st := stateWithLayer(mediaItem("item-a", 0, 5))
	st.Layers = append(st.Layers, model.Layer{ID: model.GroupLayerID, Name: "Groups", Visible: true, Items: []model.Item{
		{
			ID: "item-g", Kind: model.ItemGroup, Start: 0, Duration: 5, LayerID: model.GroupLayerID,
			Group: &model.GroupFields{Name: "G", MemberIDs: []string{"item-a"}},
		},
	}})
	st.Tabs = append(st.Tabs, model.Tab{ID: "tab-g", Name: "G", Kind: model.TabGroup, MemberIDs: []string{"item-a"}, GroupID: "item-g"})
	st.ActiveTabID = "tab-g"

	// Removing layer-1 orphans the group entirely; the group shell and its
	// tab must go, and the active tab must fall back to main.
	RemoveLayer(st, "layer-1")
	if _, ok := st.GroupOf("item-a"); ok {
		t.Fatalf("emptied group should be deleted")
	}
	if _, ok := st.FindTab("tab-g"); ok {
		t.Fatalf("emptied group's tab should be deleted")
	}
	if st.ActiveTabID != model.MainTabID {
		t.Fatalf("active tab should fall back to main, got %s", st.ActiveTabID)
	}
}

func TestPruneEmptyLayers_KeepsLastRegularLayer(t *testing.T) {
	st := model.NewEditorState("proj-1", "Test")
	AddLayer(st, 1)
	AddLayer(st, 2)
	st.Layers = append(st.Layers, model.Layer{ID: model.GroupLayerID, Name: "Groups", Visible: true})

	if pruned := PruneEmptyLayers(st); pruned != 2 {
		t.Fatalf("expected 2 pruned layers, got %d", pruned)
	}
	lanes := LaneLayers(st)
	if len(lanes) != 1 {
		t.Fatalf("one regular layer must survive, got %d", len(lanes))
	}
	if _, ok := st.FindLayer(model.GroupLayerID); !ok {
		t.Fatalf("group layer must never be pruned")
	}
}

func TestHitTestLane(t *testing.T) {
	st := model.NewEditorState("proj-1", "Test")
	AddLayer(st, 1)
	AddLayer(st, 2)

	if _, zone := HitTestLane(st, -1); zone != ZoneAbove {
		t.Fatalf("negative offset should hit above-all zone")
	}
	// Lane 0 is primary (3 rows), lanes 1-2 generic (2 rows each).
	for row, want := range map[int]int{0: 0, 2: 0, 3: 1, 4: 1, 5: 2, 6: 2} {
		idx, zone := HitTestLane(st, row)
		if zone != ZoneLane || idx != want {
			t.Fatalf("row %d: got lane %d zone %v, want lane %d", row, idx, zone, want)
		}
	}
	if _, zone := HitTestLane(st, 7); zone != ZoneBelow {
		t.Fatalf("offset past band should hit below-all zone")
	}
}
