package timeline

import (
	"testing"

	"montage/internal/model"
)

func TestVisibleItems_MainScopeHidesGrouped(t *testing.T) {
	st := stateWithLayer(mediaItem("item-a", 0, 5), mediaItem("item-b", 6, 2))
	st.Layers = append(st.Layers, model.Layer{ID: model.GroupLayerID, Name: "Groups", Visible: true, Items: []model.Item{
		{
			ID: "item-g", Kind: model.ItemGroup, Start: 0, Duration: 5, LayerID: model.GroupLayerID,
			Group: &model.GroupFields{Name: "G", MemberIDs: []string{"item-a"}},
		},
	}})

	main := *st.ActiveTab()
	vis := VisibleItems(st, st.Layers[0], main)
	if len(vis) != 1 || vis[0].ID != "item-b" {
		t.Fatalf("main scope should hide grouped item-a, got %v", ids(vis))
	}

	groupTab := model.Tab{ID: "tab-g", Kind: model.TabGroup, MemberIDs: []string{"item-a"}, GroupID: "item-g"}
	vis = VisibleItems(st, st.Layers[0], groupTab)
	if len(vis) != 1 || vis[0].ID != "item-a" {
		t.Fatalf("group scope should show only members, got %v", ids(vis))
	}
}

func TestVisibleItems_SkipsDanglingMemberIDs(t *testing.T) {
	st := stateWithLayer(mediaItem("item-a", 0, 5))
	groupTab := model.Tab{ID: "tab-g", Kind: model.TabGroup, MemberIDs: []string{"item-a", "item-gone"}}
	vis := VisibleItems(st, st.Layers[0], groupTab)
	if len(vis) != 1 || vis[0].ID != "item-a" {
		t.Fatalf("dangling member ids must be skipped, got %v", ids(vis))
	}
}

func TestGroupBoundingSpan_OrderIndependent(t *testing.T) {
	st := stateWithLayer(mediaItem("item-a", 3, 4), mediaItem("item-b", 10, 2), mediaItem("item-c", 1, 1))
	for _, members := range [][]string{
		{"item-a", "item-b", "item-c"},
		{"item-c", "item-a", "item-b"},
		{"item-b", "item-c", "item-a"},
	} {
		start, dur, ok := GroupBoundingSpan(st, members)
		if !ok {
			t.Fatalf("span should resolve for %v", members)
		}
		if start != 1 || dur != 11 {
			t.Fatalf("span for %v = (%v,%v), want (1,11)", members, start, dur)
		}
	}
}

func TestGroupBoundingSpan_EmptyResolutionNotOK(t *testing.T) {
	st := stateWithLayer(mediaItem("item-a", 0, 5))
	if _, _, ok := GroupBoundingSpan(st, []string{"item-gone"}); ok {
		t.Fatalf("span over dangling members must report ok=false, not a default span")
	}
}

func TestTotalDuration_Floor(t *testing.T) {
	st := model.NewEditorState("proj-1", "Empty")
	if got := TotalDuration(st); got != DurationFloor {
		t.Fatalf("empty timeline duration = %v, want floor %v", got, DurationFloor)
	}
	st.Layers[0].Items = append(st.Layers[0].Items, mediaItem("item-a", 2, 1))
	if got := TotalDuration(st); got != DurationFloor {
		t.Fatalf("short timeline duration = %v, want floor %v", got, DurationFloor)
	}
	st.Layers[0].Items = append(st.Layers[0].Items, mediaItem("item-b", 4, 8))
	if got := TotalDuration(st); got != 12 {
		t.Fatalf("duration = %v, want 12", got)
	}
}

func ids(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
