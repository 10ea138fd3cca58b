package mutate

import (
	"math"
	"testing"

	"montage/internal/model"
)

func videoState(items ...model.Item) *model.EditorState {
	st := model.NewEditorState("proj-1", "Test")
	for i := range items {
		items[i].LayerID = "layer-1"
	}
	st.Layers[0].Items = items
	return st
}

func video(id string, start, dur, native float64) model.Item {
	return model.Item{
		ID: id, Kind: model.ItemMedia, Start: start, Duration: dur,
		Media: &model.MediaFields{Asset: model.Asset{ID: "asset-1", Kind: model.AssetVideo, NativeDuration: native}},
	}
}

func component(id string, start, dur float64, props map[string]any) model.Item {
	return model.Item{
		ID: id, Kind: model.ItemComponent, Start: start, Duration: dur,
		Component: &model.ComponentFields{ComponentID: "comp-1", Type: "caption", Properties: props},
	}
}

func TestSplitAt_PartitionLaw(t *testing.T) {
	for _, cut := range []float64{0.5, 2, 4.999, 7.25} {
		st := videoState(video("item-1", 2, 8, 20))
		res, err := SplitAt(st, "item-1", "layer-1", 2+cut)
		if err != nil || !res.Changed {
			t.Fatalf("split at offset %v failed: %+v %v", cut, res, err)
		}
		if got := res.Left.Duration + res.Right.Duration; math.Abs(got-8) > 1e-9 {
			t.Fatalf("offset %v: durations sum to %v, want 8", cut, got)
		}
		if math.Abs(res.Right.Start-(res.Left.Start+res.Left.Duration)) > 1e-9 {
			t.Fatalf("offset %v: parts do not partition contiguously", cut)
		}
		if res.Left.ID == "item-1" || res.Right.ID == "item-1" || res.Left.ID == res.Right.ID {
			t.Fatalf("split must mint two fresh ids")
		}
		if len(st.Layers[0].Items) != 2 {
			t.Fatalf("split should replace one item with exactly two")
		}
	}
}

func TestSplitAt_EdgeCutsAreNoOps(t *testing.T) {
	st := videoState(video("item-1", 2, 8, 20))
	for _, at := range []float64{1, 2, 10, 11} {
		res, err := SplitAt(st, "item-1", "layer-1", at)
		if err != nil {
			t.Fatalf("split at %v errored: %v", at, err)
		}
		if res.Changed {
			t.Fatalf("split at boundary %v should be a no-op", at)
		}
	}
	if len(st.Layers[0].Items) != 1 {
		t.Fatalf("no-op splits must leave the layer untouched")
	}
}

func TestSplitAt_VideoCropWindows(t *testing.T) {
	st := videoState(video("item-1", 0, 10, 10))
	res, _ := SplitAt(st, "item-1", "layer-1", 4)
	left, right := res.Left, res.Right
	if left.Media.Crop == nil || right.Media.Crop == nil {
		t.Fatalf("both halves need crop windows")
	}
	if left.Media.Crop.Start != 0 || left.Media.Crop.End != 4 {
		t.Fatalf("left crop = %+v, want [0,4)", *left.Media.Crop)
	}
	if right.Media.Crop.Start != 4 || right.Media.Crop.End != 10 {
		t.Fatalf("right crop = %+v, want [4,10)", *right.Media.Crop)
	}

	// Splitting the right half again stacks the windows.
	rightID := right.ID
	res2, _ := SplitAt(st, rightID, "layer-1", 6)
	if res2.Left.Media.Crop.Start != 4 || res2.Left.Media.Crop.End != 6 {
		t.Fatalf("second split left crop = %+v, want [4,6)", *res2.Left.Media.Crop)
	}
	if res2.Right.Media.Crop.Start != 6 || res2.Right.Media.Crop.End != 10 {
		t.Fatalf("second split right crop = %+v, want [6,10)", *res2.Right.Media.Crop)
	}
}

func TestSplitAt_InheritsProperties(t *testing.T) {
	st := videoState(component("item-c1", 0, 10, map[string]any{"color": "red"}))
	res, err := SplitAt(st, "item-c1", "layer-1", 4)
	if err != nil || !res.Changed {
		t.Fatalf("split failed: %v", err)
	}
	left, right := res.Left, res.Right
	if left.Start != 0 || left.Duration != 4 || right.Start != 4 || right.Duration != 6 {
		t.Fatalf("spans = [%v,%v) [%v,%v), want [0,4) [4,10)", left.Start, left.End(), right.Start, right.End())
	}
	if left.Component.Properties["color"] != "red" || right.Component.Properties["color"] != "red" {
		t.Fatalf("both halves must inherit the property bag")
	}
	// Deep copies, not shared references.
	left.Component.Properties["color"] = "blue"
	if right.Component.Properties["color"] != "red" {
		t.Fatalf("halves share a property map")
	}
	if left.Component.Anim == nil || right.Component.Anim == nil {
		t.Fatalf("component halves need animation bounds")
	}
	if left.Component.Anim.End != 4 || right.Component.Anim.Start != 4 || right.Component.Anim.End != 10 {
		t.Fatalf("anim bounds wrong: left %+v right %+v", *left.Component.Anim, *right.Component.Anim)
	}
}

func TestSplitAt_CopiesMediaPropsBag(t *testing.T) {
	st := videoState(video("item-1", 0, 10, 10))
	st.MediaProps["item-1"] = model.Transform{Scale: 2, Opacity: 0.5}
	res, _ := SplitAt(st, "item-1", "layer-1", 5)
	if _, ok := st.MediaProps["item-1"]; ok {
		t.Fatalf("original bag entry should be gone")
	}
	for _, id := range []string{res.Left.ID, res.Right.ID} {
		tr, ok := st.MediaProps[id]
		if !ok || tr.Scale != 2 || tr.Opacity != 0.5 {
			t.Fatalf("bag entry for %s = %+v, want inherited transform", id, tr)
		}
	}
}

func TestSplitAt_ReplacesGroupMembership(t *testing.T) {
	st := videoState(video("item-1", 0, 10, 10), video("item-2", 12, 3, 10))
	if _, err := CreateGroup(st, []string{"item-1", "item-2"}, "G"); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	res, _ := SplitAt(st, "item-1", "layer-1", 5)

	g, ok := st.GroupOf(res.Left.ID)
	if !ok {
		t.Fatalf("left half should inherit group membership")
	}
	want := map[string]bool{res.Left.ID: true, res.Right.ID: true, "item-2": true}
	if len(g.Group.MemberIDs) != 3 {
		t.Fatalf("membership = %v, want both halves plus item-2", g.Group.MemberIDs)
	}
	for _, id := range g.Group.MemberIDs {
		if !want[id] {
			t.Fatalf("unexpected member %s", id)
		}
	}
}
