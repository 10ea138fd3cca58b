package playback

import (
	"testing"

	"montage/internal/model"
	"montage/internal/timeline"
)

func TestAdvance_StopsAtEnd(t *testing.T) {
	st := model.NewEditorState("proj-1", "Test")
	st.Layers[0].Items = append(st.Layers[0].Items, model.Item{
		ID: "item-a", Kind: model.ItemMedia, Start: 0, Duration: 6, LayerID: "layer-1",
		Media: &model.MediaFields{Asset: model.Asset{Kind: model.AssetVideo, NativeDuration: 10}},
	})
	st.Playing = true
	st.CurrentTime = 5.9

	Advance(st, TickInterval)
	if !st.Playing {
		t.Fatalf("should still be playing before the end")
	}
	for i := 0; i < 10; i++ {
		Advance(st, TickInterval)
	}
	if st.Playing {
		t.Fatalf("playback must stop at the end, no auto-loop")
	}
	if st.CurrentTime != 6 {
		t.Fatalf("playhead = %v, want clamped to 6", st.CurrentTime)
	}
}

func TestAdvance_EmptyTimelineUsesFloor(t *testing.T) {
	st := model.NewEditorState("proj-1", "Empty")
	st.Playing = true
	for i := 0; i < 12*PreviewHz; i++ {
		Advance(st, TickInterval)
	}
	if st.CurrentTime != timeline.DurationFloor {
		t.Fatalf("empty timeline playhead stops at %v, want floor %v", st.CurrentTime, timeline.DurationFloor)
	}
}

func TestRelativeTime_Basics(t *testing.T) {
	it := model.Item{
		ID: "item-a", Kind: model.ItemComponent, Start: 3, Duration: 5,
		Component: &model.ComponentFields{Type: "caption"},
	}
	if _, ok := RelativeTime(it, 2.9); ok {
		t.Fatalf("before the item: not visible")
	}
	if _, ok := RelativeTime(it, 8); ok {
		t.Fatalf("at the exclusive end: not visible")
	}
	rel, ok := RelativeTime(it, 4.5)
	if !ok || rel != 1.5 {
		t.Fatalf("rel = %v ok=%v, want 1.5", rel, ok)
	}
}

func TestRelativeTime_SplitAnimBounds(t *testing.T) {
	// The right half of a split component replays [4,10) of the original
	// animation.
	it := model.Item{
		ID: "item-r", Kind: model.ItemComponent, Start: 4, Duration: 6,
		Component: &model.ComponentFields{Type: "caption", Anim: &model.AnimBounds{Start: 4, End: 10}},
	}
	rel, ok := RelativeTime(it, 4)
	if !ok || rel != 4 {
		t.Fatalf("at its start the right half resumes at anim offset 4, got %v", rel)
	}
	rel, _ = RelativeTime(it, 9.9)
	if rel > 10 {
		t.Fatalf("relative time %v exceeds the animation bounds", rel)
	}
}

func TestRelativeTime_FreezeFrameClamp(t *testing.T) {
	// Video cropped to [0,4) of source but stretched to 12s on the timeline
	// with freeze engaged: past 4s of relative time, the mapped source time
	// must hold at the freeze offset.
	it := model.Item{
		ID: "item-a", Kind: model.ItemMedia, Start: 0, Duration: 12,
		Media: &model.MediaFields{
			Asset:  model.Asset{Kind: model.AssetVideo, NativeDuration: 10},
			Crop:   &model.VideoCrop{Start: 0, End: 4},
			Freeze: &model.FreezeFrame{SourceTime: 4},
		},
	}
	for _, at := range []float64{5, 8, 11.9} {
		rel, ok := RelativeTime(it, at)
		if !ok {
			t.Fatalf("item should be visible at %v", at)
		}
		if rel > 4 {
			t.Fatalf("relative time %v at playhead %v exceeds cropped content", rel, at)
		}
		if src := MediaSourceTime(*it.Media, rel); src > 4 {
			t.Fatalf("source time %v exceeds freeze frame time", src)
		}
	}
	// Before the boundary the clip still advances normally.
	rel, _ := RelativeTime(it, 2.5)
	if rel != 2.5 {
		t.Fatalf("rel = %v, want 2.5 before freeze point", rel)
	}
	if src := MediaSourceTime(*it.Media, rel); src != 2.5 {
		t.Fatalf("src = %v, want 2.5", src)
	}
}

func TestMediaSourceTime_CropOffset(t *testing.T) {
	m := model.MediaFields{
		Asset: model.Asset{Kind: model.AssetVideo, NativeDuration: 10},
		Crop:  &model.VideoCrop{Start: 2, End: 6},
	}
	if src := MediaSourceTime(m, 1.5); src != 3.5 {
		t.Fatalf("src = %v, want crop start + rel = 3.5", src)
	}
	// Past the crop window without a freeze frame: hold the last frame.
	if src := MediaSourceTime(m, 7); src != 6 {
		t.Fatalf("src = %v, want clamp at crop end 6", src)
	}
}

func TestVisibleAt_SkipsHiddenLayersAndGroups(t *testing.T) {
	st := model.NewEditorState("proj-1", "Test")
	st.Layers[0].Items = append(st.Layers[0].Items,
		model.Item{ID: "item-a", Kind: model.ItemComponent, Start: 0, Duration: 5, LayerID: "layer-1",
			Component: &model.ComponentFields{Type: "caption"}},
		model.Item{ID: "item-b", Kind: model.ItemComponent, Start: 0, Duration: 5, LayerID: "layer-1",
			Component: &model.ComponentFields{Type: "caption"}},
	)
	st.Layers = append(st.Layers, model.Layer{ID: model.GroupLayerID, Name: "Groups", Visible: true, Items: []model.Item{
		{ID: "item-g", Kind: model.ItemGroup, Start: 0, Duration: 5, LayerID: model.GroupLayerID,
			Group: &model.GroupFields{Name: "G", MemberIDs: []string{"item-b"}}},
	}})

	active := VisibleAt(st, 1)
	if len(active) != 1 || active[0].Item.ID != "item-a" {
		t.Fatalf("main scope at t=1 should see only item-a, got %d items", len(active))
	}

	st.Layers[0].Visible = false
	if active := VisibleAt(st, 1); len(active) != 0 {
		t.Fatalf("hidden layers must not contribute items")
	}
}
