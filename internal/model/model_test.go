package model

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aDur float64
		bStart, bDur float64
		want         bool
	}{
		{"disjoint", 0, 5, 5, 3, false},
		{"touching edges do not overlap", 0, 5, 5, 1, false},
		{"partial", 0, 5, 4, 3, true},
		{"contained", 1, 2, 0, 10, true},
		{"identical", 2, 3, 2, 3, true},
		{"reverse disjoint", 8, 2, 0, 5, false},
	}
	for _, tc := range cases {
		if got := Overlaps(tc.aStart, tc.aDur, tc.bStart, tc.bDur); got != tc.want {
			t.Errorf("%s: Overlaps(%v,%v,%v,%v) = %v, want %v", tc.name, tc.aStart, tc.aDur, tc.bStart, tc.bDur, got, tc.want)
		}
	}
}

func TestValidPlacement(t *testing.T) {
	if !ValidPlacement(0, 1) {
		t.Fatalf("zero start with positive duration should be valid")
	}
	if ValidPlacement(-0.1, 1) {
		t.Fatalf("negative start should be invalid")
	}
	if ValidPlacement(0, 0) {
		t.Fatalf("zero duration should be invalid")
	}
	if ValidPlacement(5, -2) {
		t.Fatalf("negative duration should be invalid")
	}
}

func TestItemClone_DeepCopiesProperties(t *testing.T) {
	orig := Item{
		ID:   "item-1",
		Kind: ItemComponent,
		Component: &ComponentFields{
			Type: "caption",
			Properties: map[string]any{
				"color":  "red",
				"nested": map[string]any{"size": 12},
			},
		},
	}
	cp := orig.Clone()
	cp.Component.Properties["color"] = "blue"
	cp.Component.Properties["nested"].(map[string]any)["size"] = 99

	if orig.Component.Properties["color"] != "red" {
		t.Fatalf("clone shares top-level property map with original")
	}
	if orig.Component.Properties["nested"].(map[string]any)["size"] != 12 {
		t.Fatalf("clone shares nested property map with original")
	}
}

func TestEditorStateClone_Independent(t *testing.T) {
	st := NewEditorState("proj-1", "Demo")
	st.Layers[0].Items = append(st.Layers[0].Items, Item{
		ID: "item-1", Kind: ItemMedia, Start: 0, Duration: 5, LayerID: "layer-1",
		Media: &MediaFields{Asset: Asset{ID: "asset-1", Kind: AssetVideo, NativeDuration: 10}},
	})
	st.MediaProps["item-1"] = DefaultTransform()

	cp := st.Clone()
	cp.Layers[0].Items[0].Start = 99
	cp.MediaProps["item-1"] = Transform{Scale: 2}

	if st.Layers[0].Items[0].Start != 0 {
		t.Fatalf("clone shares layer items with original")
	}
	if st.MediaProps["item-1"].Scale != 1 {
		t.Fatalf("clone shares media props with original")
	}
}

func TestContentLength(t *testing.T) {
	video := MediaFields{Asset: Asset{Kind: AssetVideo, NativeDuration: 12}}
	if got := video.ContentLength(); got != 12 {
		t.Fatalf("uncropped video content length = %v, want 12", got)
	}
	video.Crop = &VideoCrop{Start: 2, End: 6}
	if got := video.ContentLength(); got != 4 {
		t.Fatalf("cropped video content length = %v, want 4", got)
	}
	image := MediaFields{Asset: Asset{Kind: AssetImage}}
	if got := image.ContentLength(); got != 0 {
		t.Fatalf("image content length = %v, want 0 (unbounded)", got)
	}
}
