package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"montage/internal/model"
)

func testStore(t *testing.T) Store {
	t.Helper()
	return Store{Dir: filepath.Join(t.TempDir(), ".montage")}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	st := model.NewEditorState("proj-1", "Demo")
	st.Zoom = 2
	st.Layers[0].Items = append(st.Layers[0].Items, model.Item{
		ID: "item-1", Kind: model.ItemMedia, Start: 1, Duration: 4, LayerID: "layer-1",
		Media: &model.MediaFields{
			Asset: model.Asset{ID: "asset-1", Kind: model.AssetVideo, NativeDuration: 10},
			Crop:  &model.VideoCrop{Start: 2, End: 6},
		},
	})
	st.MediaProps["item-1"] = model.Transform{Scale: 1.5, Opacity: 0.8}

	if err := s.SaveProject(st); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	got, err := s.LoadProject("proj-1")
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if got.Zoom != 2 || got.ProjectName != "Demo" {
		t.Fatalf("round trip lost aggregate fields: %+v", got)
	}
	it, _, ok := got.FindItem("item-1")
	if !ok {
		t.Fatalf("item missing after round trip")
	}
	if it.Media.Crop == nil || it.Media.Crop.Start != 2 || it.Media.Crop.End != 6 {
		t.Fatalf("crop lost: %+v", it.Media.Crop)
	}
	if got.MediaProps["item-1"].Scale != 1.5 {
		t.Fatalf("media props lost")
	}
}

func TestLoadProject_MissingFailsFast(t *testing.T) {
	s := testStore(t)
	if err := s.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	_, err := s.LoadProject("proj-nope")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestLoadProject_MigratesLegacyTimeline(t *testing.T) {
	s := testStore(t)
	if err := s.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	legacy := `{
		"version": 1,
		"id": "proj-old",
		"name": "Old Project",
		"timeline": [
			{"id": "item-v", "type": "video", "startTime": 0, "duration": 5, "assetId": "asset-v", "nativeDuration": 12},
			{"id": "item-c", "type": "caption", "startTime": 5, "duration": 3, "properties": {"text": "hi"}},
			{"id": "item-bad", "type": "video", "startTime": -1, "duration": 0}
		]
	}`
	path := filepath.Join(s.Dir, "projects", "proj-old.json")
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy doc: %v", err)
	}

	st, err := s.LoadProject("proj-old")
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if len(st.Layers) != 1 {
		t.Fatalf("legacy timeline should migrate into one synthesized layer, got %d", len(st.Layers))
	}
	if len(st.Layers[0].Items) != 2 {
		t.Fatalf("expected 2 migrated items (bad one dropped), got %d", len(st.Layers[0].Items))
	}
	v := st.Layers[0].Items[0]
	if v.Kind != model.ItemMedia || v.Media.Asset.NativeDuration != 12 {
		t.Fatalf("video item migrated wrong: %+v", v)
	}
	c := st.Layers[0].Items[1]
	if c.Kind != model.ItemComponent || c.Component.Type != "caption" || c.Component.Properties["text"] != "hi" {
		t.Fatalf("component item migrated wrong: %+v", c)
	}
	if st.ActiveTabID != model.MainTabID || len(st.Tabs) != 1 {
		t.Fatalf("migrated project should get the main tab")
	}
}

func TestSaveProject_KeepsBackup(t *testing.T) {
	s := testStore(t)
	st := model.NewEditorState("proj-1", "Demo")
	if err := s.SaveProject(st); err != nil {
		t.Fatalf("first save: %v", err)
	}
	st.Zoom = 3
	if err := s.SaveProject(st); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir, "projects", "proj-1.json.bak")); err != nil {
		t.Fatalf("expected backup of previous document: %v", err)
	}
}

func TestProjectIndexAndLock(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	st := model.NewEditorState("proj-1", "Demo")
	if err := s.SaveProject(st); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	infos, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != "proj-1" || infos[0].Name != "Demo" {
		t.Fatalf("index row wrong: %+v", infos)
	}

	if err := s.AcquireLock(ctx, "proj-1", "sess-a"); err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	// Re-acquiring from the same session is fine.
	if err := s.AcquireLock(ctx, "proj-1", "sess-a"); err != nil {
		t.Fatalf("re-AcquireLock: %v", err)
	}
	if err := s.AcquireLock(ctx, "proj-1", "sess-b"); !errors.Is(err, ErrProjectLocked) {
		t.Fatalf("expected ErrProjectLocked for other session, got %v", err)
	}
	if err := s.ReleaseLock(ctx, "proj-1", "sess-a"); err != nil {
		t.Fatalf("ReleaseLock: %v", err)
	}
	if err := s.AcquireLock(ctx, "proj-1", "sess-b"); err != nil {
		t.Fatalf("lock should be free after release: %v", err)
	}
}

func TestListComponents_SeedsAndDefaults(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	comps, err := s.ListComponents(ctx)
	if err != nil {
		t.Fatalf("ListComponents: %v", err)
	}
	if len(comps) == 0 {
		t.Fatalf("catalog should seed built-in components")
	}
	props := DefaultProperties(comps, "caption")
	if props["text"] == "" {
		t.Fatalf("caption defaults missing text")
	}
	// Factory hands out copies, never the shared bag.
	props["text"] = "mutated"
	again := DefaultProperties(comps, "caption")
	if again["text"] == "mutated" {
		t.Fatalf("DefaultProperties must deep-copy the bag")
	}
}
