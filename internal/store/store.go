package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"montage/internal/model"
)

const (
	storeDirName = ".montage"
	docVersion   = 2
)

// LoadAttempts bounds the retry loop around a failing project read; backoff
// grows linearly between attempts.
const (
	LoadAttempts = 3
	LoadBackoff  = 100 * time.Millisecond
)

var ErrProjectNotFound = errors.New("project not found")

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an existing .montage dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, storeDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, storeDirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(filepath.Join(s.Dir, "projects"), 0o755)
}

func (s Store) projectPath(id string) string {
	return filepath.Join(s.Dir, "projects", id+".json")
}

// projectDoc is the wire shape of a persisted project. Persistence is
// whole-state: the entire layer/tab/property-bag graph is written on every
// save and read back on open.
type projectDoc struct {
	Version    int                        `json:"version"`
	ID         string                     `json:"id"`
	Name       string                     `json:"name"`
	Layers     []model.Layer              `json:"layers"`
	Tabs       []model.Tab                `json:"tabs"`
	Zoom       float64                    `json:"zoom"`
	MediaProps map[string]model.Transform `json:"mediaProps,omitempty"`
	Assets     []model.Asset              `json:"assets,omitempty"`
	UpdatedAt  time.Time                  `json:"updatedAt"`

	// Timeline is the version-1 flat item array, migrated into a single
	// synthesized layer on first load.
	Timeline []legacyTimelineItem `json:"timeline,omitempty"`
}

// LoadProject reads a project document, retrying transient failures with
// linear backoff before giving up. A missing project is not transient and
// fails immediately.
func (s Store) LoadProject(id string) (*model.EditorState, error) {
	var lastErr error
	for attempt := 1; attempt <= LoadAttempts; attempt++ {
		st, err := s.loadProjectOnce(id)
		if err == nil {
			return st, nil
		}
		if errors.Is(err, ErrProjectNotFound) {
			return nil, err
		}
		lastErr = err
		if attempt < LoadAttempts {
			time.Sleep(time.Duration(attempt) * LoadBackoff)
		}
	}
	return nil, fmt.Errorf("load project %s: %w", id, lastErr)
}

func (s Store) loadProjectOnce(id string) (*model.EditorState, error) {
	b, err := os.ReadFile(s.projectPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	var doc projectDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return docToState(&doc), nil
}

// SaveProject overwrites the whole project document. The write goes through
// a temp file and rename so a crash never leaves a torn document behind.
// In-memory state is untouched on failure, so nothing is lost; the caller
// surfaces the error and may retry.
func (s Store) SaveProject(st *model.EditorState) error {
	if st == nil || st.ProjectID == "" {
		return errors.New("save: no project")
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	doc := projectDoc{
		Version:    docVersion,
		ID:         st.ProjectID,
		Name:       st.ProjectName,
		Layers:     st.Layers,
		Tabs:       st.Tabs,
		Zoom:       st.Zoom,
		MediaProps: st.MediaProps,
		Assets:     st.Assets,
		UpdatedAt:  time.Now().UTC(),
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	path := s.projectPath(st.ProjectID)
	if _, err := os.Stat(path); err == nil {
		// Keep one backup generation of the previous document.
		_ = CopyFile(path, path+".bak")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	return s.touchProjectIndex(st.ProjectID, st.ProjectName)
}

// DeleteProject removes the document and its index row.
func (s Store) DeleteProject(id string) error {
	if err := os.Remove(s.projectPath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return s.removeProjectIndex(id)
}

func docToState(doc *projectDoc) *model.EditorState {
	st := &model.EditorState{
		ProjectID:   doc.ID,
		ProjectName: doc.Name,
		Layers:      doc.Layers,
		Tabs:        doc.Tabs,
		Zoom:        doc.Zoom,
		MediaProps:  doc.MediaProps,
		Assets:      doc.Assets,
		ActiveTabID: model.MainTabID,
	}
	if len(doc.Timeline) > 0 && len(st.Layers) == 0 {
		st.Layers = []model.Layer{migrateLegacyTimeline(doc.Timeline)}
	}
	if len(st.Layers) == 0 {
		st.Layers = []model.Layer{{ID: "layer-1", Name: "Layer 1", Visible: true}}
	}
	if len(st.Tabs) == 0 {
		st.Tabs = []model.Tab{{ID: model.MainTabID, Name: "Main", Kind: model.TabMain}}
	}
	if st.Zoom <= 0 {
		st.Zoom = 1
	}
	if st.MediaProps == nil {
		st.MediaProps = map[string]model.Transform{}
	}
	return st
}
