package tui

import (
	"time"

	"montage/internal/config"
	"montage/internal/history"
	"montage/internal/model"
	"montage/internal/render"
	"montage/internal/store"
	"montage/internal/timeline"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const (
	// laneLabelWidth is the fixed column holding layer names left of the
	// tracks.
	laneLabelWidth = 12
	// clickDragThresholdCells disambiguates a click from a drag: pointer
	// travel under this many cells is a click and records no history.
	clickDragThresholdCells = 1
	// snapshotDebounce coalesces bursts of rapid mutation into one history
	// snapshot.
	snapshotDebounce = 100 * time.Millisecond
	// pruneDelay defers empty-layer pruning so a layer the user is mid-drag
	// into is not removed under the pointer.
	pruneDelay = 400 * time.Millisecond
	statusTTL  = 3 * time.Second
)

type modalKind int

const (
	modalNone modalKind = iota
	modalGroupName
	modalComponentPicker
	modalHelp
)

type dragPhase int

const (
	dragIdle dragPhase = iota
	dragPending
	dragActive
)

// dragState tracks one pointer gesture: idle → pending (button down, under
// the click threshold) → active (moving) → idle on release.
type dragState struct {
	phase       dragPhase
	itemID      string
	fromLayerID string
	startX      int
	startY      int
	// grabOffset keeps the grabbed cell under the pointer: time between the
	// item start and the grab point.
	grabOffset    float64
	proposedStart float64
	targetLayer   int
	zone          timeline.HitZone
}

type editorModel struct {
	store      store.Store
	cfg        config.Config
	reg        *render.Registry
	st         *model.EditorState
	hist       *history.Manager
	components []store.Component
	sessionID  string

	width          int
	height         int
	seenWindowSize bool

	selectedID string
	markedIDs  map[string]bool
	freezeMode bool
	drag       dragState

	modal     modalKind
	nameInput textinput.Model
	pickerIdx int

	statusMsg   string
	statusIsErr bool
	statusSeq   int
	dirty       bool

	snapshotSeq int
	pruneSeq    int
}

func newEditorModel(s store.Store, cfg config.Config, st *model.EditorState, components []store.Component) editorModel {
	hist := history.NewManager()
	hist.Record(st)

	ti := textinput.New()
	ti.Placeholder = "Group name"
	ti.CharLimit = 40

	return editorModel{
		store:      s,
		cfg:        cfg,
		reg:        render.NewRegistry(),
		st:         st,
		hist:       hist,
		components: components,
		sessionID:  "sess-" + uuid.NewString()[:8],
		markedIDs:  map[string]bool{},
		nameInput:  ti,
	}
}

func (m editorModel) Init() tea.Cmd { return nil }

// trackWidth is the on-screen width of the timeline tracks.
func (m editorModel) trackWidth() int {
	w := m.width - laneLabelWidth - 1
	if w < 20 {
		w = 20
	}
	return w
}

// virtualWidth is the zoom-scaled width used for time/cell conversion and
// for deriving snap tolerances, so snapping feels the same at every zoom.
func (m editorModel) virtualWidth() float64 {
	zoom := m.st.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return float64(m.trackWidth()) * zoom
}

func (m editorModel) total() float64 {
	return timeline.TotalDuration(m.st)
}

func (m editorModel) timeToCol(t float64) int {
	return int(t / m.total() * m.virtualWidth())
}

func (m editorModel) colToTime(col int) float64 {
	return float64(col) / m.virtualWidth() * m.total()
}

// cellTime is the duration one track cell spans; the step for keyboard
// nudges.
func (m editorModel) cellTime() float64 {
	return m.total() / m.virtualWidth()
}

func (m editorModel) resolveCtx() timeline.Context {
	return timeline.Context{
		WidthCells: m.virtualWidth(),
		Playhead:   m.st.CurrentTime,
		Total:      m.total(),
		Tab:        *m.st.ActiveTab(),
	}
}

func (m editorModel) selectedItem() (*model.Item, *model.Layer, bool) {
	if m.selectedID == "" {
		return nil, nil, false
	}
	return m.st.FindItem(m.selectedID)
}

// visibleSequence lists the active scope's items in lane order then start
// order, with the group lane last: the traversal order for selection
// cycling. Group shells are reachable here so they can be nudged, resized
// and deleted as single units.
func (m editorModel) visibleSequence() []model.Item {
	tab := *m.st.ActiveTab()
	var out []model.Item
	for _, l := range timeline.LaneLayers(m.st) {
		items := timeline.VisibleItems(m.st, l, tab)
		for i := 1; i < len(items); i++ {
			for j := i; j > 0 && items[j].Start < items[j-1].Start; j-- {
				items[j], items[j-1] = items[j-1], items[j]
			}
		}
		out = append(out, items...)
	}
	out = append(out, m.groupLaneItems()...)
	return out
}

// groupLaneItems returns the group shells visible in the active scope;
// empty under group tabs, where shells are never their own members.
func (m editorModel) groupLaneItems() []model.Item {
	layer, ok := m.st.FindLayer(model.GroupLayerID)
	if !ok {
		return nil
	}
	items := timeline.VisibleItems(m.st, *layer, *m.st.ActiveTab())
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].Start < items[j-1].Start; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
	return items
}
