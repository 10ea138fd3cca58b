package model

type ItemKind string

const (
	ItemMedia     ItemKind = "media"
	ItemComponent ItemKind = "component"
	ItemGroup     ItemKind = "group"
)

type AssetKind string

const (
	AssetVideo AssetKind = "video"
	AssetImage AssetKind = "image"
)

type Asset struct {
	ID   string    `json:"id"`
	Name string    `json:"name,omitempty"`
	Kind AssetKind `json:"kind"`
	// NativeDuration is the source length in seconds. Zero for images.
	NativeDuration float64 `json:"nativeDuration,omitempty"`
}

// VideoCrop is a window into the source asset, in source seconds.
// Set by splitting or start-edge resizing so playback speed is preserved.
type VideoCrop struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (c VideoCrop) Length() float64 { return c.End - c.Start }

// FreezeFrame holds a single source frame once an item's timeline duration
// exceeds its cropped content length.
type FreezeFrame struct {
	SourceTime float64 `json:"sourceTime"`
}

// AnimBounds clamps the relative time handed to a component renderer after a
// split, so each half replays only its own slice of the animation.
type AnimBounds struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type MediaFields struct {
	Asset  Asset        `json:"asset"`
	Crop   *VideoCrop   `json:"crop,omitempty"`
	Freeze *FreezeFrame `json:"freeze,omitempty"`
}

type ComponentFields struct {
	ComponentID string         `json:"componentId"`
	Type        string         `json:"type"`
	Properties  map[string]any `json:"properties,omitempty"`
	Anim        *AnimBounds    `json:"anim,omitempty"`
}

type GroupFields struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

// Item is a placed, time-bounded unit on the timeline. Exactly one of
// Media/Component/Group is non-nil, selected by Kind.
type Item struct {
	ID    string   `json:"id"`
	Kind  ItemKind `json:"kind"`
	Start float64  `json:"start"`
	// Duration is strictly positive for every committed item.
	Duration float64 `json:"duration"`
	// LayerID is a back-reference for lookup; the layer's Items slice is the
	// authoritative collection.
	LayerID string `json:"layerId"`

	Media     *MediaFields     `json:"media,omitempty"`
	Component *ComponentFields `json:"component,omitempty"`
	Group     *GroupFields     `json:"group,omitempty"`
}

func (it Item) End() float64 { return it.Start + it.Duration }

// Layer items are kept in insertion order; temporal position comes from
// Start/Duration, never from slice index.
type Layer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Items   []Item `json:"items"`
}

// GroupLayerID is the reserved layer that holds group items. It never takes
// part in layer hit-testing or pruning.
const GroupLayerID = "layer-groups"

type TabKind string

const (
	TabMain  TabKind = "main"
	TabGroup TabKind = "group"
)

// MainTabID identifies the one tab that always exists and cannot be deleted
// or renamed.
const MainTabID = "tab-main"

type Tab struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Kind      TabKind  `json:"kind"`
	MemberIDs []string `json:"memberIds,omitempty"`
	// GroupID links a group tab back to its GroupItem.
	GroupID string `json:"groupId,omitempty"`
}

// Transform is the media property bag: canvas placement of a media item.
type Transform struct {
	Scale    float64 `json:"scale"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Opacity  float64 `json:"opacity"`
	Rotation float64 `json:"rotation"`
}

func DefaultTransform() Transform {
	return Transform{Scale: 1, Opacity: 1}
}

// EditorState is the whole editing session: everything the history manager
// snapshots and the store persists.
type EditorState struct {
	ProjectID   string  `json:"projectId"`
	ProjectName string  `json:"projectName,omitempty"`
	Layers      []Layer `json:"layers"`
	Tabs        []Tab   `json:"tabs"`
	ActiveTabID string  `json:"activeTabId"`
	Zoom        float64 `json:"zoom"`
	CurrentTime float64 `json:"currentTime"`
	Playing     bool    `json:"playing"`
	// MediaProps is keyed by item id. Split copies the source entry to both
	// new ids.
	MediaProps  map[string]Transform `json:"mediaProps,omitempty"`
	Assets      []Asset              `json:"assets,omitempty"`
	SelectedIDs []string             `json:"selectedIds,omitempty"`
}
