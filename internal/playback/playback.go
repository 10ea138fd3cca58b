package playback

import (
	"montage/internal/model"
	"montage/internal/timeline"
)

// PreviewHz is the interactive playback tick rate.
const PreviewHz = 30

// TickInterval is the time step of one preview tick, in seconds.
const TickInterval = 1.0 / PreviewHz

// Advance moves the playhead by dt seconds while playing, clamped to the
// timeline. Reaching the end stops playback; there is no auto-loop.
func Advance(st *model.EditorState, dt float64) {
	if !st.Playing {
		return
	}
	total := timeline.TotalDuration(st)
	st.CurrentTime += dt
	if st.CurrentTime >= total {
		st.CurrentTime = total
		st.Playing = false
	}
}

// Seek places the playhead directly, clamped to [0, total].
func Seek(st *model.EditorState, t float64) {
	if t < 0 {
		t = 0
	}
	if total := timeline.TotalDuration(st); t > total {
		t = total
	}
	st.CurrentTime = t
}

// RelativeTime maps the global playhead to the renderer-facing time of one
// item. ok is false when the playhead is outside the item's interval. The
// value is zeroed to the item's start, shifted and clamped into the item's
// animation bounds when a split left any, and capped at the freeze-frame
// source offset once the cropped content is exhausted. Renderers are pure
// functions of this value, which is what makes preview and export agree
// frame for frame.
func RelativeTime(it model.Item, current float64) (float64, bool) {
	if current < it.Start || current >= it.End() {
		return 0, false
	}
	rel := current - it.Start

	if it.Kind == model.ItemComponent && it.Component.Anim != nil {
		rel += it.Component.Anim.Start
		if rel > it.Component.Anim.End {
			rel = it.Component.Anim.End
		}
	}
	if it.Kind == model.ItemMedia {
		// Once the cropped content is exhausted the clip holds rather than
		// advancing, whether from an explicit freeze frame or a duration
		// that outgrew the source.
		if content := it.Media.ContentLength(); content > 0 && rel > content {
			rel = content
		}
	}
	return rel, true
}

// MediaSourceTime converts an item-relative time into seconds inside the
// source asset, honoring the crop window and the freeze-frame hold.
func MediaSourceTime(m model.MediaFields, rel float64) float64 {
	cropStart := 0.0
	if m.Crop != nil {
		cropStart = m.Crop.Start
	}
	src := cropStart + rel
	if m.Freeze != nil && src > m.Freeze.SourceTime {
		return m.Freeze.SourceTime
	}
	if content := m.ContentLength(); content > 0 && src > cropStart+content {
		src = cropStart + content
	}
	return src
}

// VisibleAt lists, per layer in compositing order, the visible items whose
// interval contains the playhead, paired with their relative times.
type ActiveItem struct {
	Item model.Item
	Rel  float64
}

func VisibleAt(st *model.EditorState, current float64) []ActiveItem {
	tab := *st.ActiveTab()
	var out []ActiveItem
	for _, l := range st.Layers {
		if !l.Visible || l.ID == model.GroupLayerID {
			continue
		}
		for _, it := range timeline.VisibleItems(st, l, tab) {
			if rel, ok := RelativeTime(it, current); ok {
				out = append(out, ActiveItem{Item: it, Rel: rel})
			}
		}
	}
	return out
}
