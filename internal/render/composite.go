package render

import (
	"fmt"
	"sort"

	"montage/internal/model"
	"montage/internal/playback"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var mediaStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

// RenderMedia draws a media item's placeholder frame: the asset identity and
// the mapped source timestamp. Real decoding is the export sink's problem;
// showing the source time makes crop and freeze behavior visible and
// testable.
func RenderMedia(m model.MediaFields, tr model.Transform, rel float64, width int) string {
	src := playback.MediaSourceTime(m, rel)
	name := m.Asset.Name
	if name == "" {
		name = m.Asset.ID
	}
	label := fmt.Sprintf("%s [%s] src %.2fs", name, m.Asset.Kind, src)
	if m.Freeze != nil && src >= m.Freeze.SourceTime {
		label += " (hold)"
	}
	if tr.Opacity < 1 {
		label += fmt.Sprintf(" op %.2f", tr.Opacity)
	}
	return mediaStyle.Render(ansi.Truncate(label, width-4, "…"))
}

// Composite draws the full frame at time t: every visible item in the
// active scope, stacked in compositing order. Earlier layers draw above
// later ones, and component items sit above media items that share the
// moment. The result is a pure function of (state, t), which export relies
// on.
func Composite(reg *Registry, st *model.EditorState, t float64, width int) string {
	active := playback.VisibleAt(st, t)
	// VisibleAt walks layers in index order, so items arrive top-most
	// first. Components jump above media within the frame.
	sort.SliceStable(active, func(i, j int) bool {
		ci := active[i].Item.Kind == model.ItemComponent
		cj := active[j].Item.Kind == model.ItemComponent
		return ci && !cj
	})

	blocks := make([]string, 0, len(active))
	for _, a := range active {
		switch a.Item.Kind {
		case model.ItemComponent:
			blocks = append(blocks, reg.Render(a.Item.Component.Type, a.Item.Component.Properties, a.Rel, st.Playing, width))
		case model.ItemMedia:
			tr, ok := st.MediaProps[a.Item.ID]
			if !ok {
				tr = model.DefaultTransform()
			}
			blocks = append(blocks, RenderMedia(*a.Item.Media, tr, a.Rel, width))
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
