package tui

import (
	"fmt"
	"strings"

	"montage/internal/model"
	"montage/internal/render"
	"montage/internal/timeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m editorModel) View() string {
	if !m.seenWindowSize {
		return "loading..."
	}
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n")
	b.WriteString(m.previewView())
	b.WriteString("\n")
	b.WriteString(m.rulerView())
	b.WriteString("\n")
	b.WriteString(m.lanesView())
	if mv := m.modalView(); mv != "" {
		b.WriteString(mv)
		b.WriteString("\n")
	}
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m editorModel) headerView() string {
	name := m.st.ProjectName
	if name == "" {
		name = m.st.ProjectID
	}
	mark := ""
	if m.dirty {
		mark = " *"
	}
	freeze := ""
	if m.freezeMode {
		freeze = "  [freeze]"
	}
	playing := "paused"
	if m.st.Playing {
		playing = "playing"
	}
	left := styleHeader.Render("montage") + "  " + name + mark
	right := fmt.Sprintf("%.2fs / %.2fs  %s  zoom %gx%s",
		m.st.CurrentTime, m.total(), playing, m.st.Zoom, freeze)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + styleMuted.Render(right)
}

func (m editorModel) tabsView() string {
	parts := make([]string, 0, len(m.st.Tabs))
	for _, t := range m.st.Tabs {
		label := t.Name
		if label == "" {
			label = t.ID
		}
		if t.ID == m.st.ActiveTabID {
			parts = append(parts, styleTabActive.Render(" "+label+" "))
		} else {
			parts = append(parts, styleTab.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, styleMuted.Render("|"))
}

func (m editorModel) previewView() string {
	inner := m.width - 4
	if inner < 10 {
		inner = 10
	}
	content := render.Composite(m.reg, m.st, m.st.CurrentTime, inner)
	if content == "" {
		content = styleMuted.Render("(nothing at playhead)")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Width(inner).
		Height(m.previewRows() - 2).
		MaxHeight(m.previewRows())
	return box.Render(content)
}

func (m editorModel) rulerView() string {
	tw := m.trackWidth()
	off := m.viewOffset()
	cells := make([]byte, tw)
	for i := range cells {
		cells[i] = ' '
	}
	total := m.total()
	for s := 0.0; s <= total; s++ {
		c := m.timeToCol(s) - off
		if c < 0 || c >= tw {
			continue
		}
		cells[c] = '.'
		if int(s)%5 == 0 {
			label := fmt.Sprintf("%d", int(s))
			for j := 0; j < len(label) && c+j < tw; j++ {
				cells[c+j] = label[j]
			}
		}
	}
	line := string(cells)
	ph := m.timeToCol(m.st.CurrentTime) - off
	if ph >= 0 && ph < tw {
		line = line[:ph] + stylePlayhead.Render("v") + line[ph+1:]
	}
	return strings.Repeat(" ", laneLabelWidth+1) + line
}

func (m editorModel) lanesView() string {
	var b strings.Builder
	tab := *m.st.ActiveTab()
	for i, layer := range timeline.LaneLayers(m.st) {
		items := timeline.VisibleItems(m.st, layer, tab)
		for j := 1; j < len(items); j++ {
			for k := j; k > 0 && items[k].Start < items[k-1].Start; k-- {
				items[k], items[k-1] = items[k-1], items[k]
			}
		}
		rows := timeline.LaneRows(i)
		for r := 0; r < rows; r++ {
			if r == 0 {
				label := layer.Name
				if label == "" {
					label = layer.ID
				}
				if !layer.Visible {
					label += " (h)"
				}
				b.WriteString(styleLaneLabel.Render(label))
			} else {
				b.WriteString(strings.Repeat(" ", laneLabelWidth))
			}
			b.WriteString(" ")
			b.WriteString(m.trackLine(items, r == 0))
			b.WriteString("\n")
		}
	}
	if groups := m.groupLaneItems(); len(groups) > 0 {
		for r := 0; r < timeline.GenericLaneRows; r++ {
			if r == 0 {
				b.WriteString(styleLaneLabel.Render("Groups"))
			} else {
				b.WriteString(strings.Repeat(" ", laneLabelWidth))
			}
			b.WriteString(" ")
			b.WriteString(m.trackLine(groups, r == 0))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// trackLine renders one screen row of a lane: item blocks over a gap fill,
// with the playhead column marked inside gaps.
func (m editorModel) trackLine(items []model.Item, withLabels bool) string {
	tw := m.trackWidth()
	off := m.viewOffset()
	ph := m.timeToCol(m.st.CurrentTime) - off

	var b strings.Builder
	col := 0
	flushGap := func(to int) {
		for col < to {
			if col == ph {
				b.WriteString(stylePlayhead.Render("|"))
			} else {
				b.WriteString(" ")
			}
			col++
		}
	}
	for _, it := range items {
		s := m.timeToCol(it.Start) - off
		e := m.timeToCol(it.End()) - off
		if e-s < 1 {
			e = s + 1
		}
		if e <= 0 || s >= tw {
			continue
		}
		if s < col {
			s = col
		}
		if e > tw {
			e = tw
		}
		if s >= e {
			continue
		}
		flushGap(s)
		w := e - s
		label := ""
		if withLabels {
			label = ansi.Truncate(itemLabel(it), w, "")
		}
		pad := w - ansi.StringWidth(label)
		if pad < 0 {
			pad = 0
		}
		text := label + strings.Repeat(" ", pad)
		b.WriteString(m.itemStyle(it).Render(text))
		col = e
	}
	flushGap(tw)
	return b.String()
}

func itemLabel(it model.Item) string {
	switch it.Kind {
	case model.ItemMedia:
		if it.Media != nil {
			if it.Media.Freeze != nil {
				return it.Media.Asset.Name + " *"
			}
			return it.Media.Asset.Name
		}
		return "media"
	case model.ItemComponent:
		if it.Component != nil {
			return it.Component.Type
		}
		return "component"
	case model.ItemGroup:
		if it.Group != nil {
			return "[" + it.Group.Name + "]"
		}
		return "[group]"
	}
	return it.ID
}

func (m editorModel) itemStyle(it model.Item) lipgloss.Style {
	switch {
	case m.drag.phase == dragActive && it.ID == m.drag.itemID:
		return styleItemDragged
	case it.ID == m.selectedID:
		return styleItemSelected
	case m.markedIDs[it.ID]:
		return styleItemMarked
	}
	switch it.Kind {
	case model.ItemComponent:
		return styleItemComponent
	case model.ItemGroup:
		return styleItemGroup
	}
	return styleItemMedia
}

func (m editorModel) modalView() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)
	switch m.modal {
	case modalGroupName:
		return box.Render("Group " + fmt.Sprintf("%d", len(m.markedIDs)) + " items\n" +
			m.nameInput.View() + "\n" + styleMuted.Render("enter: create  esc: cancel"))
	case modalComponentPicker:
		var b strings.Builder
		b.WriteString("Add component\n")
		for i, c := range m.components {
			cursor := "  "
			line := fmt.Sprintf("%s (%s)", c.Name, c.Category)
			if i == m.pickerIdx {
				cursor = "> "
				line = styleTabActive.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
		b.WriteString(styleMuted.Render("enter: add at playhead  esc: cancel"))
		return box.Render(b.String())
	case modalHelp:
		return box.Render(helpText)
	}
	return ""
}

const helpText = `space play/pause    , . step    0/$ ends    +/- zoom
n/p select    v mark    g group    G ungroup    X delete group
left/right nudge    J/K change layer    < > resize end    [ ] resize start
s split    x delete    f freeze mode    a add media    c add component
u undo    r redo    w save    tab switch scope    q quit`

func (m editorModel) statusView() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusIsErr {
		return styleStatusErr.Render(m.statusMsg)
	}
	return styleMuted.Render(m.statusMsg)
}

func (m editorModel) helpView() string {
	return faintIfDark(styleMuted).Render("?: help  space: play  w: save  q: quit")
}
