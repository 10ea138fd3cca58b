package timeline

import "montage/internal/model"

// DurationFloor keeps an empty timeline previewable: total duration never
// drops below this.
const DurationFloor = 5.0

// VisibleItems filters a layer's items to the active scope. Under the main
// tab, items absorbed into any group are hidden; under a group tab only that
// group's members show. Dangling member ids are skipped rather than treated
// as errors, keeping derived views robust mid-interaction.
func VisibleItems(st *model.EditorState, layer model.Layer, tab model.Tab) []model.Item {
	if tab.Kind == model.TabGroup {
		member := idSet(tab.MemberIDs)
		var out []model.Item
		for _, it := range layer.Items {
			if member[it.ID] {
				out = append(out, it)
			}
		}
		return out
	}
	grouped := st.GroupedIDs()
	var out []model.Item
	for _, it := range layer.Items {
		if !grouped[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

// InScope reports whether an item is visible under the given tab. Siblings
// for collision checks are restricted to the same scope, so items hidden in
// another group never fight main-timeline items for space.
func InScope(st *model.EditorState, itemID string, tab model.Tab) bool {
	if tab.Kind == model.TabGroup {
		for _, id := range tab.MemberIDs {
			if id == itemID {
				return true
			}
		}
		return false
	}
	return !st.GroupedIDs()[itemID]
}

// GroupBoundingSpan scans every layer for the member items and returns the
// span covering them all. ok is false when no member resolves; callers treat
// that as "the group no longer exists" and delete it rather than inventing a
// default span.
func GroupBoundingSpan(st *model.EditorState, memberIDs []string) (start, duration float64, ok bool) {
	member := idSet(memberIDs)
	first := true
	var minStart, maxEnd float64
	for _, l := range st.Layers {
		if l.ID == model.GroupLayerID {
			continue
		}
		for _, it := range l.Items {
			if !member[it.ID] {
				continue
			}
			if first || it.Start < minStart {
				minStart = it.Start
			}
			if first || it.End() > maxEnd {
				maxEnd = it.End()
			}
			first = false
		}
	}
	if first {
		return 0, 0, false
	}
	return minStart, maxEnd - minStart, true
}

// TotalDuration is the end of the last item across all layers, floored so an
// empty timeline still plays.
func TotalDuration(st *model.EditorState) float64 {
	max := 0.0
	for _, l := range st.Layers {
		for _, it := range l.Items {
			if end := it.End(); end > max {
				max = end
			}
		}
	}
	if max < DurationFloor {
		return DurationFloor
	}
	return max
}

func idSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
