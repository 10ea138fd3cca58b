package mutate

import (
	"montage/internal/model"
	"montage/internal/timeline"
)

// AddMediaItem drops a fresh media item onto a layer. Fresh drops do not
// snap; if the preferred slot is taken the item goes after the layer's last
// item instead.
func AddMediaItem(st *model.EditorState, layerID string, asset model.Asset, preferred, duration float64) (*model.Item, error) {
	layer, ok := st.FindLayer(layerID)
	if !ok {
		return nil, NotFoundError{Kind: "layer", ID: layerID}
	}
	if duration <= 0 {
		if asset.Kind == model.AssetVideo && asset.NativeDuration > 0 {
			duration = asset.NativeDuration
		} else {
			duration = 4
		}
	}
	start := preferred
	if len(layer.Items) > 0 {
		start = timeline.FindNextAvailableTime(layer.Items, preferred, duration)
	}
	if !model.ValidPlacement(start, duration) {
		return nil, nil
	}
	it := model.Item{
		ID:       NewItemID(),
		Kind:     model.ItemMedia,
		Start:    start,
		Duration: duration,
		LayerID:  layerID,
		Media:    &model.MediaFields{Asset: asset},
	}
	layer.Items = append(layer.Items, it)
	st.MediaProps[it.ID] = model.DefaultTransform()
	return &layer.Items[len(layer.Items)-1], nil
}

// AddComponentItem drops a fresh component instance with its type's default
// properties (or the caller-provided bag).
func AddComponentItem(st *model.EditorState, layerID, componentID, componentType string, props map[string]any, preferred, duration float64) (*model.Item, error) {
	layer, ok := st.FindLayer(layerID)
	if !ok {
		return nil, NotFoundError{Kind: "layer", ID: layerID}
	}
	if duration <= 0 {
		duration = 5
	}
	start := preferred
	if len(layer.Items) > 0 {
		start = timeline.FindNextAvailableTime(layer.Items, preferred, duration)
	}
	if !model.ValidPlacement(start, duration) {
		return nil, nil
	}
	it := model.Item{
		ID:       NewItemID(),
		Kind:     model.ItemComponent,
		Start:    start,
		Duration: duration,
		LayerID:  layerID,
		Component: &model.ComponentFields{
			ComponentID: componentID,
			Type:        componentType,
			Properties:  props,
		},
	}
	layer.Items = append(layer.Items, it)
	return &layer.Items[len(layer.Items)-1], nil
}
