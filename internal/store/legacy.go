package store

import (
	"fmt"

	"montage/internal/model"
)

// legacyTimelineItem is the version-1 flat timeline entry: no layers, item
// kind inferred from which fields are set.
type legacyTimelineItem struct {
	ID             string         `json:"id"`
	Type           string         `json:"type"`
	Start          float64        `json:"startTime"`
	Duration       float64        `json:"duration"`
	AssetID        string         `json:"assetId,omitempty"`
	NativeDuration float64        `json:"nativeDuration,omitempty"`
	ComponentID    string         `json:"componentId,omitempty"`
	Properties     map[string]any `json:"properties,omitempty"`
}

// migrateLegacyTimeline lifts a flat item array into a single synthesized
// layer. Entries with unusable spans are dropped rather than imported
// broken.
func migrateLegacyTimeline(items []legacyTimelineItem) model.Layer {
	layer := model.Layer{ID: "layer-1", Name: "Layer 1", Visible: true}
	for i, li := range items {
		if li.Duration <= 0 || li.Start < 0 {
			continue
		}
		id := li.ID
		if id == "" {
			id = fmt.Sprintf("item-legacy-%d", i)
		}
		it := model.Item{
			ID:       id,
			Start:    li.Start,
			Duration: li.Duration,
			LayerID:  layer.ID,
		}
		switch li.Type {
		case "video", "image":
			it.Kind = model.ItemMedia
			kind := model.AssetVideo
			if li.Type == "image" {
				kind = model.AssetImage
			}
			it.Media = &model.MediaFields{Asset: model.Asset{
				ID:             li.AssetID,
				Kind:           kind,
				NativeDuration: li.NativeDuration,
			}}
		default:
			it.Kind = model.ItemComponent
			it.Component = &model.ComponentFields{
				ComponentID: li.ComponentID,
				Type:        li.Type,
				Properties:  li.Properties,
			}
		}
		layer.Items = append(layer.Items, it)
	}
	return layer
}
