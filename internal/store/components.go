package store

// builtinComponents is the seed catalog: one entry per built-in renderer
// type, with the default property bag a fresh drop starts from.
func builtinComponents() []Component {
	return []Component{
		{
			ID: "comp-caption", Name: "Caption", Type: "caption", Category: "text", Duration: 5,
			Defaults: map[string]any{"text": "Your caption here", "color": "7", "charsPerSecond": 20.0},
		},
		{
			ID: "comp-colorcard", Name: "Color Card", Type: "colorcard", Category: "background", Duration: 5,
			Defaults: map[string]any{"color": "4", "label": "", "height": 3.0},
		},
		{
			ID: "comp-countdown", Name: "Countdown", Type: "countdown", Category: "overlay", Duration: 10,
			Defaults: map[string]any{"from": 10.0},
		},
		{
			ID: "comp-chat", Name: "Chat Conversation", Type: "chat", Category: "simulator", Duration: 12,
			Defaults: map[string]any{"messages": []any{
				map[string]any{"from": "A", "text": "Hey!", "at": 0.0},
				map[string]any{"from": "B", "text": "What's up?", "at": 1.5},
			}},
		},
	}
}

// DefaultProperties returns a fresh deep copy of the default bag for a
// component type, so edits on one placed instance never bleed into another.
func DefaultProperties(components []Component, componentType string) map[string]any {
	for _, c := range components {
		if c.Type == componentType {
			return deepCopyBag(c.Defaults)
		}
	}
	return map[string]any{}
}

func deepCopyBag(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch vv := v.(type) {
		case map[string]any:
			out[k] = deepCopyBag(vv)
		case []any:
			cp := make([]any, len(vv))
			for i, e := range vv {
				if m, ok := e.(map[string]any); ok {
					cp[i] = deepCopyBag(m)
				} else {
					cp[i] = e
				}
			}
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}
