// Package render maps (component type, properties, relative time) to visual
// output. Renderers must be pure functions of their inputs; the playback
// mapping relies on that for preview and export to agree frame for frame.
package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Func renders one component at one relative time into a text block no
// wider than width.
type Func func(props map[string]any, rel float64, playing bool, width int) string

type Registry struct {
	renderers map[string]Func
}

// NewRegistry returns a registry preloaded with the built-in component
// renderers.
func NewRegistry() *Registry {
	r := &Registry{renderers: map[string]Func{}}
	r.Register("caption", renderCaption)
	r.Register("colorcard", renderColorCard)
	r.Register("countdown", renderCountdown)
	r.Register("chat", renderChat)
	return r
}

func (r *Registry) Register(componentType string, fn Func) {
	r.renderers[componentType] = fn
}

func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.renderers))
	for t := range r.renderers {
		out = append(out, t)
	}
	return out
}

var errStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("1")).
	Foreground(lipgloss.Color("1")).
	Padding(0, 1)

// Render dispatches to the type's renderer. A renderer that panics poisons
// only its own item: the composite substitutes a visible error placeholder
// and keeps drawing everything else.
func (r *Registry) Render(componentType string, props map[string]any, rel float64, playing bool, width int) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			out = errStyle.Render(fmt.Sprintf("render error: %s", componentType))
		}
	}()
	fn, ok := r.renderers[componentType]
	if !ok {
		return errStyle.Render(fmt.Sprintf("unknown component: %s", componentType))
	}
	return fn(props, rel, playing, width)
}
