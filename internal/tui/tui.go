package tui

import (
	"montage/internal/config"
	"montage/internal/model"
	"montage/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the timeline editor for a loaded project and blocks until the
// user quits.
func Run(s store.Store, cfg config.Config, st *model.EditorState, components []store.Component) error {
	ApplyTheme(cfg.Theme)
	m := newEditorModel(s, cfg, st, components)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
