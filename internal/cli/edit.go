package cli

import (
	"context"
	"errors"
	"fmt"

	"montage/internal/config"
	"montage/internal/store"
	"montage/internal/tui"

	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Open the timeline editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(app, args[0])
		},
	}
}

func runEdit(app *App, projectID string) error {
	s, err := app.resolveStore()
	if err != nil {
		return err
	}
	cfg, err := config.Load(s.Dir)
	if err != nil {
		return err
	}
	st, err := s.LoadProject(projectID)
	if err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			return fmt.Errorf("project %q not found (run `montage projects list`)", projectID)
		}
		return err
	}
	if cfg.DefaultZoom > 0 && st.Zoom <= 0 {
		st.Zoom = cfg.DefaultZoom
	}
	comps, err := s.ListComponents(context.Background())
	if err != nil {
		return err
	}
	return tui.Run(s, cfg, st, comps)
}
