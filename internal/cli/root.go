package cli

import (
	"fmt"
	"os"
	"strings"

	"montage/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	JSON       bool
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "montage",
		Short:        "Montage: terminal video-template timeline editor",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Create a store in the current directory
  montage init

  # Create and open a project
  montage projects create "Launch teaser"
  montage edit <project-id>

  # Render the timeline to frames
  montage export <project-id> --out frames/
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// A bare project id opens the editor directly.
			if len(args) == 1 && strings.HasPrefix(args[0], "proj-") {
				return runEdit(app, args[0])
			}
			return cmd.Help()
		},
		Args: cobra.ArbitraryArgs,
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("MONTAGE_DIR", ""), "Path to the .montage store dir (overrides discovery)")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "Emit JSON instead of tables")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newComponentsCmd(app))
	cmd.AddCommand(newAssetsCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newInspectCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// resolveStore locates the store dir: explicit flag, then upward discovery,
// then the home fallback.
func (app *App) resolveStore() (store.Store, error) {
	if app.Dir != "" {
		return store.Store{Dir: app.Dir}, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return store.Store{}, err
	}
	if dir, ok := store.DiscoverDir(wd); ok {
		return store.Store{Dir: dir}, nil
	}
	dir, err := store.DefaultDir()
	if err != nil {
		return store.Store{}, fmt.Errorf("no %s dir found and no home fallback: %w", ".montage", err)
	}
	return store.Store{Dir: dir}, nil
}
