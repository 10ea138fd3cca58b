package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"montage/internal/config"
	"montage/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a montage store in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Dir
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = filepath.Join(wd, ".montage")
			}
			s := store.Store{Dir: dir}
			if err := s.Ensure(); err != nil {
				return err
			}
			if _, err := os.Stat(filepath.Join(dir, "config.toml")); os.IsNotExist(err) {
				if err := config.Save(dir, config.Default()); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", dir)
			return nil
		},
	}
}
