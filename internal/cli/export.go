package cli

import (
	"fmt"

	"montage/internal/config"
	"montage/internal/export"
	"montage/internal/render"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		out   string
		fps   int
		width int
	)
	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Render the timeline to one frame file per frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.resolveStore()
			if err != nil {
				return err
			}
			st, err := s.LoadProject(args[0])
			if err != nil {
				return err
			}
			if fps == 0 {
				cfg, err := config.Load(s.Dir)
				if err != nil {
					return err
				}
				fps = cfg.ExportFPS
			}
			sink, err := export.NewDirSink(out)
			if err != nil {
				return err
			}
			opts := export.Options{
				FPS:   fps,
				Width: width,
				OnProgress: func(done, total int) {
					if done == total || done%60 == 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "\rframe %d/%d", done, total)
					}
				},
			}
			if err := export.Run(render.NewRegistry(), st, sink, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nwrote frames to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "frames", "Output directory")
	cmd.Flags().IntVar(&fps, "fps", 0, "Frame rate (default: export_fps from config)")
	cmd.Flags().IntVar(&width, "width", 80, "Frame width in cells")
	return cmd
}
