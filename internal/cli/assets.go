package cli

import (
	"fmt"

	"montage/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newAssetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage a project's media library",
	}
	cmd.AddCommand(newAssetsAddCmd(app))
	cmd.AddCommand(newAssetsListCmd(app))
	return cmd
}

func newAssetsAddCmd(app *App) *cobra.Command {
	var (
		kind     string
		duration float64
	)
	cmd := &cobra.Command{
		Use:   "add <project-id> <name>",
		Short: "Register a media asset on a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.resolveStore()
			if err != nil {
				return err
			}
			st, err := s.LoadProject(args[0])
			if err != nil {
				return err
			}
			a := model.Asset{
				ID:   "asset-" + uuid.NewString()[:8],
				Name: args[1],
				Kind: model.AssetKind(kind),
			}
			switch a.Kind {
			case model.AssetVideo:
				if duration <= 0 {
					return fmt.Errorf("video assets need --duration > 0")
				}
				a.NativeDuration = duration
			case model.AssetImage:
				// Images are unbounded; any duration flag is ignored.
			default:
				return fmt.Errorf("unknown asset kind %q (video|image)", kind)
			}
			st.Assets = append(st.Assets, a)
			if err := s.SaveProject(st); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "video", "Asset kind (video|image)")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Source duration in seconds (video only)")
	return cmd
}

func newAssetsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's assets",
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
			rows := make([][]string, 0, len(st.Assets))
			for _, a := range st.Assets {
				dur := ""
				if a.Kind == model.AssetVideo {
					dur = fmt.Sprintf("%.2fs", a.NativeDuration)
				}
				rows = append(rows, []string{a.ID, a.Name, string(a.Kind), dur})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Kind", "Duration"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
			return nil
		},
	}
}
