package cli

import (
	"fmt"

	"montage/internal/format"
	"montage/internal/model"
	"montage/internal/timeline"

	"github.com/spf13/cobra"
)

func newInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <project-id>",
		Short: "Dump a project's layers and items",
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
			if app.JSON {
				return format.WriteJSON(cmd.OutOrStdout(), st, app.PrettyJSON)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)  duration %.2fs  %d tabs\n\n",
				st.ProjectName, st.ProjectID, timeline.TotalDuration(st), len(st.Tabs))

			var rows [][]string
			for _, l := range st.Layers {
				for _, it := range l.Items {
					rows = append(rows, []string{
						l.Name, it.ID, string(it.Kind), itemDetail(it),
						fmt.Sprintf("%.2f", it.Start), fmt.Sprintf("%.2f", it.Duration),
					})
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Layer", "Item", "Kind", "Detail", "Start", "Duration"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight}))
			return nil
		},
	}
}

func itemDetail(it model.Item) string {
	switch it.Kind {
	case model.ItemMedia:
		if it.Media == nil {
			return ""
		}
		d := it.Media.Asset.Name
		if it.Media.Crop != nil {
			d += fmt.Sprintf(" crop %.2f-%.2f", it.Media.Crop.Start, it.Media.Crop.End)
		}
		if it.Media.Freeze != nil {
			d += fmt.Sprintf(" freeze@%.2f", it.Media.Freeze.SourceTime)
		}
		return d
	case model.ItemComponent:
		if it.Component == nil {
			return ""
		}
		return it.Component.Type
	case model.ItemGroup:
		if it.Group == nil {
			return ""
		}
		return fmt.Sprintf("%s (%d members)", it.Group.Name, len(it.Group.MemberIDs))
	}
	return ""
}
