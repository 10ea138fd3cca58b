package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newComponentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "components",
		Short: "Browse the component catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.resolveStore()
			if err != nil {
				return err
			}
			comps, err := s.ListComponents(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(comps))
			for _, c := range comps {
				rows = append(rows, []string{
					c.ID, c.Name, c.Type, c.Category, fmt.Sprintf("%.0fs", c.Duration),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Type", "Category", "Default"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}))
			return nil
		},
	})
	return cmd
}
