package cli

import (
	"fmt"
	"strings"

	"montage/internal/format"
	"montage/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage the project catalog",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.resolveStore()
			if err != nil {
				return err
			}
			infos, err := s.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if app.JSON {
				return format.WriteJSON(cmd.OutOrStdout(), infos, app.PrettyJSON)
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no projects (run `montage projects create <name>`)")
				return nil
			}
			rows := make([][]string, 0, len(infos))
			for _, p := range infos {
				lock := ""
				if p.LockedBy != "" {
					lock = p.LockedBy
				}
				rows = append(rows, []string{p.ID, p.Name, p.UpdatedAt.Format("2006-01-02 15:04"), lock})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Updated", "Locked by"}, rows, nil))
			return nil
		},
	}
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("project name is empty")
			}
			s, err := app.resolveStore()
			if err != nil {
				return err
			}
			if err := s.Ensure(); err != nil {
				return err
			}
			st := model.NewEditorState("proj-"+uuid.NewString()[:8], name)
			if err := s.SaveProject(st); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), st.ProjectID)
			return nil
		},
	}
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.resolveStore()
			if err != nil {
				return err
			}
			if err := s.DeleteProject(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
