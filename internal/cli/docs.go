package cli

import (
	"fmt"
	"strings"

	"montage/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show the built-in manual",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "topics:")
				for _, t := range docs.Topics() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", t)
				}
				return nil
			}
			body, ok := docs.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown docs topic %q (run `montage docs` to list topics)", args[0])
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(body, 80))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown without terminal styling")
	return cmd
}

// renderMarkdown styles a manual page for the terminal, falling back to the
// raw text when the renderer cannot be built. A fixed style is used instead
// of auto-detection, which can block querying some terminals.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	style := "notty"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
