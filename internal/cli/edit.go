package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gridsmith/gridview/pkg/config"
	"github.com/gridsmith/gridview/pkg/topology"
)

// newEditCmd creates the edit command for terminal topology editing.
//
// The editor loads the inventory, reconciles it into a canvas, and lets
// the user drag and select nodes with the keyboard. Positions are not
// persisted; the session prints the moved nodes on exit so they can be
// replayed against a running server.
func newEditCmd(cfgPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the topology canvas in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			components, err := loadComponents(ctx, cfg, file, logger)
			if err != nil {
				return err
			}

			view := topology.NewView(nil)
			view.SetComponents(components)

			p := tea.NewProgram(NewCanvasModel(view))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}

			model, ok := final.(CanvasModel)
			if !ok || len(model.Moved) == 0 {
				return nil
			}

			printNewline()
			printInfo("Moved %d node(s)", len(model.Moved))
			for _, n := range view.State().Nodes {
				if model.Moved[n.ID] {
					printKeyValue(n.ID, fmt.Sprintf("(%.0f, %.0f)", n.Position.X, n.Position.Y))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read components from a JSON file instead of the store")

	return cmd
}
