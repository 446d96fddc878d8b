package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/config"
	"github.com/gridsmith/gridview/pkg/errors"
	"github.com/gridsmith/gridview/pkg/topology"
)

// newComponentsCmd creates the component inventory management command.
func newComponentsCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "components",
		Short: "Manage the component inventory",
	}

	cmd.AddCommand(newComponentsListCmd(cfgPath))
	cmd.AddCommand(newComponentsAddCmd(cfgPath))
	cmd.AddCommand(newComponentsRemoveCmd(cfgPath))

	return cmd
}

// newComponentsListCmd creates the "components list" subcommand.
func newComponentsListCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inventory components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			components, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(components) == 0 {
				printInfo("Inventory is empty")
				return nil
			}

			for _, c := range components {
				caption := topology.Caption(&c)
				line := fmt.Sprintf("%-20s %-20s %s", c.ID, c.Category.DisplayName(), c.Name)
				if caption != "" {
					line += " " + StyleDim.Render("("+caption+")")
				}
				fmt.Println("  " + line)
			}
			printNewline()
			printDetail("%d component(s)", len(components))
			return nil
		},
	}
}

// newComponentsAddCmd creates the "components add" subcommand.
func newComponentsAddCmd(cfgPath *string) *cobra.Command {
	var (
		id         string
		category   string
		name       string
		configJSON string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace an inventory component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cat, err := component.ParseCategory(category)
			if err != nil {
				return err
			}

			var conf component.Config
			if configJSON != "" {
				if err := json.Unmarshal([]byte(configJSON), &conf); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse --data")
				}
			}

			c, err := component.New(cat, name, conf)
			if err != nil {
				return err
			}
			if id != "" {
				c.ID = id
				if err := c.Validate(); err != nil {
					return err
				}
			}

			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Put(ctx, c); err != nil {
				return err
			}
			printSuccess("Added %s (%s)", c.ID, c.Category.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "component id (generated when omitted)")
	cmd.Flags().StringVar(&category, "category", "", "component category (e.g. generation-solar)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&configJSON, "data", "", `configuration as JSON (e.g. '{"capacity_kw": 5}')`)
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// newComponentsRemoveCmd creates the "components rm" subcommand.
func newComponentsRemoveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an inventory component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Removed %s", args[0])
			return nil
		},
	}
}
