package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/garage/internal/log"
	"github.com/raphi011/garage/internal/output"
	"github.com/raphi011/garage/internal/registry"
	"github.com/raphi011/garage/internal/ui/prompt"
	"github.com/raphi011/garage/internal/ui/styles"
)

func newRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "remove <id>",
		Short:             "Remove a vehicle",
		Aliases:           []string{"rm"},
		GroupID:           GroupVehicles,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeVehicleIDs,
		Long: `Remove a vehicle from the registry.

Asks for confirmation when run in a terminal. IDs are never reused.`,
		Example: `  garage remove 3      # Remove vehicle #3
  garage rm 3 -f       # Remove without confirmation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			cfg := configFrom(ctx)

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			reg, err := loadRegistry(cfg)
			if err != nil {
				return err
			}
			v, err := reg.Find(id)
			if err != nil {
				return err
			}

			if !force && isInteractive() {
				styles.Init(cfg.Theme)
				result, err := prompt.Confirm(removePrompt(*v))
				if err != nil {
					return err
				}
				if result.Cancelled || !result.Confirmed {
					l.Println("Cancelled")
					return nil
				}
			}

			removed, err := reg.Remove(id)
			if err != nil {
				return err
			}
			if err := reg.Save(); err != nil {
				return err
			}

			out.Printf("Removed #%d: %s\n", removed.ID, removed.Label())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove without confirmation")

	return cmd
}

func removePrompt(v registry.Vehicle) string {
	return fmt.Sprintf("Remove #%d %s?", v.ID, v.Label())
}
