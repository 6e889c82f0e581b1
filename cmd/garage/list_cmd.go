package main

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/raphi011/garage/internal/log"
	"github.com/raphi011/garage/internal/output"
	"github.com/raphi011/garage/internal/registry"
	"github.com/raphi011/garage/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List vehicles",
		Aliases: []string{"ls"},
		GroupID: GroupVehicles,
		Args:    cobra.NoArgs,
		Long: `List registered vehicles, most recently added first.`,
		Example: `  garage list          # Table output
  garage list --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			reg, err := loadRegistry(configFrom(ctx))
			if err != nil {
				return err
			}

			vehicles := slices.Clone(reg.Vehicles)
			slices.SortStableFunc(vehicles, func(a, b registry.Vehicle) int {
				return b.AddedAt.Compare(a.AddedAt)
			})

			if jsonOutput {
				return out.JSON(vehicles)
			}

			if len(vehicles) == 0 {
				l.Println("No vehicles yet, add one with 'garage add'")
				return nil
			}
			out.Print(static.RenderTable(static.VehicleHeaders, static.VehicleRows(vehicles)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
