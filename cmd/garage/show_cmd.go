package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/garage/internal/log"
	"github.com/raphi011/garage/internal/output"
	"github.com/raphi011/garage/internal/registry"
	"github.com/raphi011/garage/internal/ui/static"
)

func newShowCmd() *cobra.Command {
	var (
		jsonOutput bool
		copyLabel  bool
	)

	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Show one vehicle",
		GroupID:           GroupVehicles,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeVehicleIDs,
		Example: `  garage show 3          # Show vehicle #3
  garage show 3 --copy   # Also copy "2023 Audi A4 (ABC1D23)" to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			reg, err := loadRegistry(configFrom(ctx))
			if err != nil {
				return err
			}
			v, err := reg.Find(id)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := out.JSON(v); err != nil {
					return err
				}
			} else {
				out.Print(static.RenderTable(static.VehicleHeaders, static.VehicleRows([]registry.Vehicle{*v})))
			}

			if copyLabel {
				if err := clipboard.WriteAll(v.Label()); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				l.Printf("Copied: %s\n", v.Label())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&copyLabel, "copy", "c", false, "Copy the vehicle label to the clipboard")

	return cmd
}
