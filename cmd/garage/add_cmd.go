package main

import (
	"errors"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/garage/internal/cascade"
	"github.com/raphi011/garage/internal/catalog"
	"github.com/raphi011/garage/internal/log"
	"github.com/raphi011/garage/internal/output"
	"github.com/raphi011/garage/internal/registry"
	"github.com/raphi011/garage/internal/ui/progress"
	"github.com/raphi011/garage/internal/ui/styles"
	"github.com/raphi011/garage/internal/ui/wizard/flows"
)

func newAddCmd() *cobra.Command {
	var (
		brand  string
		model  string
		year   int
		plate  string
		manual bool
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a vehicle",
		GroupID: GroupVehicles,
		Args:    cobra.NoArgs,
		Long: `Add a vehicle to the registry.

Without flags, opens a form that looks up the brand, model and year in the
reference catalog. Each pick narrows the next list. When the catalog is
unreachable the form falls back to typing brand and model and picking the
year from a plain list.

With --brand, --model and --year the vehicle is added directly.`,
		Example: `  garage add                                    # Open the form
  garage add --manual                           # Form without the catalog
  garage add --plate ABC1D23                    # Form with the plate filled in
  garage add --brand Fiat --model Uno --year 1995`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			cfg := configFrom(ctx)

			reg, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			opts := flows.VehicleOptions{Brand: brand, Model: model, Year: year, Plate: plate}
			if brand == "" || model == "" || year == 0 {
				if brand != "" || model != "" || year != 0 {
					l.Warnf("--brand, --model and --year only apply together, opening the form")
				}
				if !isInteractive() {
					return errors.New("the vehicle form needs a terminal, pass --brand, --model and --year instead")
				}

				styles.Init(cfg.Theme)

				client := newCatalogClient(cfg)
				openOpts := cascade.OpenOptions{
					Probe:        catalog.NewProbe(client),
					Brands:       newBrandCache(cfg, client),
					ProbeTimeout: cfg.Catalog.ProbeTimeout(),
					ForceManual:  manual,
				}
				var state cascade.State
				if manual {
					state = cascade.Open(ctx, openOpts)
				} else {
					state = progress.While("Checking catalog…", func() cascade.State {
						return cascade.Open(ctx, openOpts)
					})
				}
				l.Debug("form opened", "mode", state.Mode, "remote", state.RemoteAvailable)

				opts, err = flows.VehicleInteractive(flows.VehicleWizardParams{
					Ctx:    ctx,
					State:  state,
					Source: client,
					Plate:  plate,
				})
				if err != nil {
					return err
				}
				if opts.Cancelled {
					l.Println("Cancelled")
					return nil
				}
			}

			v, err := addVehicle(reg, opts, time.Now())
			if err != nil {
				return err
			}
			out.Printf("Added #%d: %s\n", v.ID, v.Label())
			return nil
		},
	}

	cmd.Flags().StringVarP(&brand, "brand", "b", "", "Brand name")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model name")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Model year")
	cmd.Flags().StringVarP(&plate, "plate", "p", "", "License plate")
	cmd.Flags().BoolVar(&manual, "manual", false, "Skip the catalog and type the vehicle in")

	return cmd
}

// addVehicle stores opts in reg and saves it.
func addVehicle(reg *registry.Registry, opts flows.VehicleOptions, now time.Time) (registry.Vehicle, error) {
	v, err := reg.Add(registry.Vehicle{
		Brand: opts.Brand,
		Model: opts.Model,
		Year:  opts.Year,
		Plate: opts.Plate,
	}, now)
	if err != nil {
		return registry.Vehicle{}, err
	}
	if err := reg.Save(); err != nil {
		return registry.Vehicle{}, err
	}
	return v, nil
}

func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
