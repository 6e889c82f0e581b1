package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/garage/internal/cache"
	"github.com/raphi011/garage/internal/catalog"
	"github.com/raphi011/garage/internal/log"
	"github.com/raphi011/garage/internal/output"
	"github.com/raphi011/garage/internal/ui/static"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalog",
		Short:   "Browse the reference catalog",
		GroupID: GroupCatalog,
		Long: `Browse the FIPE reference catalog the add form uses.

Brands come from the local cache when it is less than a day old. Models and
years are always fetched.`,
		Example: `  garage catalog brands               # List brands
  garage catalog models audi          # Models of a brand (by name or code)
  garage catalog years audi a4        # Years of a model
  garage catalog status               # Reachability and cache age
  garage catalog clear                # Drop the cached brand list`,
	}

	cmd.AddCommand(newCatalogBrandsCmd())
	cmd.AddCommand(newCatalogModelsCmd())
	cmd.AddCommand(newCatalogYearsCmd())
	cmd.AddCommand(newCatalogStatusCmd())
	cmd.AddCommand(newCatalogClearCmd())

	return cmd
}

// printEntries writes a catalog level as a table or JSON.
func printEntries(out *output.Printer, entries []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []catalog.Entry{}
		}
		return out.JSON(entries)
	}
	out.Print(static.RenderTable(static.CatalogHeaders, static.CatalogRows(entries)))
	return nil
}

func newCatalogBrandsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "brands",
		Short: "List brands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)

			brands, err := newBrandCache(cfg, newCatalogClient(cfg)).Brands(ctx)
			if err != nil {
				return err
			}
			return printEntries(output.FromContext(ctx), brands, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newCatalogModelsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "models <brand>",
		Short: "List models of a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			client := newCatalogClient(cfg)

			brands, err := newBrandCache(cfg, client).Brands(ctx)
			if err != nil {
				return err
			}
			brand, err := findEntry(brands, args[0], "brand")
			if err != nil {
				return err
			}

			models, err := client.Models(ctx, brand.Code)
			if err != nil {
				return err
			}
			return printEntries(output.FromContext(ctx), models, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newCatalogYearsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "years <brand> <model>",
		Short: "List years of a model",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			client := newCatalogClient(cfg)

			brands, err := newBrandCache(cfg, client).Brands(ctx)
			if err != nil {
				return err
			}
			brand, err := findEntry(brands, args[0], "brand")
			if err != nil {
				return err
			}
			models, err := client.Models(ctx, brand.Code)
			if err != nil {
				return err
			}
			model, err := findEntry(models, args[1], "model")
			if err != nil {
				return err
			}

			years, err := client.Years(ctx, brand.Code, model.Code)
			if err != nil {
				return err
			}
			return printEntries(output.FromContext(ctx), years, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newCatalogStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog reachability and cache age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			cfg := configFrom(ctx)
			client := newCatalogClient(cfg)

			reachable := catalog.NewProbe(client).Check(ctx, cfg.Catalog.ProbeTimeout())
			out.Printf("Catalog:  %s\n", client.BrandsURL())
			if reachable {
				out.Println("Status:   reachable")
			} else {
				out.Println("Status:   unreachable (the add form uses manual entry)")
			}

			out.Printf("Cache:    %s\n", describeCache(newBrandCache(cfg, client), time.Now()))
			return nil
		},
	}
}

// describeCache summarizes the cached brand list for status output.
func describeCache(bc *cache.BrandCache, now time.Time) string {
	rec, err := bc.Load()
	switch {
	case errors.Is(err, cache.ErrNotFound):
		return "empty"
	case errors.Is(err, cache.ErrCorrupt):
		return "corrupt record dropped"
	case err != nil:
		return "unreadable: " + err.Error()
	}

	state := "fresh"
	if rec.IsExpired(now) {
		state = "expired"
	}
	return fmt.Sprintf("%d brands, fetched %s ago (%s)", len(rec.Data), rec.Age(now).Round(time.Minute), state)
}

func newCatalogClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop the cached brand list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)

			bc := newBrandCache(cfg, newCatalogClient(cfg))
			if err := bc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			log.FromContext(ctx).Printf("Cleared %s\n", bc.Key())
			return nil
		},
	}
}
