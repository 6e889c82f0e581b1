package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/garage/internal/cache"
	"github.com/raphi011/garage/internal/catalog"
	"github.com/raphi011/garage/internal/config"
	"github.com/raphi011/garage/internal/registry"
)

// configFrom returns the config attached to ctx, or the defaults.
func configFrom(ctx context.Context) *config.Config {
	if cfg := config.FromContext(ctx); cfg != nil {
		return cfg
	}
	cfg := config.Default()
	return &cfg
}

func loadRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg, err := registry.Load(cfg.RegistryPath())
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	return reg, nil
}

// parseID accepts "3" and "#3".
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid vehicle id %q", arg)
	}
	return id, nil
}

func newCatalogClient(cfg *config.Config) *catalog.Client {
	return catalog.NewClient(catalog.Options{
		BaseURL:           cfg.Catalog.BaseURL,
		VehicleType:       cfg.Catalog.VehicleType,
		Locale:            cfg.Catalog.LocaleTag(),
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
	})
}

func newBrandCache(cfg *config.Config, client *catalog.Client) *cache.BrandCache {
	return cache.NewBrandCache(
		cache.NewFileStore(cfg.CacheDir()),
		cache.BrandKey(client.VehicleType()),
		client,
		catalog.Sorter{Locale: cfg.Catalog.LocaleTag()},
	)
}

// findEntry resolves a brand or model argument by code or, case-insensitively,
// by name.
func findEntry(entries []catalog.Entry, arg, noun string) (catalog.Entry, error) {
	for _, e := range entries {
		if e.Code == arg {
			return e, nil
		}
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name, arg) {
			return e, nil
		}
	}
	return catalog.Entry{}, fmt.Errorf("%s %q not found in catalog", noun, arg)
}

// completeVehicleIDs completes vehicle IDs with their label as description.
func completeVehicleIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	reg, err := loadRegistry(configFrom(cmd.Context()))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, v := range reg.Vehicles {
		id := strconv.Itoa(v.ID)
		if strings.HasPrefix(id, toComplete) {
			out = append(out, id+"\t"+v.Label())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
