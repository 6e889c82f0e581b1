// Package config handles loading and validation of garage configuration.
//
// Configuration is read from ~/.config/garage/config.toml with environment
// variable overrides for the data directory and the catalog endpoint.
//
// # Configuration Sources (highest priority first)
//
//   - GARAGE_DATA_DIR env var: where vehicles and the catalog cache live
//   - GARAGE_CATALOG_URL env var: base URL of the reference catalog
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - data_dir: vehicles.json and cache/ live here (default: ~/.garage)
//   - catalog.base_url: FIPE-compatible API root
//   - catalog.vehicle_type: "carros", "motos" or "caminhoes"
//   - catalog.probe_timeout_ms: availability check bound (default: 3000)
//   - catalog.locale: BCP 47 tag used to sort catalog names (default: pt-BR)
//   - catalog.requests_per_second: client-side pacing, 0 disables it
//   - theme.name / theme.mode: form colors
//
// # Path Validation
//
// data_dir must be absolute or start with ~ (no relative paths like "." or
// "..") to avoid confusion about the working directory.
package config
