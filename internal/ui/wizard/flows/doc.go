// Package flows provides command-specific wizard implementations.
//
// Each flow is a complete interactive wizard for a specific garage command,
// built from the framework and steps packages.
//
// Available flows:
//   - [VehicleInteractive]: the add-vehicle form, backed by the cascading
//     catalog resolver or by manual entry
package flows
