// Package ui groups the terminal UI of garage.
//
// The subpackages split the work by how much interaction they need:
//
//   - [styles]: shared lipgloss colors and the configurable themes
//   - [static]: non-interactive tables for list and catalog output
//   - [progress]: a spinner shown while the catalog is probed
//   - [prompt]: a yes/no confirmation
//   - wizard/framework: a step-based bubbletea form with a summary page
//   - wizard/steps: reusable steps (fuzzy list, single select, text input)
//   - wizard/flows: the add-vehicle form, which drives the brand, model and
//     year cascade
//
// Interactive components write to stderr so stdout stays pipeable.
package ui
