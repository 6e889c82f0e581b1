// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as tables.
package static

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/garage/internal/catalog"
	"github.com/raphi011/garage/internal/registry"
	"github.com/raphi011/garage/internal/ui/styles"
)

// Column headers for the tables rendered by the CLI.
var (
	VehicleHeaders = []string{"ID", "BRAND", "MODEL", "YEAR", "PLATE", "ADDED"}
	CatalogHeaders = []string{"CODE", "NAME"}
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// VehicleTableRow returns the cells for one vehicle, matching VehicleHeaders.
func VehicleTableRow(v registry.Vehicle) []string {
	plate := v.Plate
	if plate == "" {
		plate = styles.MutedStyle.Render("-")
	}
	added := ""
	if !v.AddedAt.IsZero() {
		added = v.AddedAt.Local().Format("2006-01-02")
	}
	return []string{
		strconv.Itoa(v.ID),
		v.Brand,
		v.Model,
		strconv.Itoa(v.Year),
		plate,
		added,
	}
}

// VehicleRows converts vehicles to table rows.
func VehicleRows(vehicles []registry.Vehicle) [][]string {
	rows := make([][]string, len(vehicles))
	for i, v := range vehicles {
		rows[i] = VehicleTableRow(v)
	}
	return rows
}

// CatalogRows converts catalog entries to rows matching CatalogHeaders.
func CatalogRows(entries []catalog.Entry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Code, e.Name}
	}
	return rows
}
