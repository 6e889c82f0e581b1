package framework

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/garage/internal/ui/styles"
)

// The wizard styles are functions so they follow styles.Init. Most of them
// reuse the shared styles of the tables and the remove prompt.

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Frame.

// BorderStyle draws the left rule around the whole form.
func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Primary).
		Margin(1, 0).
		Padding(0, 2)
}

func TitleStyle() lipgloss.Style { return fg(styles.Primary).Bold(true) }

func HelpStyle() lipgloss.Style { return styles.MutedStyle.MarginTop(1) }

// InfoStyle renders the form's info line, e.g. the manual entry notice.
func InfoStyle() lipgloss.Style { return styles.InfoStyle }

func ErrorStyle() lipgloss.Style { return styles.ErrorStyle }

// Step tabs: brand → model → year → plate.

func StepActiveStyle() lipgloss.Style    { return styles.AccentStyle }
func StepCompletedStyle() lipgloss.Style { return fg(styles.Normal) }
func StepCheckStyle() lipgloss.Style     { return styles.SuccessStyle }
func StepInactiveStyle() lipgloss.Style  { return styles.MutedStyle }
func StepArrowStyle() lipgloss.Style     { return styles.MutedStyle }

// Catalog lists.

func OptionSelectedStyle() lipgloss.Style    { return styles.AccentStyle }
func OptionNormalStyle() lipgloss.Style      { return fg(styles.Normal) }
func OptionDescriptionStyle() lipgloss.Style { return styles.MutedStyle }

func FilterLabelStyle() lipgloss.Style { return styles.MutedStyle }
func FilterStyle() lipgloss.Style      { return styles.AccentStyle }

// MatchHighlightStyle marks the runes a fuzzy filter matched.
func MatchHighlightStyle() lipgloss.Style { return styles.AccentStyle.Underline(true) }

// WarningStyle renders a level's "could not load" notice.
func WarningStyle() lipgloss.Style { return styles.WarningStyle }

func LoadingStyle() lipgloss.Style { return styles.MutedStyle.Italic(true) }

// Summary.

func SummaryLabelStyle() lipgloss.Style { return OptionNormalStyle() }
func SummaryValueStyle() lipgloss.Style { return OptionSelectedStyle() }
