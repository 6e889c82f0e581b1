// Package steps provides reusable step components for wizards.
//
// This package contains implementations of the Step interface that
// can be composed to build interactive wizard flows.
package steps

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/garage/internal/ui/wizard/framework"
)

const maxVisibleOptions = 10

// optionSource implements fuzzy.Source for options.
type optionSource []framework.Option

func (s optionSource) String(i int) string { return s[i].Label }
func (s optionSource) Len() int            { return len(s) }

// FilterableListStep selects one option from a fuzzy-filterable list.
//
// The list can be swapped out while the wizard runs (SetOptions), and can
// show a loading placeholder or a warning instead of options.
type FilterableListStep struct {
	id       string
	title    string
	prompt   string
	options  []framework.Option
	filtered []fuzzy.Match // fuzzy matches with indices and matched positions
	cursor   int           // position in filtered
	selected int           // index into options, -1 if none
	filter   string

	loading      string // non-empty while options are being fetched
	notice       string // warning shown above the list
	emptyMessage string
}

// NewFilterableList creates a new filterable single-select step.
func NewFilterableList(id, title, prompt string, options []framework.Option) *FilterableListStep {
	s := &FilterableListStep{
		id:           id,
		title:        title,
		prompt:       prompt,
		selected:     -1,
		emptyMessage: "No matching items",
	}
	s.SetOptions(options)
	return s
}

func (s *FilterableListStep) ID() string    { return s.id }
func (s *FilterableListStep) Title() string { return s.title }

// WithEmptyMessage sets the text shown when no option matches.
func (s *FilterableListStep) WithEmptyMessage(msg string) *FilterableListStep {
	s.emptyMessage = msg
	return s
}

func (s *FilterableListStep) Init() tea.Cmd {
	return nil
}

func (s *FilterableListStep) Update(msg tea.KeyPressMsg) (framework.Step, tea.Cmd, framework.StepResult) {
	switch msg.String() {
	case "up":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down":
		if s.cursor < len(s.filtered)-1 {
			s.cursor++
		}
	case "home":
		s.cursor = 0
	case "end":
		s.cursor = max(0, len(s.filtered)-1)
	case "pgup":
		s.cursor = max(0, s.cursor-maxVisibleOptions)
	case "pgdown":
		s.cursor = max(0, min(len(s.filtered)-1, s.cursor+maxVisibleOptions))
	case "enter", "right":
		if s.loading != "" || len(s.filtered) == 0 {
			return s, nil, framework.StepContinue
		}
		s.selected = s.filtered[s.cursor].Index
		return s, nil, framework.StepAdvance
	case "left":
		return s, nil, framework.StepBack
	case "backspace":
		if s.filter != "" {
			s.filter = framework.TrimLastRune(s.filter)
			s.applyFilter()
		}
	case "alt+backspace", "ctrl+w":
		if s.filter != "" {
			s.filter = framework.DeleteLastWord(s.filter)
			s.applyFilter()
		}
	default:
		// Typing or pasting extends the filter.
		if msg.Mod == 0 || msg.Mod == tea.ModShift {
			if text := framework.FilterText(msg.Text); text != "" {
				s.filter += text
				s.applyFilter()
			}
		}
	}

	return s, nil, framework.StepContinue
}

func (s *FilterableListStep) View() string {
	var b strings.Builder
	b.WriteString(s.prompt + ":\n")

	if s.notice != "" {
		b.WriteString(framework.WarningStyle().Render("! "+s.notice) + "\n")
	}
	if s.loading != "" {
		b.WriteString("\n" + framework.LoadingStyle().Render("  "+s.loading) + "\n")
		return b.String()
	}

	b.WriteString(framework.FilterLabelStyle().Render("Filter: ") + framework.FilterStyle().Render(s.filter) + "\n\n")

	start := 0
	if s.cursor >= maxVisibleOptions {
		start = s.cursor - maxVisibleOptions + 1
	}
	end := min(start+maxVisibleOptions, len(s.filtered))

	if start > 0 {
		b.WriteString(framework.OptionNormalStyle().Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		match := s.filtered[i]
		opt := s.options[match.Index]

		cursor := "  "
		style := framework.OptionNormalStyle()
		if i == s.cursor {
			cursor = "> "
			style = framework.OptionSelectedStyle()
		}

		var label string
		if s.filter != "" && len(match.MatchedIndexes) > 0 {
			label = highlightMatches(opt.Label, match.MatchedIndexes, i == s.cursor)
		} else {
			label = style.Render(opt.Label)
		}

		b.WriteString(cursor + label + "\n")
		if opt.Description != "" {
			b.WriteString("    " + framework.OptionDescriptionStyle().Render(opt.Description) + "\n")
		}
	}

	if end < len(s.filtered) {
		b.WriteString(framework.OptionNormalStyle().Render("  ↓ more below") + "\n")
	}

	if len(s.filtered) == 0 && s.notice == "" {
		b.WriteString(framework.OptionNormalStyle().Render("  "+s.emptyMessage) + "\n")
	}

	return b.String()
}

func (s *FilterableListStep) Help() string {
	if s.loading != "" {
		return "← back • esc cancel"
	}
	return "↑/↓ select • pgup/pgdn jump • type to filter • ← back • enter confirm • esc cancel"
}

func (s *FilterableListStep) Value() framework.StepValue {
	if s.selected < 0 || s.selected >= len(s.options) {
		return framework.StepValue{Key: s.id}
	}
	opt := s.options[s.selected]
	return framework.StepValue{
		Key:   s.id,
		Label: opt.Label,
		Raw:   opt.Value,
	}
}

func (s *FilterableListStep) IsComplete() bool {
	return s.selected >= 0
}

// Reset clears the selection. The filter is kept so navigating back
// preserves what the user typed.
func (s *FilterableListStep) Reset() {
	s.selected = -1
}

func (s *FilterableListStep) HasClearableInput() bool {
	return s.filter != ""
}

func (s *FilterableListStep) ClearInput() tea.Cmd {
	s.filter = ""
	s.applyFilter()
	return nil
}

// SetOptions replaces the list. It drops the selection, the loading state
// and any notice.
func (s *FilterableListStep) SetOptions(options []framework.Option) {
	s.options = options
	s.selected = -1
	s.loading = ""
	s.notice = ""
	s.cursor = 0
	s.applyFilter()
}

// SetLoading replaces the list with a loading placeholder.
func (s *FilterableListStep) SetLoading(msg string) {
	s.SetOptions(nil)
	s.loading = msg
}

// SetNotice shows a warning above the list. An empty string removes it.
func (s *FilterableListStep) SetNotice(msg string) {
	s.notice = msg
}

// IsLoading reports whether the step shows the loading placeholder.
func (s *FilterableListStep) IsLoading() bool {
	return s.loading != ""
}

// Notice returns the current warning, if any.
func (s *FilterableListStep) Notice() string {
	return s.notice
}

// OptionsCount returns the total number of options.
func (s *FilterableListStep) OptionsCount() int {
	return len(s.options)
}

// highlightMatches renders the label with matched characters highlighted.
// fuzzy reports byte offsets.
func highlightMatches(label string, matchedIndexes []int, isSelected bool) string {
	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	var result strings.Builder
	for i, r := range label {
		char := string(r)
		switch {
		case matchSet[i]:
			result.WriteString(framework.MatchHighlightStyle().Render(char))
		case isSelected:
			result.WriteString(framework.OptionSelectedStyle().Render(char))
		default:
			result.WriteString(framework.OptionNormalStyle().Render(char))
		}
	}
	return result.String()
}

func (s *FilterableListStep) applyFilter() {
	if s.filter == "" {
		// No filter: all options in their given order.
		s.filtered = make([]fuzzy.Match, len(s.options))
		for i := range s.options {
			s.filtered[i] = fuzzy.Match{Str: s.options[i].Label, Index: i}
		}
	} else {
		// Sorted by score, best first.
		s.filtered = fuzzy.FindFrom(s.filter, optionSource(s.options))
	}

	if s.cursor >= len(s.filtered) {
		s.cursor = max(0, len(s.filtered)-1)
	}
}

// String implements fmt.Stringer for debugging.
func (s *FilterableListStep) String() string {
	return fmt.Sprintf("FilterableListStep{id=%s, cursor=%d, selected=%d, filter=%q}",
		s.id, s.cursor, s.selected, s.filter)
}
