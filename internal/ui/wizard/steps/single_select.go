package steps

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/garage/internal/ui/wizard/framework"
)

// SingleSelectStep allows selecting one option from a scrolling list.
type SingleSelectStep struct {
	id         string
	title      string
	prompt     string
	options    []framework.Option
	cursor     int
	selected   int // -1 if nothing selected yet
	maxVisible int
}

// NewSingleSelect creates a new single-select step.
func NewSingleSelect(id, title, prompt string, options []framework.Option) *SingleSelectStep {
	return &SingleSelectStep{
		id:         id,
		title:      title,
		prompt:     prompt,
		options:    options,
		selected:   -1,
		maxVisible: maxVisibleOptions,
	}
}

func (s *SingleSelectStep) ID() string    { return s.id }
func (s *SingleSelectStep) Title() string { return s.title }

func (s *SingleSelectStep) Init() tea.Cmd {
	return nil
}

func (s *SingleSelectStep) Update(msg tea.KeyPressMsg) (framework.Step, tea.Cmd, framework.StepResult) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.options)-1 {
			s.cursor++
		}
	case "home":
		s.cursor = 0
	case "end":
		s.cursor = max(0, len(s.options)-1)
	case "pgup":
		s.cursor = max(0, s.cursor-s.maxVisible)
	case "pgdown":
		s.cursor = max(0, min(len(s.options)-1, s.cursor+s.maxVisible))
	case "enter", "right":
		if len(s.options) > 0 {
			s.selected = s.cursor
			return s, nil, framework.StepAdvance
		}
	case "left":
		return s, nil, framework.StepBack
	}
	return s, nil, framework.StepContinue
}

func (s *SingleSelectStep) View() string {
	var b strings.Builder
	b.WriteString(s.prompt)
	b.WriteString("\n\n")

	start := 0
	if s.cursor >= s.maxVisible {
		start = s.cursor - s.maxVisible + 1
	}
	end := min(start+s.maxVisible, len(s.options))

	if start > 0 {
		b.WriteString(framework.OptionNormalStyle().Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		opt := s.options[i]
		cursor := "  "
		style := framework.OptionNormalStyle()
		if i == s.cursor {
			cursor = "> "
			style = framework.OptionSelectedStyle()
		}

		b.WriteString(cursor + style.Render(opt.Label) + "\n")
		if opt.Description != "" {
			b.WriteString("    " + framework.OptionDescriptionStyle().Render(opt.Description) + "\n")
		}
	}

	if end < len(s.options) {
		b.WriteString(framework.OptionNormalStyle().Render("  ↓ more below") + "\n")
	}

	if len(s.options) == 0 {
		b.WriteString(framework.OptionNormalStyle().Render("  No options available") + "\n")
	}

	return b.String()
}

func (s *SingleSelectStep) Help() string {
	return "↑/↓ select • ←/→ navigate • enter confirm • esc cancel"
}

func (s *SingleSelectStep) Value() framework.StepValue {
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

func (s *SingleSelectStep) IsComplete() bool {
	return s.selected >= 0
}

func (s *SingleSelectStep) Reset() {
	s.selected = -1
	s.cursor = 0
}

func (s *SingleSelectStep) HasClearableInput() bool { return false }
func (s *SingleSelectStep) ClearInput() tea.Cmd     { return nil }

// SetOptions updates the options list (useful for dynamic content).
func (s *SingleSelectStep) SetOptions(options []framework.Option) {
	s.options = options
	s.cursor = 0
	if s.selected >= len(options) {
		s.selected = -1
	}
}

// String implements fmt.Stringer for debugging.
func (s *SingleSelectStep) String() string {
	return fmt.Sprintf("SingleSelectStep{id=%s, cursor=%d, selected=%d, options=%d}",
		s.id, s.cursor, s.selected, len(s.options))
}
