package steps

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/garage/internal/ui/wizard/framework"
)

// TextInputStep allows entering free-form text.
type TextInputStep struct {
	id              string
	title           string
	prompt          string
	input           textinput.Model
	validate        func(string) error
	optional        bool
	submitted       bool
	submitValue     string
	validationError string // Error message to display
}

// NewTextInput creates a new text input step.
// By default, uses a blinking bar cursor for better visibility.
func NewTextInput(id, title, prompt, placeholder string) *TextInputStep {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 156
	ti.SetWidth(40)

	// Set default cursor style: bar with blink
	styles := ti.Styles()
	styles.Cursor.Shape = tea.CursorBar
	styles.Cursor.Blink = true
	ti.SetStyles(styles)

	return &TextInputStep{
		id:     id,
		title:  title,
		prompt: prompt,
		input:  ti,
	}
}

func (s *TextInputStep) ID() string    { return s.id }
func (s *TextInputStep) Title() string { return s.title }

func (s *TextInputStep) Init() tea.Cmd {
	s.input.Focus()
	return textinput.Blink
}

func (s *TextInputStep) Update(msg tea.KeyPressMsg) (framework.Step, tea.Cmd, framework.StepResult) {
	switch msg.String() {
	case "enter", "right":
		if !s.submit() {
			return s, nil, framework.StepContinue
		}
		return s, nil, framework.StepAdvance
	case "left":
		return s, nil, framework.StepBack
	}

	// Clear error when user types
	s.validationError = ""

	// Let textinput handle other keys
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, framework.StepContinue
}

// submit validates the input and records it. It reports whether the step
// may advance.
func (s *TextInputStep) submit() bool {
	value := strings.TrimSpace(s.input.Value())
	if value == "" && !s.optional {
		s.validationError = "Value cannot be empty"
		return false
	}
	if value != "" && s.validate != nil {
		if err := s.validate(value); err != nil {
			s.validationError = err.Error()
			return false
		}
	}
	s.validationError = ""
	s.submitted = true
	s.submitValue = value
	return true
}

func (s *TextInputStep) View() string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n\n")
	b.WriteString(s.input.View())
	if s.validationError != "" {
		b.WriteString("\n" + framework.ErrorStyle().Render(s.validationError))
	}
	return b.String()
}

func (s *TextInputStep) Help() string {
	if s.optional {
		return "type text (optional) • ←/→ navigate • enter confirm • esc cancel"
	}
	return "type text • ←/→ navigate • enter confirm • esc cancel"
}

func (s *TextInputStep) Value() framework.StepValue {
	return framework.StepValue{
		Key:   s.id,
		Label: s.submitValue,
		Raw:   s.submitValue,
	}
}

func (s *TextInputStep) IsComplete() bool {
	return s.submitted
}

func (s *TextInputStep) Reset() {
	s.input.SetValue("")
	s.submitted = false
	s.submitValue = ""
}

func (s *TextInputStep) HasClearableInput() bool {
	return s.input.Value() != ""
}

func (s *TextInputStep) ClearInput() tea.Cmd {
	s.input.SetValue("")
	s.validationError = ""
	return nil
}

// SetValidate sets a validation function for non-empty input.
// If validation fails, the step won't advance.
func (s *TextInputStep) SetValidate(fn func(string) error) *TextInputStep {
	s.validate = fn
	return s
}

// WithOptional lets the step advance with an empty value.
func (s *TextInputStep) WithOptional() *TextInputStep {
	s.optional = true
	return s
}

// Prefill sets and submits a value, so the wizard starts past this step.
func (s *TextInputStep) Prefill(value string) {
	s.input.SetValue(value)
	s.submitted = true
	s.submitValue = strings.TrimSpace(value)
}

// SetValue sets the current input value.
func (s *TextInputStep) SetValue(value string) {
	s.input.SetValue(value)
}

// GetValue returns the current input value (not yet submitted).
func (s *TextInputStep) GetValue() string {
	return s.input.Value()
}

// IsFocused returns true if the input is focused.
func (s *TextInputStep) IsFocused() bool {
	return s.input.Focused()
}

// SetCharLimit sets the character limit.
func (s *TextInputStep) SetCharLimit(limit int) *TextInputStep {
	s.input.CharLimit = limit
	return s
}

// String implements fmt.Stringer for debugging.
func (s *TextInputStep) String() string {
	return fmt.Sprintf("TextInputStep{id=%s, submitted=%v, value=%q}",
		s.id, s.submitted, s.submitValue)
}
