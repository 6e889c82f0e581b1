package framework

import tea "charm.land/bubbletea/v2"

// StepResult indicates what action to take after a step update.
type StepResult int

const (
	// StepContinue means stay on the current step.
	StepContinue StepResult = iota
	// StepAdvance means move to the next step.
	StepAdvance
	// StepBack means move to the previous step.
	StepBack
)

// StepValue holds the result of a completed step.
type StepValue struct {
	Key   string // step id
	Label string // shown in the summary
	Raw   any
}

// Step is the interface for wizard steps.
type Step interface {
	ID() string

	// Title returns the display title for the step tab.
	Title() string

	// Init returns an initial command when entering this step.
	Init() tea.Cmd

	// Update handles key events and returns the updated step,
	// a command to run, and a result indicating navigation.
	Update(msg tea.KeyPressMsg) (Step, tea.Cmd, StepResult)

	View() string
	Help() string

	// Value returns the step's current value for summary display.
	Value() StepValue

	// IsComplete returns true if the step has a valid selection.
	IsComplete() bool

	// Reset clears the step's selection/input.
	Reset()

	// HasClearableInput reports whether esc should clear input instead of
	// cancelling the wizard.
	HasClearableInput() bool

	ClearInput() tea.Cmd
}

// Option represents a selectable item in list-based steps.
type Option struct {
	Label       string
	Value       any
	Description string // optional second row
}
