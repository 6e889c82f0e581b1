// Package framework provides the core wizard orchestration system.
//
// A wizard is a multi-step interactive flow. It manages step navigation,
// completion callbacks, messages from background commands and the summary
// display.
package framework

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
)

// Wizard orchestrates a multi-step interactive flow.
type Wizard struct {
	title          string
	steps          []Step
	stepIndex      map[string]int // id -> index
	currentStep    int
	onComplete     map[string]func(*Wizard) tea.Cmd // step id -> callback
	onMessage      func(*Wizard, tea.Msg) tea.Cmd   // non-key messages
	infoLine       func(*Wizard) string
	canConfirm     func(*Wizard) bool
	summaryTitle   string
	done           bool
	cancelled      bool
	width          int
	height         int
	confirmedSteps map[string]bool // steps the user has advanced past
}

// NewWizard creates a new wizard with the given title.
func NewWizard(title string) *Wizard {
	return &Wizard{
		title:          title,
		stepIndex:      make(map[string]int),
		onComplete:     make(map[string]func(*Wizard) tea.Cmd),
		summaryTitle:   "Review and confirm",
		width:          60,
		height:         20,
		confirmedSteps: make(map[string]bool),
	}
}

// AddStep adds a step to the wizard.
func (w *Wizard) AddStep(step Step) *Wizard {
	w.stepIndex[step.ID()] = len(w.steps)
	w.steps = append(w.steps, step)
	return w
}

// OnComplete sets a callback to run when a step completes. The returned
// command is run alongside the next step's Init.
func (w *Wizard) OnComplete(stepID string, callback func(*Wizard) tea.Cmd) *Wizard {
	w.onComplete[stepID] = callback
	return w
}

// OnMessage sets a handler for messages that are not key presses, such as
// results of commands started by OnComplete callbacks.
func (w *Wizard) OnMessage(handler func(*Wizard, tea.Msg) tea.Cmd) *Wizard {
	w.onMessage = handler
	return w
}

// WithSummary sets the summary step title.
func (w *Wizard) WithSummary(title string) *Wizard {
	w.summaryTitle = title
	return w
}

// WithInfoLine sets a dynamic info line function.
func (w *Wizard) WithInfoLine(fn func(*Wizard) string) *Wizard {
	w.infoLine = fn
	return w
}

// WithConfirmCheck blocks confirming the summary until fn returns true.
func (w *Wizard) WithConfirmCheck(fn func(*Wizard) bool) *Wizard {
	w.canConfirm = fn
	return w
}

// GetStep returns a step by ID.
func (w *Wizard) GetStep(id string) Step {
	if idx, ok := w.stepIndex[id]; ok {
		return w.steps[idx]
	}
	return nil
}

// GetValue returns a step's value by ID.
func (w *Wizard) GetValue(id string) StepValue {
	if step := w.GetStep(id); step != nil {
		return step.Value()
	}
	return StepValue{}
}

// GetString returns a step's value as a string.
func (w *Wizard) GetString(id string) string {
	v := w.GetValue(id)
	if s, ok := v.Raw.(string); ok {
		return s
	}
	return v.Label
}

// Unconfirm drops the checkmark of the given steps, typically after a
// callback reset them.
func (w *Wizard) Unconfirm(ids ...string) {
	for _, id := range ids {
		delete(w.confirmedSteps, id)
	}
}

// IsConfirmed reports whether the user advanced past the step.
func (w *Wizard) IsConfirmed(id string) bool {
	return w.confirmedSteps[id]
}

// IsCancelled returns true if the wizard was cancelled.
func (w *Wizard) IsCancelled() bool {
	return w.cancelled
}

// IsDone returns true once the wizard was confirmed or cancelled.
func (w *Wizard) IsDone() bool {
	return w.done
}

// Run executes the wizard and returns when complete or cancelled.
// The TUI renders to stderr so stdout remains available for piping.
func (w *Wizard) Run() (*Wizard, error) {
	if len(w.steps) == 0 {
		return w, errors.New("wizard has no steps")
	}

	// Detect color profile for stderr (handles piped output, NO_COLOR, etc.)
	profile := colorprofile.Detect(os.Stderr, os.Environ())

	p := tea.NewProgram(w,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	return finalModel.(*Wizard), nil
}

// BubbleTea Model interface

func (w *Wizard) Init() tea.Cmd {
	if len(w.steps) == 0 {
		return nil
	}
	// Start at the first incomplete step; prefilled steps count as confirmed.
	w.currentStep = w.findNextIncompleteStep(-1)
	if w.currentStep < 0 {
		w.currentStep = len(w.steps)
	}
	for i := 0; i < w.currentStep && i < len(w.steps); i++ {
		if w.steps[i].IsComplete() {
			w.confirmedSteps[w.steps[i].ID()] = true
		}
	}
	if w.currentStep < len(w.steps) {
		return w.steps[w.currentStep].Init()
	}
	return nil
}

func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyPressMsg:
		return w.handleKey(msg)
	}

	if w.onMessage != nil {
		return w, w.onMessage(w, msg)
	}
	return w, nil
}

func (w *Wizard) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		// Clear the step's input first, cancel on the next press.
		if msg.String() == "esc" && w.currentStep < len(w.steps) {
			step := w.steps[w.currentStep]
			if step.HasClearableInput() {
				return w, step.ClearInput()
			}
		}
		w.cancelled = true
		w.done = true
		return w, tea.Quit
	}

	if w.currentStep >= len(w.steps) {
		return w.handleSummaryInput(msg)
	}

	step := w.steps[w.currentStep]
	newStep, cmd, result := step.Update(msg)
	w.steps[w.currentStep] = newStep

	switch result {
	case StepAdvance:
		w.confirmedSteps[step.ID()] = true
		var cbCmd tea.Cmd
		if cb, ok := w.onComplete[step.ID()]; ok {
			cbCmd = cb(w)
		}
		next := w.currentStep + 1
		if next >= len(w.steps) {
			w.currentStep = len(w.steps)
			return w, tea.Batch(cmd, cbCmd)
		}
		w.currentStep = next
		return w, tea.Batch(cmd, cbCmd, w.steps[next].Init())
	case StepBack:
		if w.currentStep > 0 {
			w.currentStep--
			return w, tea.Batch(cmd, w.steps[w.currentStep].Init())
		}
	}

	return w, cmd
}

func (w *Wizard) handleSummaryInput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if w.canConfirm != nil && !w.canConfirm(w) {
			return w, nil
		}
		w.done = true
		return w, tea.Quit
	case "left":
		w.currentStep = len(w.steps) - 1
		return w, w.steps[w.currentStep].Init()
	}
	return w, nil
}

func (w *Wizard) View() tea.View {
	if w.done {
		return tea.NewView("")
	}

	var b strings.Builder

	b.WriteString(TitleStyle().Render(w.title))
	b.WriteString("\n\n")

	if w.infoLine != nil {
		if info := w.infoLine(w); info != "" {
			b.WriteString(InfoStyle().Render(info))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(w.renderStepTabs())
	b.WriteString("\n\n")

	if w.currentStep >= len(w.steps) {
		b.WriteString(w.renderSummary())
	} else {
		b.WriteString(w.steps[w.currentStep].View())
	}
	b.WriteString("\n")

	if w.currentStep >= len(w.steps) {
		b.WriteString(HelpStyle().Render("← back • enter confirm • esc cancel"))
	} else {
		b.WriteString(HelpStyle().Render(w.steps[w.currentStep].Help()))
	}

	return tea.NewView(BorderStyle().Render(b.String()))
}

func (w *Wizard) renderStepTabs() string {
	tabs := make([]string, 0, len(w.steps)+1)

	for i, step := range w.steps {
		isActive := i == w.currentStep
		isConfirmed := w.confirmedSteps[step.ID()]
		label := fmt.Sprintf("%d. %s", i+1, step.Title())

		var tabText string
		switch {
		case isActive && isConfirmed:
			tabText = StepCheckStyle().Render("✓ ") + StepActiveStyle().Render(label)
		case isActive:
			tabText = "  " + StepActiveStyle().Render(label)
		case isConfirmed:
			tabText = StepCheckStyle().Render("✓ ") + StepCompletedStyle().Render(label)
		default:
			tabText = "  " + StepInactiveStyle().Render(label)
		}
		tabs = append(tabs, tabText)
	}

	summaryLabel := fmt.Sprintf("%d. Summary", len(w.steps)+1)
	if w.currentStep >= len(w.steps) {
		tabs = append(tabs, "  "+StepActiveStyle().Render(summaryLabel))
	} else {
		tabs = append(tabs, "  "+StepInactiveStyle().Render(summaryLabel))
	}

	return strings.Join(tabs, StepArrowStyle().Render(" → "))
}

func (w *Wizard) renderSummary() string {
	var b strings.Builder
	b.WriteString(w.summaryTitle + ":\n\n")

	for _, step := range w.steps {
		v := step.Value()
		if v.Label == "" {
			continue
		}
		b.WriteString(SummaryLabelStyle().Render(step.Title()+": ") +
			SummaryValueStyle().Render(v.Label) + "\n")
	}

	b.WriteString("\n" + OptionNormalStyle().Render("Press enter to confirm, ← to go back"))
	return b.String()
}

func (w *Wizard) findNextIncompleteStep(from int) int {
	for i := from + 1; i < len(w.steps); i++ {
		if !w.steps[i].IsComplete() {
			return i
		}
	}
	return -1
}

// CurrentStepID returns the current step's ID, or "summary" if on summary.
func (w *Wizard) CurrentStepID() string {
	if w.currentStep >= len(w.steps) {
		return "summary"
	}
	return w.steps[w.currentStep].ID()
}

// StepCount returns the number of steps (excluding summary).
func (w *Wizard) StepCount() int {
	return len(w.steps)
}

// AllStepsComplete returns true if all steps have values.
func (w *Wizard) AllStepsComplete() bool {
	for _, step := range w.steps {
		if !step.IsComplete() {
			return false
		}
	}
	return true
}
