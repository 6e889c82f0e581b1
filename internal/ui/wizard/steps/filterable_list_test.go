package steps

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/garage/internal/ui/wizard/framework"
)

func brandOptions(names ...string) []framework.Option {
	opts := make([]framework.Option, len(names))
	for i, n := range names {
		opts[i] = framework.Option{Label: n, Value: strings.ToLower(n)}
	}
	return opts
}

func newBrandList() *FilterableListStep {
	return NewFilterableList("brand", "Brand", "Select brand",
		brandOptions("Audi", "BMW", "Chevrolet", "Fiat", "Mercedes-Benz"))
}

func TestFilterableListStep_BasicNavigation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		keys       []string
		wantCursor int
	}{
		{"initial", nil, 0},
		{"down", []string{"down", "down"}, 2},
		{"up at top", []string{"up"}, 0},
		{"down at bottom", []string{"end", "down"}, 4},
		{"home", []string{"end", "home"}, 0},
		{"j is typed, not navigation", []string{"j"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			step := newBrandList()
			for _, k := range tt.keys {
				step, _ = updateStep(t, step, keyMsg(k))
			}
			if got := step.cursor; got != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", got, tt.wantCursor)
			}
		})
	}
}

func TestFilterableListStep_FilterInput(t *testing.T) {
	t.Parallel()

	t.Run("typing filters fuzzily", func(t *testing.T) {
		t.Parallel()
		step := typeText(t, newBrandList(), "mb")

		if step.filter != "mb" {
			t.Errorf("filter = %q", step.filter)
		}
		if len(step.filtered) != 1 {
			t.Fatalf("filtered = %d, want 1 (Mercedes-Benz)", len(step.filtered))
		}
		step, _ = updateStep(t, step, keyMsg("enter"))
		if v := step.Value(); v.Label != "Mercedes-Benz" {
			t.Errorf("selected %q, want Mercedes-Benz", v.Label)
		}
	})

	t.Run("backspace removes a rune", func(t *testing.T) {
		t.Parallel()
		step := typeText(t, newBrandList(), "fiö")
		step, _ = updateStep(t, step, keyMsg("backspace"))
		if step.filter != "fi" {
			t.Errorf("filter = %q, want fi", step.filter)
		}
	})

	t.Run("alt+backspace removes a word", func(t *testing.T) {
		t.Parallel()
		step := typeText(t, newBrandList(), "mercedes benz")
		step, _ = updateStep(t, step, keyMsg("alt+backspace"))
		if step.filter != "mercedes " {
			t.Errorf("filter = %q, want %q", step.filter, "mercedes ")
		}
	})

	t.Run("space is part of the filter", func(t *testing.T) {
		t.Parallel()
		step := newBrandList()
		step, _ = updateStep(t, step, keyMsg("a"))
		step, _ = updateStep(t, step, keyMsg("space"))
		if step.filter != "a " {
			t.Errorf("filter = %q, want %q", step.filter, "a ")
		}
	})

	t.Run("no match cannot be confirmed", func(t *testing.T) {
		t.Parallel()
		step := typeText(t, newBrandList(), "zzz")
		step, result := updateStep(t, step, keyMsg("enter"))
		if result != framework.StepContinue || step.IsComplete() {
			t.Errorf("result = %v, complete = %v", result, step.IsComplete())
		}
		if !strings.Contains(step.View(), "No matching items") {
			t.Error("View() should show the empty message")
		}
	})

	t.Run("control keys are not typed", func(t *testing.T) {
		t.Parallel()
		step := newBrandList()
		step, _ = updateStep(t, step, tea.KeyPressMsg{Code: 'a', Text: "a", Mod: tea.ModCtrl})
		if step.filter != "" {
			t.Errorf("filter = %q, want empty", step.filter)
		}
	})
}

func TestFilterableListStep_Selection(t *testing.T) {
	t.Parallel()

	step := newBrandList()
	step, _ = updateStep(t, step, keyMsg("down"))
	step, result := updateStep(t, step, keyMsg("right"))

	if result != framework.StepAdvance {
		t.Fatalf("result = %v, want StepAdvance", result)
	}
	if v := step.Value(); v.Label != "BMW" || v.Raw != "bmw" {
		t.Errorf("Value() = %+v, want BMW", v)
	}

	// The selection survives later filter changes.
	step = typeText(t, step, "fi")
	if v := step.Value(); v.Label != "BMW" {
		t.Errorf("Value() after filtering = %+v, want BMW", v)
	}

	_, result = updateStep(t, step, keyMsg("left"))
	if result != framework.StepBack {
		t.Errorf("left result = %v, want StepBack", result)
	}
}

func TestFilterableListStep_Loading(t *testing.T) {
	t.Parallel()

	step := newBrandList()
	step.SetLoading("Loading models…")

	if !step.IsLoading() || step.OptionsCount() != 0 {
		t.Fatalf("loading = %v, options = %d", step.IsLoading(), step.OptionsCount())
	}
	if !strings.Contains(step.View(), "Loading models…") {
		t.Error("View() should show the loading text")
	}

	step, result := updateStep(t, step, keyMsg("enter"))
	if result != framework.StepContinue || step.IsComplete() {
		t.Error("enter while loading must not advance")
	}

	step.SetOptions(brandOptions("A3", "A4"))
	if step.IsLoading() {
		t.Error("SetOptions should end loading")
	}
	if step.OptionsCount() != 2 {
		t.Errorf("OptionsCount() = %d", step.OptionsCount())
	}
}

func TestFilterableListStep_Notice(t *testing.T) {
	t.Parallel()

	step := newBrandList()
	step.SetOptions(nil)
	step.SetNotice("could not load models")

	view := step.View()
	if !strings.Contains(view, "could not load models") {
		t.Error("View() should show the notice")
	}
	if strings.Contains(view, "No matching items") {
		t.Error("the empty message is replaced by the notice")
	}

	step.SetOptions(brandOptions("X5"))
	if step.Notice() != "" {
		t.Errorf("SetOptions should clear the notice, got %q", step.Notice())
	}
}

func TestFilterableListStep_SetOptionsDropsSelection(t *testing.T) {
	t.Parallel()

	step := newBrandList()
	step, _ = updateStep(t, step, keyMsg("end"))
	step, _ = updateStep(t, step, keyMsg("enter"))
	if !step.IsComplete() {
		t.Fatal("expected a selection")
	}

	step.SetOptions(brandOptions("A3"))
	if step.IsComplete() || step.cursor != 0 {
		t.Errorf("complete = %v, cursor = %d after SetOptions", step.IsComplete(), step.cursor)
	}
}

func TestFilterableListStep_ResetAndClear(t *testing.T) {
	t.Parallel()

	step := typeText(t, newBrandList(), "au")
	step, _ = updateStep(t, step, keyMsg("enter"))

	step.Reset()
	if step.IsComplete() {
		t.Error("Reset should clear the selection")
	}
	if step.filter != "au" || !step.HasClearableInput() {
		t.Error("Reset keeps the filter")
	}

	step.ClearInput()
	if step.filter != "" || step.HasClearableInput() {
		t.Errorf("ClearInput left filter %q", step.filter)
	}
	if len(step.filtered) != 5 {
		t.Errorf("filtered = %d, want all 5", len(step.filtered))
	}
}

func TestFilterableListStep_Interface(t *testing.T) {
	t.Parallel()

	var step framework.Step = newBrandList()
	if step.ID() != "brand" || step.Title() != "Brand" {
		t.Errorf("ID/Title = %s/%s", step.ID(), step.Title())
	}
	if step.Help() == "" {
		t.Error("Help() should not be empty")
	}
	if step.Init() != nil {
		t.Error("Init() should return nil")
	}
}
