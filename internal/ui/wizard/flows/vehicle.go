package flows

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/garage/internal/cascade"
	"github.com/raphi011/garage/internal/catalog"
	"github.com/raphi011/garage/internal/registry"
	"github.com/raphi011/garage/internal/ui/wizard/framework"
	"github.com/raphi011/garage/internal/ui/wizard/steps"
)

// Step ids of the add-vehicle form.
const (
	stepBrand = "brand"
	stepModel = "model"
	stepYear  = "year"
	stepPlate = "plate"
)

const plateCharLimit = 10

var errIncomplete = errors.New("vehicle form finished without brand, model and year")

// VehicleOptions holds the values gathered by the add-vehicle form.
type VehicleOptions struct {
	Brand     string
	Model     string
	Year      int
	Plate     string
	Cancelled bool
}

// VehicleWizardParams contains parameters for the add-vehicle form.
type VehicleWizardParams struct {
	// Ctx bounds the catalog fetches started by the form.
	Ctx context.Context

	// State is the opened resolver session (see cascade.Open).
	State cascade.State

	// Source loads models and years in cascade mode.
	Source cascade.Source

	// Plate prefills the plate step.
	Plate string

	// Now sets the newest manual year; zero means time.Now().
	Now time.Time
}

// fetchResultMsg carries a finished catalog fetch back into the event loop.
type fetchResultMsg struct {
	event cascade.Event
}

// vehicleForm keeps the resolver state next to the wizard that renders it.
// Every change goes through dispatch, which runs cascade.Reduce and mirrors
// the new state into the steps.
type vehicleForm struct {
	ctx    context.Context
	source cascade.Source
	state  cascade.State
	now    time.Time

	wizard *framework.Wizard
	brand  framework.Step
	model  framework.Step
	year   framework.Step
	plate  *steps.TextInputStep
}

// VehicleInteractive runs the add-vehicle form.
func VehicleInteractive(params VehicleWizardParams) (VehicleOptions, error) {
	f := newVehicleForm(params)

	w, err := f.wizard.Run()
	if err != nil {
		return VehicleOptions{}, err
	}
	return f.options(w)
}

func newVehicleForm(params VehicleWizardParams) *vehicleForm {
	ctx := params.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}

	f := &vehicleForm{
		ctx:    ctx,
		source: params.Source,
		state:  params.State,
		now:    now,
	}

	if f.state.Mode == cascade.ModeCascade {
		f.brand = steps.NewFilterableList(stepBrand, "Brand", "Select brand", entryOptions(f.state.Brands.Entries)).
			WithEmptyMessage("No matching brands")
		f.model = steps.NewFilterableList(stepModel, "Model", "Select model", nil).
			WithEmptyMessage("No matching models")
		f.year = steps.NewFilterableList(stepYear, "Year", "Select year", nil).
			WithEmptyMessage("No matching years")
	} else {
		f.brand = steps.NewTextInput(stepBrand, "Brand", "Enter brand", "e.g. Volkswagen")
		f.model = steps.NewTextInput(stepModel, "Model", "Enter model", "e.g. Gol")
		f.year = steps.NewSingleSelect(stepYear, "Year", "Select year", manualYearOptions(now))
	}

	f.plate = steps.NewTextInput(stepPlate, "Plate", "Enter plate (optional)", "e.g. ABC1D23").
		WithOptional().
		SetCharLimit(plateCharLimit)
	if params.Plate != "" {
		f.plate.Prefill(params.Plate)
	}

	f.wizard = framework.NewWizard("Add vehicle").
		AddStep(f.brand).
		AddStep(f.model).
		AddStep(f.year).
		AddStep(f.plate).
		WithSummary("Review vehicle").
		WithInfoLine(f.infoLine).
		WithConfirmCheck(func(*framework.Wizard) bool {
			return f.resultError() == nil
		}).
		OnComplete(stepBrand, func(*framework.Wizard) tea.Cmd {
			return f.dispatch(cascade.BrandSelected{Entry: selectedEntry(f.brand)})
		}).
		OnComplete(stepModel, func(*framework.Wizard) tea.Cmd {
			return f.dispatch(cascade.ModelSelected{Entry: selectedEntry(f.model)})
		}).
		OnComplete(stepYear, func(*framework.Wizard) tea.Cmd {
			return f.dispatch(cascade.YearSelected{Entry: selectedEntry(f.year)})
		}).
		OnMessage(func(_ *framework.Wizard, msg tea.Msg) tea.Cmd {
			if res, ok := msg.(fetchResultMsg); ok {
				return f.dispatch(res.event)
			}
			return nil
		})

	return f
}

// dispatch applies ev and starts the fetches it asks for.
func (f *vehicleForm) dispatch(ev cascade.Event) tea.Cmd {
	prev := f.state
	var fetches []cascade.Fetch
	f.state, fetches = cascade.Reduce(f.state, ev)

	f.syncLevel(f.model, "models", prev.Models, f.state.Models)
	f.syncLevel(f.year, "years", prev.Years, f.state.Years)

	cmds := make([]tea.Cmd, 0, len(fetches))
	for _, fetch := range fetches {
		cmds = append(cmds, f.fetchCmd(fetch))
	}
	return tea.Batch(cmds...)
}

func (f *vehicleForm) fetchCmd(fetch cascade.Fetch) tea.Cmd {
	ctx, source := f.ctx, f.source
	return func() tea.Msg {
		return fetchResultMsg{event: cascade.Execute(ctx, source, fetch)}
	}
}

// syncLevel mirrors one dependent level into its step. A new generation
// means the upstream pick changed, so the step loses its selection too.
func (f *vehicleForm) syncLevel(step framework.Step, noun string, prev, cur cascade.List) {
	changed := cur.Generation != prev.Generation
	if changed {
		step.Reset()
		step.ClearInput()
		f.wizard.Unconfirm(step.ID())
	}

	list, ok := step.(*steps.FilterableListStep)
	if !ok || (!changed && cur.Status == prev.Status) {
		return
	}

	switch cur.Status {
	case cascade.StatusLoading:
		list.SetLoading("Loading " + noun + "…")
	case cascade.StatusLoaded:
		list.SetOptions(entryOptions(cur.Entries))
	case cascade.StatusErrored:
		list.SetOptions(nil)
		list.SetNotice(cur.Err.Error())
	default:
		list.SetOptions(nil)
	}
}

// resultError reports why the picks cannot be stored yet: an unresolved
// level, or a vehicle the registry would reject.
func (f *vehicleForm) resultError() error {
	res, ok := f.state.Result()
	if !ok {
		return errIncomplete
	}
	v := registry.Vehicle{Brand: res.BrandName, Model: res.ModelName, Year: res.Year}
	return v.Validate(f.now)
}

func (f *vehicleForm) infoLine(*framework.Wizard) string {
	if err := f.resultError(); err != nil && !errors.Is(err, errIncomplete) {
		return err.Error()
	}
	if f.state.Mode != cascade.ModeManual {
		return ""
	}
	if ws := f.state.Warnings(); len(ws) > 0 {
		return strings.Join(ws, "; ") + ", enter the vehicle manually"
	}
	return "Catalog unavailable, enter the vehicle manually"
}

func (f *vehicleForm) options(w *framework.Wizard) (VehicleOptions, error) {
	if w.IsCancelled() {
		return VehicleOptions{Cancelled: true}, nil
	}
	if err := f.resultError(); err != nil {
		return VehicleOptions{}, err
	}
	res, _ := f.state.Result()
	return VehicleOptions{
		Brand: res.BrandName,
		Model: res.ModelName,
		Year:  res.Year,
		Plate: w.GetString(stepPlate),
	}, nil
}

// selectedEntry returns the pick of a brand, model or year step in either
// mode. Text and year steps yield an entry without a code.
func selectedEntry(step framework.Step) catalog.Entry {
	v := step.Value()
	switch raw := v.Raw.(type) {
	case catalog.Entry:
		return raw
	case int:
		return catalog.Entry{Name: strconv.Itoa(raw)}
	case string:
		return catalog.Entry{Name: raw}
	}
	return catalog.Entry{Name: v.Label}
}

func entryOptions(entries []catalog.Entry) []framework.Option {
	opts := make([]framework.Option, len(entries))
	for i, e := range entries {
		opts[i] = framework.Option{Label: e.Name, Value: e}
	}
	return opts
}

func manualYearOptions(now time.Time) []framework.Option {
	years := cascade.ManualYears(now)
	opts := make([]framework.Option, len(years))
	for i, y := range years {
		opts[i] = framework.Option{Label: strconv.Itoa(y), Value: y}
	}
	return opts
}
