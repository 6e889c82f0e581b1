package cascade

import (
	"errors"
	"slices"
	"testing"

	"github.com/raphi011/garage/internal/catalog"
)

var (
	audi     = catalog.Entry{Code: "7", Name: "Audi"}
	bmw      = catalog.Entry{Code: "6", Name: "BMW"}
	a4       = catalog.Entry{Code: "100", Name: "A4"}
	a3       = catalog.Entry{Code: "101", Name: "A3"}
	x5       = catalog.Entry{Code: "200", Name: "X5"}
	y2023    = catalog.Entry{Code: "2023-1", Name: "2023 Gasolina"}
	y2022    = catalog.Entry{Code: "2022-1", Name: "2022 Gasolina"}
	errModel = &catalog.FetchError{Kind: catalog.KindModels, Err: errors.New("timeout")}
)

func cascadeState() State {
	return State{
		Mode:            ModeCascade,
		RemoteAvailable: true,
		Brands:          List{Status: StatusLoaded, Entries: []catalog.Entry{audi, bmw}},
	}
}

func mustOneFetch(t *testing.T, fetches []Fetch) Fetch {
	t.Helper()
	if len(fetches) != 1 {
		t.Fatalf("got %d fetches, want 1: %+v", len(fetches), fetches)
	}
	return fetches[0]
}

func TestReduce_BrandSelectionStartsModelFetch(t *testing.T) {
	t.Parallel()

	s, fetches := Reduce(cascadeState(), BrandSelected{Entry: audi})
	f := mustOneFetch(t, fetches)

	if f.Level != LevelModels || f.BrandCode != "7" {
		t.Errorf("fetch = %+v, want models of brand 7", f)
	}
	if f.Generation != s.Models.Generation {
		t.Errorf("fetch generation = %d, level generation = %d", f.Generation, s.Models.Generation)
	}
	if !s.Models.Loading() {
		t.Errorf("models status = %v, want loading", s.Models.Status)
	}
	if s.Selection.BrandCode != "7" || s.Selection.BrandName != "Audi" {
		t.Errorf("selection = %+v, want Audi", s.Selection)
	}
}

func TestReduce_BrandChangeClearsDependents(t *testing.T) {
	t.Parallel()

	s, fetches := Reduce(cascadeState(), BrandSelected{Entry: audi})
	s, _ = Reduce(s, ModelsLoaded{Generation: mustOneFetch(t, fetches).Generation, Entries: []catalog.Entry{a3, a4}})
	s, fetches = Reduce(s, ModelSelected{Entry: a4})
	s, _ = Reduce(s, YearsLoaded{Generation: mustOneFetch(t, fetches).Generation, Entries: []catalog.Entry{y2023}})
	s, _ = Reduce(s, YearSelected{Entry: y2023})

	if _, ok := s.Result(); !ok {
		t.Fatal("expected a complete result before changing brand")
	}

	s, fetches = Reduce(s, BrandSelected{Entry: bmw})
	mustOneFetch(t, fetches)

	if s.Selection.ModelCode != "" || s.Selection.ModelName != "" || s.Selection.YearName != "" {
		t.Errorf("dependent selection not cleared: %+v", s.Selection)
	}
	if s.Models.Entries != nil {
		t.Errorf("model list not cleared: %v", s.Models.Entries)
	}
	if s.Years.Entries != nil || s.Years.Status != StatusIdle {
		t.Errorf("year list not reset: %+v", s.Years)
	}
	if !s.Models.Loading() {
		t.Errorf("models status = %v, want loading for the new brand", s.Models.Status)
	}
	if _, ok := s.Result(); ok {
		t.Error("result should be incomplete after brand change")
	}
}

func TestReduce_ModelChangeClearsYears(t *testing.T) {
	t.Parallel()

	s, fetches := Reduce(cascadeState(), BrandSelected{Entry: audi})
	s, _ = Reduce(s, ModelsLoaded{Generation: mustOneFetch(t, fetches).Generation, Entries: []catalog.Entry{a3, a4}})
	s, fetches = Reduce(s, ModelSelected{Entry: a4})
	s, _ = Reduce(s, YearsLoaded{Generation: mustOneFetch(t, fetches).Generation, Entries: []catalog.Entry{y2023, y2022}})
	s, _ = Reduce(s, YearSelected{Entry: y2022})

	s, fetches = Reduce(s, ModelSelected{Entry: a3})
	f := mustOneFetch(t, fetches)

	if f.Level != LevelYears || f.BrandCode != "7" || f.ModelCode != "101" {
		t.Errorf("fetch = %+v, want years of 7/101", f)
	}
	if s.Selection.YearName != "" {
		t.Errorf("year not cleared: %q", s.Selection.YearName)
	}
	if s.Years.Entries != nil || !s.Years.Loading() {
		t.Errorf("years = %+v, want cleared and loading", s.Years)
	}
	if len(s.Models.Entries) != 2 {
		t.Errorf("model list should survive a model change, got %v", s.Models.Entries)
	}
}

func TestReduce_StaleResultsAreDiscarded(t *testing.T) {
	t.Parallel()

	s, fetches := Reduce(cascadeState(), BrandSelected{Entry: audi})
	first := mustOneFetch(t, fetches)

	s, fetches = Reduce(s, BrandSelected{Entry: bmw})
	second := mustOneFetch(t, fetches)

	if first.Generation == second.Generation {
		t.Fatal("generations must differ between fetches")
	}

	s, _ = Reduce(s, ModelsLoaded{Generation: first.Generation, Entries: []catalog.Entry{a3, a4}})
	if !s.Models.Loading() || s.Models.Entries != nil {
		t.Fatalf("stale result applied: %+v", s.Models)
	}

	s, _ = Reduce(s, ModelsLoaded{Generation: second.Generation, Entries: []catalog.Entry{x5}})
	if s.Models.Status != StatusLoaded || !slices.Equal(s.Models.Entries, []catalog.Entry{x5}) {
		t.Errorf("models = %+v, want BMW models", s.Models)
	}

	// A late duplicate of the current generation changes nothing once loaded.
	s, _ = Reduce(s, ModelsLoaded{Generation: second.Generation, Err: errModel})
	if s.Models.Status != StatusLoaded {
		t.Errorf("loaded level changed by duplicate result: %+v", s.Models)
	}
}

func TestReduce_StaleErrorIsDiscarded(t *testing.T) {
	t.Parallel()

	s, fetches := Reduce(cascadeState(), BrandSelected{Entry: audi})
	first := mustOneFetch(t, fetches)
	s, _ = Reduce(s, BrandSelected{Entry: bmw})

	s, _ = Reduce(s, ModelsLoaded{Generation: first.Generation, Err: errModel})
	if s.Models.Status != StatusLoading {
		t.Errorf("stale error applied: status = %v", s.Models.Status)
	}
	if len(s.Warnings()) != 0 {
		t.Errorf("stale error produced warnings: %v", s.Warnings())
	}
}

func TestReduce_SameBrandIsNotAChange(t *testing.T) {
	t.Parallel()

	s, fetches := Reduce(cascadeState(), BrandSelected{Entry: audi})
	s, _ = Reduce(s, ModelsLoaded{Generation: mustOneFetch(t, fetches).Generation, Entries: []catalog.Entry{a4}})
	s, _ = Reduce(s, ModelSelected{Entry: a4})

	next, fetches := Reduce(s, BrandSelected{Entry: audi})
	if len(fetches) != 0 {
		t.Errorf("reselecting the same brand issued %d fetches", len(fetches))
	}
	if next.Selection != s.Selection || next.Models.Generation != s.Models.Generation {
		t.Errorf("reselecting the same brand changed state: %+v", next.Selection)
	}
}

func TestReduce_FetchFailure(t *testing.T) {
	t.Parallel()

	s, fetches := Reduce(cascadeState(), BrandSelected{Entry: audi})
	s, _ = Reduce(s, ModelsLoaded{Generation: mustOneFetch(t, fetches).Generation, Err: errModel})

	if s.Models.Status != StatusErrored {
		t.Fatalf("models status = %v, want errored", s.Models.Status)
	}
	if s.Models.Entries != nil {
		t.Errorf("errored level should have no entries, got %v", s.Models.Entries)
	}
	if got := s.Warnings(); !slices.Equal(got, []string{"could not load models"}) {
		t.Errorf("Warnings() = %v", got)
	}
	if s.Mode != ModeCascade {
		t.Errorf("fetch failure must not change the mode, got %v", s.Mode)
	}

	// No retry: a model pick without a loaded list changes nothing upstream,
	// and reselecting the same brand issues no fetch.
	_, fetches = Reduce(s, BrandSelected{Entry: audi})
	if len(fetches) != 0 {
		t.Errorf("same brand after failure issued %d fetches, want 0", len(fetches))
	}

	// Changing the brand recovers the level.
	s, fetches = Reduce(s, BrandSelected{Entry: bmw})
	mustOneFetch(t, fetches)
	if !s.Models.Loading() || s.Models.Err != nil {
		t.Errorf("models after brand change = %+v, want loading without error", s.Models)
	}
	if len(s.Warnings()) != 0 {
		t.Errorf("warning should clear on brand change, got %v", s.Warnings())
	}
}

func TestReduce_ModelWithoutBrandIsIgnored(t *testing.T) {
	t.Parallel()

	s, fetches := Reduce(cascadeState(), ModelSelected{Entry: a4})
	if len(fetches) != 0 || s.Selection.ModelName != "" {
		t.Errorf("model pick without brand changed state: %+v, %v", s.Selection, fetches)
	}
}

func TestReduce_ManualModeNeverFetches(t *testing.T) {
	t.Parallel()

	s := State{Mode: ModeManual}
	var all []Fetch

	s, f := Reduce(s, BrandSelected{Entry: catalog.Entry{Name: "Fiat"}})
	all = append(all, f...)
	s, f = Reduce(s, ModelSelected{Entry: catalog.Entry{Name: "Uno"}})
	all = append(all, f...)
	s, f = Reduce(s, YearSelected{Entry: catalog.Entry{Name: "1995"}})
	all = append(all, f...)

	// Even entries carrying codes do not fetch outside cascade mode.
	s, f = Reduce(s, BrandSelected{Entry: audi})
	all = append(all, f...)
	_, f = Reduce(s, ModelSelected{Entry: a4})
	all = append(all, f...)

	if len(all) != 0 {
		t.Errorf("manual mode issued fetches: %+v", all)
	}
}

func TestStateResult(t *testing.T) {
	t.Parallel()

	s := State{Mode: ModeManual}
	s, _ = Reduce(s, BrandSelected{Entry: catalog.Entry{Name: "Fiat"}})
	s, _ = Reduce(s, ModelSelected{Entry: catalog.Entry{Name: "Uno"}})

	if _, ok := s.Result(); ok {
		t.Fatal("Result() complete without a year")
	}

	s, _ = Reduce(s, YearSelected{Entry: catalog.Entry{Name: "1995"}})
	got, ok := s.Result()
	if !ok {
		t.Fatal("Result() incomplete after all picks")
	}
	want := Result{BrandName: "Fiat", ModelName: "Uno", Year: 1995}
	if got != want {
		t.Errorf("Result() = %+v, want %+v", got, want)
	}
}
