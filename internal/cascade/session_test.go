package cascade

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/raphi011/garage/internal/catalog"
)

type fakeProbe struct {
	results []bool
	calls   int
}

func (p *fakeProbe) Check(ctx context.Context, timeout time.Duration) bool {
	ok := p.results[min(p.calls, len(p.results)-1)]
	p.calls++
	return ok
}

type fakeCatalog struct {
	mu     sync.Mutex
	brands []catalog.Entry
	models map[string][]catalog.Entry
	years  map[string][]catalog.Entry
	err    error

	brandCalls int
	modelCalls []string
	yearCalls  []string
}

func (c *fakeCatalog) Brands(ctx context.Context) ([]catalog.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brandCalls++
	if c.err != nil {
		return nil, c.err
	}
	return c.brands, nil
}

func (c *fakeCatalog) Models(ctx context.Context, brandCode string) ([]catalog.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modelCalls = append(c.modelCalls, brandCode)
	if c.err != nil {
		return nil, c.err
	}
	return c.models[brandCode], nil
}

func (c *fakeCatalog) Years(ctx context.Context, brandCode, modelCode string) ([]catalog.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yearCalls = append(c.yearCalls, brandCode+"/"+modelCode)
	if c.err != nil {
		return nil, c.err
	}
	return c.years[brandCode+"/"+modelCode], nil
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		brands: []catalog.Entry{audi, bmw},
		models: map[string][]catalog.Entry{
			"7": {a3, a4},
			"6": {x5},
		},
		years: map[string][]catalog.Entry{
			"7/100": {y2023, y2022},
			"6/200": {{Code: "2021-1", Name: "2021 Diesel"}},
		},
	}
}

func TestDecide(t *testing.T) {
	t.Parallel()

	if got := Decide(true); got != ModeCascade {
		t.Errorf("Decide(true) = %v, want cascade", got)
	}
	if got := Decide(false); got != ModeManual {
		t.Errorf("Decide(false) = %v, want manual", got)
	}
}

func TestManualYears(t *testing.T) {
	t.Parallel()

	years := ManualYears(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if years[0] != 2026 {
		t.Errorf("first year = %d, want 2026", years[0])
	}
	if last := years[len(years)-1]; last != MinManualYear {
		t.Errorf("last year = %d, want %d", last, MinManualYear)
	}
	if len(years) != 2026-MinManualYear+1 {
		t.Errorf("len = %d, want %d", len(years), 2026-MinManualYear+1)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("reachable catalog starts in cascade mode", func(t *testing.T) {
		t.Parallel()
		probe := &fakeProbe{results: []bool{true}}
		cat := newFakeCatalog()

		s := Open(context.Background(), OpenOptions{Probe: probe, Brands: cat})

		if s.Mode != ModeCascade || !s.RemoteAvailable {
			t.Errorf("mode = %v, remote = %v, want cascade and true", s.Mode, s.RemoteAvailable)
		}
		if s.Brands.Status != StatusLoaded || len(s.Brands.Entries) != 2 {
			t.Errorf("brands = %+v", s.Brands)
		}
		if probe.calls != 1 {
			t.Errorf("probe calls = %d, want 1", probe.calls)
		}
	})

	t.Run("unreachable catalog starts in manual mode", func(t *testing.T) {
		t.Parallel()
		probe := &fakeProbe{results: []bool{false}}
		cat := newFakeCatalog()

		s := Open(context.Background(), OpenOptions{Probe: probe, Brands: cat})

		if s.Mode != ModeManual || s.RemoteAvailable {
			t.Errorf("mode = %v, remote = %v, want manual and false", s.Mode, s.RemoteAvailable)
		}
		if cat.brandCalls != 0 {
			t.Errorf("brand calls = %d, want 0", cat.brandCalls)
		}
	})

	t.Run("forced manual skips the probe", func(t *testing.T) {
		t.Parallel()
		probe := &fakeProbe{results: []bool{true}}
		cat := newFakeCatalog()

		s := Open(context.Background(), OpenOptions{Probe: probe, Brands: cat, ForceManual: true})

		if s.Mode != ModeManual {
			t.Errorf("mode = %v, want manual", s.Mode)
		}
		if probe.calls != 0 || cat.brandCalls != 0 {
			t.Errorf("probe calls = %d, brand calls = %d, want 0 and 0", probe.calls, cat.brandCalls)
		}
	})

	t.Run("brand failure falls back to manual with a warning", func(t *testing.T) {
		t.Parallel()
		probe := &fakeProbe{results: []bool{true}}
		cat := newFakeCatalog()
		cat.err = &catalog.FetchError{Kind: catalog.KindBrands, Err: errors.New("502")}

		s := Open(context.Background(), OpenOptions{Probe: probe, Brands: cat})

		if s.Mode != ModeManual {
			t.Errorf("mode = %v, want manual", s.Mode)
		}
		if !s.RemoteAvailable {
			t.Error("RemoteAvailable should keep the probe result")
		}
		if got := s.Warnings(); !slices.Equal(got, []string{"could not load brands"}) {
			t.Errorf("Warnings() = %v", got)
		}
	})

	t.Run("empty brand list falls back to manual", func(t *testing.T) {
		t.Parallel()
		probe := &fakeProbe{results: []bool{true}}
		cat := newFakeCatalog()
		cat.brands = []catalog.Entry{}

		s := Open(context.Background(), OpenOptions{Probe: probe, Brands: cat})

		if s.Mode != ModeManual {
			t.Errorf("mode = %v, want manual", s.Mode)
		}
		if !errors.Is(s.Brands.Err, catalog.ErrEmptyList) {
			t.Errorf("brands error = %v, want ErrEmptyList", s.Brands.Err)
		}
		if got := s.Warnings(); !slices.Equal(got, []string{"could not load brands"}) {
			t.Errorf("Warnings() = %v", got)
		}
	})
}

func TestManualModeIsSticky(t *testing.T) {
	t.Parallel()

	// The probe would succeed on a second call; the session never asks again.
	probe := &fakeProbe{results: []bool{false, true}}
	cat := newFakeCatalog()
	ctx := context.Background()

	s := Open(ctx, OpenOptions{Probe: probe, Brands: cat})

	var fetches []Fetch
	for _, ev := range []Event{
		BrandSelected{Entry: catalog.Entry{Name: "Audi"}},
		ModelSelected{Entry: catalog.Entry{Name: "A4"}},
		BrandSelected{Entry: catalog.Entry{Name: "BMW"}},
		ModelSelected{Entry: catalog.Entry{Name: "X5"}},
		YearSelected{Entry: catalog.Entry{Name: "2020"}},
	} {
		var f []Fetch
		s, f = Reduce(s, ev)
		fetches = append(fetches, f...)
	}
	for _, f := range fetches {
		Execute(ctx, cat, f)
	}

	if probe.calls != 1 {
		t.Errorf("probe calls = %d, want 1", probe.calls)
	}
	if cat.brandCalls != 0 || len(cat.modelCalls) != 0 || len(cat.yearCalls) != 0 {
		t.Errorf("catalog contacted in manual mode: brands=%d models=%v years=%v",
			cat.brandCalls, cat.modelCalls, cat.yearCalls)
	}
	if s.Mode != ModeManual {
		t.Errorf("mode = %v, want manual", s.Mode)
	}

	got, ok := s.Result()
	if !ok {
		t.Fatal("Result() incomplete")
	}
	if want := (Result{BrandName: "BMW", ModelName: "X5", Year: 2020}); got != want {
		t.Errorf("Result() = %+v, want %+v", got, want)
	}
}

// The user picks Audi, then BMW before Audi's models arrive. Audi's late
// response must never surface.
func TestAudiThenBMW(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cat := newFakeCatalog()
	s := Open(ctx, OpenOptions{Probe: &fakeProbe{results: []bool{true}}, Brands: cat})

	s, fetches := Reduce(s, BrandSelected{Entry: audi})
	audiFetch := mustOneFetch(t, fetches)

	s, fetches = Reduce(s, BrandSelected{Entry: bmw})
	bmwFetch := mustOneFetch(t, fetches)

	if s.Models.Entries != nil {
		t.Fatalf("model list visible between brand change and fetch: %v", s.Models.Entries)
	}

	// BMW answers first, Audi's response arrives late.
	s, _ = Reduce(s, Execute(ctx, cat, bmwFetch))
	s, _ = Reduce(s, Execute(ctx, cat, audiFetch))

	if !slices.Equal(s.Models.Entries, []catalog.Entry{x5}) {
		t.Fatalf("models = %v, want only BMW's", s.Models.Entries)
	}
	if !slices.Equal(cat.modelCalls, []string{"6", "7"}) {
		t.Errorf("model calls = %v", cat.modelCalls)
	}

	s, fetches = Reduce(s, ModelSelected{Entry: x5})
	s, _ = Reduce(s, Execute(ctx, cat, mustOneFetch(t, fetches)))
	if len(s.Years.Entries) != 1 {
		t.Fatalf("years = %v, want BMW X5 years", s.Years.Entries)
	}
	s, _ = Reduce(s, YearSelected{Entry: s.Years.Entries[0]})

	got, ok := s.Result()
	if !ok {
		t.Fatal("Result() incomplete")
	}
	if want := (Result{BrandName: "BMW", ModelName: "X5", Year: 2021}); got != want {
		t.Errorf("Result() = %+v, want %+v", got, want)
	}
}

func TestExecute(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cat := newFakeCatalog()

	ev := Execute(ctx, cat, Fetch{Level: LevelYears, Generation: 4, BrandCode: "7", ModelCode: "100"})
	yl, ok := ev.(YearsLoaded)
	if !ok {
		t.Fatalf("Execute() = %T, want YearsLoaded", ev)
	}
	if yl.Generation != 4 || len(yl.Entries) != 2 || yl.Err != nil {
		t.Errorf("YearsLoaded = %+v", yl)
	}

	cat.err = errors.New("offline")
	ev = Execute(ctx, cat, Fetch{Level: LevelModels, Generation: 9, BrandCode: "7"})
	ml, ok := ev.(ModelsLoaded)
	if !ok {
		t.Fatalf("Execute() = %T, want ModelsLoaded", ev)
	}
	if ml.Generation != 9 || ml.Err == nil {
		t.Errorf("ModelsLoaded = %+v, want generation 9 with error", ml)
	}
}
