package cascade

import (
	"github.com/raphi011/garage/internal/catalog"
)

// Event is an input to Reduce: a user selection or a fetch outcome.
type Event interface {
	event()
}

// BrandSelected records the user's brand pick. In manual mode only Name is
// set.
type BrandSelected struct{ Entry catalog.Entry }

// ModelSelected records the user's model pick.
type ModelSelected struct{ Entry catalog.Entry }

// YearSelected records the user's year pick.
type YearSelected struct{ Entry catalog.Entry }

// ModelsLoaded reports the outcome of a model fetch.
type ModelsLoaded struct {
	Generation uint64
	Entries    []catalog.Entry
	Err        error
}

// YearsLoaded reports the outcome of a year fetch.
type YearsLoaded struct {
	Generation uint64
	Entries    []catalog.Entry
	Err        error
}

func (BrandSelected) event() {}
func (ModelSelected) event() {}
func (YearSelected) event()  {}
func (ModelsLoaded) event()  {}
func (YearsLoaded) event()   {}

// Fetch asks the caller to load one dependent level. Its outcome must come
// back as ModelsLoaded or YearsLoaded carrying the same Generation.
type Fetch struct {
	Level      Level
	Generation uint64
	BrandCode  string
	ModelCode  string
}

// Reduce applies ev to s and returns the next state together with the
// fetches to run. Changing an upstream pick clears every dependent list in
// the returned state, before any fetch for the new pick is issued.
func Reduce(s State, ev Event) (State, []Fetch) {
	switch ev := ev.(type) {
	case BrandSelected:
		return selectBrand(s, ev.Entry)
	case ModelSelected:
		return selectModel(s, ev.Entry)
	case YearSelected:
		s.Selection.YearName = ev.Entry.Name
		return s, nil
	case ModelsLoaded:
		s.Models = settle(s.Models, ev.Generation, ev.Entries, ev.Err)
		return s, nil
	case YearsLoaded:
		s.Years = settle(s.Years, ev.Generation, ev.Entries, ev.Err)
		return s, nil
	}
	return s, nil
}

func selectBrand(s State, e catalog.Entry) (State, []Fetch) {
	sel := s.Selection
	if sel.BrandName != "" && sel.BrandCode == e.Code && sel.BrandName == e.Name {
		return s, nil
	}

	s.Selection = Selection{BrandCode: e.Code, BrandName: e.Name}
	s.Models = s.Models.reset()
	s.Years = s.Years.reset()

	if s.Mode != ModeCascade || e.Code == "" {
		return s, nil
	}
	s.Models.Status = StatusLoading
	return s, []Fetch{{
		Level:      LevelModels,
		Generation: s.Models.Generation,
		BrandCode:  e.Code,
	}}
}

func selectModel(s State, e catalog.Entry) (State, []Fetch) {
	sel := s.Selection
	if sel.BrandName == "" {
		return s, nil
	}
	if sel.ModelName != "" && sel.ModelCode == e.Code && sel.ModelName == e.Name {
		return s, nil
	}

	s.Selection.ModelCode = e.Code
	s.Selection.ModelName = e.Name
	s.Selection.YearName = ""
	s.Years = s.Years.reset()

	if s.Mode != ModeCascade || e.Code == "" || sel.BrandCode == "" {
		return s, nil
	}
	s.Years.Status = StatusLoading
	return s, []Fetch{{
		Level:      LevelYears,
		Generation: s.Years.Generation,
		BrandCode:  sel.BrandCode,
		ModelCode:  e.Code,
	}}
}

// settle applies a fetch outcome to l unless it belongs to an older
// generation or l is no longer waiting for it.
func settle(l List, gen uint64, entries []catalog.Entry, err error) List {
	if gen != l.Generation || l.Status != StatusLoading {
		return l
	}
	if err != nil {
		return List{Status: StatusErrored, Err: err, Generation: l.Generation}
	}
	return List{Status: StatusLoaded, Entries: entries, Generation: l.Generation}
}
