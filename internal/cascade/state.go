package cascade

import (
	"github.com/raphi011/garage/internal/catalog"
)

// Status is the load state of one catalog level.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Level names a dependent catalog level.
type Level int

const (
	LevelModels Level = iota
	LevelYears
)

func (l Level) String() string {
	if l == LevelModels {
		return "models"
	}
	return "years"
}

// List is one level's list and its load state. Entries is replaced on every
// transition, never modified in place.
type List struct {
	Status     Status
	Entries    []catalog.Entry
	Err        error
	Generation uint64
}

// Loading reports whether a fetch for this list is in flight.
func (l List) Loading() bool {
	return l.Status == StatusLoading
}

// reset clears the list and invalidates any fetch in flight for it.
func (l List) reset() List {
	return List{Status: StatusIdle, Generation: l.Generation + 1}
}

// Selection is what the user has picked so far. Codes drive fetches; names
// are what gets submitted. In manual mode codes stay empty.
type Selection struct {
	BrandCode string
	BrandName string
	ModelCode string
	ModelName string
	YearName  string
}

// State is the resolver state of one form session.
type State struct {
	Mode            Mode
	RemoteAvailable bool

	Brands List
	Models List
	Years  List

	Selection Selection
}

// Warnings returns the user-facing messages of levels that failed to load.
func (s State) Warnings() []string {
	var out []string
	for _, l := range []List{s.Brands, s.Models, s.Years} {
		if l.Status == StatusErrored && l.Err != nil {
			out = append(out, l.Err.Error())
		}
	}
	return out
}

// Result is the resolved vehicle identity handed to the form.
type Result struct {
	BrandName string
	ModelName string
	Year      int
}

// Result returns the resolved identity once brand, model and year are set.
func (s State) Result() (Result, bool) {
	sel := s.Selection
	if sel.BrandName == "" || sel.ModelName == "" || sel.YearName == "" {
		return Result{}, false
	}
	return Result{
		BrandName: sel.BrandName,
		ModelName: sel.ModelName,
		Year:      catalog.ExtractYear(sel.YearName),
	}, true
}
