// Package cascade resolves a vehicle's brand, model and year against the
// reference catalog.
//
// A form session opens with one availability probe. When the catalog
// answers, the session runs in cascade mode: picking a brand loads its
// models, picking a model loads its years. When it does not, the session
// runs in manual mode for its whole lifetime and never contacts the catalog
// again.
//
// The selection logic is the pure transition [Reduce]. Fetches it asks for
// are returned as [Fetch] values and executed by the caller (the form runs
// them as bubbletea commands); their outcomes come back as events. Each
// fetch carries the generation of its level, and a result whose generation
// is no longer current is dropped.
package cascade

import (
	"fmt"
	"time"
)

// Mode is the input mode of a form session.
type Mode int

const (
	// ModeCascade offers catalog lists at every level.
	ModeCascade Mode = iota
	// ModeManual takes brand and model as free text and the year from a
	// fixed range.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeCascade:
		return "cascade"
	case ModeManual:
		return "manual"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MinManualYear is the oldest year offered in manual mode.
const MinManualYear = 1980

// Decide picks the session mode from the probe result.
func Decide(probeOK bool) Mode {
	if probeOK {
		return ModeCascade
	}
	return ModeManual
}

// ManualYears lists the years offered in manual mode, from now's year down
// to MinManualYear.
func ManualYears(now time.Time) []int {
	years := make([]int, 0, now.Year()-MinManualYear+1)
	for y := now.Year(); y >= MinManualYear; y-- {
		years = append(years, y)
	}
	return years
}
