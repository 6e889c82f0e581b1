package cascade

import (
	"context"
	"time"

	"github.com/raphi011/garage/internal/catalog"
	"github.com/raphi011/garage/internal/log"
)

// Prober reports whether the catalog service is reachable.
type Prober interface {
	Check(ctx context.Context, timeout time.Duration) bool
}

// BrandSource supplies the top-level list, usually through the brand cache.
type BrandSource interface {
	Brands(ctx context.Context) ([]catalog.Entry, error)
}

// Source loads the dependent levels.
type Source interface {
	Models(ctx context.Context, brandCode string) ([]catalog.Entry, error)
	Years(ctx context.Context, brandCode, modelCode string) ([]catalog.Entry, error)
}

// OpenOptions configures a form session.
type OpenOptions struct {
	Probe        Prober
	Brands       BrandSource
	ProbeTimeout time.Duration

	// ForceManual skips the probe and starts in manual mode.
	ForceManual bool
}

// Open starts a form session. It probes the catalog once and picks the
// mode. In cascade mode it also loads the brand list; when that fails the
// session continues in manual mode with the failure kept as a warning.
func Open(ctx context.Context, opts OpenOptions) State {
	l := log.FromContext(ctx)

	probeOK := false
	if !opts.ForceManual && opts.Probe != nil {
		probeOK = opts.Probe.Check(ctx, opts.ProbeTimeout)
	}

	s := State{Mode: Decide(probeOK), RemoteAvailable: probeOK}
	if s.Mode == ModeManual {
		l.Debug("catalog unavailable, using manual entry", "forced", opts.ForceManual)
		return s
	}

	brands, err := opts.Brands.Brands(ctx)
	if err == nil && len(brands) == 0 {
		err = &catalog.FetchError{Kind: catalog.KindBrands, Err: catalog.ErrEmptyList}
	}
	if err != nil {
		l.Debug("brand list failed, using manual entry", "err", err)
		s.Brands = List{Status: StatusErrored, Err: err}
		s.Mode = ModeManual
		return s
	}

	s.Brands = List{Status: StatusLoaded, Entries: brands}
	return s
}

// Execute runs f against src and reports the outcome as the matching event.
// Errors are carried in the event, never returned.
func Execute(ctx context.Context, src Source, f Fetch) Event {
	switch f.Level {
	case LevelYears:
		entries, err := src.Years(ctx, f.BrandCode, f.ModelCode)
		return YearsLoaded{Generation: f.Generation, Entries: entries, Err: err}
	default:
		entries, err := src.Models(ctx, f.BrandCode)
		return ModelsLoaded{Generation: f.Generation, Entries: entries, Err: err}
	}
}
