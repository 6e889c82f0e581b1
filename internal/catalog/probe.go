package catalog

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/raphi011/garage/internal/log"
)

// DefaultProbeTimeout bounds the availability check.
const DefaultProbeTimeout = 3 * time.Second

// Probe checks whether the catalog service answers at all.
type Probe struct {
	url  string
	http *http.Client
}

// NewProbe creates a probe against the client's brand list endpoint.
func NewProbe(c *Client) *Probe {
	return &Probe{url: c.BrandsURL(), http: c.http}
}

// Check issues one GET bounded by timeout and reports whether it returned a
// 2xx status. Every failure, including the timeout, yields false.
func (p *Probe) Check(ctx context.Context, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	l := log.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		l.Debug("catalog probe failed", "url", p.url, "err", err)
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.http.Do(req)
	if err != nil {
		l.Debug("catalog probe failed", "url", p.url, "err", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	l.Debug("catalog probe", "url", p.url, "status", resp.StatusCode, "reachable", ok)
	return ok
}
