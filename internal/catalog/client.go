package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/raphi011/garage/internal/log"
)

const (
	// DefaultBaseURL is the public FIPE v1 API.
	DefaultBaseURL = "https://parallelum.com.br/fipe/api/v1"

	// DefaultVehicleType selects the passenger car catalog.
	DefaultVehicleType = "carros"

	userAgent = "garage/1.0"
)

// VehicleTypes lists the catalogs the service offers.
var VehicleTypes = []string{"carros", "motos", "caminhoes"}

// Options configures a Client.
type Options struct {
	BaseURL     string
	VehicleType string
	Locale      language.Tag

	// RequestsPerSecond paces requests to the service. Zero or less
	// disables pacing.
	RequestsPerSecond float64

	// HTTPClient defaults to a client without a timeout.
	HTTPClient *http.Client
}

// Client fetches catalog levels. Lists come back sorted for display:
// brands and models by name, years most recent first.
type Client struct {
	baseURL     string
	vehicleType string
	http        *http.Client
	limiter     *rate.Limiter
	sorter      Sorter
}

// NewClient creates a catalog client.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	vt := opts.VehicleType
	if vt == "" {
		vt = DefaultVehicleType
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &Client{
		baseURL:     base,
		vehicleType: vt,
		http:        hc,
		limiter:     rate.NewLimiter(limit, 1),
		sorter:      Sorter{Locale: opts.Locale},
	}
}

// VehicleType returns the catalog this client reads.
func (c *Client) VehicleType() string {
	return c.vehicleType
}

// BrandsURL is the endpoint of the top-level list.
func (c *Client) BrandsURL() string {
	return fmt.Sprintf("%s/%s/marcas", c.baseURL, c.vehicleType)
}

func (c *Client) modelsURL(brandCode string) string {
	return fmt.Sprintf("%s/%s/modelos", c.BrandsURL(), url.PathEscape(brandCode))
}

func (c *Client) yearsURL(brandCode, modelCode string) string {
	return fmt.Sprintf("%s/%s/anos", c.modelsURL(brandCode), url.PathEscape(modelCode))
}

// Brands fetches all brands sorted by name.
func (c *Client) Brands(ctx context.Context) ([]Entry, error) {
	entries, err := c.fetchList(ctx, c.BrandsURL(), "marcas", "brands")
	if err == nil && len(entries) == 0 {
		err = ErrEmptyList
	}
	if err != nil {
		return nil, &FetchError{Kind: KindBrands, Err: err}
	}
	return c.sorter.ByName(entries), nil
}

// Models fetches the models of a brand sorted by name.
func (c *Client) Models(ctx context.Context, brandCode string) ([]Entry, error) {
	entries, err := c.fetchList(ctx, c.modelsURL(brandCode), "modelos", "models")
	if err != nil {
		return nil, &FetchError{Kind: KindModels, Err: err}
	}
	return c.sorter.ByName(entries), nil
}

// Years fetches the model years of a model, most recent first.
func (c *Client) Years(ctx context.Context, brandCode, modelCode string) ([]Entry, error) {
	entries, err := c.fetchList(ctx, c.yearsURL(brandCode, modelCode), "anos", "years")
	if err != nil {
		return nil, &FetchError{Kind: KindYears, Err: err}
	}
	return YearsDesc(entries), nil
}

func (c *Client) fetchList(ctx context.Context, u string, keys ...string) ([]Entry, error) {
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return decodeList(body, keys...)
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u, err)
	}
	defer resp.Body.Close()

	log.FromContext(ctx).Debug("catalog request", "url", u, "status", resp.StatusCode, "took", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: u}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// decodeList decodes a bare list of entries, or unwraps one from an object.
// keys name the wrapper fields to try first; failing those, an object with a
// single list-valued field is unwrapped too.
func decodeList(body []byte, keys ...string) ([]Entry, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrUnexpectedShape
	}

	switch body[0] {
	case '[':
		var entries []Entry
		if err := json.Unmarshal(body, &entries); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return entries, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, fmt.Errorf("decode object: %w", err)
		}
		for _, k := range keys {
			if raw, ok := fields[k]; ok {
				return decodeList(raw)
			}
		}
		var lists []json.RawMessage
		for _, raw := range fields {
			if t := bytes.TrimSpace(raw); len(t) > 0 && t[0] == '[' {
				lists = append(lists, t)
			}
		}
		if len(lists) == 1 {
			return decodeList(lists[0])
		}
		return nil, ErrUnexpectedShape
	default:
		return nil, ErrUnexpectedShape
	}
}
