package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/raphi011/garage/internal/catalog"
	"github.com/raphi011/garage/internal/log"
)

// MaxAge is how long a cached list is served without refetching.
const MaxAge = 24 * time.Hour

// ErrCorrupt reports a stored record that cannot be decoded.
var ErrCorrupt = errors.New("cache: corrupt record")

// Record is a cached catalog list and when it was fetched.
type Record struct {
	Data      []catalog.Entry
	FetchedAt time.Time
}

type recordJSON struct {
	Data      []catalog.Entry `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	data := r.Data
	if data == nil {
		data = []catalog.Entry{}
	}
	return json.Marshal(recordJSON{Data: data, Timestamp: r.FetchedAt.UnixMilli()})
}

// UnmarshalJSON rejects records missing either field.
func (r *Record) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data      *[]catalog.Entry `json:"data"`
		Timestamp *int64           `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Data == nil || raw.Timestamp == nil || *raw.Timestamp <= 0 {
		return errors.New("record needs data and a positive timestamp")
	}
	r.Data = *raw.Data
	r.FetchedAt = time.UnixMilli(*raw.Timestamp)
	return nil
}

// IsExpired reports whether the record is older than MaxAge at now. A
// timestamp in the future cannot be trusted and counts as expired.
func (r Record) IsExpired(now time.Time) bool {
	if r.FetchedAt.After(now) {
		return true
	}
	return now.Sub(r.FetchedAt) > MaxAge
}

// Age returns how long ago the record was fetched.
func (r Record) Age(now time.Time) time.Duration {
	return now.Sub(r.FetchedAt)
}

// BrandFetcher supplies the brand list when the cache cannot.
type BrandFetcher interface {
	Brands(ctx context.Context) ([]catalog.Entry, error)
}

// BrandCache serves the brand list from a Store, refetching it when the
// stored record is missing, corrupt or expired.
type BrandCache struct {
	store  Store
	key    string
	fetch  BrandFetcher
	sorter catalog.Sorter
	now    func() time.Time
}

// BrandKey is the store key of the brand list for a vehicle type.
func BrandKey(vehicleType string) string {
	return "brands-" + vehicleType
}

// NewBrandCache creates a brand cache stored under key.
func NewBrandCache(store Store, key string, fetch BrandFetcher, sorter catalog.Sorter) *BrandCache {
	return &BrandCache{
		store:  store,
		key:    key,
		fetch:  fetch,
		sorter: sorter,
		now:    time.Now,
	}
}

// Brands returns the brand list sorted by name. A fresh record is returned
// without a network call. Otherwise the list is fetched and persisted; a
// fetch error is returned as-is even when an expired record exists. Empty
// lists are never served or stored.
func (c *BrandCache) Brands(ctx context.Context) ([]catalog.Entry, error) {
	l := log.FromContext(ctx)

	rec, err := c.Load()
	switch {
	case err == nil && len(rec.Data) == 0:
		l.Debug("brand cache empty", "key", c.key)
	case err == nil && !rec.IsExpired(c.now()):
		l.Debug("brand cache hit", "key", c.key, "age", rec.Age(c.now()).Round(time.Second))
		return c.sorter.ByName(rec.Data), nil
	case err == nil:
		l.Debug("brand cache expired", "key", c.key, "age", rec.Age(c.now()).Round(time.Second))
	case errors.Is(err, ErrNotFound):
		l.Debug("brand cache miss", "key", c.key)
	default:
		l.Debug("brand cache unreadable", "key", c.key, "err", err)
	}

	entries, err := c.fetch.Brands(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, &catalog.FetchError{Kind: catalog.KindBrands, Err: catalog.ErrEmptyList}
	}

	fresh := Record{Data: entries, FetchedAt: c.now()}
	if err := c.Save(fresh); err != nil {
		l.Warnf("could not cache brand list: %v", err)
	}
	return c.sorter.ByName(entries), nil
}

// Load reads the stored record. A record that does not decode is cleared
// and reported as ErrCorrupt.
func (c *BrandCache) Load() (Record, error) {
	data, err := c.store.Get(c.key)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		if clearErr := c.store.Clear(c.key); clearErr != nil {
			return Record{}, fmt.Errorf("%w: %v (clear failed: %v)", ErrCorrupt, err, clearErr)
		}
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return rec, nil
}

// Save replaces the stored record.
func (c *BrandCache) Save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return c.store.Set(c.key, data)
}

// Clear drops the stored record.
func (c *BrandCache) Clear() error {
	return c.store.Clear(c.key)
}

// Key returns the store key.
func (c *BrandCache) Key() string {
	return c.key
}
