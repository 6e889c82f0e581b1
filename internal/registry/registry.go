// Package registry manages the vehicle registry at ~/.garage/vehicles.json.
package registry

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/raphi011/garage/internal/storage"
)

// Sentinel errors for vehicle validation and lookup.
var (
	ErrEmptyBrand     = errors.New("brand is required")
	ErrEmptyModel     = errors.New("model is required")
	ErrYearOutOfRange = errors.New("year out of range")
	ErrNotFound       = errors.New("vehicle not found")
)

// MinYear is the oldest model year accepted.
const MinYear = 1886

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Vehicle is one registered vehicle.
type Vehicle struct {
	ID      int       `json:"id"`
	Brand   string    `json:"brand"`
	Model   string    `json:"model"`
	Year    int       `json:"year"`
	Plate   string    `json:"plate,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// Label returns a one-line description, e.g. "2023 Audi A4 (ABC1D23)".
func (v Vehicle) Label() string {
	s := fmt.Sprintf("%d %s %s", v.Year, v.Brand, v.Model)
	if v.Plate != "" {
		s += " (" + v.Plate + ")"
	}
	return s
}

// Validate checks the fields a vehicle needs before it is stored.
func (v Vehicle) Validate(now time.Time) error {
	if strings.TrimSpace(v.Brand) == "" {
		return &ValidationError{Field: "brand", Value: v.Brand, Err: ErrEmptyBrand}
	}
	if strings.TrimSpace(v.Model) == "" {
		return &ValidationError{Field: "model", Value: v.Model, Err: ErrEmptyModel}
	}
	if v.Year < MinYear || v.Year > now.Year()+1 {
		return &ValidationError{Field: "year", Value: fmt.Sprint(v.Year), Err: ErrYearOutOfRange}
	}
	return nil
}

// Registry holds all registered vehicles.
type Registry struct {
	NextID   int       `json:"next_id"`
	Vehicles []Vehicle `json:"vehicles"`

	path string
}

// Load reads the registry at path.
// Returns an empty registry if the file doesn't exist.
func Load(path string) (*Registry, error) {
	var reg Registry
	if err := storage.LoadJSON(path, &reg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Registry{NextID: 1, Vehicles: []Vehicle{}, path: path}, nil
		}
		return nil, fmt.Errorf("load registry: %w", err)
	}
	reg.path = path
	if reg.Vehicles == nil {
		reg.Vehicles = []Vehicle{}
	}
	for _, v := range reg.Vehicles {
		reg.NextID = max(reg.NextID, v.ID+1)
	}
	reg.NextID = max(reg.NextID, 1)
	return &reg, nil
}

// Save writes the registry back to the path it was loaded from.
func (r *Registry) Save() error {
	if err := storage.SaveJSON(r.path, r); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// Add validates v, assigns it the next ID and appends it.
func (r *Registry) Add(v Vehicle, now time.Time) (Vehicle, error) {
	v.Brand = strings.TrimSpace(v.Brand)
	v.Model = strings.TrimSpace(v.Model)
	v.Plate = strings.ToUpper(strings.TrimSpace(v.Plate))
	if err := v.Validate(now); err != nil {
		return Vehicle{}, err
	}

	v.ID = r.NextID
	v.AddedAt = now
	r.NextID++
	r.Vehicles = append(r.Vehicles, v)
	return v, nil
}

// Remove deletes the vehicle with the given ID.
func (r *Registry) Remove(id int) (Vehicle, error) {
	for i, v := range r.Vehicles {
		if v.ID == id {
			r.Vehicles = slices.Delete(r.Vehicles, i, i+1)
			return v, nil
		}
	}
	return Vehicle{}, fmt.Errorf("%w: #%d", ErrNotFound, id)
}

// Find looks up a vehicle by ID.
func (r *Registry) Find(id int) (*Vehicle, error) {
	for i := range r.Vehicles {
		if r.Vehicles[i].ID == id {
			return &r.Vehicles[i], nil
		}
	}
	return nil, fmt.Errorf("%w: #%d", ErrNotFound, id)
}
