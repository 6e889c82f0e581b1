// Package catalog talks to the vehicle reference catalog (the FIPE price
// table API).
//
// The catalog is a three-level hierarchy: brands, the models of a brand and
// the model years of a model. Every level is a flat list of Entry values.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one selectable item at any catalog level.
// Code drives follow-up requests, Name is what the user sees and submits.
type Entry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts both the English ({code,name}) and the Portuguese
// ({codigo,nome}) field names. Codes may be JSON strings or numbers.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code   json.RawMessage `json:"code"`
		Name   *string         `json:"name"`
		Codigo json.RawMessage `json:"codigo"`
		Nome   *string         `json:"nome"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	codeRaw := raw.Code
	if len(codeRaw) == 0 {
		codeRaw = raw.Codigo
	}
	code, err := decodeCode(codeRaw)
	if err != nil {
		return err
	}

	var name string
	switch {
	case raw.Name != nil:
		name = *raw.Name
	case raw.Nome != nil:
		name = *raw.Nome
	}

	e.Code = code
	e.Name = name
	return nil
}

func decodeCode(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode code: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decode code %s: %w", raw, err)
	}
	return n.String(), nil
}

// String returns the display name.
func (e Entry) String() string {
	return e.Name
}
