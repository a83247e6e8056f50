// Package query translates natural language shoe questions into typed
// search conditions and executes them against the relational store.
package query

import (
	"bytes"
	"encoding/json"
)

// RangeSpec is a partial numeric constraint with an optional sort
// directive on the same attribute.
type RangeSpec struct {
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Sort string   `json:"sort,omitempty" validate:"omitempty,oneof=asc desc"`
}

func (r *RangeSpec) hasBounds() bool {
	return r != nil && (r.Min != nil || r.Max != nil)
}

// RangeField is either a RangeSpec or the "empty" sentinel. The model
// emits the literal string "empty" for unconstrained attributes, so the
// union decodes into a nil Spec.
type RangeField struct {
	Spec *RangeSpec
}

func (f *RangeField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '"' || bytes.Equal(trimmed, []byte("null")) {
		f.Spec = nil
		return nil
	}
	var spec RangeSpec
	if err := json.Unmarshal(trimmed, &spec); err != nil {
		return err
	}
	f.Spec = &spec
	return nil
}

func (f RangeField) MarshalJSON() ([]byte, error) {
	if f.Spec == nil {
		return []byte(`"empty"`), nil
	}
	return json.Marshal(f.Spec)
}

// StringField is either a literal value or the "empty" sentinel.
type StringField string

// Value returns the filter value, or "" when the field is unset.
func (s StringField) Value() string {
	if s == "empty" {
		return ""
	}
	return string(s)
}

// ShoeSearchConditions is the typed filter/sort request the translation
// step produces. Every field is either a valid partial spec or the
// explicit sentinel, never ambiguously absent.
type ShoeSearchConditions struct {
	Keywords      []string    `json:"keywords,omitempty"`
	StackHeightMm RangeField  `json:"stackHeightMm"`
	Drop          RangeField  `json:"drop"`
	Width         StringField `json:"width"`
	IntendedUse   StringField `json:"intendedUse"`
	Gender        StringField `json:"gender"`
	Limit         *int        `json:"limit,omitempty"`
}

// MaxResults is the hard ceiling on returned records regardless of the
// requested limit.
const MaxResults = 5

// EffectiveLimit resolves the requested cap against the hard ceiling.
// A missing or non-positive limit means unset.
func (c *ShoeSearchConditions) EffectiveLimit() int {
	if c.Limit == nil || *c.Limit < 1 {
		return MaxResults
	}
	if *c.Limit > MaxResults {
		return MaxResults
	}
	return *c.Limit
}
