// Package movie holds the movie-feature form model: the current field
// values, their declared bounds and the categorical enumerations accepted by
// the rating service.
package movie

import (
	"fmt"
	"math"
	"slices"
)

// RuntimeCategory is a duration band.
type RuntimeCategory string

const (
	RuntimeShort         RuntimeCategory = "Short (<60m)"
	RuntimeStandardShort RuntimeCategory = "Standard (60-90m)"
	RuntimeStandard      RuntimeCategory = "Standard (90-120m)"
	RuntimeLong          RuntimeCategory = "Long (120-180m)"
	RuntimeVeryLong      RuntimeCategory = "Very Long (>180m)"
)

// RuntimeCategories lists the duration bands in display order.
var RuntimeCategories = []RuntimeCategory{
	RuntimeShort,
	RuntimeStandardShort,
	RuntimeStandard,
	RuntimeLong,
	RuntimeVeryLong,
}

// Popularity is a vote-count based popularity level.
type Popularity string

const (
	PopularityVeryLow Popularity = "Very Low"
	PopularityLow     Popularity = "Low"
	PopularityMedium  Popularity = "Medium"
	PopularityHigh    Popularity = "High"
)

// Popularities lists the popularity levels in display order.
var Popularities = []Popularity{
	PopularityVeryLow,
	PopularityLow,
	PopularityMedium,
	PopularityHigh,
}

func (c RuntimeCategory) Valid() bool { return slices.Contains(RuntimeCategories, c) }

func (p Popularity) Valid() bool { return slices.Contains(Popularities, p) }

// Features is one snapshot of the form. A fresh value is taken for every
// predict action.
type Features struct {
	StartYear       int
	RuntimeMinutes  int
	NumVotes        int
	AverageRating   float64
	RuntimeCategory RuntimeCategory
	Popularity      Popularity
}

// Defaults returns the values the form starts with and returns to on Clear.
func Defaults() Features {
	return Features{
		StartYear:       2020,
		RuntimeMinutes:  120,
		NumVotes:        1000,
		AverageRating:   7.5,
		RuntimeCategory: RuntimeStandard,
		Popularity:      PopularityLow,
	}
}

// ValidationError reports a feature value outside its declared domain.
type ValidationError struct {
	Field  Key
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", Spec(e.Field).Label, e.Reason)
}

// Validate checks every field against its bounds or enumeration.
func (f Features) Validate() error {
	numeric := []struct {
		key Key
		v   float64
	}{
		{KeyStartYear, float64(f.StartYear)},
		{KeyRuntimeMinutes, float64(f.RuntimeMinutes)},
		{KeyNumVotes, float64(f.NumVotes)},
		{KeyAverageRating, f.AverageRating},
	}
	for _, n := range numeric {
		if err := Spec(n.key).Bounds.Check(n.v); err != nil {
			return &ValidationError{Field: n.key, Reason: err.Error()}
		}
	}
	if !f.RuntimeCategory.Valid() {
		return &ValidationError{Field: KeyRuntimeCategory, Reason: fmt.Sprintf("%q is not a known duration band", f.RuntimeCategory)}
	}
	if !f.Popularity.Valid() {
		return &ValidationError{Field: KeyPopularity, Reason: fmt.Sprintf("%q is not a known popularity level", f.Popularity)}
	}
	return nil
}

// Bounds is the inclusive range accepted for a numeric field.
type Bounds struct {
	Min, Max float64
	Integer  bool
}

// Check returns an error when v is non-finite, out of range, or fractional
// for an integer field.
func (b Bounds) Check(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("value must be a finite number")
	}
	if v < b.Min || v > b.Max {
		return fmt.Errorf("%s is outside %s", b.format(v), b)
	}
	if b.Integer && v != math.Trunc(v) {
		return fmt.Errorf("%v must be a whole number", v)
	}
	return nil
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%s, %s]", b.format(b.Min), b.format(b.Max))
}

func (b Bounds) format(v float64) string {
	if b.Integer {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
