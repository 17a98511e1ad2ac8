package movie

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies a form field. Values match the wire names.
type Key string

const (
	KeyStartYear       Key = "startYear"
	KeyRuntimeMinutes  Key = "runtimeMinutes"
	KeyNumVotes        Key = "numVotes"
	KeyAverageRating   Key = "averageRating"
	KeyRuntimeCategory Key = "runtime_category"
	KeyPopularity      Key = "popularity"
)

func (k Key) String() string { return string(k) }

// FieldSpec describes how a field is presented and bounded.
type FieldSpec struct {
	Key     Key
	Label   string
	Help    string
	Bounds  Bounds
	Step    float64
	Options []string // set for categorical fields
}

// Numeric reports whether the field takes a number.
func (s FieldSpec) Numeric() bool { return len(s.Options) == 0 }

// Fields is the form layout in display order.
var Fields = []FieldSpec{
	{Key: KeyStartYear, Label: "Release year", Help: "Year the movie premiered", Bounds: Bounds{Min: 1900, Max: 2030, Integer: true}, Step: 1},
	{Key: KeyRuntimeMinutes, Label: "Runtime (minutes)", Help: "Movie duration in minutes", Bounds: Bounds{Min: 1, Max: 500, Integer: true}, Step: 1},
	{Key: KeyNumVotes, Label: "Number of votes", Help: "Votes received", Bounds: Bounds{Min: 0, Max: 10_000_000, Integer: true}, Step: 100},
	{Key: KeyAverageRating, Label: "Average rating (1-10)", Help: "Average user rating", Bounds: Bounds{Min: 1, Max: 10}, Step: 0.1},
	{Key: KeyRuntimeCategory, Label: "Runtime category", Help: "Band based on duration", Options: stringsOf(RuntimeCategories)},
	{Key: KeyPopularity, Label: "Popularity", Help: "Level based on votes", Options: stringsOf(Popularities)},
}

// Spec returns the FieldSpec for key; unknown keys yield a spec labelled with the raw key.
func Spec(key Key) FieldSpec {
	for _, s := range Fields {
		if s.Key == key {
			return s
		}
	}
	return FieldSpec{Key: key, Label: string(key)}
}

// Value renders the current value of key as the form shows it.
func (f Features) Value(key Key) string {
	switch key {
	case KeyStartYear:
		return strconv.Itoa(f.StartYear)
	case KeyRuntimeMinutes:
		return strconv.Itoa(f.RuntimeMinutes)
	case KeyNumVotes:
		return strconv.Itoa(f.NumVotes)
	case KeyAverageRating:
		return strconv.FormatFloat(f.AverageRating, 'f', -1, 64)
	case KeyRuntimeCategory:
		return string(f.RuntimeCategory)
	case KeyPopularity:
		return string(f.Popularity)
	}
	return ""
}

// ParseField parses raw as the value of key, checks it, and stores it in f.
// f is left untouched on error.
func (f *Features) ParseField(key Key, raw string) error {
	spec := Spec(key)
	raw = strings.TrimSpace(raw)

	if !spec.Numeric() {
		if err := checkOption(spec, raw); err != nil {
			return err
		}
		switch key {
		case KeyRuntimeCategory:
			f.RuntimeCategory = RuntimeCategory(raw)
		case KeyPopularity:
			f.Popularity = Popularity(raw)
		}
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &ValidationError{Field: key, Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	if err := spec.Bounds.Check(v); err != nil {
		return &ValidationError{Field: key, Reason: err.Error()}
	}
	switch key {
	case KeyStartYear:
		f.StartYear = int(v)
	case KeyRuntimeMinutes:
		f.RuntimeMinutes = int(v)
	case KeyNumVotes:
		f.NumVotes = int(v)
	case KeyAverageRating:
		f.AverageRating = v
	default:
		return &ValidationError{Field: key, Reason: "unknown field"}
	}
	return nil
}

func checkOption(spec FieldSpec, raw string) error {
	for _, o := range spec.Options {
		if o == raw {
			return nil
		}
	}
	return &ValidationError{Field: spec.Key, Reason: fmt.Sprintf("%q is not one of %s", raw, strings.Join(spec.Options, ", "))}
}

func stringsOf[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
