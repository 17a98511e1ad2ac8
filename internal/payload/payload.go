// Package payload builds the wire-format prediction request from form values.
package payload

import "github.com/mlops-grupo21/ratingdash/internal/movie"

// Movie is one entry of the request. All numerics travel as floats so the
// service always receives the same numeric kind.
type Movie struct {
	StartYear       float64 `json:"startYear" yaml:"startYear"`
	RuntimeMinutes  float64 `json:"runtimeMinutes" yaml:"runtimeMinutes"`
	NumVotes        float64 `json:"numVotes" yaml:"numVotes"`
	AverageRating   float64 `json:"averageRating" yaml:"averageRating"`
	RuntimeCategory string  `json:"runtime_category" yaml:"runtime_category"`
	Popularity      string  `json:"popularity" yaml:"popularity"`
}

// PredictionRequest is the POST /predict body. Predictions in the response
// align positionally with Movies.
type PredictionRequest struct {
	Movies []Movie `json:"movies" yaml:"movies"`
}

// Len returns the number of movies in the request.
func (r PredictionRequest) Len() int { return len(r.Movies) }

// Build wraps a single snapshot in a one-element request.
func Build(f movie.Features) PredictionRequest {
	return PredictionRequest{Movies: []Movie{FromFeatures(f)}}
}

// BuildBatch keeps the order of fs.
func BuildBatch(fs ...movie.Features) PredictionRequest {
	movies := make([]Movie, 0, len(fs))
	for _, f := range fs {
		movies = append(movies, FromFeatures(f))
	}
	return PredictionRequest{Movies: movies}
}

// FromFeatures converts a form snapshot to its wire entry.
func FromFeatures(f movie.Features) Movie {
	return Movie{
		StartYear:       float64(f.StartYear),
		RuntimeMinutes:  float64(f.RuntimeMinutes),
		NumVotes:        float64(f.NumVotes),
		AverageRating:   f.AverageRating,
		RuntimeCategory: string(f.RuntimeCategory),
		Popularity:      string(f.Popularity),
	}
}

// Features converts a wire entry back to a form snapshot. Numerics are
// truncated for the integer fields; callers validate the result.
func (m Movie) Features() movie.Features {
	return movie.Features{
		StartYear:       int(m.StartYear),
		RuntimeMinutes:  int(m.RuntimeMinutes),
		NumVotes:        int(m.NumVotes),
		AverageRating:   m.AverageRating,
		RuntimeCategory: movie.RuntimeCategory(m.RuntimeCategory),
		Popularity:      movie.Popularity(m.Popularity),
	}
}
