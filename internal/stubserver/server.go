// Package stubserver serves a local stand-in for the rating prediction
// service. It classifies movies by their average rating alone.
package stubserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mlops-grupo21/ratingdash/internal/interpret"
	"github.com/mlops-grupo21/ratingdash/internal/payload"
)

// Metric is one entry of model_metrics. Order is kept on the wire.
type Metric struct {
	Key   string
	Value float64
}

// Options configures the stub.
type Options struct {
	ModelName    string
	Metrics      []Metric
	HealthStatus string
	// Latency delays every response; requests whose context ends first get no body.
	Latency time.Duration
}

// DefaultOptions returns a healthy stub with a few metrics.
func DefaultOptions() Options {
	return Options{
		ModelName: "stub_rating_bands_v1",
		Metrics: []Metric{
			{Key: "accuracy", Value: 1},
			{Key: "f1_score", Value: 1},
		},
		HealthStatus: interpret.HealthyStatus,
	}
}

// Server is the stub service.
type Server struct {
	opts Options

	mu           sync.RWMutex
	healthStatus string
}

// New creates a stub server. Empty fields of opts fall back to DefaultOptions.
func New(opts Options) *Server {
	def := DefaultOptions()
	if opts.ModelName == "" {
		opts.ModelName = def.ModelName
	}
	if opts.Metrics == nil {
		opts.Metrics = def.Metrics
	}
	if opts.HealthStatus == "" {
		opts.HealthStatus = def.HealthStatus
	}
	return &Server{opts: opts, healthStatus: opts.HealthStatus}
}

// SetHealthStatus changes what /health reports.
func (s *Server) SetHealthStatus(status string) {
	s.mu.Lock()
	s.healthStatus = status
	s.mu.Unlock()
}

func (s *Server) health() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.healthStatus
}

// Handler returns the chi router serving /health, /model-info and /predict.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	if s.opts.Latency > 0 {
		r.Use(s.delay)
	}

	r.Get("/health", s.HealthHandler)
	r.Get("/model-info", s.ModelInfoHandler)
	r.Post("/predict", s.PredictHandler)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logf(middleware.GetReqID(r.Context()), "%s %s %d in %s", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.NewTimer(s.opts.Latency)
		defer t.Stop()
		select {
		case <-t.C:
			next.ServeHTTP(w, r)
		case <-r.Context().Done():
		}
	})
}

// HealthHandler reports the configured status.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": s.health()})
}

// ModelInfoHandler describes the stub model.
func (s *Server) ModelInfoHandler(w http.ResponseWriter, r *http.Request) {
	bands := make(map[string]string, len(interpret.Categories))
	for _, c := range interpret.Categories {
		bands[string(c)] = c.Band()
	}
	writeJSON(w, http.StatusOK, modelInfo{
		ModelName:  s.opts.ModelName,
		ModelType:  "rating_bands",
		Features:   []string{"startYear", "runtimeMinutes", "numVotes", "averageRating", "runtime_category", "popularity"},
		Categories: bands,
		Metrics:    metricList(s.opts.Metrics),
	})
}

type modelInfo struct {
	ModelName  string            `json:"model_name"`
	ModelType  string            `json:"model_type"`
	Features   []string          `json:"features"`
	Categories map[string]string `json:"categories"`
	Metrics    metricList        `json:"metrics"`
}

type prediction struct {
	RatingCategory string  `json:"rating_category"`
	Confidence     float64 `json:"confidence"`
}

type predictResponse struct {
	Predictions  []prediction `json:"predictions"`
	ModelName    string       `json:"model_name"`
	ModelMetrics metricList   `json:"model_metrics"`
}

// PredictHandler classifies each movie by its average rating.
// Invalid bodies get 422 with a FastAPI-style {"detail": ...}.
func (s *Server) PredictHandler(w http.ResponseWriter, r *http.Request) {
	var req payload.PredictionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeDetail(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Len() == 0 {
		writeDetail(w, "movies must not be empty")
		return
	}

	resp := predictResponse{
		Predictions:  make([]prediction, 0, req.Len()),
		ModelName:    s.opts.ModelName,
		ModelMetrics: metricList(s.opts.Metrics),
	}
	for i, m := range req.Movies {
		if err := m.Features().Validate(); err != nil {
			writeDetail(w, fmt.Sprintf("movies[%d]: %v", i, err))
			return
		}
		resp.Predictions = append(resp.Predictions, prediction{
			RatingCategory: string(interpret.CategoryForRating(m.AverageRating)),
			Confidence:     Confidence(m.AverageRating),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// bandEdges are the ratings where the category changes.
var bandEdges = []float64{4, 6, 8}

// Confidence grows with the distance from the nearest band edge, from 0.55
// on an edge to 0.95 one full point away.
func Confidence(rating float64) float64 {
	dist := math.Inf(1)
	for _, e := range bandEdges {
		dist = math.Min(dist, math.Abs(rating-e))
	}
	c := 0.55 + 0.4*math.Min(dist, 1)
	return math.Round(c*100) / 100
}

// metricList marshals as a JSON object keeping slice order.
type metricList []Metric

func (ml metricList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range ml {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeDetail(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
