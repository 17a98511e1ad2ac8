package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mlops-grupo21/ratingdash/internal/apiclient"
	"github.com/mlops-grupo21/ratingdash/internal/config"
	"github.com/mlops-grupo21/ratingdash/internal/interpret"
	"github.com/mlops-grupo21/ratingdash/internal/movie"
	"github.com/mlops-grupo21/ratingdash/internal/payload"
)

// ErrPredictionInFlight is returned by Predict while another prediction of
// the same session is awaiting its response.
var ErrPredictionInFlight = errors.New("a prediction is already in progress")

// State is the predict state of a session.
type State int

const (
	Idle State = iota
	AwaitingResponse
	ResultDisplayed
	ErrorDisplayed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingResponse:
		return "awaiting_response"
	case ResultDisplayed:
		return "result_displayed"
	case ErrorDisplayed:
		return "error_displayed"
	default:
		return "unknown"
	}
}

// API is the remote prediction service as seen by a session.
type API interface {
	CheckHealth(ctx context.Context) apiclient.Outcome[apiclient.Health]
	FetchModelInfo(ctx context.Context) apiclient.Outcome[json.RawMessage]
	Predict(ctx context.Context, req payload.PredictionRequest) apiclient.Outcome[json.RawMessage]
}

// ClientFactory builds the API for a base URL. It is called once per action.
type ClientFactory func(baseURL string) API

// HTTPClientFactory returns a factory producing apiclient.Clients with the
// given timeouts.
func HTTPClientFactory(timeouts config.Timeouts) ClientFactory {
	return func(baseURL string) API {
		return apiclient.New(baseURL, timeouts)
	}
}

// Session is one user's dashboard: the current input, the base URL and the
// last displayed prediction. It is safe for concurrent use; the lock is not
// held during network calls so the busy state stays observable.
type Session struct {
	ID uuid.UUID

	mu      sync.Mutex
	factory ClientFactory
	baseURL string
	input   movie.Features
	state   State
	result  *interpret.Presentation
	// gen is bumped by Clear so a response arriving afterwards is dropped.
	gen uint64
	// inflight outlives Clear: one /predict per session at a time.
	inflight bool
}

// NewSession creates an idle session with default input.
func NewSession(baseURL string, factory ClientFactory) *Session {
	if factory == nil {
		factory = HTTPClientFactory(config.DefaultTimeouts())
	}
	return &Session{
		ID:      uuid.New(),
		factory: factory,
		baseURL: config.NormalizeBaseURL(baseURL),
		input:   movie.Defaults(),
	}
}

func (s *Session) id() string { return s.ID.String() }

// State returns the current predict state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Input returns a copy of the current input.
func (s *Session) Input() movie.Features {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetInput replaces the input after validating it.
func (s *Session) SetInput(f movie.Features) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.input = f
	s.mu.Unlock()
	return nil
}

// BaseURL returns the URL the next action will use.
func (s *Session) BaseURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseURL
}

// SetBaseURL overrides the service URL for subsequent actions.
func (s *Session) SetBaseURL(raw string) error {
	if err := config.ValidateBaseURL(raw); err != nil {
		return err
	}
	u := config.NormalizeBaseURL(raw)
	s.mu.Lock()
	s.baseURL = u
	s.mu.Unlock()
	logf(s.id(), "base url set to %s", u)
	return nil
}

// Result returns the displayed prediction, if any.
func (s *Session) Result() (interpret.Presentation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return interpret.Presentation{}, false
	}
	return *s.result, true
}

func (s *Session) client() API {
	return s.factory(s.BaseURL())
}

// TestConnection checks the service health. It does not touch the predict state.
func (s *Session) TestConnection(ctx context.Context) interpret.HealthReport {
	report := interpret.Health(s.client().CheckHealth(ctx))
	logf(s.id(), "connection test: %s", report.State)
	return report
}

// ModelInfo fetches the deployed model description.
func (s *Session) ModelInfo(ctx context.Context) interpret.ModelInfoReport {
	report := interpret.ModelInfo(s.client().FetchModelInfo(ctx))
	if report.Failure != nil {
		logf(s.id(), "model info failed: %s", report.Failure.Kind)
	}
	return report
}

// Predict classifies the current input. Invalid input is returned as a
// *movie.ValidationError without contacting the service and leaves the state
// unchanged. Every other failure is carried by the returned Presentation.
func (s *Session) Predict(ctx context.Context) (interpret.Presentation, error) {
	return s.predict(ctx, nil)
}

// PredictBatch classifies several movies in one request, keeping their
// order. The session input is not used or changed.
func (s *Session) PredictBatch(ctx context.Context, movies []movie.Features) (interpret.Presentation, error) {
	if len(movies) == 0 {
		return interpret.Presentation{}, errors.New("no movies to classify")
	}
	return s.predict(ctx, movies)
}

func (s *Session) predict(ctx context.Context, movies []movie.Features) (interpret.Presentation, error) {
	s.mu.Lock()
	if s.inflight {
		s.mu.Unlock()
		return interpret.Presentation{}, ErrPredictionInFlight
	}
	if movies == nil {
		movies = []movie.Features{s.input}
	}
	for _, m := range movies {
		if err := m.Validate(); err != nil {
			s.mu.Unlock()
			return interpret.Presentation{}, err
		}
	}
	s.state = AwaitingResponse
	s.inflight = true
	s.result = nil
	gen := s.gen
	baseURL := s.baseURL
	s.mu.Unlock()

	req := payload.BuildBatch(movies...)
	logf(s.id(), "predict %d movie(s) -> %s", req.Len(), baseURL)
	pres := interpret.Prediction(s.factory(baseURL).Predict(ctx, req), req.Len())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight = false
	if s.gen != gen {
		logf(s.id(), "dropping prediction finished after clear")
		return pres, nil
	}
	s.result = &pres
	if pres.OK() {
		s.state = ResultDisplayed
	} else {
		s.state = ErrorDisplayed
		logf(s.id(), "predict failed: %s", pres.Failure.Kind)
	}
	return pres, nil
}

// Clear drops any displayed result and resets the input to defaults.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = Idle
	s.result = nil
	s.input = movie.Defaults()
	logf(s.id(), "cleared")
}
