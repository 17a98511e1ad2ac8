// Package apiclient performs the three calls against the rating prediction
// service (health, model info, predict) and classifies every result into an
// Outcome. No method returns a Go error and no call is retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/mlops-grupo21/ratingdash/internal/config"
	"github.com/mlops-grupo21/ratingdash/internal/payload"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// UserAgent is sent with every request; the CLI appends its version.
var UserAgent = "ratingdash"

// Health is the decoded GET /health body.
type Health struct {
	Status string
}

// Client talks to one base URL.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string // optional; defaults to config.DefaultBaseURL
	Timeouts   config.Timeouts
}

// New creates a Client with the tracing transport and the given timeouts
// (zero values fall back to the defaults).
func New(baseURL string, timeouts config.Timeouts) *Client {
	return &Client{
		HTTPClient: NewHTTPClient(UserAgent),
		BaseURL:    baseURL,
		Timeouts:   timeouts,
	}
}

// CheckHealth calls GET <base>/health. Success requires status 200 and a JSON
// body with a string "status" field; whether the status means healthy is left
// to the caller.
func (c *Client) CheckHealth(ctx context.Context) Outcome[Health] {
	raw := c.do(ctx, http.MethodGet, "/health", nil, c.timeouts().Health, onlyOK)
	if !raw.OK() {
		return Recast[Health](raw)
	}

	var body struct {
		Status *string `json:"status"`
	}
	if err := json.Unmarshal(raw.Payload, &body); err != nil {
		out := Unexpected[Health](fmt.Errorf("decode health response: %w", err))
		out.Elapsed = raw.Elapsed
		return out
	}
	if body.Status == nil {
		out := Unexpected[Health](errors.New("health response has no status field"))
		out.Elapsed = raw.Elapsed
		return out
	}
	out := Success(Health{Status: *body.Status})
	out.Elapsed = raw.Elapsed
	return out
}

// FetchModelInfo calls GET <base>/model-info and passes the JSON body
// through verbatim.
func (c *Client) FetchModelInfo(ctx context.Context) Outcome[json.RawMessage] {
	return c.do(ctx, http.MethodGet, "/model-info", nil, c.timeouts().ModelInfo, any2xx)
}

// Predict POSTs req as JSON to <base>/predict and returns the raw response
// body for the interpreter.
func (c *Client) Predict(ctx context.Context, req payload.PredictionRequest) Outcome[json.RawMessage] {
	body, err := json.Marshal(req)
	if err != nil {
		return Unexpected[json.RawMessage](fmt.Errorf("encode prediction request: %w", err))
	}
	return c.do(ctx, http.MethodPost, "/predict", body, c.timeouts().Predict, any2xx)
}

// URL returns the absolute URL for path under the configured base.
func (c *Client) URL(path string) string {
	return config.NormalizeBaseURL(c.BaseURL) + path
}

func (c *Client) timeouts() config.Timeouts { return c.Timeouts.WithDefaults() }

// statusCheck reports whether a response status counts as success.
type statusCheck func(status int) bool

func any2xx(status int) bool { return status >= 200 && status <= 299 }

func onlyOK(status int) bool { return status == http.StatusOK }

func (c *Client) do(ctx context.Context, method, path string, body []byte, timeout time.Duration, accept statusCheck) Outcome[json.RawMessage] {
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := c.URL(path)
	start := time.Now()
	out := c.send(ctx, client, method, url, body, accept)
	out.Elapsed = time.Since(start)

	logf(url, "%s %s -> %s in %s", method, path, out, out.Elapsed.Round(time.Millisecond))
	return out
}

func (c *Client) send(ctx context.Context, client *http.Client, method, url string, body []byte, accept statusCheck) Outcome[json.RawMessage] {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return Unexpected[json.RawMessage](fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return classify[json.RawMessage](ctx, err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if !accept(resp.StatusCode) {
		return HTTPError[json.RawMessage](resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if readErr != nil {
		return classify[json.RawMessage](ctx, readErr)
	}
	if !json.Valid(data) {
		return Unexpected[json.RawMessage](fmt.Errorf("decode response: body is not valid JSON (%d bytes)", len(data)))
	}
	return Success(json.RawMessage(data))
}

// classify maps a transport error to an outcome. Deadline checks come first:
// a dial that runs out of time is a Timeout, not a ConnectionFailure.
func classify[T any](ctx context.Context, err error) Outcome[T] {
	if isTimeout(ctx, err) {
		return Timeout[T](err)
	}
	if isConnectionFailure(err) {
		return ConnectionFailure[T](err)
	}
	return Unexpected[T](err)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isConnectionFailure(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EHOSTUNREACH),
		errors.Is(err, syscall.ENETUNREACH),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}
	return false
}
