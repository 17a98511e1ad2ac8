package apiclient

import (
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID carries a per-request identifier to the service.
const HeaderRequestID = "X-Request-ID"

// tracingTransport stamps a User-Agent and a fresh request id on every request.
type tracingTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *tracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}
	return t.base.RoundTrip(req)
}

// NewHTTPClient creates an *http.Client for the prediction service.
// Deadlines are applied per call through the request context, so the client
// itself carries no Timeout.
func NewHTTPClient(userAgent string) *http.Client {
	return &http.Client{
		Transport: &tracingTransport{base: http.DefaultTransport, userAgent: userAgent},
	}
}
