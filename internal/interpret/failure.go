package interpret

import (
	"fmt"

	"github.com/mlops-grupo21/ratingdash/internal/apiclient"
)

// FailureKind distinguishes why an action produced no usable result.
type FailureKind int

const (
	FailureHTTP FailureKind = iota + 1
	FailureTimeout
	FailureConnection
	FailureUnexpected
	FailureMalformed
)

func (k FailureKind) String() string {
	switch k {
	case FailureHTTP:
		return "http_error"
	case FailureTimeout:
		return "timeout"
	case FailureConnection:
		return "connection_failure"
	case FailureUnexpected:
		return "unexpected_error"
	case FailureMalformed:
		return "malformed_response"
	default:
		return fmt.Sprintf("failure(%d)", int(k))
	}
}

// Failure is the rendered error side of a presentation.
type Failure struct {
	Kind       FailureKind
	StatusCode int    // FailureHTTP only
	Detail     string // response body, transport message or schema violation
}

// Title is a short heading for the failure kind.
func (f Failure) Title() string {
	switch f.Kind {
	case FailureHTTP:
		return fmt.Sprintf("API error (%d)", f.StatusCode)
	case FailureTimeout:
		return "Timeout"
	case FailureConnection:
		return "Connection error"
	case FailureMalformed:
		return "Malformed response"
	default:
		return "Unexpected error"
	}
}

// Message explains the failure so "service is down", "service rejected the
// request" and "service answered with something unreadable" read differently.
func (f Failure) Message() string {
	switch f.Kind {
	case FailureHTTP:
		if f.Detail == "" {
			return fmt.Sprintf("The API rejected the request with HTTP %d", f.StatusCode)
		}
		return fmt.Sprintf("The API rejected the request with HTTP %d: %s", f.StatusCode, f.Detail)
	case FailureTimeout:
		return "The API did not respond in time"
	case FailureConnection:
		return "Could not connect to the API; check the URL and that the service is running"
	case FailureMalformed:
		return "The API answered, but the response could not be understood: " + f.Detail
	default:
		if f.Detail == "" {
			return "Something went wrong talking to the API"
		}
		return "Something went wrong talking to the API: " + f.Detail
	}
}

func (f Failure) Error() string { return f.Title() + ": " + f.Message() }

func malformed(format string, args ...any) *Failure {
	return &Failure{Kind: FailureMalformed, Detail: fmt.Sprintf(format, args...)}
}

// FailureOf converts a failed outcome; it returns nil for a success.
func FailureOf[T any](o apiclient.Outcome[T]) *Failure {
	switch o.Kind {
	case apiclient.KindSuccess:
		return nil
	case apiclient.KindHTTPError:
		return &Failure{Kind: FailureHTTP, StatusCode: o.StatusCode, Detail: o.Body}
	case apiclient.KindTimeout:
		return &Failure{Kind: FailureTimeout, Detail: o.Message}
	case apiclient.KindConnectionFailure:
		return &Failure{Kind: FailureConnection, Detail: o.Message}
	default:
		return &Failure{Kind: FailureUnexpected, Detail: o.Message}
	}
}
