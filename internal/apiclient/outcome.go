package apiclient

import (
	"fmt"
	"time"
)

// Kind tags an Outcome.
type Kind int

const (
	KindSuccess Kind = iota
	KindHTTPError
	KindTimeout
	KindConnectionFailure
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindHTTPError:
		return "http_error"
	case KindTimeout:
		return "timeout"
	case KindConnectionFailure:
		return "connection_failure"
	case KindUnexpected:
		return "unexpected_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of every client call. Payload is meaningful only
// for KindSuccess; StatusCode and Body only for KindHTTPError; Message for
// the remaining failure kinds.
type Outcome[T any] struct {
	Kind       Kind
	Payload    T
	StatusCode int
	Body       string
	Message    string
	Err        error
	Elapsed    time.Duration
}

// OK reports whether the call succeeded.
func (o Outcome[T]) OK() bool { return o.Kind == KindSuccess }

// Success builds a successful outcome.
func Success[T any](payload T) Outcome[T] {
	return Outcome[T]{Kind: KindSuccess, Payload: payload}
}

// HTTPError builds an outcome for a non-2xx response.
func HTTPError[T any](status int, body string) Outcome[T] {
	return Outcome[T]{Kind: KindHTTPError, StatusCode: status, Body: body}
}

// Timeout builds an outcome for a call that exceeded its deadline.
func Timeout[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: KindTimeout, Message: errMessage(err), Err: err}
}

// ConnectionFailure builds an outcome for a transport that could not be established.
func ConnectionFailure[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: KindConnectionFailure, Message: errMessage(err), Err: err}
}

// Unexpected builds an outcome for anything else, including decode failures.
func Unexpected[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: KindUnexpected, Message: errMessage(err), Err: err}
}

// Recast carries a failure over to another payload type. Calling it on a
// success drops the payload.
func Recast[U, T any](o Outcome[T]) Outcome[U] {
	return Outcome[U]{
		Kind:       o.Kind,
		StatusCode: o.StatusCode,
		Body:       o.Body,
		Message:    o.Message,
		Err:        o.Err,
		Elapsed:    o.Elapsed,
	}
}

func (o Outcome[T]) String() string {
	switch o.Kind {
	case KindSuccess:
		return "success"
	case KindHTTPError:
		return fmt.Sprintf("http error %d", o.StatusCode)
	default:
		return fmt.Sprintf("%s: %s", o.Kind, o.Message)
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
