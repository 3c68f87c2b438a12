// Package resilience classifies upstream failures and contains panics so that
// a failing data source degrades a request instead of failing it.
package resilience

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
)

// Class is the failure category of an upstream call.
type Class string

const (
	ClassNone        Class = "ok"
	ClassTimeout     Class = "timeout"
	ClassUnavailable Class = "unavailable"
	ClassRejected    Class = "rejected"
	ClassMalformed   Class = "malformed"
	ClassRateLimited Class = "rate_limited"
	ClassUnknown     Class = "error"
)

// ErrMalformed marks a payload that could not be decoded or had the wrong shape.
var ErrMalformed = eris.New("malformed upstream payload")

// UpstreamError wraps a failed call to a named data source.
type UpstreamError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	return e.Source + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err for source with an optional HTTP status code.
func NewUpstreamError(source string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{Source: source, StatusCode: statusCode, Err: err}
}

// Malformed returns an UpstreamError for an undecodable payload.
func Malformed(source string, cause error) *UpstreamError {
	if cause == nil {
		return NewUpstreamError(source, 0, ErrMalformed)
	}
	return NewUpstreamError(source, 0, eris.Wrap(ErrMalformed, cause.Error()))
}

// Classify returns the failure category of err.
func Classify(err error) Class {
	if err == nil {
		return ClassNone
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTimeout
	}

	if errors.Is(err, ErrMalformed) {
		return ClassMalformed
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return ClassMalformed
	}

	var ue *UpstreamError
	if errors.As(err, &ue) && ue.StatusCode != 0 {
		switch {
		case ue.StatusCode == 429:
			return ClassRateLimited
		case IsTransientHTTPStatus(ue.StatusCode):
			return ClassUnavailable
		case ue.StatusCode >= 400:
			return ClassRejected
		}
	}

	if IsTransient(err) {
		return ClassUnavailable
	}
	return ClassUnknown
}

// IsTransient returns true if the error (or any error in its chain) is an
// UpstreamError with a transient status, or if it matches common transient
// network failures (timeouts, connection resets, DNS failures).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ue *UpstreamError
	if errors.As(err, &ue) && IsTransientHTTPStatus(ue.StatusCode) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Connection reset / refused / DNS.
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset by peer",
		"connection refused",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// IsTransientHTTPStatus returns true if the HTTP status code indicates a
// transient server-side issue.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504: // Gateway Timeout
		return true
	default:
		return false
	}
}
