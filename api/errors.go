package api

import (
	"errors"
	"fmt"

	"github.com/etnz/arthik"
)

var (
	// ErrMissingCSRF is returned, before any network I/O, by a state changing
	// request when no CSRF token is known.
	ErrMissingCSRF = errors.New("missing CSRF token")
	// ErrAuthenticationFailed is returned on 401, after the unauthorized
	// handler has run. Callers must not report it again.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrRateLimited is returned on 429.
	ErrRateLimited = errors.New("too many requests")
	// ErrTooManyLoginAttempts is the login flavour of ErrRateLimited.
	ErrTooManyLoginAttempts = fmt.Errorf("too many failed login attempts: %w", ErrRateLimited)
)

// ValidationError is a request rejected by the backend with a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StatusError is any other non 2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: request failed with status %d", e.Method, e.Path, e.Code)
}

// TransportError is a request that failed without a usable response: the
// connection failed or the body could not be read or decoded.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// LoginError is a login refused by the backend, typically a wrong password.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	if e.Message == "" {
		return "login failed"
	}
	return e.Message
}

// Kind classifies errors by the way they are reported to the user.
type Kind int

const (
	KindNone         Kind = iota
	KindPrecondition      // caught locally, never sent
	KindAuth              // already handled by a forced logout
	KindRateLimit
	KindValidation // backend provided message
	KindTransport  // anything else
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPrecondition:
		return "precondition"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate-limit"
	case KindValidation:
		return "validation"
	default:
		return "transport"
	}
}

// Classify returns the Kind of err.
func Classify(err error) Kind {
	var inputErr *arthik.InputError
	var validationErr *ValidationError
	var loginErr *LoginError
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingCSRF), errors.As(err, &inputErr):
		return KindPrecondition
	case errors.Is(err, ErrAuthenticationFailed):
		return KindAuth
	case errors.Is(err, ErrRateLimited):
		return KindRateLimit
	case errors.As(err, &validationErr), errors.As(err, &loginErr):
		return KindValidation
	default:
		return KindTransport
	}
}

// User facing messages.
const (
	MsgSessionError      = "Session error. Please refresh the page and try again."
	MsgRateLimited       = "Too many requests. Please try again later."
	MsgTooManyLogins     = "Too many failed login attempts. Please try again later."
	MsgSessionExpired    = "Your session has expired. Please login again."
	MsgLoginFailed       = "Invalid password"
	MsgConnectionProblem = "Please check your connection and try again."
)

// UserMessage returns the notice to show for err. Authentication failures
// return "" because the forced logout already told the user. Transport
// failures return fallback.
func UserMessage(err error, fallback string) string {
	var inputErr *arthik.InputError
	var validationErr *ValidationError
	var loginErr *LoginError
	switch Classify(err) {
	case KindNone, KindAuth:
		return ""
	case KindPrecondition:
		if errors.As(err, &inputErr) {
			return inputErr.Message
		}
		return MsgSessionError
	case KindRateLimit:
		if errors.Is(err, ErrTooManyLoginAttempts) {
			return MsgTooManyLogins
		}
		return MsgRateLimited
	case KindValidation:
		if errors.As(err, &validationErr) {
			return validationErr.Message
		}
		errors.As(err, &loginErr)
		if loginErr.Message == "" {
			return MsgLoginFailed
		}
		return loginErr.Message
	default:
		return fallback
	}
}
