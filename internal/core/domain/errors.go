package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrHTTP              = errors.New("http error")
	ErrNetwork           = errors.New("network error")
	ErrMalformedResponse = errors.New("malformed response")

	ErrStorageCorruption = errors.New("storage corruption")
	ErrClaimDecode       = errors.New("claim decode failure")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginFailed        = errors.New("login failed")
	ErrEmptyToken         = errors.New("empty token")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidLanguage    = errors.New("unsupported language")
	ErrInvalidLeave       = errors.New("invalid leave application")
)

// RequestErrorKind classifies a failed backend call.
type RequestErrorKind int

const (
	KindNetwork RequestErrorKind = iota
	KindUnauthorized
	KindForbidden
	KindHTTP
	KindMalformedResponse
)

func (k RequestErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindHTTP:
		return "http_error"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "network_error"
	}
}

func (k RequestErrorKind) sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindHTTP:
		return ErrHTTP
	case KindMalformedResponse:
		return ErrMalformedResponse
	default:
		return ErrNetwork
	}
}

// RequestError is a classified failure of a single backend call.
type RequestError struct {
	Kind       RequestErrorKind
	StatusCode int
	StatusText string
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindUnauthorized:
		return "401 Unauthorized"
	case KindForbidden:
		return "403 Forbidden: CORS or Token Issue."
	case KindHTTP:
		return fmt.Sprintf("API Error: %d %s", e.StatusCode, e.StatusText)
	case KindMalformedResponse:
		if e.Err != nil {
			return fmt.Sprintf("Malformed response: %v", e.Err)
		}
		return "Malformed response"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "Network Error (Possible CORS block)"
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the failure kind.
func (e *RequestError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// LoginError carries the message surfaced to the user when login fails.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

// Is makes every LoginError match ErrLoginFailed.
func (e *LoginError) Is(target error) bool {
	return target == ErrLoginFailed
}
