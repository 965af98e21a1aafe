package api

import "errors"

var (
	// ErrUnavailable means the backend could not be reached or timed out.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means a call was rejected with 401. It is also
	// handled centrally by the transport's teardown hook; callers only
	// see it to stop whatever they were doing.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError carries the message extracted from a REST error
// envelope when the backend rejects a payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// DomainError is a backend-reported failure inside an otherwise
// successful transport response (GraphQL success:false, or a 2xx OTP
// verification without a token).
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string { return e.Message }
