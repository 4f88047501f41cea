package domain

import "errors"

// Domain errors represent storage-level failures visible to callers.
var (
	// ErrKeyNotFound indicates a read against a key that is not stored.
	ErrKeyNotFound = errors.New("key not found")

	// ErrClosed indicates the database worker has stopped.
	// Every operation except Quit fails with it once the worker is gone.
	ErrClosed = errors.New("database closed")

	// ErrSerialization indicates a value could not be reduced to a raw,
	// structured, or opaque form, or stored text could not be decoded.
	ErrSerialization = errors.New("serialization failed")

	// ErrUnknownCommand indicates the worker received a command kind it does not handle.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// EngineError is an error raised by the database engine while running a query.
// It is produced on the worker goroutine and handed back to the caller as a value.
type EngineError struct {
	Query string
	Err   error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return "engine: " + e.Err.Error()
}

// Unwrap returns the underlying driver error.
func (e *EngineError) Unwrap() error {
	return e.Err
}
