// Package errs provides the error types handlers use to report failures
// back to the client.
package errs

import (
	"errors"
	"net/http"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/ardanlabs/toychain/foundation/blockchain/fees"
	"github.com/ardanlabs/toychain/foundation/blockchain/state"
)

// Response is the form used for API responses from failures in the API.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RequestError is used to pass an error during the request through the
// application with web specific context. The message of the wrapped error
// is shown to the client.
type RequestError struct {
	Err    error
	Status int
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewRequestError(err error, status int) error {
	return &RequestError{err, status}
}

// FromNode maps the errors the node reports for bad input to a request
// error. Any other error is returned as is and treated as a server failure.
func FromNode(err error) error {
	switch {
	case errors.Is(err, state.ErrNoTransactions),
		errors.Is(err, state.ErrPeerIsSelf),
		errors.Is(err, state.ErrPeerHostRequired),
		errors.Is(err, database.ErrInvalidTx),
		errors.Is(err, database.ErrUnknownKind),
		errors.Is(err, fees.ErrFeesSet):
		return NewRequestError(err, http.StatusBadRequest)
	}
	return err
}

// Error implements the error interface.
func (re *RequestError) Error() string {
	return re.Err.Error()
}

// Unwrap provides access to the wrapped error.
func (re *RequestError) Unwrap() error {
	return re.Err
}

// IsRequestError checks if an error of type RequestError exists.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// GetRequestError returns a copy of the RequestError pointer.
func GetRequestError(err error) *RequestError {
	var re *RequestError
	if !errors.As(err, &re) {
		return nil
	}
	return re
}
