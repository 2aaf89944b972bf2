// Package errors lets analysis handlers attach an HTTP status to a failure,
// so the router can translate bad submissions, missing reports, and pipeline
// errors into the right response codes.
package errors

// StatusError pairs a handler error with the HTTP status it should produce.
type StatusError struct {
	Err  error
	Code int
}

func NewStatusError(err error, code int) StatusError {
	return StatusError{Err: err, Code: code}
}

// Error returns the wrapped error text
func (se StatusError) Error() string {
	return se.Err.Error()
}

// Status returns the HTTP status code for the response
func (se StatusError) Status() int {
	return se.Code
}
