package domain

import (
	"errors"
	"fmt"
)

// Token errors
var (
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotFound  = errors.New("no stored token")
)

// Session errors
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrUnauthorized = errors.New("unauthorized access")
)

// Report errors
var (
	ErrNoActiveReport = errors.New("no active report")
)

// SubmissionError carries the best-effort human-readable message of a failed
// report submission. The server-provided message is preferred; Message falls
// back to a generic one when the response was malformed or silent.
type SubmissionError struct {
	StatusCode int
	Message    string
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("report submission failed (%d): %s", e.StatusCode, e.Message)
	}
	return "report submission failed: " + e.Message
}

// NewSubmissionError builds a SubmissionError, substituting a generic message
// when the server offered none.
func NewSubmissionError(statusCode int, message string) *SubmissionError {
	if message == "" {
		message = "failed to submit emergency report"
	}
	return &SubmissionError{StatusCode: statusCode, Message: message}
}
