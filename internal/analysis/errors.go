package analysis

import "fmt"

// APICallError represents a completion-service failure. There is no safe
// fallback for "what does this text mean", so it propagates to the caller.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response envelope that is not usable at all.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError represents rejected input, caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}
