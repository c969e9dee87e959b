package model

import "fmt"

// ValidationError reports the first unsatisfied submit requirement.
// Field identifies the offending input so the UI can focus it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RenderError represents a failure inside a rendering pipeline
type RenderError struct {
	Renderer string
	Message  string
	Cause    error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failed [%s]: %s (%v)", e.Renderer, e.Message, e.Cause)
	}
	return fmt.Sprintf("render failed [%s]: %s", e.Renderer, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new render error
func NewRenderError(renderer, message string, cause error) *RenderError {
	return &RenderError{Renderer: renderer, Message: message, Cause: cause}
}
