package api

import "fmt"

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeUnauthenticated ErrorType = "unauthenticated"
	ErrorTypeValidation      ErrorType = "validation_error"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeConflict        ErrorType = "conflict"
	ErrorTypeInternal        ErrorType = "internal_error"
)

// APIError is a typed failure raised at the point of detection. It
// propagates unhandled up to the transport boundary, which maps the type to
// an HTTP status and renders the error document.
type APIError struct {
	Type        ErrorType
	Title       string
	Description string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Title, e.Description)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Title)
}

// ErrorObject is a single member of the errors array in the wire format.
// Status mirrors the HTTP status code as a string.
type ErrorObject struct {
	Status      string `json:"status"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ErrorDocument is the top-level error envelope:
// {"errors": [{"status", "title", "description"?}]}.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// NewUnauthenticatedError creates an APIError for missing credentials.
func NewUnauthenticatedError(description string) *APIError {
	return &APIError{
		Type:        ErrorTypeUnauthenticated,
		Title:       "Authentication failed",
		Description: description,
	}
}

// NewBadCredentialsError creates an APIError for a failed login attempt.
func NewBadCredentialsError() *APIError {
	return &APIError{
		Type:  ErrorTypeUnauthenticated,
		Title: "Incorrect username or password.",
	}
}

// NewValidationError creates an APIError for malformed input.
func NewValidationError(description string) *APIError {
	return &APIError{
		Type:        ErrorTypeValidation,
		Title:       "Validation Error",
		Description: description,
	}
}

// NewForbiddenError creates an APIError for an authenticated caller that
// lacks access to the target resource.
func NewForbiddenError(description string) *APIError {
	return &APIError{
		Type:        ErrorTypeForbidden,
		Title:       "Forbidden",
		Description: description,
	}
}

// NewNotFoundError creates an APIError for resources that do not exist. A
// syntactically malformed identifier produces the same error as a missing
// one.
func NewNotFoundError(description string) *APIError {
	return &APIError{
		Type:        ErrorTypeNotFound,
		Title:       "Resource does not exist",
		Description: description,
	}
}

// NewPersonNotFoundError creates the NotFound error for a person lookup.
func NewPersonNotFoundError(id string) *APIError {
	return NewNotFoundError(fmt.Sprintf("We could not find a person with id: %s", id))
}

// NewGiftNotFoundError creates the NotFound error for a gift lookup within a
// person's wish-list.
func NewGiftNotFoundError(id string) *APIError {
	return NewNotFoundError(fmt.Sprintf("We could not find a gift with id: %s", id))
}

// NewConflictError creates an APIError for uniqueness violations, e.g. a
// duplicate email address on registration.
func NewConflictError(description string) *APIError {
	return &APIError{
		Type:        ErrorTypeConflict,
		Title:       "Conflict",
		Description: description,
	}
}

// NewInternalError creates an APIError for unclassified failures.
func NewInternalError(description string) *APIError {
	return &APIError{
		Type:        ErrorTypeInternal,
		Title:       "Internal server error",
		Description: description,
	}
}
