package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// HTTPStatusFromError maps an APIError type to the corresponding HTTP
// status code.
func HTTPStatusFromError(err *APIError) int {
	switch err.Type {
	case ErrorTypeUnauthenticated:
		return http.StatusUnauthorized
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Document renders the error as a one-element error envelope with the
// string form of its HTTP status.
func (e *APIError) Document() ErrorDocument {
	return ErrorDocument{
		Errors: []ErrorObject{{
			Status:      strconv.Itoa(HTTPStatusFromError(e)),
			Title:       e.Title,
			Description: e.Description,
		}},
	}
}

// WriteError is the single error boundary: it classifies err, logs it, and
// renders the JSON:API error document. Errors that are not *APIError are
// treated as unclassified internal failures and their details are not
// exposed to the client.
func WriteError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*APIError)
	if !ok {
		slog.Error("unclassified error", "error", err)
		apiErr = NewInternalError("An unexpected error occurred.")
	} else {
		slog.Warn("request failed", "type", string(apiErr.Type), "error", apiErr.Error())
	}

	status := HTTPStatusFromError(apiErr)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr.Document())
}

// WriteDocument renders a success response envelope with the given status.
func WriteDocument(w http.ResponseWriter, status int, doc Document) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(doc)
}
