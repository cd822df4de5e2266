package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/peopledesk/hrms-backend/pkg/logger"
)

// Response is the standard API envelope
type Response struct {
	Status  string            `json:"status"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Count   *int              `json:"count,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

// JSON sends a success response with data
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	writeJSON(w, statusCode, Response{
		Status: statusSuccess,
		Data:   data,
	})
}

// JSONWithCount sends a success response with data and a record count
func JSONWithCount(w http.ResponseWriter, statusCode int, data interface{}, count int) {
	writeJSON(w, statusCode, Response{
		Status: statusSuccess,
		Data:   data,
		Count:  &count,
	})
}

// JSONWithMessage sends a success response with data and a human-readable message
func JSONWithMessage(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	writeJSON(w, statusCode, Response{
		Status:  statusSuccess,
		Data:    data,
		Message: message,
	})
}

// Created sends a 201 Created response
func Created(w http.ResponseWriter, data interface{}, message string) {
	JSONWithMessage(w, http.StatusCreated, data, message)
}

// Error sends an error response
func Error(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, Response{
			Status:  statusError,
			Message: appErr.Message,
			Errors:  appErr.Details,
		})
		return
	}

	// Default to internal server error
	writeJSON(w, http.StatusInternalServerError, Response{
		Status:  statusError,
		Message: "An unexpected error occurred",
	})
}

// ErrorLogged sends an error response and records 500-class failures
// server-side with the request id. Client errors (4xx) pass through
// unlogged; their cause is already in the response body.
func ErrorLogged(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	var appErr *errors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", GetRequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	Error(w, err)
}

// DecodeJSON decodes the request body into the provided struct
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.BadRequest("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
