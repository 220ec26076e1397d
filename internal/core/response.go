// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Meta    *PageMeta  `json:"meta,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type PageMeta struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func JSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Paginated(w http.ResponseWriter, data any, offset, limit, total int) {
	JSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Meta:    &PageMeta{Offset: offset, Limit: limit, Total: total},
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrorBody{Code: "BAD_REQUEST", Message: message})
}

func NotFound(w http.ResponseWriter, resource string) {
	writeError(w, http.StatusNotFound, ErrorBody{Code: "NOT_FOUND", Message: resource + " not found"})
}

func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"trace_id", TraceIDFromContext(r.Context()),
	)
	SetSpanError(r.Context(), err)

	writeError(w, http.StatusInternalServerError, ErrorBody{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	})
}

// Error maps a domain error kind onto a status code. Anything that is
// not a domain kind is treated as an internal failure.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		InternalServerError(w, r, err)
		return
	}

	body := ErrorBody{Code: code, Message: err.Error()}
	if de, ok := AsDomainError(err); ok {
		body.Message = de.Message
		body.Field = de.Field
	}

	writeError(w, status, body)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR"
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden, "FORBIDDEN"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func writeError(w http.ResponseWriter, status int, body ErrorBody) {
	JSON(w, status, Envelope{Success: false, Error: &body})
}
