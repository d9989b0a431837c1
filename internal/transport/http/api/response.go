package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gearhr/internal/domain/apperr"
	"gearhr/internal/platform/recordstore"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// FailError maps a domain error onto a status code and error code.
func FailError(w http.ResponseWriter, err error, requestID string) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		FailWithDetails(w, http.StatusBadRequest, "validation_error", err.Error(),
			map[string]any{"fields": []map[string]string{{"field": verr.Field, "reason": verr.Reason}}}, requestID)
	case errors.Is(err, apperr.ErrValidation):
		Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, apperr.ErrDuplicateKey):
		Fail(w, http.StatusConflict, "duplicate_key", err.Error(), requestID)
	case errors.Is(err, apperr.ErrNotFound):
		Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, recordstore.ErrPersistence):
		slog.Error("persistence failure", "requestId", requestID, "err", err)
		Fail(w, http.StatusServiceUnavailable, "persistence_error", "storage is unavailable", requestID)
	default:
		slog.Error("request failed", "requestId", requestID, "err", err)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
