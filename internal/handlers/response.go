// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"noticeboard/internal/lifecycle"
	"noticeboard/internal/remote"
)

// response is the envelope every endpoint answers with. It mirrors the
// upstream content service's format so API consumers deal with one shape.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, response{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, response{Success: status < http.StatusBadRequest, Message: msg})
}

// writeValidationError flattens validator.v10 field errors into a
// field -> constraint map so clients can highlight the offending inputs.
func writeValidationError(w http.ResponseWriter, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	writeJSON(w, http.StatusBadRequest, response{
		Success: false,
		Message: "validation failed",
		Data:    map[string]any{"fields": fields},
	})
}

// writeError maps store and upstream errors to HTTP statuses. Upstream
// failures surface as 502 because the local state is unchanged and the
// caller should simply retry.
func writeError(w http.ResponseWriter, err error) {
	var remoteErr *remote.RemoteError

	switch {
	case errors.Is(err, lifecycle.ErrNotFound),
		errors.Is(err, lifecycle.ErrUnknownConflict):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, lifecycle.ErrDeleted),
		errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, lifecycle.ErrNotInactive):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &remoteErr):
		slog.Error("upstream request failed", "status", remoteErr.StatusCode, "message", remoteErr.Message)
		writeMessage(w, http.StatusBadGateway, "content service unavailable")
	default:
		slog.Error("request failed", "error", err)
		writeMessage(w, http.StatusBadGateway, "content service unavailable")
	}
}
