// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/swipeeats/swipeeats/internal/logging"
)

// APIResponse is the uniform JSON envelope for all endpoints.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Error    *APIError   `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// APIError carries a machine-readable code and human-readable message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata is attached to every response.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	body, err := json.Marshal(&APIResponse{
		Status:   "ok",
		Data:     data,
		Metadata: Metadata{Timestamp: time.Now()},
	})
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", code).Err(err).Msg("api error")
	}

	w.Header().Set("Content-Type", "application/json")

	body, merr := json.Marshal(&APIResponse{
		Status:   "error",
		Error:    &APIError{Code: code, Message: message},
		Metadata: Metadata{Timestamp: time.Now()},
	})
	if merr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// decodeBody unmarshals a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// parseCommaSeparated parses a comma-separated query value into a slice.
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
