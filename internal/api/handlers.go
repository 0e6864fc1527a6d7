// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/swipeeats/swipeeats/internal/recommend"
	"github.com/swipeeats/swipeeats/internal/session"
)

// Handler implements the HTTP endpoints.
type Handler struct {
	engine  *recommend.Engine
	sprints *session.Manager
	logger  zerolog.Logger
}

// NewHandler creates the endpoint handler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(engine *recommend.Engine, sprints *session.Manager, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:  engine,
		sprints: sprints,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// Health reports liveness and basic engine state.
//
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"restaurants":  len(h.engine.Catalog()),
		"total_swipes": h.engine.Model().TotalSwipes(),
	})
}

// Deck returns the scored, diversified deck for the current context.
// The exclude query param lists restaurant IDs to skip; sprint_id folds in
// the sprint's already-swiped IDs and its context.
//
// GET /api/v1/deck?exclude=id1,id2&sprint_id=...
func (h *Handler) Deck(w http.ResponseWriter, r *http.Request) {
	exclude := make(map[string]struct{})
	for _, id := range parseCommaSeparated(r.URL.Query().Get("exclude")) {
		exclude[id] = struct{}{}
	}

	sprintNumber, swipeIndex := 0, 0
	if sprintID := r.URL.Query().Get("sprint_id"); sprintID != "" {
		sprint, err := h.sprints.Get(sprintID)
		if err != nil {
			respondError(w, http.StatusNotFound, "SPRINT_NOT_FOUND", "unknown sprint", nil)
			return
		}
		for id := range sprint.SwipedIDs() {
			exclude[id] = struct{}{}
		}
		sprintNumber = sprint.Number
		swipeIndex = sprint.SwipeCount
	}

	ctx := recommend.CurrentContext(sprintNumber, swipeIndex)
	deck := h.engine.Deck(exclude, ctx)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"deck":    deck,
		"context": ctx,
	})
}

// swipeRequest is the body of swipe-recording endpoints. Score echoes the
// deal-time score of the swiped card so sprint best-match selection does not
// require rescoring.
type swipeRequest struct {
	RestaurantID string  `json:"restaurant_id"`
	Liked        bool    `json:"liked"`
	Score        float64 `json:"score"`
}

// RecordSwipe folds a swipe into the preference model.
//
// POST /api/v1/swipes
func (h *Handler) RecordSwipe(w http.ResponseWriter, r *http.Request) {
	var req swipeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body", err)
		return
	}
	if req.RestaurantID == "" {
		respondError(w, http.StatusBadRequest, "MISSING_RESTAURANT_ID", "restaurant_id is required", nil)
		return
	}

	model, err := h.engine.RecordSwipe(req.RestaurantID, req.Liked, recommend.CurrentContext(0, 0))
	if err != nil {
		respondError(w, http.StatusNotFound, "RESTAURANT_NOT_FOUND", "unknown restaurant", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total_swipes": model.TotalSwipes(),
	})
}

// Model returns the current preference model.
//
// GET /api/v1/model
func (h *Handler) Model(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Model())
}

// ResetModel discards all learned preferences.
//
// POST /api/v1/model/reset
func (h *Handler) ResetModel(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Reset(); err != nil {
		respondError(w, http.StatusInternalServerError, "RESET_FAILED", "failed to reset model", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"reset": true})
}

// StartSprint begins a new swipe sprint.
//
// POST /api/v1/sprints
func (h *Handler) StartSprint(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusCreated, h.sprints.Start())
}

// GetSprint returns sprint state including progress and, once complete, the
// best match.
//
// GET /api/v1/sprints/{id}
func (h *Handler) GetSprint(w http.ResponseWriter, r *http.Request) {
	sprint, err := h.sprints.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "SPRINT_NOT_FOUND", "unknown sprint", nil)
		return
	}
	respondJSON(w, http.StatusOK, sprint)
}

// SprintSwipe records a swipe against both the preference model and the
// sprint.
//
// POST /api/v1/sprints/{id}/swipes
func (h *Handler) SprintSwipe(w http.ResponseWriter, r *http.Request) {
	sprintID := chi.URLParam(r, "id")

	var req swipeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body", err)
		return
	}
	if req.RestaurantID == "" {
		respondError(w, http.StatusBadRequest, "MISSING_RESTAURANT_ID", "restaurant_id is required", nil)
		return
	}

	restaurant, ok := h.engine.Restaurant(req.RestaurantID)
	if !ok {
		respondError(w, http.StatusNotFound, "RESTAURANT_NOT_FOUND", "unknown restaurant", nil)
		return
	}

	sprint, err := h.sprints.Get(sprintID)
	if err != nil {
		respondError(w, http.StatusNotFound, "SPRINT_NOT_FOUND", "unknown sprint", nil)
		return
	}
	// Reject before training: a swipe on a finished sprint must not touch
	// the model.
	if sprint.Complete {
		respondError(w, http.StatusConflict, "SPRINT_COMPLETE", "sprint already complete", nil)
		return
	}

	ctx := recommend.CurrentContext(sprint.Number, sprint.SwipeCount)
	if _, err := h.engine.RecordSwipe(req.RestaurantID, req.Liked, ctx); err != nil {
		respondError(w, http.StatusInternalServerError, "SWIPE_FAILED", "failed to record swipe", err)
		return
	}

	scored := recommend.ScoredRestaurant{Restaurant: restaurant, Score: req.Score}
	sprint, err = h.sprints.RecordSwipe(sprintID, scored, req.Liked)
	if err != nil {
		if errors.Is(err, session.ErrComplete) {
			respondError(w, http.StatusConflict, "SPRINT_COMPLETE", "sprint already complete", nil)
			return
		}
		respondError(w, http.StatusNotFound, "SPRINT_NOT_FOUND", "unknown sprint", nil)
		return
	}

	if sprint.Complete {
		h.engine.RecordSprintCompletion()
	}

	respondJSON(w, http.StatusOK, sprint)
}

// Restaurants returns the full loaded catalog.
//
// GET /api/v1/restaurants
func (h *Handler) Restaurants(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"restaurants": h.engine.Catalog(),
	})
}
