// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package session manages swipe sprints.
//
// A sprint is a bounded run of swipes (20 by default) after which the best
// liked restaurant is surfaced as the match. Sprints carry the set of already
// swiped restaurant IDs so deck builds never redeal a seen card within the
// same sprint.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swipeeats/swipeeats/internal/recommend"
)

// DefaultSprintSize is the number of swipes per sprint.
const DefaultSprintSize = 20

// ErrNotFound is returned when a sprint ID is unknown.
var ErrNotFound = fmt.Errorf("sprint not found")

// ErrComplete is returned when recording a swipe on a finished sprint.
var ErrComplete = fmt.Errorf("sprint already complete")

// Observer receives sprint lifecycle events for instrumentation. All methods
// must be safe for concurrent use.
type Observer interface {
	SprintStarted()
	SprintCompleted()
}

// Sprint is the state of one bounded swipe run.
type Sprint struct {
	// ID is the opaque sprint identifier.
	ID string `json:"id"`

	// Number is the ordinal of this sprint within the manager's lifetime,
	// starting at 1.
	Number int `json:"number"`

	// Size is the number of swipes that complete the sprint.
	Size int `json:"size"`

	// SwipeCount is the number of swipes recorded so far.
	SwipeCount int `json:"swipe_count"`

	// Liked holds liked restaurants with their deal-time scores, in swipe
	// order.
	Liked []recommend.ScoredRestaurant `json:"liked"`

	// DislikedIDs holds the IDs of disliked restaurants.
	DislikedIDs []string `json:"disliked_ids"`

	// Complete is true once SwipeCount reaches Size.
	Complete bool `json:"complete"`

	// BestMatch is the highest-scored liked restaurant, set on completion.
	// Nil when the sprint finished with no likes.
	BestMatch *recommend.ScoredRestaurant `json:"best_match,omitempty"`

	// StartedAt is the sprint creation time.
	StartedAt time.Time `json:"started_at"`
}

// Progress reports completion as a fraction in [0, 1].
func (s *Sprint) Progress() float64 {
	return float64(s.SwipeCount) / float64(s.Size)
}

// SwipedIDs returns the union of liked and disliked restaurant IDs.
func (s *Sprint) SwipedIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(s.Liked)+len(s.DislikedIDs))
	for _, r := range s.Liked {
		ids[r.ID] = struct{}{}
	}
	for _, id := range s.DislikedIDs {
		ids[id] = struct{}{}
	}
	return ids
}

// Manager tracks active sprints. It is safe for concurrent use.
type Manager struct {
	logger   zerolog.Logger
	observer Observer

	mu      sync.RWMutex
	sprints map[string]*Sprint
	started int

	size int
	now  func() time.Time
}

// NewManager creates a sprint manager dealing sprints of the given size.
// A non-positive size falls back to DefaultSprintSize.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewManager(size int, logger zerolog.Logger) *Manager {
	if size <= 0 {
		size = DefaultSprintSize
	}
	return &Manager{
		logger:  logger.With().Str("component", "session").Logger(),
		sprints: make(map[string]*Sprint),
		size:    size,
		now:     time.Now,
	}
}

// SetObserver installs the instrumentation sink.
func (m *Manager) SetObserver(obs Observer) {
	m.observer = obs
}

// Start begins a new sprint and returns its state.
func (m *Manager) Start() *Sprint {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.started++
	s := &Sprint{
		ID:        uuid.NewString(),
		Number:    m.started,
		Size:      m.size,
		StartedAt: m.now(),
	}
	m.sprints[s.ID] = s

	if m.observer != nil {
		m.observer.SprintStarted()
	}

	m.logger.Info().
		Str("sprint_id", s.ID).
		Int("number", s.Number).
		Msg("sprint started")

	return s.snapshot()
}

// Get returns the sprint with the given ID.
func (m *Manager) Get(id string) (*Sprint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sprints[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.snapshot(), nil
}

// RecordSwipe folds one swipe into the sprint. On the final swipe the sprint
// is marked complete and the best match resolved.
func (m *Manager) RecordSwipe(id string, r recommend.ScoredRestaurant, liked bool) (*Sprint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sprints[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.Complete {
		return nil, ErrComplete
	}

	if liked {
		s.Liked = append(s.Liked, r)
	} else {
		s.DislikedIDs = append(s.DislikedIDs, r.ID)
	}

	s.SwipeCount++
	if s.SwipeCount >= s.Size {
		s.Complete = true
		s.BestMatch = bestMatch(s.Liked)

		if m.observer != nil {
			m.observer.SprintCompleted()
		}

		m.logger.Info().
			Str("sprint_id", s.ID).
			Int("liked", len(s.Liked)).
			Bool("has_match", s.BestMatch != nil).
			Msg("sprint complete")
	}

	return s.snapshot(), nil
}

// Delete removes a sprint.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sprints, id)
	m.mu.Unlock()
}

// bestMatch returns the highest-scored liked restaurant, earliest swipe
// winning ties. Nil for an empty list.
func bestMatch(liked []recommend.ScoredRestaurant) *recommend.ScoredRestaurant {
	if len(liked) == 0 {
		return nil
	}
	best := liked[0]
	for _, r := range liked[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return &best
}

// snapshot returns a copy safe to hand out after the lock is released.
func (s *Sprint) snapshot() *Sprint {
	cp := *s
	cp.Liked = append([]recommend.ScoredRestaurant(nil), s.Liked...)
	cp.DislikedIDs = append([]string(nil), s.DislikedIDs...)
	if s.BestMatch != nil {
		match := *s.BestMatch
		cp.BestMatch = &match
	}
	return &cp
}
