// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package recommend

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages. The
// ModelStore and Reranker interfaces allow integration with the storage and
// reranking packages without creating circular imports.

// ModelStore persists the user model between sessions. Load never fails; a
// store that cannot produce a valid model returns a fresh one.
type ModelStore interface {
	Load() *UserModel
	Save(m *UserModel) error
	Reset() error
}

// Reranker post-processes a relevance-ordered candidate list into a final
// deck.
type Reranker interface {
	Name() string
	Rerank(items []ScoredRestaurant) []ScoredRestaurant
}

// Observer receives engine events for instrumentation. All methods must be
// safe for concurrent use.
type Observer interface {
	SwipeRecorded(liked bool)
	DeckBuilt(candidates, returned int, duration time.Duration)
	PersistenceFailed()
}

// Engine coordinates feature extraction, online learning, scoring, and
// diversity reranking over a restaurant catalog. It is safe for concurrent
// use; swipe recording is serialized so each update sees the previous one.
type Engine struct {
	config *Config
	logger zerolog.Logger

	store    ModelStore
	learner  *Learner
	scorer   *Scorer
	reranker Reranker
	observer Observer

	// catalog maps restaurant ID to metadata, set once at startup.
	catalog   map[string]Restaurant
	catalogMu sync.RWMutex

	// modelMu serializes the load-mutate-save cycle on the persisted model.
	modelMu sync.Mutex

	now func() time.Time
}

// NewEngine creates a recommendation engine backed by the given model store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store ModelStore, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("model store is required")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // math/rand is fine for exploration jitter

	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		store:   store,
		learner: NewLearner(cfg.Learning),
		scorer:  NewScorer(cfg.Scoring, rng),
		catalog: make(map[string]Restaurant),
		now:     time.Now,
	}, nil
}

// SetReranker installs the diversity reranker applied after scoring.
func (e *Engine) SetReranker(rr Reranker) {
	e.reranker = rr
	e.logger.Info().Str("reranker", rr.Name()).Msg("registered reranker")
}

// SetObserver installs the instrumentation sink.
func (e *Engine) SetObserver(obs Observer) {
	e.observer = obs
}

// SetClock overrides the wall clock. Tests use it to control decay and
// time-of-day bucketing.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
	e.learner.now = now
}

// SetCatalog replaces the restaurant catalog.
func (e *Engine) SetCatalog(restaurants []Restaurant) {
	catalog := make(map[string]Restaurant, len(restaurants))
	for _, r := range restaurants {
		catalog[r.ID] = r
	}

	e.catalogMu.Lock()
	e.catalog = catalog
	e.catalogMu.Unlock()

	e.logger.Info().Int("restaurants", len(catalog)).Msg("catalog loaded")
}

// Catalog returns all restaurants in the catalog.
func (e *Engine) Catalog() []Restaurant {
	e.catalogMu.RLock()
	defer e.catalogMu.RUnlock()

	out := make([]Restaurant, 0, len(e.catalog))
	for _, r := range e.catalog {
		out = append(out, r)
	}
	return out
}

// Restaurant looks up a catalog entry by ID.
func (e *Engine) Restaurant(id string) (Restaurant, bool) {
	e.catalogMu.RLock()
	defer e.catalogMu.RUnlock()

	r, ok := e.catalog[id]
	return r, ok
}

// Deck scores every catalog restaurant not in excludeIDs against the current
// model and returns the diversified deck, best first.
func (e *Engine) Deck(excludeIDs map[string]struct{}, ctx SwipeContext) []ScoredRestaurant {
	start := e.now()

	e.modelMu.Lock()
	model := e.store.Load()
	e.modelMu.Unlock()

	candidates := e.Catalog()
	scored := e.scorer.ScoreRestaurants(candidates, model, excludeIDs, ctx)
	if e.reranker != nil {
		scored = e.reranker.Rerank(scored)
	}

	if e.observer != nil {
		e.observer.DeckBuilt(len(candidates), len(scored), e.now().Sub(start))
	}

	e.logger.Debug().
		Int("candidates", len(candidates)).
		Int("excluded", len(excludeIDs)).
		Int("returned", len(scored)).
		Int("total_swipes", model.TotalSwipes()).
		Msg("deck built")

	return scored
}

// RecordSwipe folds a like or dislike on the given restaurant into the
// persisted model. The updated model is returned even when persistence
// fails; a save failure is logged and reported, not propagated, so a full
// disk never loses the in-session signal.
func (e *Engine) RecordSwipe(restaurantID string, liked bool, ctx SwipeContext) (*UserModel, error) {
	r, ok := e.Restaurant(restaurantID)
	if !ok {
		return nil, fmt.Errorf("unknown restaurant %q", restaurantID)
	}

	e.modelMu.Lock()
	defer e.modelMu.Unlock()

	model := e.store.Load()
	updated := e.learner.RecordSwipe(model, r, liked, ctx)

	if err := e.store.Save(updated); err != nil {
		if e.observer != nil {
			e.observer.PersistenceFailed()
		}
		e.logger.Warn().Err(err).Str("restaurant_id", restaurantID).Msg("model save failed")
	}

	if e.observer != nil {
		e.observer.SwipeRecorded(liked)
	}

	e.logger.Debug().
		Str("restaurant_id", restaurantID).
		Bool("liked", liked).
		Int("total_swipes", updated.TotalSwipes()).
		Msg("swipe recorded")

	return updated, nil
}

// RecordSprintCompletion folds a finished sprint into the persisted model's
// sprint tally. Like RecordSwipe, a save failure is logged and reported, not
// propagated.
func (e *Engine) RecordSprintCompletion() {
	e.modelMu.Lock()
	defer e.modelMu.Unlock()

	model := e.store.Load()
	model.SprintCount++

	if err := e.store.Save(model); err != nil {
		if e.observer != nil {
			e.observer.PersistenceFailed()
		}
		e.logger.Warn().Err(err).Msg("model save failed")
		return
	}

	e.logger.Debug().Int("sprint_count", model.SprintCount).Msg("sprint completion recorded")
}

// Model returns the current persisted model.
func (e *Engine) Model() *UserModel {
	e.modelMu.Lock()
	defer e.modelMu.Unlock()
	return e.store.Load()
}

// Reset discards all learned preferences.
func (e *Engine) Reset() error {
	e.modelMu.Lock()
	defer e.modelMu.Unlock()

	if err := e.store.Reset(); err != nil {
		return fmt.Errorf("reset model: %w", err)
	}
	e.logger.Info().Msg("model reset")
	return nil
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
