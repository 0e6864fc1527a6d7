// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package recommend

import "time"

// ModelVersion is the current persisted model schema version. Loads of older
// or versionless blobs go through the best-effort legacy migration.
const ModelVersion = 1

// MaxHistoryEntries bounds the swipe history; oldest entries are dropped
// first once the bound is exceeded.
const MaxHistoryEntries = 50

// UserModel is the per-user preference state. It is owned exclusively by the
// recommendation engine: callers read scored lists and record swipes, they
// never mutate fields directly.
type UserModel struct {
	// Version is the schema version for forward migration.
	Version int `json:"version"`

	// LikeWeights and DislikeWeights are 22-dim accumulator vectors adjusted
	// by the learner. They are not normalized; the scorer divides by the
	// outcome counts instead.
	LikeWeights    []float64 `json:"like_weights"`
	DislikeWeights []float64 `json:"dislike_weights"`

	// FeatureUncertainty tracks per-feature prediction error (1.0 = maximal
	// uncertainty). FeatureConfidence is its derived inverse.
	FeatureUncertainty []float64 `json:"feature_uncertainty"`
	FeatureConfidence  []float64 `json:"feature_confidence"`

	// TotalLikes and TotalDislikes count recorded outcomes.
	TotalLikes    int `json:"total_likes"`
	TotalDislikes int `json:"total_dislikes"`

	// SprintCount counts completed sprint sessions.
	SprintCount int `json:"sprint_count"`

	// LastSwipeTimestamp anchors the learning-rate time decay, epoch millis.
	LastSwipeTimestamp int64 `json:"last_swipe_timestamp"`

	// TimePreferences tallies outcomes per time-of-day bucket.
	TimePreferences map[TimeOfDay]TimePreference `json:"time_preferences"`

	// SwipeHistory is the bounded log of past swipes, oldest first.
	// Disposable working memory: pruning it never affects folded-in weights.
	SwipeHistory []SwipeRecord `json:"swipe_history"`
}

// NewUserModel returns a freshly initialized model: all-zero weights,
// maximal uncertainty, empty tallies and history.
func NewUserModel() *UserModel {
	return newUserModelAt(time.Now())
}

// newUserModelAt is the clock-injectable constructor used by tests and the
// engine.
func newUserModelAt(now time.Time) *UserModel {
	uncertainty := make([]float64, FeatureDim)
	confidence := make([]float64, FeatureDim)
	for i := range uncertainty {
		uncertainty[i] = 1.0
		confidence[i] = 0.5
	}

	prefs := make(map[TimeOfDay]TimePreference, len(TimeOfDayBuckets))
	for _, b := range TimeOfDayBuckets {
		prefs[b] = TimePreference{}
	}

	return &UserModel{
		Version:            ModelVersion,
		LikeWeights:        make([]float64, FeatureDim),
		DislikeWeights:     make([]float64, FeatureDim),
		FeatureUncertainty: uncertainty,
		FeatureConfidence:  confidence,
		TimePreferences:    prefs,
		SwipeHistory:       []SwipeRecord{},
		LastSwipeTimestamp: now.UnixMilli(),
	}
}

// TotalSwipes returns the number of outcomes folded into the model.
func (m *UserModel) TotalSwipes() int {
	return m.TotalLikes + m.TotalDislikes
}

// Clone returns a deep copy of the model.
func (m *UserModel) Clone() *UserModel {
	if m == nil {
		return nil
	}

	c := *m
	c.LikeWeights = append([]float64(nil), m.LikeWeights...)
	c.DislikeWeights = append([]float64(nil), m.DislikeWeights...)
	c.FeatureUncertainty = append([]float64(nil), m.FeatureUncertainty...)
	c.FeatureConfidence = append([]float64(nil), m.FeatureConfidence...)

	c.TimePreferences = make(map[TimeOfDay]TimePreference, len(m.TimePreferences))
	for k, v := range m.TimePreferences {
		c.TimePreferences[k] = v
	}

	c.SwipeHistory = make([]SwipeRecord, len(m.SwipeHistory))
	for i, rec := range m.SwipeHistory {
		rec.Features = append([]float64(nil), rec.Features...)
		c.SwipeHistory[i] = rec
	}

	return &c
}

// Normalize repairs a model deserialized from storage so every slice has the
// expected length and every bucket exists. Persisted state from older builds
// must never crash the interaction loop.
func (m *UserModel) Normalize() {
	m.LikeWeights = fitDim(m.LikeWeights, 0)
	m.DislikeWeights = fitDim(m.DislikeWeights, 0)
	m.FeatureUncertainty = fitDim(m.FeatureUncertainty, 1.0)
	m.FeatureConfidence = fitDim(m.FeatureConfidence, 0.5)

	if m.TimePreferences == nil {
		m.TimePreferences = make(map[TimeOfDay]TimePreference, len(TimeOfDayBuckets))
	}
	for _, b := range TimeOfDayBuckets {
		if _, ok := m.TimePreferences[b]; !ok {
			m.TimePreferences[b] = TimePreference{}
		}
	}

	if m.SwipeHistory == nil {
		m.SwipeHistory = []SwipeRecord{}
	}
	if len(m.SwipeHistory) > MaxHistoryEntries {
		m.SwipeHistory = m.SwipeHistory[len(m.SwipeHistory)-MaxHistoryEntries:]
	}
}

// fitDim pads or truncates a slice to FeatureDim, filling new slots with fill.
func fitDim(v []float64, fill float64) []float64 {
	if len(v) == FeatureDim {
		return v
	}
	out := make([]float64, FeatureDim)
	for i := range out {
		out[i] = fill
	}
	copy(out, v)
	return out
}
