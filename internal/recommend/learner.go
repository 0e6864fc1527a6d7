// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package recommend

import (
	"math"
	"time"
)

// Learner applies swipe outcomes to a user model. It is a pure state
// transformer: the input model is not aliased, the returned model is the
// authoritative next state.
type Learner struct {
	cfg LearningConfig

	// now is injectable so tests control the decay anchor.
	now func() time.Time
}

// NewLearner creates a learner with the given parameters.
func NewLearner(cfg LearningConfig) *Learner {
	return &Learner{cfg: cfg, now: time.Now}
}

// RecordSwipe folds one swipe outcome into the model and returns the updated
// state. This is an append-only learning process, not a memoized computation:
// recording the same swipe twice accumulates twice.
func (l *Learner) RecordSwipe(model *UserModel, r Restaurant, liked bool, ctx SwipeContext) *UserModel {
	m := model.Clone()
	now := l.now()
	features := ExtractFeatures(r)

	// Time-decayed learning rate: 1/n annealing, clamped, scaled by an
	// exponential idle decay with a hard floor so long-idle models still
	// learn at reduced strength.
	age := time.Duration(now.UnixMilli()-m.LastSwipeTimestamp) * time.Millisecond
	decay := math.Exp(-age.Seconds() / l.cfg.DecayHalfLife.Seconds())
	baseRate := math.Min(l.cfg.MaxRate, 2.0/float64(m.TotalSwipes()+1))
	rate := baseRate * math.Max(decay, l.cfg.MinDecay)

	// Only the outcome branch is updated, never both.
	if liked {
		for i, f := range features {
			m.LikeWeights[i] += rate * f
		}
		m.TotalLikes++
	} else {
		for i, f := range features {
			m.DislikeWeights[i] += rate * f
		}
		m.TotalDislikes++
	}

	// Uncertainty update, restricted to features present on this restaurant:
	// absent features carry no new evidence.
	observed := -1.0
	if liked {
		observed = 1.0
	}
	beta := l.cfg.UncertaintyBeta
	for i, f := range features {
		if f <= 0 {
			continue
		}
		expected := m.LikeWeights[i] - m.DislikeWeights[i]
		errSq := (observed - expected) * (observed - expected)
		m.FeatureUncertainty[i] = (1-beta)*m.FeatureUncertainty[i] + beta*errSq
		m.FeatureConfidence[i] = 1 / (1 + m.FeatureUncertainty[i])
	}

	pref := m.TimePreferences[ctx.TimeOfDay]
	if liked {
		pref.Likes++
	} else {
		pref.Dislikes++
	}
	m.TimePreferences[ctx.TimeOfDay] = pref

	m.SwipeHistory = append(m.SwipeHistory, SwipeRecord{
		RestaurantID: r.ID,
		Liked:        liked,
		Timestamp:    now.UnixMilli(),
		Features:     features,
		Context:      ctx,
	})
	if len(m.SwipeHistory) > MaxHistoryEntries {
		m.SwipeHistory = m.SwipeHistory[len(m.SwipeHistory)-MaxHistoryEntries:]
	}

	// Anchor for the next call's decay.
	m.LastSwipeTimestamp = now.UnixMilli()

	return m
}
