// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package recommend

import (
	"fmt"
	"time"
)

// Config contains all tunables for the recommendation engine.
type Config struct {
	// Learning contains online-learner parameters.
	Learning LearningConfig `json:"learning" koanf:"learning"`

	// Scoring contains cold-start and exploration parameters.
	Scoring ScoringConfig `json:"scoring" koanf:"scoring"`

	// Diversity contains MMR reranking parameters.
	Diversity DiversityConfig `json:"diversity" koanf:"diversity"`

	// Seed is the random seed for the exploration jitter.
	// If zero, a time-based seed is used; tests set a fixed seed for
	// deterministic ordering.
	Seed int64 `json:"seed" koanf:"seed"`
}

// LearningConfig contains parameters for the online preference learner.
type LearningConfig struct {
	// DecayHalfLife is the idle time after which learning strength has
	// decayed by a factor of e. Default: 168h (7 days).
	DecayHalfLife time.Duration `json:"decay_half_life" koanf:"decay_half_life"`

	// MinDecay floors the decay factor so long-idle models still learn.
	// Default: 0.1.
	MinDecay float64 `json:"min_decay" koanf:"min_decay"`

	// MaxRate clamps the 1/n-annealed base learning rate. Default: 0.3.
	MaxRate float64 `json:"max_rate" koanf:"max_rate"`

	// UncertaintyBeta is the EMA blend factor for the per-feature
	// uncertainty update. Default: 0.1.
	UncertaintyBeta float64 `json:"uncertainty_beta" koanf:"uncertainty_beta"`
}

// ScoringConfig contains parameters for the blended scorer.
type ScoringConfig struct {
	// ColdStartSwipes is the swipe count below which scoring is purely
	// heuristic (rating/distance/jitter). Default: 5.
	ColdStartSwipes int `json:"cold_start_swipes" koanf:"cold_start_swipes"`

	// MatureSwipes is the swipe count at which the cold-start blend fully
	// fades out. Default: 15.
	MatureSwipes int `json:"mature_swipes" koanf:"mature_swipes"`

	// EpsilonFloor is the minimum exploration weight. Default: 0.05.
	EpsilonFloor float64 `json:"epsilon_floor" koanf:"epsilon_floor"`

	// EpsilonScale is the initial extra exploration weight that decays away.
	// Default: 0.25.
	EpsilonScale float64 `json:"epsilon_scale" koanf:"epsilon_scale"`

	// EpsilonDecaySwipes is the e-folding swipe count of the epsilon decay.
	// Default: 20.
	EpsilonDecaySwipes float64 `json:"epsilon_decay_swipes" koanf:"epsilon_decay_swipes"`

	// ContextMinSwipes is the minimum bucket tally before the time-of-day
	// multiplier departs from neutral. Default: 5.
	ContextMinSwipes int `json:"context_min_swipes" koanf:"context_min_swipes"`

	// ColdJitter is the upper bound of the uniform cold-start jitter.
	// Default: 0.3.
	ColdJitter float64 `json:"cold_jitter" koanf:"cold_jitter"`
}

// DiversityConfig contains parameters for MMR diversity reranking.
type DiversityConfig struct {
	// Lambda balances relevance against diversity (1.0 = pure relevance).
	// Default: 0.3.
	Lambda float64 `json:"lambda" koanf:"lambda"`

	// DeckSize is the length of the final ranked deck. Inputs no longer than
	// the deck are returned unchanged. Default: 20.
	DeckSize int `json:"deck_size" koanf:"deck_size"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Learning: LearningConfig{
			DecayHalfLife:   7 * 24 * time.Hour,
			MinDecay:        0.1,
			MaxRate:         0.3,
			UncertaintyBeta: 0.1,
		},
		Scoring: ScoringConfig{
			ColdStartSwipes:    5,
			MatureSwipes:       15,
			EpsilonFloor:       0.05,
			EpsilonScale:       0.25,
			EpsilonDecaySwipes: 20,
			ContextMinSwipes:   5,
			ColdJitter:         0.3,
		},
		Diversity: DiversityConfig{
			Lambda:   0.3,
			DeckSize: 20,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Learning.DecayHalfLife <= 0 {
		return fmt.Errorf("learning.decay_half_life must be positive, got %s", c.Learning.DecayHalfLife)
	}
	if c.Learning.MinDecay < 0 || c.Learning.MinDecay > 1 {
		return fmt.Errorf("learning.min_decay must be in [0,1], got %f", c.Learning.MinDecay)
	}
	if c.Learning.MaxRate <= 0 || c.Learning.MaxRate > 1 {
		return fmt.Errorf("learning.max_rate must be in (0,1], got %f", c.Learning.MaxRate)
	}
	if c.Learning.UncertaintyBeta <= 0 || c.Learning.UncertaintyBeta >= 1 {
		return fmt.Errorf("learning.uncertainty_beta must be in (0,1), got %f", c.Learning.UncertaintyBeta)
	}
	if c.Scoring.ColdStartSwipes < 0 {
		return fmt.Errorf("scoring.cold_start_swipes must be non-negative, got %d", c.Scoring.ColdStartSwipes)
	}
	if c.Scoring.MatureSwipes <= c.Scoring.ColdStartSwipes {
		return fmt.Errorf("scoring.mature_swipes (%d) must exceed cold_start_swipes (%d)",
			c.Scoring.MatureSwipes, c.Scoring.ColdStartSwipes)
	}
	if c.Scoring.EpsilonDecaySwipes <= 0 {
		return fmt.Errorf("scoring.epsilon_decay_swipes must be positive, got %f", c.Scoring.EpsilonDecaySwipes)
	}
	if c.Diversity.Lambda < 0 || c.Diversity.Lambda > 1 {
		return fmt.Errorf("diversity.lambda must be in [0,1], got %f", c.Diversity.Lambda)
	}
	if c.Diversity.DeckSize <= 0 {
		return fmt.Errorf("diversity.deck_size must be positive, got %d", c.Diversity.DeckSize)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
