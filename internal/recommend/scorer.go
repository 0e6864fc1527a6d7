// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package recommend

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// Scorer computes per-restaurant scores blending cold-start heuristics,
// learned preference exploitation, and uncertainty-weighted exploration.
// Scoring never mutates the model.
type Scorer struct {
	cfg ScoringConfig

	// rng drives the cold-start jitter and the exploration bonus.
	// Injectable (seeded) so tests can assert exact orderings; protected for
	// concurrent scoring calls.
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewScorer creates a scorer using the given random source.
func NewScorer(cfg ScoringConfig, rng *rand.Rand) *Scorer {
	return &Scorer{cfg: cfg, rng: rng}
}

// ScoreRestaurants scores every candidate not in excludeIDs and returns them
// sorted by descending score. Ties preserve input order so repeated calls
// with a fixed random seed are fully deterministic. It never fails:
// restaurants with no scorable content fall back to the cold-start heuristic
// terms, which degrade to neutral values.
func (s *Scorer) ScoreRestaurants(restaurants []Restaurant, model *UserModel, excludeIDs map[string]struct{}, ctx SwipeContext) []ScoredRestaurant {
	totalSwipes := model.TotalSwipes()
	epsilon := s.cfg.EpsilonFloor + s.cfg.EpsilonScale*math.Exp(-float64(totalSwipes)/s.cfg.EpsilonDecaySwipes)
	contextMult := s.contextMultiplier(model, ctx)

	scored := make([]ScoredRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if _, excluded := excludeIDs[r.ID]; excluded {
			continue
		}
		scored = append(scored, s.scoreOne(r, model, totalSwipes, epsilon, contextMult))
	}

	// Stable: equal scores keep relative input order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// scoreOne scores a single candidate.
func (s *Scorer) scoreOne(r Restaurant, model *UserModel, totalSwipes int, epsilon, contextMult float64) ScoredRestaurant {
	coldScore := r.Rating/5.0 - r.Distance/50.0

	// Pure cold start: no preference signal exists yet; rating and distance
	// rank the deck, a per-call jitter breaks the stale ordering.
	if totalSwipes < s.cfg.ColdStartSwipes {
		return ScoredRestaurant{
			Restaurant:        r,
			Score:             coldScore + s.uniform()*s.cfg.ColdJitter,
			ContextMultiplier: 1,
		}
	}

	features := ExtractFeatures(r)

	// Exploitation: count-normalized preference dot products, so heavy early
	// accumulation does not permanently dominate.
	netPreference := dotProduct(features, model.LikeWeights)/float64(model.TotalLikes+1) -
		dotProduct(features, model.DislikeWeights)/float64(model.TotalDislikes+1)

	// Exploration: uncertainty mass over features present on this candidate,
	// epsilon-weighted with a fresh random draw per call.
	var uncertainty float64
	for i, f := range features {
		if f > 0 {
			uncertainty += f * model.FeatureUncertainty[i]
		}
	}
	explorationBonus := epsilon * uncertainty * s.uniform()

	matureScore := netPreference + explorationBonus

	score := matureScore
	if totalSwipes < s.cfg.MatureSwipes {
		// Transition band: linear fade from the jitterless cold-start score
		// to the mature score.
		coldWeight := float64(s.cfg.MatureSwipes-totalSwipes) /
			float64(s.cfg.MatureSwipes-s.cfg.ColdStartSwipes)
		score = coldWeight*coldScore + (1-coldWeight)*matureScore
	}

	score *= contextMult

	return ScoredRestaurant{
		Restaurant:        r,
		Score:             score,
		ExploitationScore: netPreference,
		ExplorationBonus:  explorationBonus,
		ContextMultiplier: contextMult,
	}
}

// contextMultiplier derives the time-of-day dampening factor from the
// bucket's historical like rate. Buckets with too little data stay neutral.
func (s *Scorer) contextMultiplier(model *UserModel, ctx SwipeContext) float64 {
	pref := model.TimePreferences[ctx.TimeOfDay]
	total := pref.Total()
	if total <= s.cfg.ContextMinSwipes {
		return 1.0
	}
	return 0.5 + 0.5*float64(pref.Likes)/float64(total)
}

// uniform draws from U(0,1) under the rng lock.
func (s *Scorer) uniform() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64()
}
