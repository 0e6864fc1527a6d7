// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package reranking implements post-processing for recommendation diversity.
package reranking

import (
	"math"

	"github.com/swipeeats/swipeeats/internal/recommend"
)

// MMR implements Maximal Marginal Relevance reranking over restaurant
// feature vectors. It reselects a fixed-size deck from a relevance-sorted
// candidate list, trading relevance against feature-space redundancy so the
// swipe sequence avoids runs of near-identical restaurants.
//
// The selection criterion is:
//
//	mmr = lambda * relevance + (1-lambda) * (1 - maxSimilarityToSelected)
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
type MMR struct {
	lambda   float64
	deckSize int
}

// featureWeights weighs each feature slot's contribution to pairwise
// similarity: full weight per cuisine bit, 0.8 per ambiance bit, smaller
// asymmetric weights for the numeric slots.
var featureWeights = [recommend.FeatureDim]float64{
	// Cuisine bits
	1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0,
	// Ambiance bits
	0.8, 0.8, 0.8, 0.8, 0.8, 0.8,
	// Numeric: rating, rating centered, price log, price bucket,
	// distance log, has dishes, photo count
	0.3, 0.3, 0.5, 0.5, 0.2, 0.1, 0.1,
}

// NewMMR creates an MMR reranker. Lambda is clamped to [0,1]; a non-positive
// deck size falls back to 20.
func NewMMR(lambda float64, deckSize int) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	if deckSize <= 0 {
		deckSize = 20
	}
	return &MMR{lambda: lambda, deckSize: deckSize}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Rerank reselects up to deckSize items from the score-sorted input.
// Inputs no longer than the deck are returned unchanged: there is no
// diversity benefit to reshuffling an already-small pool.
func (m *MMR) Rerank(items []recommend.ScoredRestaurant) []recommend.ScoredRestaurant {
	if len(items) <= m.deckSize {
		return items
	}

	features := make([][]float64, len(items))
	for i := range items {
		features[i] = recommend.ExtractFeatures(items[i].Restaurant)
	}

	// Normalize relevance to [0,1] using the batch's observed range.
	minScore, maxScore := items[0].Score, items[0].Score
	for _, it := range items[1:] {
		if it.Score < minScore {
			minScore = it.Score
		}
		if it.Score > maxScore {
			maxScore = it.Score
		}
	}
	scoreRange := maxScore - minScore
	if scoreRange == 0 {
		scoreRange = 1
	}

	selected := make([]recommend.ScoredRestaurant, 0, m.deckSize)
	selectedIdx := make([]int, 0, m.deckSize)
	used := make(map[int]struct{}, m.deckSize)

	// First pick: pure relevance, no diversity tradeoff for the top slot.
	selected = append(selected, items[0])
	selectedIdx = append(selectedIdx, 0)
	used[0] = struct{}{}

	for len(selected) < m.deckSize {
		bestIdx := -1
		bestMMR := math.Inf(-1)

		for i := range items {
			if _, ok := used[i]; ok {
				continue
			}

			relevance := (items[i].Score - minScore) / scoreRange

			maxSim := 0.0
			for _, j := range selectedIdx {
				if sim := featureSimilarity(features[i], features[j]); sim > maxSim {
					maxSim = sim
				}
			}

			// Strict > keeps ties at the earliest position in the
			// relevance-sorted order.
			mmrScore := m.lambda*relevance + (1-m.lambda)*(1-maxSim)
			if mmrScore > bestMMR {
				bestMMR = mmrScore
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}
		selected = append(selected, items[bestIdx])
		selectedIdx = append(selectedIdx, bestIdx)
		used[bestIdx] = struct{}{}
	}

	return selected
}

// featureSimilarity computes the weighted agreement between two feature
// vectors: binary slots contribute their weight on exact match, continuous
// slots contribute weight * (1 - min(|diff|, 1)).
func featureSimilarity(a, b []float64) float64 {
	var overlap, totalWeight float64
	for i := 0; i < recommend.FeatureDim; i++ {
		w := featureWeights[i]
		if i < recommend.NumericStart {
			if a[i] == b[i] {
				overlap += w
			}
		} else {
			diff := math.Abs(a[i] - b[i])
			overlap += w * (1 - math.Min(diff, 1))
		}
		totalWeight += w
	}
	return overlap / totalWeight
}
