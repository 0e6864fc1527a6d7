// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package reranking diversifies the scored restaurant list into the final
// swipe deck.
//
// Reranking is applied after scoring:
//
//	Scorer -> Relevance Ranking -> MMR -> Final Deck
//
// # MMR Algorithm
//
// Maximal Marginal Relevance iteratively selects restaurants that are both
// relevant and dissimilar to those already selected:
//
//	MMR = argmax[lambda * relevance(i) + (1-lambda) * (1 - max_similarity(i, selected))]
//
// Relevance scores are min-max normalized to [0, 1] before selection so the
// lambda tradeoff is scale-independent. The top-relevance item is always
// selected first.
//
// # Similarity
//
// Similarity is a weighted agreement over the feature vector: cuisine
// matches count most, ambiance matches somewhat, numeric attributes
// (rating, price, distance) least. Two restaurants with the same cuisine
// and ambiance are near-duplicates even if their prices differ, so lunch
// decks do not fill up with five nearly identical cafes.
//
// # Thread Safety
//
// Rerankers are stateless and safe for concurrent use.
package reranking
