// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package recommend implements the on-device learning engine behind the
// swipe deck.
//
// # Architecture
//
// Every swipe on a restaurant card flows through a fixed pipeline:
//
//   - Feature Extraction: restaurants map to a fixed 22-dimensional vector
//     (cuisine one-hot, ambiance bits, normalized numeric attributes)
//   - Online Learning: per-feature like/dislike weights updated with a
//     decaying learning rate, plus a running uncertainty estimate
//   - Scoring: preference-based relevance with an epsilon-greedy
//     exploration bonus and a time-of-day context multiplier
//   - Diversity Reranking: MMR over the scored list (see the reranking
//     subpackage)
//
// # Cold Start
//
// Scoring degrades gracefully with little data:
//
//   - Fewer than 5 swipes: generic quality score (rating and proximity)
//     with random jitter so the deck is not identical for every new user
//   - 5 to 14 swipes: linear blend of the generic and learned scores
//   - 15 or more swipes: fully learned score
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, store, logger)
//	engine.SetCatalog(restaurants)
//	engine.SetReranker(reranking.NewMMR(cfg.Diversity.Lambda, cfg.Diversity.DeckSize))
//
//	deck := engine.Deck(seenIDs, recommend.CurrentContext(sprint, idx))
//	model, err := engine.RecordSwipe(deck[0].ID, true, ctx)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Swipe recording serializes the
// load-mutate-save cycle on the persisted model so no update is lost,
// while deck building only takes a read snapshot.
//
// # Determinism
//
// All randomness flows through a single seeded source. A fixed Config.Seed
// makes exploration bonuses and cold-start jitter reproducible, which the
// tests rely on.
package recommend
