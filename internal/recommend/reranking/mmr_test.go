// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package reranking

import (
	"fmt"
	"testing"

	"github.com/swipeeats/swipeeats/internal/recommend"
)

func scoredItem(id, cuisine string, score float64) recommend.ScoredRestaurant {
	return recommend.ScoredRestaurant{
		Restaurant: recommend.Restaurant{ID: id, Cuisine: cuisine, Rating: 4.0},
		Score:      score,
	}
}

// scoredPool builds n descending-scored items cycling through cuisines.
func scoredPool(n int) []recommend.ScoredRestaurant {
	cuisines := []string{"Italian", "Chinese", "North Indian", "South Indian", "Desserts"}
	items := make([]recommend.ScoredRestaurant, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, scoredItem(
			fmt.Sprintf("r-%d", i),
			cuisines[i%len(cuisines)],
			float64(n-i),
		))
	}
	return items
}

func TestNewMMR_Clamping(t *testing.T) {
	tests := []struct {
		name         string
		lambda       float64
		deckSize     int
		wantLambda   float64
		wantDeckSize int
	}{
		{"defaults preserved", 0.3, 20, 0.3, 20},
		{"negative lambda clamped", -1, 10, 0, 10},
		{"lambda above one clamped", 1.5, 10, 1, 10},
		{"zero deck size falls back", 0.3, 0, 0.3, 20},
		{"negative deck size falls back", 0.3, -5, 0.3, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMMR(tt.lambda, tt.deckSize)
			if m.lambda != tt.wantLambda {
				t.Errorf("lambda = %v, want %v", m.lambda, tt.wantLambda)
			}
			if m.deckSize != tt.wantDeckSize {
				t.Errorf("deckSize = %d, want %d", m.deckSize, tt.wantDeckSize)
			}
		})
	}
}

func TestMMR_Name(t *testing.T) {
	if got := NewMMR(0.3, 20).Name(); got != "mmr" {
		t.Errorf("Name() = %q, want %q", got, "mmr")
	}
}

func TestMMR_PassthroughSmallInput(t *testing.T) {
	m := NewMMR(0.3, 20)
	items := scoredPool(15)

	got := m.Rerank(items)

	if len(got) != 15 {
		t.Fatalf("len = %d, want 15", len(got))
	}
	for i := range got {
		if got[i].ID != items[i].ID {
			t.Errorf("position %d = %s, want %s (input order preserved)", i, got[i].ID, items[i].ID)
		}
	}
}

func TestMMR_OutputSize(t *testing.T) {
	m := NewMMR(0.3, 20)
	got := m.Rerank(scoredPool(60))
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
}

func TestMMR_FirstPickIsTopRelevance(t *testing.T) {
	m := NewMMR(0.3, 3)
	items := scoredPool(10)

	got := m.Rerank(items)
	if got[0].ID != items[0].ID {
		t.Errorf("first pick = %s, want top-scored %s", got[0].ID, items[0].ID)
	}
}

func TestMMR_NoDuplicates(t *testing.T) {
	m := NewMMR(0.3, 20)
	got := m.Rerank(scoredPool(40))

	seen := make(map[string]struct{}, len(got))
	for _, it := range got {
		if _, dup := seen[it.ID]; dup {
			t.Errorf("duplicate item %s in reranked deck", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
}

func TestMMR_DiversityBreaksRuns(t *testing.T) {
	// Top three by relevance are identical italian clones; an all-round
	// different candidate sits at the bottom. With lambda 0.3 the reranker
	// must not pick a second clone before the distinct candidate.
	distinct := recommend.ScoredRestaurant{
		Restaurant: recommend.Restaurant{
			ID:            "cn-1",
			Cuisine:       "Chinese",
			Rating:        1.0,
			PriceForTwo:   9000,
			Distance:      20,
			AmbianceTags:  []string{"Romantic", "Rooftop Seating"},
			PopularDishes: "Dim Sum",
			ImageURLs:     []string{"a", "b", "c", "d", "e"},
		},
		Score: 7,
	}
	items := []recommend.ScoredRestaurant{
		scoredItem("it-1", "Italian", 10),
		scoredItem("it-2", "Italian", 9),
		scoredItem("it-3", "Italian", 8),
		distinct,
	}
	m := NewMMR(0.3, 2)

	got := m.Rerank(items)
	if got[0].ID != "it-1" {
		t.Fatalf("first pick = %s, want it-1", got[0].ID)
	}
	if got[1].ID != "cn-1" {
		t.Errorf("second pick = %s, want cn-1 over the italian clones", got[1].ID)
	}
}

func TestMMR_PureRelevanceAtLambdaOne(t *testing.T) {
	items := scoredPool(30)
	m := NewMMR(1.0, 10)

	got := m.Rerank(items)
	for i := range got {
		if got[i].ID != items[i].ID {
			t.Errorf("position %d = %s, want %s (lambda=1 keeps relevance order)", i, got[i].ID, items[i].ID)
		}
	}
}

func TestMMR_DegenerateEqualScores(t *testing.T) {
	// Identical scores collapse the normalized relevance term; the earliest
	// candidate wins pure-relevance ties and the run still fills the deck.
	items := make([]recommend.ScoredRestaurant, 25)
	for i := range items {
		items[i] = scoredItem(fmt.Sprintf("r-%d", i), "Italian", 5)
	}
	m := NewMMR(1.0, 10)

	got := m.Rerank(items)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	for i := range got {
		if got[i].ID != items[i].ID {
			t.Errorf("position %d = %s, want %s (ties keep earliest)", i, got[i].ID, items[i].ID)
		}
	}
}

func TestFeatureSimilarity(t *testing.T) {
	a := recommend.ExtractFeatures(recommend.Restaurant{Cuisine: "Italian", Rating: 4.0})
	b := recommend.ExtractFeatures(recommend.Restaurant{Cuisine: "Italian", Rating: 4.0})
	c := recommend.ExtractFeatures(recommend.Restaurant{Cuisine: "Chinese", Rating: 1.0, PriceForTwo: 9000})

	if sim := featureSimilarity(a, b); sim != 1 {
		t.Errorf("identical vectors similarity = %v, want 1", sim)
	}
	same := featureSimilarity(a, b)
	diff := featureSimilarity(a, c)
	if diff >= same {
		t.Errorf("dissimilar pair %v >= identical pair %v", diff, same)
	}
}
