// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package recommend

import (
	"math"
	"testing"
)

func TestExtractFeatures_Dimension(t *testing.T) {
	f := ExtractFeatures(Restaurant{})
	if len(f) != FeatureDim {
		t.Fatalf("len(features) = %d, want %d", len(f), FeatureDim)
	}
}

func TestExtractFeatures_Cuisine(t *testing.T) {
	tests := []struct {
		name    string
		cuisine string
		wantIdx int
	}{
		{"north indian", "North Indian, Mughlai", 0},
		{"mughlai alone", "Mughlai", 0},
		{"chinese", "Chinese", 1},
		{"italian via pizza", "Pizza", 2},
		{"italian via pasta", "Wood-fired Pasta", 2},
		{"continental", "Continental", 3},
		{"european maps to continental", "Modern European", 3},
		{"street food", "Street Food", 4},
		{"chaat", "Chaat Corner", 4},
		{"south indian", "South Indian", 5},
		{"dosa", "Dosa House", 5},
		{"thai maps to pan asian", "Thai", 6},
		{"japanese maps to pan asian", "Japanese Sushi", 6},
		{"dessert", "Desserts", 7},
		{"cafe maps to dessert block", "Cafe", 7},
		{"unknown falls to other", "Ethiopian", 8},
		{"empty falls to other", "", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ExtractFeatures(Restaurant{Cuisine: tt.cuisine})
			if f[tt.wantIdx] != 1 {
				t.Errorf("feature[%d] = %v, want 1", tt.wantIdx, f[tt.wantIdx])
			}
		})
	}
}

func TestExtractFeatures_CuisineCaseInsensitive(t *testing.T) {
	lower := ExtractFeatures(Restaurant{Cuisine: "chinese"})
	upper := ExtractFeatures(Restaurant{Cuisine: "CHINESE"})
	for i := CuisineStart; i < CuisineStart+CuisineCount; i++ {
		if lower[i] != upper[i] {
			t.Fatalf("case sensitivity at index %d: %v vs %v", i, lower[i], upper[i])
		}
	}
}

func TestExtractFeatures_OtherExclusive(t *testing.T) {
	// A matched cuisine must not also set the "other" bit.
	f := ExtractFeatures(Restaurant{Cuisine: "Italian"})
	if f[8] != 0 {
		t.Errorf("other bit set alongside matched cuisine")
	}

	// Multi-cuisine text can set several named bits, still no "other".
	f = ExtractFeatures(Restaurant{Cuisine: "North Indian, Chinese"})
	if f[0] != 1 || f[1] != 1 {
		t.Errorf("multi-cuisine bits = %v, %v, want both 1", f[0], f[1])
	}
	if f[8] != 0 {
		t.Errorf("other bit set alongside matched cuisines")
	}
}

func TestExtractFeatures_Ambiance(t *testing.T) {
	f := ExtractFeatures(Restaurant{
		AmbianceTags: []string{"Romantic", "Rooftop Seating"},
	})
	if f[9] != 1 {
		t.Errorf("romantic bit = %v, want 1", f[9])
	}
	if f[14] != 1 {
		t.Errorf("rooftop bit = %v, want 1", f[14])
	}
	if f[13] != 0 {
		t.Errorf("bar bit = %v, want 0", f[13])
	}
}

func TestExtractFeatures_Numeric(t *testing.T) {
	r := Restaurant{
		Rating:        4.5,
		PriceForTwo:   1500,
		Distance:      4,
		PopularDishes: "Butter Chicken, Naan",
		ImageURLs:     []string{"a", "b", "c", "d", "e", "f", "g"},
	}
	f := ExtractFeatures(r)

	if f[15] != 4.5 {
		t.Errorf("rating raw = %v, want 4.5", f[15])
	}
	if got, want := f[16], (4.5-2.5)/2.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("rating centered = %v, want %v", got, want)
	}
	if got, want := f[17], math.Log(1500)/math.Log(10000); math.Abs(got-want) > 1e-12 {
		t.Errorf("price log = %v, want %v", got, want)
	}
	if f[18] != 1 {
		t.Errorf("price bucket = %v, want 1", f[18])
	}
	if got, want := f[19], math.Log(5)/math.Log(50); math.Abs(got-want) > 1e-12 {
		t.Errorf("distance log = %v, want %v", got, want)
	}
	if f[20] != 1 {
		t.Errorf("dishes bit = %v, want 1", f[20])
	}
	if f[21] != 1 {
		t.Errorf("photo count = %v, want 1 (capped at 5)", f[21])
	}
}

func TestExtractFeatures_Defaults(t *testing.T) {
	f := ExtractFeatures(Restaurant{})

	// Missing price uses the neutral default for the log slot but the raw
	// zero for the bucket slot.
	if got, want := f[17], math.Log(500)/math.Log(10000); math.Abs(got-want) > 1e-12 {
		t.Errorf("price log default = %v, want %v", got, want)
	}
	if f[18] != 0 {
		t.Errorf("price bucket = %v, want 0 for missing price", f[18])
	}
	if f[19] != 0 {
		t.Errorf("distance log = %v, want 0 for zero distance", f[19])
	}
	if f[20] != 0 || f[21] != 0 {
		t.Errorf("dishes/photos = %v/%v, want 0/0", f[20], f[21])
	}
}

func TestExtractFeatures_PriceBucketCap(t *testing.T) {
	f := ExtractFeatures(Restaurant{PriceForTwo: 50000})
	if f[18] != 10 {
		t.Errorf("price bucket = %v, want cap 10", f[18])
	}
}

func TestExtractFeatures_LowPriceFloor(t *testing.T) {
	f := ExtractFeatures(Restaurant{PriceForTwo: 50})
	if got, want := f[17], math.Log(100)/math.Log(10000); math.Abs(got-want) > 1e-12 {
		t.Errorf("price log = %v, want floored %v", got, want)
	}
}

func TestExtractFeatures_Deterministic(t *testing.T) {
	r := Restaurant{
		Cuisine:      "Italian",
		Rating:       4.2,
		PriceForTwo:  1200,
		Distance:     3.3,
		AmbianceTags: []string{"Casual Dining"},
	}
	a := ExtractFeatures(r)
	b := ExtractFeatures(r)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("feature %d differs across calls: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestDotProduct_LengthMismatch(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5}
	if got := dotProduct(a, b); got != 14 {
		t.Errorf("dotProduct = %v, want 14", got)
	}
	if got := dotProduct(b, a); got != 14 {
		t.Errorf("dotProduct reversed = %v, want 14", got)
	}
}
