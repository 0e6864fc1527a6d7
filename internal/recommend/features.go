// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package recommend

import (
	"math"
	"strings"
)

// FeatureDim is the fixed length of every feature vector. The index layout
// below is an invariant the learner, scorer and reranker all depend on.
const FeatureDim = 22

// Feature vector layout.
const (
	// CuisineStart..CuisineStart+CuisineCount-1 are one-hot cuisine bits.
	// Exactly one of them is set: index 8 ("other") is forced when none of
	// the named cuisines matched.
	CuisineStart = 0
	CuisineCount = 9

	// AmbianceStart..AmbianceStart+AmbianceCount-1 are ambiance bits.
	// Unlike the cuisine block, several may legitimately be set at once.
	AmbianceStart = 9
	AmbianceCount = 6

	// NumericStart begins the continuous feature block:
	// 15 rating raw, 16 rating centered, 17 price log, 18 price bucket,
	// 19 distance log, 20 has popular dishes, 21 photo count.
	NumericStart = 15
)

// Named cuisine indices, used by the legacy-model migration.
const (
	cuisineNorthIndian = 0
	cuisineChinese     = 1
	cuisineItalian     = 2
	cuisineContinental = 3
	cuisineStreetFood  = 4
	cuisineSouthIndian = 5
	cuisinePanAsian    = 6
	cuisineDessert     = 7
	cuisineOther       = 8
)

// Named ambiance indices.
const (
	ambianceRomantic  = 9
	ambianceCasual    = 10
	ambianceFamily    = 11
	ambianceQuickBite = 12
	ambianceBar       = 13
	ambianceRooftop   = 14
)

// cuisineVocabulary maps each named cuisine index to the substrings that
// activate it. Matching is case-insensitive against the free-text cuisine
// field.
var cuisineVocabulary = [8][]string{
	cuisineNorthIndian: {"north indian", "mughlai"},
	cuisineChinese:     {"chinese"},
	cuisineItalian:     {"italian", "pizza", "pasta"},
	cuisineContinental: {"continental", "european"},
	cuisineStreetFood:  {"street food", "chaat"},
	cuisineSouthIndian: {"south indian", "dosa"},
	cuisinePanAsian:    {"asian", "thai", "japanese", "korean"},
	cuisineDessert:     {"dessert", "bakery", "cafe"},
}

// ambianceVocabulary maps each ambiance index to its tag substrings.
var ambianceVocabulary = map[int][]string{
	ambianceRomantic:  {"romantic"},
	ambianceCasual:    {"casual", "dining"},
	ambianceFamily:    {"family"},
	ambianceQuickBite: {"quick", "bite", "fast"},
	ambianceBar:       {"bar", "pub", "lounge"},
	ambianceRooftop:   {"rooftop", "terrace"},
}

// ExtractFeatures maps a restaurant to its fixed-length feature vector.
// It is deterministic and total: absent or malformed fields degrade to the
// slot's zero/default value, never an error.
func ExtractFeatures(r Restaurant) []float64 {
	features := make([]float64, FeatureDim)

	cuisine := strings.ToLower(r.Cuisine)
	for idx, words := range cuisineVocabulary {
		for _, w := range words {
			if strings.Contains(cuisine, w) {
				features[idx] = 1
				break
			}
		}
	}

	// "Other" fallback: exactly one cuisine bit must always be set.
	matched := false
	for i := CuisineStart; i < cuisineOther; i++ {
		if features[i] != 0 {
			matched = true
			break
		}
	}
	if !matched {
		features[cuisineOther] = 1
	}

	tags := make([]string, 0, len(r.AmbianceTags))
	for _, t := range r.AmbianceTags {
		tags = append(tags, strings.ToLower(t))
	}
	for idx, words := range ambianceVocabulary {
		if anyTagContains(tags, words) {
			features[idx] = 1
		}
	}

	price := r.PriceForTwo
	if price <= 0 {
		price = 500 // neutral moderate price
	}

	features[15] = r.Rating
	features[16] = (r.Rating - 2.5) / 2.5
	features[17] = math.Log(math.Max(price, 100)) / math.Log(10000)
	features[18] = math.Min(math.Floor(r.PriceForTwo/1000), 10)
	features[19] = math.Log(1+math.Max(r.Distance, 0)) / math.Log(50)
	if len(r.PopularDishes) > 0 {
		features[20] = 1
	}
	features[21] = math.Min(float64(len(r.ImageURLs)), 5) / 5

	return features
}

// anyTagContains reports whether any tag contains any of the given substrings.
func anyTagContains(tags, words []string) bool {
	for _, tag := range tags {
		for _, w := range words {
			if strings.Contains(tag, w) {
				return true
			}
		}
	}
	return false
}

// dotProduct computes the dot product over the shorter of the two vectors.
func dotProduct(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
