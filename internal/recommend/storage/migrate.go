// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package storage

import (
	"math"

	"github.com/goccy/go-json"

	"github.com/swipeeats/swipeeats/internal/recommend"
)

// legacyTokenWeights maps known free-text tokens of the pre-versioned
// preference schema onto weight indices of the current feature layout.
// The migration is lossy and explicitly approximate: matched tokens seed the
// like weights at a fixed low-confidence value.
var legacyTokenWeights = map[string]int{
	"italian":     2,
	"chinese":     1,
	"north":       0,
	"indian":      0,
	"continental": 3,
	"romantic":    9,
	"casual":      10,
	"bar":         13,
}

// legacyMigrationWeight is the fixed weight assigned to a matched legacy
// token.
const legacyMigrationWeight = 0.5

// legacyModel is the duck-typed shape of the old token-frequency schema.
// Every field is optional; absent or malformed parts are simply skipped.
type legacyModel struct {
	SwipeCount *float64 `json:"swipeCount"`
	LikeVector *struct {
		TextFeatures map[string]float64 `json:"textFeatures"`
	} `json:"likeVector"`
}

// migrateLegacy maps a legacy preference blob onto a fresh current-schema
// model. It never fails: anything unrecognizable is ignored and a fresh
// model is returned.
func migrateLegacy(data []byte) *recommend.UserModel {
	m := recommend.NewUserModel()

	var old legacyModel
	if err := json.Unmarshal(data, &old); err != nil {
		return m
	}

	// Split the old undifferentiated swipe count evenly; likes get the floor.
	if old.SwipeCount != nil && *old.SwipeCount > 0 {
		count := *old.SwipeCount
		m.TotalLikes = int(math.Floor(count / 2))
		m.TotalDislikes = int(math.Ceil(count / 2))
	}

	if old.LikeVector != nil {
		for token, idx := range legacyTokenWeights {
			if old.LikeVector.TextFeatures[token] > 0.1 {
				m.LikeWeights[idx] = legacyMigrationWeight
			}
		}
	}

	return m
}
