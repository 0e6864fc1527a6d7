// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package recommend

// TimeOfDay buckets the local wall-clock hour for context-aware scoring.
type TimeOfDay int

const (
	// TimeMorning covers hours [6, 11).
	TimeMorning TimeOfDay = iota
	// TimeLunch covers hours [11, 16).
	TimeLunch
	// TimeEvening covers hours [16, 21).
	TimeEvening
	// TimeNight covers hour 21 through hour 5, wrapping past midnight.
	TimeNight
)

// String returns a human-readable name for the time-of-day bucket.
func (t TimeOfDay) String() string {
	switch t {
	case TimeMorning:
		return "morning"
	case TimeLunch:
		return "lunch"
	case TimeEvening:
		return "evening"
	case TimeNight:
		return "night"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so the bucket serializes
// by name, matching the persisted model layout.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Unknown names decode to TimeNight rather than failing: persisted state
// must never be able to poison a load.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	switch string(text) {
	case "morning":
		*t = TimeMorning
	case "lunch":
		*t = TimeLunch
	case "evening":
		*t = TimeEvening
	default:
		*t = TimeNight
	}
	return nil
}

// TimeOfDayBuckets lists all buckets in a fixed order for iteration.
var TimeOfDayBuckets = [4]TimeOfDay{TimeMorning, TimeLunch, TimeEvening, TimeNight}

// Restaurant is a candidate item supplied by the dataset loader.
// Any field may be absent or malformed; the engine degrades to neutral
// defaults rather than erroring.
type Restaurant struct {
	// ID uniquely identifies the restaurant within the loaded dataset.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Cuisine is a free-text cuisine description (e.g. "North Indian, Mughlai").
	Cuisine string `json:"cuisine"`

	// Rating is the aggregate rating on a 0-5 scale.
	Rating float64 `json:"rating"`

	// PriceForTwo is the approximate cost for two people in currency units.
	PriceForTwo float64 `json:"price_for_two"`

	// Address is the street address.
	Address string `json:"address,omitempty"`

	// Area is the neighbourhood or locality name.
	Area string `json:"area,omitempty"`

	// Latitude and Longitude locate the restaurant.
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	// ImageURLs lists photo URLs.
	ImageURLs []string `json:"image_urls,omitempty"`

	// Phone is the contact number.
	Phone string `json:"phone,omitempty"`

	// PopularDishes is a comma-joined list of signature dishes.
	PopularDishes string `json:"popular_dishes,omitempty"`

	// AmbianceTags lists ambiance descriptors (e.g. "Romantic", "Rooftop").
	AmbianceTags []string `json:"ambiance_tags,omitempty"`

	// URL is the external listing page.
	URL string `json:"url,omitempty"`

	// Distance is the runtime-computed distance from the user in km.
	Distance float64 `json:"distance,omitempty"`
}

// ScoredRestaurant annotates a restaurant with its final score and the
// per-term breakdown for observability.
type ScoredRestaurant struct {
	Restaurant

	// Score is the final blended recommendation score used for ranking.
	Score float64 `json:"score"`

	// ExploitationScore is the preference-matching term (0 during cold start).
	ExploitationScore float64 `json:"exploitation_score"`

	// ExplorationBonus is the uncertainty-weighted exploration term
	// (0 during cold start).
	ExplorationBonus float64 `json:"exploration_bonus"`

	// ContextMultiplier is the time-of-day dampening factor applied to Score.
	ContextMultiplier float64 `json:"context_multiplier"`
}

// SwipeContext captures the situational state at the moment of a swipe.
type SwipeContext struct {
	// TimeOfDay is the wall-clock bucket.
	TimeOfDay TimeOfDay `json:"time_of_day"`

	// DayOfWeek is the day (0=Sunday, 6=Saturday).
	DayOfWeek int `json:"day_of_week"`

	// SprintNumber is the ordinal of the current sprint session.
	SprintNumber int `json:"sprint_number"`

	// SwipeIndexInSprint is the position within the sprint (0-19).
	SwipeIndexInSprint int `json:"swipe_index_in_sprint"`
}

// SwipeRecord is one entry of the model's bounded swipe history.
type SwipeRecord struct {
	// RestaurantID identifies the swiped restaurant.
	RestaurantID string `json:"restaurant_id"`

	// Liked is true for a right swipe.
	Liked bool `json:"liked"`

	// Timestamp is when the swipe happened, in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`

	// Features is the 22-dim feature snapshot at swipe time.
	Features []float64 `json:"features"`

	// Context is the swipe-time context snapshot.
	Context SwipeContext `json:"context"`
}

// TimePreference tallies like/dislike outcomes within one time-of-day bucket.
type TimePreference struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// Total returns the number of swipes recorded in this bucket.
func (p TimePreference) Total() int {
	return p.Likes + p.Dislikes
}
