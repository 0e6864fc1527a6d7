// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package geo provides distance computation and formatting for restaurant
// cards.
package geo

import (
	"fmt"
	"math"
	"net/url"
)

// MissingDistance is the sentinel distance in km returned when either
// coordinate pair is absent. It sits far beyond any plausible in-city
// distance so missing locations sort last.
const MissingDistance = 999

// Location is a point on the earth in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsDefault bool    `json:"is_default"`
}

// DefaultLocation is the Gurgaon city center, the fallback anchor matching
// the bundled restaurant dataset.
var DefaultLocation = Location{
	Latitude:  28.4595,
	Longitude: 77.0266,
	IsDefault: true,
}

// Distance calculates the great-circle distance between two points in km
// using the Haversine formula. A zero coordinate is treated as missing and
// yields MissingDistance.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == 0 || lon1 == 0 || lat2 == 0 || lon2 == 0 {
		return MissingDistance
	}

	const earthRadiusKm = 6371.0

	lat1Rad := toRad(lat1)
	lat2Rad := toRad(lat2)
	deltaLat := toRad(lat2 - lat1)
	deltaLon := toRad(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// FormatDistance renders a distance in km for display: meters below 1 km,
// one decimal of km otherwise, and an em dash for missing distances.
func FormatDistance(km float64) string {
	if km >= MissingDistance {
		return "—"
	}
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

// DirectionsURL returns a Google Maps directions link from the user's
// location to the destination.
func DirectionsURL(userLat, userLon, destLat, destLon float64) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&origin=%g,%g&destination=%g,%g",
		userLat, userLon, destLat, destLon,
	)
}

// AppleDirectionsURL returns an Apple Maps directions link, used for iOS
// clients.
func AppleDirectionsURL(userLat, userLon, destLat, destLon float64, destName string) string {
	return fmt.Sprintf(
		"maps://maps.apple.com/?saddr=%g,%g&daddr=%g,%g&q=%s",
		userLat, userLon, destLat, destLon, url.QueryEscape(destName),
	)
}
