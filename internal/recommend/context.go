// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package recommend

import "time"

// TimeOfDayForHour buckets a wall-clock hour (0-23).
// Boundaries are half-open: [6,11) morning, [11,16) lunch, [16,21) evening,
// everything else night (21 through 5, wrapping past midnight).
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 11:
		return TimeMorning
	case hour >= 11 && hour < 16:
		return TimeLunch
	case hour >= 16 && hour < 21:
		return TimeEvening
	default:
		return TimeNight
	}
}

// ContextAt derives a swipe context from the given instant and session
// counters. Day-of-week follows time.Weekday (Sunday=0). No timezone
// normalization is applied; the instant's own location decides the bucket.
func ContextAt(now time.Time, sprintNumber, swipeIndex int) SwipeContext {
	return SwipeContext{
		TimeOfDay:          TimeOfDayForHour(now.Hour()),
		DayOfWeek:          int(now.Weekday()),
		SprintNumber:       sprintNumber,
		SwipeIndexInSprint: swipeIndex,
	}
}

// CurrentContext derives a swipe context from the local wall clock.
func CurrentContext(sprintNumber, swipeIndex int) SwipeContext {
	return ContextAt(time.Now(), sprintNumber, swipeIndex)
}
