// Package model defines the hydration data types shared across packages.
package model

import "time"

// DefaultGoalTarget is the daily target in ml used when no goal is stored.
const DefaultGoalTarget = 2000.0

// GoalPresets are the daily targets offered as one-tap choices.
var GoalPresets = []float64{1500, 2000, 2500, 3000}

// AmountPresets are the quick-add drink sizes in ml.
var AmountPresets = []float64{100, 200, 250, 300, 500, 750, 1000}

// Entry is one recorded drink.
type Entry struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"` // ml
	Timestamp time.Time `json:"timestamp"`
}

// Goal is the configured daily target. It applies to every day, past or future.
type Goal struct {
	Target float64 `json:"target"` // ml
}

// DefaultGoal returns the goal used for a fresh or reset store.
func DefaultGoal() Goal {
	return Goal{Target: DefaultGoalTarget}
}

// DaySummary is the intake total for one local calendar day.
type DaySummary struct {
	Day   time.Time `json:"day"` // midnight, local time
	Total float64   `json:"total"`
	Count int       `json:"count"`
}

// IsPreset reports whether v is one of presets.
func IsPreset(presets []float64, v float64) bool {
	for _, p := range presets {
		if p == v {
			return true
		}
	}
	return false
}
