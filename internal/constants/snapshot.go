package constants

import "math"

// Snapshot is a point-in-time copy of the constants store handed to the
// formula engine. It is an explicit value passed around, never process-wide
// state; call Service.Snapshot again to pick up edits.
type Snapshot map[string]float64

// Float returns the value for key, or fallback when the key is unset.
func (s Snapshot) Float(key string, fallback float64) float64 {
	if value, ok := s[key]; ok {
		return value
	}
	return fallback
}

// Int returns the value for key rounded to the nearest integer, or fallback.
func (s Snapshot) Int(key string, fallback int) int {
	if value, ok := s[key]; ok {
		return int(math.Round(value))
	}
	return fallback
}
