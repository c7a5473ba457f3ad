package domain

import "time"

// MaxFrequency is the highest frequency a user word can carry.
const MaxFrequency = 255

// Word represents a single user dictionary record.
// Locale is nil when the word applies to every locale.
type Word struct {
	ID        int64
	Word      string
	Frequency int
	Locale    *string
	AppID     int
	CreatedAt time.Time
}

// Suggestion is one prefix lookup candidate
type Suggestion struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// ClampFrequency bounds f to the valid 0..MaxFrequency range
func ClampFrequency(f int) int {
	if f < 0 {
		return 0
	}
	if f > MaxFrequency {
		return MaxFrequency
	}
	return f
}
