package session

import (
	"math"
	"time"
)

// minMinutes guards the WPM division for the instant before any time has
// elapsed.
const minMinutes = 1e-6

// wordsPerMinute uses the standard five-characters-per-word convention.
func wordsPerMinute(chars int, elapsed time.Duration) int {
	minutes := math.Max(elapsed.Minutes(), minMinutes)
	return int(math.Round(float64(chars) / 5.0 / minutes))
}

// accuracyPercent weighs errors against typed characters. Errors beyond
// the typed count keep pulling the score down, so heavy retrying in hard
// mode is reflected.
func accuracyPercent(chars, errors int) int {
	total := chars + errors
	if total < 1 {
		total = 1
	}
	return int(math.Round(100 * float64(chars-errors) / float64(total)))
}
