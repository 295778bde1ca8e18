// Package stats computes consistency metrics over check-in date sets. All
// functions are pure: they read their inputs and touch no shared state.
package stats

import (
	"github.com/habitloop-io/habitloop/internal/models"
)

// Streak returns the number of consecutive calendar days ending at asOf
// that each have at least one check-in. The streak must be unbroken and
// currently active: if asOf itself has no check-in the streak is 0, no
// matter how long the run ending the day before was.
func Streak(dates []models.Date, asOf models.Date) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		seen[d.String()] = struct{}{}
	}

	streak := 0
	for cur := asOf; ; cur = cur.AddDays(-1) {
		if _, ok := seen[cur.String()]; !ok {
			break
		}
		streak++
	}
	return streak
}
