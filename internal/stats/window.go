package stats

import (
	"time"

	"github.com/habitloop-io/habitloop/internal/models"
)

// WeekStart returns the most recent Monday on or before d.
func WeekStart(d models.Date) models.Date {
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// WeekEnd returns the Sunday closing the week that starts at weekStart.
func WeekEnd(weekStart models.Date) models.Date {
	return weekStart.AddDays(6)
}

// MonthRange returns the first and last day of the calendar month
// containing d.
func MonthRange(d models.Date) (models.Date, models.Date) {
	first := models.NewDate(d.Year(), d.Month(), 1)
	// Day zero of the next month normalizes to this month's last day.
	last := models.NewDate(d.Year(), d.Month()+1, 0)
	return first, last
}

// CurrentWeek returns the inclusive window for the week containing now.
func CurrentWeek(now time.Time) (models.Date, models.Date) {
	start := WeekStart(models.DateOf(now))
	return start, WeekEnd(start)
}
