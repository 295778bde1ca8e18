package api

import (
	"net/http"
	"time"

	"github.com/habitloop-io/habitloop/internal/models"
	"github.com/habitloop-io/habitloop/internal/stats"
)

// WeeklyStatsHandler sums check-in counts per habit for the current week
// (Monday through Sunday, inclusive). Habits without check-ins in the
// window appear with a total of zero, not as omitted entries.
func (api *Api) WeeklyStatsHandler(w http.ResponseWriter, r *http.Request) {
	start, end := stats.CurrentWeek(time.Now())
	api.summaryForWindow(w, r, start, end)
}

// MonthlyStatsHandler sums check-in counts per habit for the current
// calendar month.
func (api *Api) MonthlyStatsHandler(w http.ResponseWriter, r *http.Request) {
	first, last := stats.MonthRange(models.Today())
	api.summaryForWindow(w, r, first, last)
}

func (api *Api) summaryForWindow(w http.ResponseWriter, r *http.Request, from, to models.Date) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	habits, err := api.Store.ListHabits(userID)
	if err != nil {
		storeError(w, err)
		return
	}

	summary := []models.HabitTotal{}
	for _, habit := range habits {
		total, err := api.Store.TotalCheckInsBetween(habit.ID, from, to)
		if err != nil {
			storeError(w, err)
			return
		}
		summary = append(summary, models.HabitTotal{
			HabitID:       habit.ID,
			Name:          habit.Name,
			TotalCheckIns: total,
		})
	}

	writeJSON(w, http.StatusOK, summary)
}
