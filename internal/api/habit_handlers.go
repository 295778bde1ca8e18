package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/habitloop-io/habitloop/internal/auth"
	"github.com/habitloop-io/habitloop/internal/models"
	"github.com/habitloop-io/habitloop/internal/stats"
)

type habitRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TargetPerDay int    `json:"target_per_day"`
}

type checkInRequest struct {
	Date  *models.Date `json:"date"`
	Count int          `json:"count"`
}

// callerID extracts the authenticated user, replying 401 when the auth
// middleware did not run.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
	return userID, ok
}

func (api *Api) CreateHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetPerDay == 0 {
		req.TargetPerDay = 1
	}

	habit, err := api.Store.CreateHabit(userID, req.Name, req.Description, req.TargetPerDay)
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, habit)
}

func (api *Api) ListHabitsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	habits, err := api.Store.ListHabits(userID)
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, habits)
}

func (api *Api) GetHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	habit, err := api.Store.GetHabit(chi.URLParam(r, "habitID"), userID)
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, habit)
}

func (api *Api) UpdateHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetPerDay == 0 {
		req.TargetPerDay = 1
	}

	habit, err := api.Store.UpdateHabit(chi.URLParam(r, "habitID"), userID, req.Name, req.Description, req.TargetPerDay)
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, habit)
}

func (api *Api) DeleteHabitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := api.Store.DeleteHabit(chi.URLParam(r, "habitID"), userID); err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (api *Api) CheckInHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	// Ownership is resolved before any state changes.
	habit, err := api.Store.GetHabit(chi.URLParam(r, "habitID"), userID)
	if err != nil {
		storeError(w, err)
		return
	}

	// An empty body means "one check-in for today".
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	date := models.Today()
	if req.Date != nil {
		date = *req.Date
	}
	if req.Count == 0 {
		req.Count = 1
	}

	checkIn, err := api.Store.RecordCheckIn(habit.ID, date, req.Count)
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, checkIn)
}

func (api *Api) ListCheckInsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	habit, err := api.Store.GetHabit(chi.URLParam(r, "habitID"), userID)
	if err != nil {
		storeError(w, err)
		return
	}

	checkins, err := api.Store.ListCheckIns(habit.ID)
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, checkins)
}

func (api *Api) StreakHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	habit, err := api.Store.GetHabit(chi.URLParam(r, "habitID"), userID)
	if err != nil {
		storeError(w, err)
		return
	}

	dates, err := api.Store.CheckInDates(habit.ID)
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"streak": stats.Streak(dates, models.Today())})
}
