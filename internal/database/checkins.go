package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/habitloop-io/habitloop/internal/models"
)

// RecordCheckIn records count check-ins for a habit on a calendar date.
// There is at most one row per (habit, date): the first check-in inserts
// the row and later ones accumulate into its count. The UNIQUE constraint
// plus a single upsert statement keeps the accumulation correct under
// concurrent callers; two racing check-ins can never both insert.
func (s *Store) RecordCheckIn(habitID string, date models.Date, count int) (*models.CheckIn, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1", ErrValidation)
	}

	var query string
	if s.dialect == "postgres" {
		query = `INSERT INTO checkins (id, habit_id, checkin_date, count) VALUES ($1, $2, $3, $4)
			ON CONFLICT (habit_id, checkin_date) DO UPDATE SET count = checkins.count + EXCLUDED.count`
	} else {
		query = `INSERT INTO checkins (id, habit_id, checkin_date, count) VALUES (?, ?, ?, ?)
			ON CONFLICT (habit_id, checkin_date) DO UPDATE SET count = count + excluded.count`
	}

	if _, err := s.db.Exec(query, uuid.NewString(), habitID, date, count); err != nil {
		return nil, err
	}

	return s.getCheckIn(habitID, date)
}

// getCheckIn retrieves the check-in row for a habit on a date.
func (s *Store) getCheckIn(habitID string, date models.Date) (*models.CheckIn, error) {
	var query string
	if s.dialect == "postgres" {
		query = "SELECT id, habit_id, checkin_date, count FROM checkins WHERE habit_id = $1 AND checkin_date = $2"
	} else {
		query = "SELECT id, habit_id, checkin_date, count FROM checkins WHERE habit_id = ? AND checkin_date = ?"
	}

	ci := &models.CheckIn{}
	err := s.db.QueryRow(query, habitID, date).Scan(&ci.ID, &ci.HabitID, &ci.Date, &ci.Count)
	if err != nil {
		return nil, err
	}
	return ci, nil
}

// ListCheckIns returns all check-ins for a habit ordered by date.
func (s *Store) ListCheckIns(habitID string) ([]*models.CheckIn, error) {
	var query string
	if s.dialect == "postgres" {
		query = "SELECT id, habit_id, checkin_date, count FROM checkins WHERE habit_id = $1 ORDER BY checkin_date"
	} else {
		query = "SELECT id, habit_id, checkin_date, count FROM checkins WHERE habit_id = ? ORDER BY checkin_date"
	}

	rows, err := s.db.Query(query, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkins := []*models.CheckIn{}
	for rows.Next() {
		ci := &models.CheckIn{}
		if err := rows.Scan(&ci.ID, &ci.HabitID, &ci.Date, &ci.Count); err != nil {
			return nil, err
		}
		checkins = append(checkins, ci)
	}
	return checkins, rows.Err()
}

// CheckInDates returns the distinct dates with at least one check-in for a
// habit, ordered ascending.
func (s *Store) CheckInDates(habitID string) ([]models.Date, error) {
	var query string
	if s.dialect == "postgres" {
		query = "SELECT checkin_date FROM checkins WHERE habit_id = $1 ORDER BY checkin_date"
	} else {
		query = "SELECT checkin_date FROM checkins WHERE habit_id = ? ORDER BY checkin_date"
	}

	rows, err := s.db.Query(query, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []models.Date{}
	for rows.Next() {
		var d models.Date
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// TotalCheckInsBetween sums check-in counts for a habit over the inclusive
// [from, to] date window.
func (s *Store) TotalCheckInsBetween(habitID string, from, to models.Date) (int, error) {
	var query string
	if s.dialect == "postgres" {
		query = "SELECT COALESCE(SUM(count), 0) FROM checkins WHERE habit_id = $1 AND checkin_date >= $2 AND checkin_date <= $3"
	} else {
		query = "SELECT COALESCE(SUM(count), 0) FROM checkins WHERE habit_id = ? AND checkin_date >= ? AND checkin_date <= ?"
	}

	var total int
	if err := s.db.QueryRow(query, habitID, from, to).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
