package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habitloop-io/habitloop/internal/models"
)

// CreateHabit creates a new habit for the given owner. Constraints are
// enforced here, not only at the HTTP boundary: name must be non-empty and
// targetPerDay must be at least 1.
func (s *Store) CreateHabit(ownerID, name, description string, targetPerDay int) (*models.Habit, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: habit name must not be empty", ErrValidation)
	}
	if targetPerDay < 1 {
		return nil, fmt.Errorf("%w: target per day must be at least 1", ErrValidation)
	}

	habit := &models.Habit{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Name:         name,
		Description:  description,
		TargetPerDay: targetPerDay,
		CreatedAt:    time.Now().UTC(),
	}

	var query string
	if s.dialect == "postgres" {
		query = "INSERT INTO habits (id, owner_id, name, description, target_per_day, created_at) VALUES ($1, $2, $3, $4, $5, $6)"
	} else {
		query = "INSERT INTO habits (id, owner_id, name, description, target_per_day, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	}

	if _, err := s.db.Exec(query, habit.ID, habit.OwnerID, habit.Name, habit.Description, habit.TargetPerDay, habit.CreatedAt); err != nil {
		return nil, err
	}

	return habit, nil
}

// ListHabits returns all habits owned by ownerID in creation order.
func (s *Store) ListHabits(ownerID string) ([]*models.Habit, error) {
	var query string
	if s.dialect == "postgres" {
		query = "SELECT id, owner_id, name, description, target_per_day, created_at FROM habits WHERE owner_id = $1 ORDER BY created_at"
	} else {
		query = "SELECT id, owner_id, name, description, target_per_day, created_at FROM habits WHERE owner_id = ? ORDER BY created_at"
	}

	rows, err := s.db.Query(query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []*models.Habit{}
	for rows.Next() {
		habit := &models.Habit{}
		if err := rows.Scan(&habit.ID, &habit.OwnerID, &habit.Name, &habit.Description, &habit.TargetPerDay, &habit.CreatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

// GetHabit retrieves a habit by ID scoped to its owner. A habit owned by a
// different user is reported as ErrNotFound, never as a permission error.
func (s *Store) GetHabit(habitID, ownerID string) (*models.Habit, error) {
	var query string
	if s.dialect == "postgres" {
		query = "SELECT id, owner_id, name, description, target_per_day, created_at FROM habits WHERE id = $1 AND owner_id = $2"
	} else {
		query = "SELECT id, owner_id, name, description, target_per_day, created_at FROM habits WHERE id = ? AND owner_id = ?"
	}

	habit := &models.Habit{}
	err := s.db.QueryRow(query, habitID, ownerID).Scan(&habit.ID, &habit.OwnerID, &habit.Name, &habit.Description, &habit.TargetPerDay, &habit.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return habit, nil
}

// UpdateHabit updates a habit's mutable fields, scoped to its owner.
func (s *Store) UpdateHabit(habitID, ownerID, name, description string, targetPerDay int) (*models.Habit, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: habit name must not be empty", ErrValidation)
	}
	if targetPerDay < 1 {
		return nil, fmt.Errorf("%w: target per day must be at least 1", ErrValidation)
	}

	var query string
	if s.dialect == "postgres" {
		query = "UPDATE habits SET name = $1, description = $2, target_per_day = $3 WHERE id = $4 AND owner_id = $5"
	} else {
		query = "UPDATE habits SET name = ?, description = ?, target_per_day = ? WHERE id = ? AND owner_id = ?"
	}

	result, err := s.db.Exec(query, name, description, targetPerDay, habitID, ownerID)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	return s.GetHabit(habitID, ownerID)
}

// DeleteHabit deletes a habit and all of its check-ins in one transaction.
func (s *Store) DeleteHabit(habitID, ownerID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existsQuery, deleteCheckins, deleteHabit string
	if s.dialect == "postgres" {
		existsQuery = "SELECT id FROM habits WHERE id = $1 AND owner_id = $2"
		deleteCheckins = "DELETE FROM checkins WHERE habit_id = $1"
		deleteHabit = "DELETE FROM habits WHERE id = $1"
	} else {
		existsQuery = "SELECT id FROM habits WHERE id = ? AND owner_id = ?"
		deleteCheckins = "DELETE FROM checkins WHERE habit_id = ?"
		deleteHabit = "DELETE FROM habits WHERE id = ?"
	}

	var id string
	err = tx.QueryRow(existsQuery, habitID, ownerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(deleteCheckins, habitID); err != nil {
		return err
	}
	if _, err := tx.Exec(deleteHabit, habitID); err != nil {
		return err
	}

	return tx.Commit()
}
