package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a user account in the database
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never exposed in JSON
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ValidatePassword checks if the provided password matches the user's password
func (u *User) ValidatePassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Habit represents a recurring habit owned by a single user
type Habit struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"owner_id" db:"owner_id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description,omitempty" db:"description"`
	TargetPerDay int       `json:"target_per_day" db:"target_per_day"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CheckIn records how many times a habit was performed on a calendar day.
// There is at most one row per (habit, date); repeated check-ins for the
// same date accumulate into the count.
type CheckIn struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	Date    Date   `json:"date" db:"checkin_date"`
	Count   int    `json:"count" db:"count"`
}

// HabitTotal is a per-habit check-in total over an aggregation window
type HabitTotal struct {
	HabitID       string `json:"habit_id"`
	Name          string `json:"name"`
	TotalCheckIns int    `json:"total_checkins"`
}
