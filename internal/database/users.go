package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/habitloop-io/habitloop/internal/models"
)

// CreateUser creates a new user with the given (already hashed) password.
// A duplicate email surfaces as ErrEmailTaken.
func (s *Store) CreateUser(email, passwordHash string) (*models.User, error) {
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC(),
	}

	var query string
	if s.dialect == "postgres" {
		query = "INSERT INTO users (id, email, password, created_at) VALUES ($1, $2, $3, $4)"
	} else {
		query = "INSERT INTO users (id, email, password, created_at) VALUES (?, ?, ?, ?)"
	}

	if _, err := s.db.Exec(query, user.ID, user.Email, user.Password, user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email. Emails are matched exactly as
// stored.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var query string
	if s.dialect == "postgres" {
		query = "SELECT id, email, password, created_at FROM users WHERE email = $1"
	} else {
		query = "SELECT id, email, password, created_at FROM users WHERE email = ?"
	}

	user := &models.User{}
	err := s.db.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(id string) (*models.User, error) {
	var query string
	if s.dialect == "postgres" {
		query = "SELECT id, email, password, created_at FROM users WHERE id = $1"
	} else {
		query = "SELECT id, email, password, created_at FROM users WHERE id = ?"
	}

	user := &models.User{}
	err := s.db.QueryRow(query, id).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
