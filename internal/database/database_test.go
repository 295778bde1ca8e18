package database

import (
	"path/filepath"
	"testing"

	"github.com/habitloop-io/habitloop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite runs the store tests against a throwaway SQLite database.
type StoreTestSuite struct {
	suite.Suite
	store *Store
}

func (s *StoreTestSuite) SetupTest() {
	cfg := &config.Config{}
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = filepath.Join(s.T().TempDir(), "test_habitloop.db")

	store, err := Open(cfg)
	s.Require().NoError(err, "store initialization should succeed")
	s.store = store
}

func (s *StoreTestSuite) TearDownTest() {
	s.store.Close()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) TestCreateAndGetUser() {
	user, err := s.store.CreateUser("test@example.com", "hashed-password")
	s.Require().NoError(err)
	s.Require().NotNil(user)
	assert.NotEmpty(s.T(), user.ID)
	assert.Equal(s.T(), "test@example.com", user.Email)

	byEmail, err := s.store.GetUserByEmail("test@example.com")
	s.Require().NoError(err)
	assert.Equal(s.T(), user.ID, byEmail.ID)

	byID, err := s.store.GetUserByID(user.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), user.Email, byID.Email)
}

func (s *StoreTestSuite) TestDuplicateEmail() {
	_, err := s.store.CreateUser("dup@example.com", "hash-one")
	s.Require().NoError(err)

	_, err = s.store.CreateUser("dup@example.com", "hash-two")
	assert.ErrorIs(s.T(), err, ErrEmailTaken)
}

func (s *StoreTestSuite) TestGetUserNotFound() {
	_, err := s.store.GetUserByEmail("nobody@example.com")
	assert.ErrorIs(s.T(), err, ErrNotFound)

	_, err = s.store.GetUserByID("no-such-id")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *StoreTestSuite) TestCreateAndListHabits() {
	user, _ := s.store.CreateUser("habits@example.com", "hash")

	first, err := s.store.CreateHabit(user.ID, "Run", "Run 5k", 1)
	s.Require().NoError(err)
	assert.Equal(s.T(), user.ID, first.OwnerID)
	assert.Equal(s.T(), 1, first.TargetPerDay)

	second, err := s.store.CreateHabit(user.ID, "Read", "", 2)
	s.Require().NoError(err)

	habits, err := s.store.ListHabits(user.ID)
	s.Require().NoError(err)
	s.Require().Len(habits, 2)
	assert.Equal(s.T(), first.ID, habits[0].ID)
	assert.Equal(s.T(), second.ID, habits[1].ID)
}

func (s *StoreTestSuite) TestCreateHabitValidation() {
	user, _ := s.store.CreateUser("validate@example.com", "hash")

	_, err := s.store.CreateHabit(user.ID, "", "", 1)
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.store.CreateHabit(user.ID, "   ", "", 1)
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.store.CreateHabit(user.ID, "Run", "", 0)
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.store.CreateHabit(user.ID, "Run", "", -3)
	assert.ErrorIs(s.T(), err, ErrValidation)

	// Nothing was persisted by the rejected calls.
	habits, err := s.store.ListHabits(user.ID)
	s.Require().NoError(err)
	assert.Empty(s.T(), habits)
}

func (s *StoreTestSuite) TestGetHabitOwnershipScoping() {
	owner, _ := s.store.CreateUser("owner@example.com", "hash")
	other, _ := s.store.CreateUser("other@example.com", "hash")

	habit, err := s.store.CreateHabit(owner.ID, "Meditate", "", 1)
	s.Require().NoError(err)

	got, err := s.store.GetHabit(habit.ID, owner.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), habit.ID, got.ID)

	// Someone else's habit is indistinguishable from a missing one.
	_, err = s.store.GetHabit(habit.ID, other.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	_, err = s.store.GetHabit("no-such-habit", owner.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *StoreTestSuite) TestUpdateHabit() {
	user, _ := s.store.CreateUser("update@example.com", "hash")
	other, _ := s.store.CreateUser("update-other@example.com", "hash")
	habit, _ := s.store.CreateHabit(user.ID, "Stretch", "morning", 1)

	updated, err := s.store.UpdateHabit(habit.ID, user.ID, "Stretch", "morning and evening", 2)
	s.Require().NoError(err)
	assert.Equal(s.T(), "morning and evening", updated.Description)
	assert.Equal(s.T(), 2, updated.TargetPerDay)

	_, err = s.store.UpdateHabit(habit.ID, other.ID, "Hijacked", "", 1)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	_, err = s.store.UpdateHabit(habit.ID, user.ID, "", "", 1)
	assert.ErrorIs(s.T(), err, ErrValidation)
}

func (s *StoreTestSuite) TestDeleteHabitCascades() {
	user, _ := s.store.CreateUser("delete@example.com", "hash")
	habit, _ := s.store.CreateHabit(user.ID, "Journal", "", 1)

	date := mustDate(s.T(), "2024-03-01")
	_, err := s.store.RecordCheckIn(habit.ID, date, 1)
	s.Require().NoError(err)

	s.Require().NoError(s.store.DeleteHabit(habit.ID, user.ID))

	_, err = s.store.GetHabit(habit.ID, user.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	checkins, err := s.store.ListCheckIns(habit.ID)
	s.Require().NoError(err)
	assert.Empty(s.T(), checkins)
}

func (s *StoreTestSuite) TestDeleteHabitOwnershipScoping() {
	owner, _ := s.store.CreateUser("del-owner@example.com", "hash")
	other, _ := s.store.CreateUser("del-other@example.com", "hash")
	habit, _ := s.store.CreateHabit(owner.ID, "Swim", "", 1)

	err := s.store.DeleteHabit(habit.ID, other.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	// The habit survives the foreign delete attempt.
	_, err = s.store.GetHabit(habit.ID, owner.ID)
	assert.NoError(s.T(), err)
}
