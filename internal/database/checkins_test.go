package database

import (
	"sync"
	"testing"

	"github.com/habitloop-io/habitloop/internal/models"
	"github.com/stretchr/testify/assert"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func (s *StoreTestSuite) newHabit(email string) *models.Habit {
	user, err := s.store.CreateUser(email, "hash")
	s.Require().NoError(err)
	habit, err := s.store.CreateHabit(user.ID, "Exercise", "", 1)
	s.Require().NoError(err)
	return habit
}

func (s *StoreTestSuite) TestRecordCheckInAccumulates() {
	habit := s.newHabit("accumulate@example.com")
	date := mustDate(s.T(), "2024-03-10")

	first, err := s.store.RecordCheckIn(habit.ID, date, 1)
	s.Require().NoError(err)
	assert.Equal(s.T(), 1, first.Count)
	assert.Equal(s.T(), date.String(), first.Date.String())

	// Repeated check-ins for the same date accumulate into one row.
	for i := 0; i < 4; i++ {
		_, err := s.store.RecordCheckIn(habit.ID, date, 1)
		s.Require().NoError(err)
	}

	checkins, err := s.store.ListCheckIns(habit.ID)
	s.Require().NoError(err)
	s.Require().Len(checkins, 1)
	assert.Equal(s.T(), 5, checkins[0].Count)
	assert.Equal(s.T(), first.ID, checkins[0].ID)
}

func (s *StoreTestSuite) TestRecordCheckInDistinctDates() {
	habit := s.newHabit("distinct@example.com")

	_, err := s.store.RecordCheckIn(habit.ID, mustDate(s.T(), "2024-03-10"), 2)
	s.Require().NoError(err)
	_, err = s.store.RecordCheckIn(habit.ID, mustDate(s.T(), "2024-03-11"), 3)
	s.Require().NoError(err)

	checkins, err := s.store.ListCheckIns(habit.ID)
	s.Require().NoError(err)
	s.Require().Len(checkins, 2)
	assert.Equal(s.T(), "2024-03-10", checkins[0].Date.String())
	assert.Equal(s.T(), 2, checkins[0].Count)
	assert.Equal(s.T(), "2024-03-11", checkins[1].Date.String())
	assert.Equal(s.T(), 3, checkins[1].Count)
}

func (s *StoreTestSuite) TestRecordCheckInRejectsBadCount() {
	habit := s.newHabit("badcount@example.com")
	date := mustDate(s.T(), "2024-03-10")

	_, err := s.store.RecordCheckIn(habit.ID, date, 0)
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.store.RecordCheckIn(habit.ID, date, -2)
	assert.ErrorIs(s.T(), err, ErrValidation)

	checkins, err := s.store.ListCheckIns(habit.ID)
	s.Require().NoError(err)
	assert.Empty(s.T(), checkins)
}

func (s *StoreTestSuite) TestConcurrentCheckInsLoseNoUpdates() {
	habit := s.newHabit("concurrent@example.com")
	date := mustDate(s.T(), "2024-03-10")

	const callers = 25
	var wg sync.WaitGroup
	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.RecordCheckIn(habit.ID, date, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}

	checkins, err := s.store.ListCheckIns(habit.ID)
	s.Require().NoError(err)
	s.Require().Len(checkins, 1, "concurrent check-ins must not create duplicate rows")
	assert.Equal(s.T(), callers, checkins[0].Count, "no increment may be lost")
}

func (s *StoreTestSuite) TestCheckInDates() {
	habit := s.newHabit("dates@example.com")

	for _, day := range []string{"2024-03-12", "2024-03-10", "2024-03-11"} {
		_, err := s.store.RecordCheckIn(habit.ID, mustDate(s.T(), day), 1)
		s.Require().NoError(err)
	}
	// A second check-in on an existing date must not add a new entry.
	_, err := s.store.RecordCheckIn(habit.ID, mustDate(s.T(), "2024-03-11"), 1)
	s.Require().NoError(err)

	dates, err := s.store.CheckInDates(habit.ID)
	s.Require().NoError(err)
	s.Require().Len(dates, 3)
	assert.Equal(s.T(), "2024-03-10", dates[0].String())
	assert.Equal(s.T(), "2024-03-11", dates[1].String())
	assert.Equal(s.T(), "2024-03-12", dates[2].String())
}

func (s *StoreTestSuite) TestTotalCheckInsBetween() {
	habit := s.newHabit("totals@example.com")

	_, err := s.store.RecordCheckIn(habit.ID, mustDate(s.T(), "2024-03-04"), 2) // Monday
	s.Require().NoError(err)
	_, err = s.store.RecordCheckIn(habit.ID, mustDate(s.T(), "2024-03-10"), 3) // Sunday
	s.Require().NoError(err)
	_, err = s.store.RecordCheckIn(habit.ID, mustDate(s.T(), "2024-03-11"), 7) // Next Monday
	s.Require().NoError(err)

	// Window boundaries are inclusive on both ends.
	total, err := s.store.TotalCheckInsBetween(habit.ID, mustDate(s.T(), "2024-03-04"), mustDate(s.T(), "2024-03-10"))
	s.Require().NoError(err)
	assert.Equal(s.T(), 5, total)

	// Empty windows sum to zero, not an error.
	total, err = s.store.TotalCheckInsBetween(habit.ID, mustDate(s.T(), "2023-01-01"), mustDate(s.T(), "2023-01-07"))
	s.Require().NoError(err)
	assert.Equal(s.T(), 0, total)
}
