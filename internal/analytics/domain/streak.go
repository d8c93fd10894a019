package domain

import "time"

// StreakState tracks a user's consecutive-productive-day streak. It lives on
// the user record and is mutated only through the transitions below.
type StreakState struct {
	Current          int
	Longest          int
	LastActivityDate *time.Time
}

// RecordProductiveDay applies the streak transition for a productive day.
// Same-day re-evaluation is a no-op, yesterday extends the streak, anything
// older restarts it at 1. Days already behind the recorded activity (a
// historical recompute) leave the state untouched.
func (s *StreakState) RecordProductiveDay(day time.Time) {
	day = NormalizeDate(day)

	if s.LastActivityDate == nil {
		s.Current = 1
		if s.Longest < 1 {
			s.Longest = 1
		}
		s.LastActivityDate = &day
		return
	}

	last := NormalizeDate(*s.LastActivityDate)
	switch {
	case last.Equal(day):
		// Idempotent for same-day re-evaluation
	case last.Equal(day.AddDate(0, 0, -1)):
		s.Current++
		if s.Current > s.Longest {
			s.Longest = s.Current
		}
		s.LastActivityDate = &day
	case last.Before(day):
		s.Current = 1
		if s.Longest < 1 {
			s.Longest = 1
		}
		s.LastActivityDate = &day
	default:
		// day predates the recorded activity; nothing to update
	}
}

// Sweep force-resets a stale streak. A streak is stale when the last
// activity is before yesterday relative to today. Returns true when state
// changed. Longest is never touched.
func (s *StreakState) Sweep(today time.Time) bool {
	if s.Current == 0 || s.LastActivityDate == nil {
		return false
	}

	yesterday := NormalizeDate(today).AddDate(0, 0, -1)
	if NormalizeDate(*s.LastActivityDate).Before(yesterday) {
		s.Current = 0
		return true
	}
	return false
}
