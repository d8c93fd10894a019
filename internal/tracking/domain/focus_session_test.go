package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSession(t *testing.T) {
	userID := uuid.New()

	t.Run("starts a work session", func(t *testing.T) {
		s, err := domain.StartSession(userID, domain.SessionTypeWork, 25)

		require.NoError(t, err)
		assert.Equal(t, domain.SessionTypeWork, s.Type())
		assert.Equal(t, 25, s.PlannedMinutes())
		assert.False(t, s.IsEnded())
		assert.False(t, s.Completed())
	})

	t.Run("rejects non-positive planned minutes", func(t *testing.T) {
		_, err := domain.StartSession(userID, domain.SessionTypeWork, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidPlannedMinutes)
	})
}

func TestFocusSession_End(t *testing.T) {
	userID := uuid.New()

	t.Run("completed session emits event with actual minutes", func(t *testing.T) {
		s, _ := domain.StartSession(userID, domain.SessionTypeWork, 25)

		err := s.End(25, true)

		require.NoError(t, err)
		assert.True(t, s.IsEnded())
		assert.True(t, s.Completed())
		assert.Equal(t, 25, s.ActualMinutes())

		events := s.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, domain.RoutingKeySessionCompleted, events[0].RoutingKey())

		completed, ok := events[0].(domain.SessionCompleted)
		require.True(t, ok)
		assert.Equal(t, "work", completed.SessionType)
		assert.Equal(t, 25, completed.Minutes)
		assert.True(t, completed.Completed)
	})

	t.Run("session without actual minutes contributes zero, not the plan", func(t *testing.T) {
		s, _ := domain.StartSession(userID, domain.SessionTypeWork, 50)

		require.NoError(t, s.End(0, true))
		assert.Equal(t, 0, s.ActualMinutes())

		events := s.DomainEvents()
		require.Len(t, events, 1)
		completed, ok := events[0].(domain.SessionCompleted)
		require.True(t, ok)
		assert.Equal(t, 0, completed.Minutes)
	})

	t.Run("cannot end twice", func(t *testing.T) {
		s, _ := domain.StartSession(userID, domain.SessionTypeWork, 25)
		require.NoError(t, s.End(25, true))

		err := s.End(25, true)
		assert.ErrorIs(t, err, domain.ErrSessionAlreadyEnded)
	})

	t.Run("negative actual minutes are clamped", func(t *testing.T) {
		s, _ := domain.StartSession(userID, domain.SessionTypeBreak, 5)

		require.NoError(t, s.End(-3, true))
		assert.Equal(t, 0, s.ActualMinutes())
	})
}
