package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

func TestAddToHistoryKeepsLastTurns(t *testing.T) {
	s := &Session{UserID: "u1"}
	for i := 0; i < 25; i++ {
		s.AddToHistory(models.RoleUser, fmt.Sprintf("pesan %d", i))
		assert.LessOrEqual(t, len(s.History), MaxHistoryTurns)
	}

	require.Len(t, s.History, MaxHistoryTurns)
	assert.Equal(t, "pesan 15", s.History[0].Content)
	assert.Equal(t, "pesan 24", s.History[MaxHistoryTurns-1].Content)
}

func TestSessionManagerCreatesLazily(t *testing.T) {
	sm := NewSessionManager()
	_, ok := sm.Snapshot("u1")
	assert.False(t, ok)
	assert.Zero(t, sm.Count())

	err := sm.WithSession("u1", func(s *Session) error {
		assert.Equal(t, "u1", s.UserID)
		assert.Empty(t, s.Cart)
		assert.False(t, s.AwaitingConfirmation)
		s.Cart = append(s.Cart, models.NewCartItem("buku", 1, 30000))
		return nil
	})
	require.NoError(t, err)

	snap, ok := sm.Snapshot("u1")
	require.True(t, ok)
	assert.Len(t, snap.Cart, 1)
	assert.Equal(t, 1, sm.Count())
}

func TestSnapshotIsACopy(t *testing.T) {
	sm := NewSessionManager()
	require.NoError(t, sm.WithSession("u1", func(s *Session) error {
		s.Cart = append(s.Cart, models.NewCartItem("buku", 1, 30000))
		return nil
	}))

	snap, _ := sm.Snapshot("u1")
	snap.Cart[0].Quantity = 99

	again, _ := sm.Snapshot("u1")
	assert.Equal(t, 1, again.Cart[0].Quantity)
}

func TestWithSessionResetsInconsistentFlag(t *testing.T) {
	sm := NewSessionManager()
	require.NoError(t, sm.WithSession("u1", func(s *Session) error {
		s.AwaitingConfirmation = true
		return nil
	}))

	snap, _ := sm.Snapshot("u1")
	assert.False(t, snap.AwaitingConfirmation)
	assert.True(t, snap.Consistent())
}

func TestWithSessionReturnsCallbackError(t *testing.T) {
	sm := NewSessionManager()
	boom := errors.New("boom")
	assert.ErrorIs(t, sm.WithSession("u1", func(*Session) error { return boom }), boom)
}

func TestWithSessionSerializesPerUser(t *testing.T) {
	sm := NewSessionManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sm.WithSession("u1", func(s *Session) error {
				n := len(s.Cart)
				s.Cart = append(s.Cart, models.NewCartItem("pensil", n+1, 4000))
				return nil
			})
		}()
	}
	wg.Wait()

	snap, _ := sm.Snapshot("u1")
	require.Len(t, snap.Cart, 50)
	for i, item := range snap.Cart {
		assert.Equal(t, i+1, item.Quantity)
	}
}
