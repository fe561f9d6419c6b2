package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCreateGetEnd(t *testing.T) {
	m := NewManager(0)

	s := m.Create()
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Count())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	m.End(s.ID)
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStartsWithGreeting(t *testing.T) {
	s := NewManager(0).Create()

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, RoleAssistant, history[0].Role)
	assert.True(t, s.Empty())
}

func TestSessionAppendAndClear(t *testing.T) {
	s := newSession("test")
	s.Append(RoleCustomer, "two fries please")
	s.Append(RoleAssistant, "Okay, I've added 2x Fries.")

	assert.Len(t, s.History(), 3)

	s.mu.Lock()
	s.addLine("Fries", 2, "")
	s.mu.Unlock()
	assert.False(t, s.Empty())
	s.Clear()
	assert.True(t, s.Empty())
}

func TestManagerSweepRemovesIdleSessions(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	stale := m.Create()
	stale.mu.Lock()
	stale.lastActive = time.Now().Add(-time.Minute)
	stale.mu.Unlock()
	fresh := m.Create()

	removed := m.Sweep()

	assert.Equal(t, 1, removed)
	_, err := m.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
}
