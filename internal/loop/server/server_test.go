package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go s.Run(ctx)
	return s
}

func waitForPlayers(t *testing.T, s *Server, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return s.GetSnapshot().Players == n
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRegisterAndUnregister(t *testing.T) {
	s := startServer(t)

	alice := s.RegisterClient("alice")
	bob := s.RegisterClient("bob")
	assert.NotEqual(t, alice.ID, bob.ID)
	waitForPlayers(t, s, 2)
	assert.Equal(t, 2, s.Players())

	s.UnregisterClient(alice.ID)
	waitForPlayers(t, s, 1)

	_, open := <-alice.EventsCh
	assert.False(t, open, "events channel is closed on unregister")
}

func TestBestScore(t *testing.T) {
	s := startServer(t)

	alice := s.RegisterClient("alice")
	bob := s.RegisterClient("bob")
	waitForPlayers(t, s, 2)

	s.ReportScore(alice.ID, 500)
	s.ReportScore(bob.ID, 300)
	require.Eventually(t, func() bool {
		return s.GetSnapshot().Best == Record{Username: "alice", Score: 500}
	}, 2*time.Second, 10*time.Millisecond)

	s.ReportScore(bob.ID, 800)
	require.Eventually(t, func() bool {
		return s.GetSnapshot().Best == Record{Username: "bob", Score: 800}
	}, 2*time.Second, 10*time.Millisecond)

	// The record outlives the player.
	s.UnregisterClient(bob.ID)
	waitForPlayers(t, s, 1)
	assert.Equal(t, Record{Username: "bob", Score: 800}, s.GetSnapshot().Best)
}

func TestReportFromUnknownClientIsIgnored(t *testing.T) {
	s := startServer(t)

	s.ReportScore(42, 1000)
	a := s.RegisterClient("alice")
	waitForPlayers(t, s, 1)
	s.ReportScore(a.ID, 10)

	require.Eventually(t, func() bool {
		return s.GetSnapshot().Best.Score == 10
	}, 2*time.Second, 10*time.Millisecond)
}

func TestShutdownNotifiesClients(t *testing.T) {
	s := startServer(t)

	handle := s.RegisterClient("alice")
	waitForPlayers(t, s, 1)

	go func() {
		ev := <-handle.EventsCh
		if ev.Type == EventServerShutdown {
			s.UnregisterClient(handle.ID)
		}
	}()

	start := time.Now()
	s.Shutdown(5 * time.Second)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Zero(t, s.Players())
}

func TestShutdownTimesOut(t *testing.T) {
	s := startServer(t)
	s.RegisterClient("stubborn")
	waitForPlayers(t, s, 1)

	start := time.Now()
	s.Shutdown(300 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
	assert.Equal(t, 1, s.Players())
}

func TestUnregisterQueuedWithRegister(t *testing.T) {
	s := NewServer(nil)

	for range 50 {
		h := s.RegisterClient("eve")
		s.UnregisterClient(h.ID)
		s.processRegistrations()

		assert.Equal(t, 0, s.Players())
		_, open := <-h.EventsCh
		assert.False(t, open, "events channel is closed on unregister")
	}
}

func TestUnregisterOnLaterTick(t *testing.T) {
	s := NewServer(nil)

	h := s.RegisterClient("eve")
	s.processRegistrations()
	require.Equal(t, 1, s.Players())

	s.UnregisterClient(h.ID)
	s.processRegistrations()
	assert.Equal(t, 0, s.Players())
}
