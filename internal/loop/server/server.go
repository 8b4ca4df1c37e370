// Package server tracks the players connected to one process: who is online,
// the best score reached since start, and graceful shutdown.
package server

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

const tickTime = time.Second / 10

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID, score int)
	GetSnapshot() *LobbySnapshot
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// Server owns the player registry. Clients talk to it through buffered
// channels; Run applies their messages and publishes a snapshot.
type Server struct {
	clients      map[int]*ClientHandle
	nextClientID int
	best         Record
	registerCh   chan *ClientHandle
	unregisterCh chan int
	scoreCh      chan scoreReport
	snapshot     atomic.Pointer[LobbySnapshot]
	mu           sync.RWMutex
	logger       *log.Logger
}

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	Score    int
	EventsCh chan ClientEvent // Closed when the client is unregistered
}

// ClientEvent is sent from the server to a client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Record is a score and who reached it.
type Record struct {
	Username string
	Score    int
}

// LobbySnapshot is an immutable view of the server for rendering.
type LobbySnapshot struct {
	Players int
	Best    Record
}

type scoreReport struct {
	clientID int
	score    int
}

// NewServer creates a server. A nil logger discards everything.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		scoreCh:      make(chan scoreReport, 256),
		logger:       logger,
	}
	s.snapshot.Store(&LobbySnapshot{})
	return s
}

// Run processes client messages until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(tickTime)
	defer ticker.Stop()

	for {
		s.processRegistrations()
		s.collectScores()
		s.createSnapshot()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// up to timeout. The caller should cancel the Run context afterwards.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(tickTime)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "players", s.Players())
			return
		case <-ticker.C:
			if s.Players() == 0 {
				return
			}
		}
	}
}

// Players returns the number of registered clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// ReportScore records a client's current score. Reports are dropped when
// the server is backed up; the next one carries the newer value anyway.
func (s *Server) ReportScore(clientID, score int) {
	select {
	case s.scoreCh <- scoreReport{clientID: clientID, score: score}:
	default:
	}
}

// GetSnapshot returns the latest lobby snapshot.
func (s *Server) GetSnapshot() *LobbySnapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
// Every unregister is sent after its register, so counting unregisters
// before draining registers guarantees each one finds its client.
func (s *Server) processRegistrations() {
	leaving := len(s.unregisterCh)

drain:
	for {
		select {
		case handle := <-s.registerCh:
			s.addClient(handle)
		default:
			break drain
		}
	}

	for range leaving {
		s.removeClient(<-s.unregisterCh)
	}
}

func (s *Server) addClient(handle *ClientHandle) {
	s.mu.Lock()
	s.clients[handle.ID] = handle
	n := len(s.clients)
	s.mu.Unlock()
	s.logger.Info("player joined", "user", handle.Username, "id", handle.ID, "players", n)
}

func (s *Server) removeClient(clientID int) {
	s.mu.Lock()
	handle, ok := s.clients[clientID]
	if ok {
		close(handle.EventsCh)
		delete(s.clients, clientID)
	}
	n := len(s.clients)
	s.mu.Unlock()
	if ok {
		s.logger.Info("player left", "user", handle.Username, "id", clientID, "score", handle.Score, "players", n)
	}
}

// collectScores applies pending score reports and updates the best record.
func (s *Server) collectScores() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case r := <-s.scoreCh:
			handle, ok := s.clients[r.clientID]
			if !ok {
				continue
			}
			handle.Score = r.score
			if r.score > s.best.Score {
				s.best = Record{Username: handle.Username, Score: r.score}
				s.logger.Debug("new best score", "user", handle.Username, "score", r.score)
			}
		default:
			return
		}
	}
}

// createSnapshot publishes the current player count and best score.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.snapshot.Store(&LobbySnapshot{
		Players: len(s.clients),
		Best:    s.best,
	})
}
