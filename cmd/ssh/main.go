package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/tetris/internal/config"
	"github.com/tomz197/tetris/internal/draw"
	"github.com/tomz197/tetris/internal/loop/client"
	"github.com/tomz197/tetris/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("failed to load .env", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ssh",
		Level:           logLevel(),
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath)

	cfg, err := config.Load(config.GetEnv("TETRIS_CONFIG", ""))
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	// Shared player registry, one game session per connection.
	serverCtx, cancelServer := context.WithCancel(context.Background())
	defer cancelServer()
	gameServer := server.NewServer(logger.WithPrefix("lobby"))
	go gameServer.Run(serverCtx)

	g := &games{
		server: gameServer,
		cfg:    cfg,
		logger: logger,
		warn:   time.Duration(config.GetEnvInt("TETRIS_IDLE_WARN_SECONDS", int(config.InactivityWarn/time.Second))) * time.Second,
		idle:   time.Duration(config.GetEnvInt("TETRIS_IDLE_SECONDS", int(config.InactivityDisconnect/time.Second))) * time.Second,

		hideGhost: !config.GetEnvBool("TETRIS_GHOST", true),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	logger.Info("notifying connected players", "players", gameServer.Players())
	gameServer.Shutdown(config.ShutdownTimeout)
	cancelServer()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// games starts a client for every interactive SSH session.
type games struct {
	server    *server.Server
	cfg       config.Config
	logger    *log.Logger
	warn      time.Duration
	idle      time.Duration
	hideGhost bool
}

// middleware handles SSH sessions and runs the game client.
func (g *games) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		g.logger.Info("new game session",
			"user", sess.User(), "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Track the terminal size from window change events
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		c, err := client.NewClient(g.server, bufio.NewReader(sess), sess, client.Options{
			Config:               g.cfg,
			TermSizeFunc:         sizeTracker.getSize,
			Username:             sess.User(),
			Logger:               g.logger,
			InactivityWarn:       g.warn,
			InactivityDisconnect: g.idle,
			HideGhost:            g.hideGhost,
		})
		if err != nil {
			g.logger.Error("failed to start game", "user", sess.User(), "err", err)
			return
		}
		if err := c.Run(sess.Context()); err != nil {
			g.logger.Error("game error", "user", sess.User(), "err", err)
		}

		g.logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize

func logLevel() log.Level {
	level, err := log.ParseLevel(config.GetEnv("TETRIS_LOG_LEVEL", "info"))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
