// Package client runs one player's game: it reads their keys, advances
// their session and draws it to their terminal.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/tetris/internal/config"
	"github.com/tomz197/tetris/internal/draw"
	"github.com/tomz197/tetris/internal/game"
	"github.com/tomz197/tetris/internal/input"
	"github.com/tomz197/tetris/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server      server.GameServer // nil when playing alone
	handle      *server.ClientHandle
	session     *game.Session
	renderer    *draw.Renderer
	writer      io.Writer
	inputStream *input.Stream
	logger      *log.Logger
	opts        Options

	input     input.Input
	running   bool
	delta     time.Duration
	lastInput time.Time
	inactive  bool

	shuttingDown bool
	shutdownLeft time.Duration

	best     int
	reported int
}

// Options configures the client.
type Options struct {
	Config       config.Config
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Logger       *log.Logger
	Rand         game.Randomizer
	HideGhost    bool

	// Players idle for InactivityDisconnect are dropped, after a warning
	// from InactivityWarn on. Zero disables either.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration

	ShutdownDisplay time.Duration // defaults to config.ShutdownDisplay
}

// NewClient creates a client. gs may be nil for a local game; otherwise the
// client registers with it immediately.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Username != "" {
		logger = logger.With("user", opts.Username)
	}
	if opts.ShutdownDisplay <= 0 {
		opts.ShutdownDisplay = config.ShutdownDisplay
	}

	session, err := game.NewSession(opts.Config, game.Options{
		Rand:      opts.Rand,
		Logger:    logger,
		HideGhost: opts.HideGhost,
	})
	if err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}

	c := &Client{
		server:      gs,
		session:     session,
		renderer:    draw.NewRenderer(w, opts.TermSizeFunc, opts.Config.Grid.Width, opts.Config.Grid.Height),
		writer:      w,
		inputStream: input.StartStream(r),
		logger:      logger,
		opts:        opts,
		running:     true,
	}
	if gs != nil {
		c.handle = gs.RegisterClient(opts.Username)
	}
	return c, nil
}

// Run starts the client loop. Blocks until the player quits, their input
// ends, they go idle, the server shuts down or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.unregister()

	lastTime := time.Now()
	c.lastInput = lastTime

	for c.running {
		frameStart := time.Now()
		c.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput(frameStart)
		c.processServerEvents()
		if ctx.Err() != nil {
			c.running = false
		}

		c.update()

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	c.logger.Info("game finished",
		"score", c.session.Score(), "level", c.session.Level(), "lines", c.session.LinesCleared())
	return nil
}

// processInput reads pending keys and tracks inactivity.
func (c *Client) processInput(now time.Time) {
	c.input = input.ReadInput(c.inputStream)

	if len(c.input.Pressed) > 0 {
		c.lastInput = now
		c.inactive = false
	} else if limit := c.opts.InactivityDisconnect; limit > 0 {
		idle := now.Sub(c.lastInput)
		if idle > limit {
			c.logger.Info("disconnecting inactive player", "idle", idle.Round(time.Second))
			c.running = false
		} else if c.opts.InactivityWarn > 0 && idle > c.opts.InactivityWarn {
			c.inactive = true
		}
	}

	if c.input.Quit {
		c.running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.running = false
				return
			}
			if event.Type == server.EventServerShutdown && !c.shuttingDown {
				c.shuttingDown = true
				c.shutdownLeft = c.opts.ShutdownDisplay
			}
		default:
			return
		}
	}
}

// update advances the game, or the shutdown countdown once it has started.
func (c *Client) update() {
	if c.shuttingDown {
		c.shutdownLeft -= c.delta
		if c.shutdownLeft <= 0 {
			c.running = false
		}
		return
	}

	c.session.Tick(c.delta, c.input.Actions)

	score := c.session.Score()
	c.best = max(c.best, score)
	if c.server != nil && score != c.reported {
		c.server.ReportScore(c.handle.ID, score)
		c.reported = score
	}
}

func (c *Client) unregister() {
	if c.server != nil {
		c.server.UnregisterClient(c.handle.ID)
	}
}
