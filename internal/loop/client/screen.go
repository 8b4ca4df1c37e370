package client

import (
	"fmt"
	"time"

	"github.com/tomz197/tetris/internal/draw"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	f := draw.Frame{
		Snapshot: c.session.Snapshot(),
		Best:     c.best,
		Notice:   c.notice(),
	}
	if c.server != nil {
		lobby := c.server.GetSnapshot()
		f.Players = lobby.Players
		f.Best = max(f.Best, lobby.Best.Score)
	}
	return c.renderer.DrawFrame(f)
}

// notice returns the message drawn over the game, if any. Shutdown wins
// over the inactivity warning.
func (c *Client) notice() []string {
	switch {
	case c.shuttingDown:
		remaining := int(c.shutdownLeft.Seconds()) + 1
		return []string{
			"SERVER SHUTTING DOWN",
			"Please reconnect in a moment.",
			fmt.Sprintf("Disconnecting in %d seconds...", remaining),
			"Press Q to disconnect now",
		}
	case c.inactive:
		remaining := c.opts.InactivityDisconnect - time.Since(c.lastInput)
		return []string{
			"INACTIVITY WARNING",
			fmt.Sprintf("Disconnecting in %d seconds", max(0, int(remaining.Seconds()))),
			"Press any key to continue",
		}
	}
	return nil
}
