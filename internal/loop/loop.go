// Package loop provides the frame loop: Input → Tick → Draw at a fixed rate.
// The client subpackage runs one player; the server subpackage tracks the
// players of a multi-connection process.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/tomz197/tetris/internal/loop/client"
)

// Run plays a local game on r and w until the player quits or ctx ends.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts client.Options) error {
	c, err := client.NewClient(nil, r, w, opts)
	if err != nil {
		return err
	}
	return c.Run(ctx)
}
