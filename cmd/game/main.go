package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/tetris/internal/config"
	"github.com/tomz197/tetris/internal/loop"
	"github.com/tomz197/tetris/internal/loop/client"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("failed to load .env", "err", err)
	}

	// Logs go to stderr; redirect it to keep them off the board.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           logLevel(),
	})

	cfg, err := config.Load(config.GetEnv("TETRIS_CONFIG", ""))
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}
	restore := func() { _ = term.Restore(fd, oldState) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, client.Options{
		Config:    cfg,
		Logger:    logger,
		HideGhost: !config.GetEnvBool("TETRIS_GHOST", true),
	})
	restore()
	if err != nil {
		logger.Fatal("game error", "err", err)
	}
}

func logLevel() log.Level {
	level, err := log.ParseLevel(config.GetEnv("TETRIS_LOG_LEVEL", "warn"))
	if err != nil {
		return log.WarnLevel
	}
	return level
}
