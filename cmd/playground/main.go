package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/colliders/internal/config"
	"github.com/tomz197/colliders/internal/loop"
	"github.com/tomz197/colliders/internal/scene"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	// The terminal is in raw mode while the loop runs, so logs only go to
	// LOG_FILE when it is set.
	logger, closeLog, err := config.NewLogger("playground", io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		return 1
	}
	defer closeLog()

	sc, err := scene.FromEnv()
	if err != nil {
		logger.Error("failed to load scene", "err", err)
		fmt.Fprintf(os.Stderr, "failed to load scene: %v\n", err)
		return 1
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, loop.Options{
		Scene:  sc,
		Logger: logger,
	})
	stop()
	_ = term.Restore(fd, oldState)

	if err != nil {
		logger.Error("playground failed", "err", err)
		fmt.Fprintf(os.Stderr, "playground error: %v\n", err)
		return 1
	}
	return 0
}
