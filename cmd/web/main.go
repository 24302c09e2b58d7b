package main

import (
	"context"
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/colliders/internal/config"
	"github.com/tomz197/colliders/internal/scene"
)

const (
	defaultHost     = "0.0.0.0"
	defaultPort     = "8080"
	shutdownTimeout = 5 * time.Second
)

//go:embed index.html
var htmlPage string

func main() {
	os.Exit(runMain())
}

// runMain returns the process exit code. Deferred cleanup, such as closing
// LOG_FILE, has run by the time it returns.
func runMain() int {
	logger, closeLog, err := config.NewLogger("web", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		return 1
	}
	defer closeLog()

	if err := run(logger); err != nil {
		logger.Error("server failed", "err", err)
		return 1
	}
	return 0
}

func run(logger *log.Logger) error {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	sc, err := scene.FromEnv()
	if err != nil {
		return errors.Wrap(err, "load scene")
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(host, port),
		Handler:      newRouter(sc, sshHost, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
