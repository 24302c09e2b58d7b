package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/colliders/internal/config"
	"github.com/tomz197/colliders/internal/loop"
	"github.com/tomz197/colliders/internal/scene"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownTimeout    = 5 * time.Second
)

func main() {
	os.Exit(runMain())
}

// runMain returns the process exit code. Deferred cleanup, such as closing
// LOG_FILE, has run by the time it returns.
func runMain() int {
	logger, closeLog, err := config.NewLogger("ssh", os.Stderr)
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
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	sc, err := scene.FromEnv()
	if err != nil {
		return errors.Wrap(err, "load scene")
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "shapes", len(sc.Shapes))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			playgroundMiddleware(ctx, sc, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY so pointer movement is not batched
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

	srv, err := wish.NewServer(opts...)
	if err != nil {
		return errors.Wrap(err, "create server")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting SSH server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// playgroundMiddleware runs a playground session with its own shapes. The
// session ends when the client leaves or serverCtx is done.
func playgroundMiddleware(serverCtx context.Context, sc *scene.Scene, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLogger := logger.With("session", uuid.NewString(), "user", sess.User())
			sessLogger.Info("New session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			tracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go tracker.follow(winCh)

			ctx, cancel := context.WithCancel(sess.Context())
			stopAfter := context.AfterFunc(serverCtx, cancel)
			defer func() {
				stopAfter()
				cancel()
			}()

			err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
				TermSizeFunc: tracker.getSize,
				Scene:        sc,
				Logger:       sessLogger,
			})
			if err != nil {
				sessLogger.Error("Session failed", "err", err)
			}

			sessLogger.Info("Session ended")
			next(sess)
		}
	}
}
