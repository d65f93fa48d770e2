// api/cmd/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/bootstrap"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/logger"
)

// server is what Run drives; *http.Server satisfies it through httpServer.
type server interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type httpServer struct{ *http.Server }

func (s httpServer) Addr() string { return s.Server.Addr }

type serverBuilder func() (server, func(), error)

// in-flight requests get this long after a stop request
const drainTimeout = 15 * time.Second

// Run serves until ctx is cancelled or the listener fails and returns the
// process exit code. On cancellation it drains, then waits for the listener
// to return before cleanup runs.
func Run(ctx context.Context, build serverBuilder, lg zerolog.Logger) int {
	srv, cleanup, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("bootstrap failed")
		return 1
	}
	defer cleanup()

	served := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr()).Msg("user-service listening")
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		served <- err
	}()

	select {
	case err := <-served:
		if err != nil {
			lg.Error().Err(err).Msg("listener failed")
			return 1
		}
		return 0
	case <-ctx.Done():
		lg.Info().Msg("stop requested, draining")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := srv.Shutdown(drainCtx); err != nil {
		lg.Warn().Err(err).Dur("timeout", drainTimeout).Msg("drain incomplete, closing connections")
		_ = srv.Close()
	}
	if err := <-served; err != nil {
		lg.Error().Err(err).Msg("listener failed while draining")
		return 1
	}

	lg.Info().Msg("stopped")
	return 0
}

func fromBootstrap() (server, func(), error) {
	srv, cleanup, err := bootstrap.NewServer()
	if err != nil {
		return nil, nil, err
	}
	return httpServer{srv}, cleanup, nil
}

func main() {
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, fromBootstrap, zlog.Logger)
	stop()
	os.Exit(code)
}
