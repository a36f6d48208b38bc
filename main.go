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
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mysterynumber/assets"
	"github.com/robalobadob/mysterynumber/internal/config"
	"github.com/robalobadob/mysterynumber/internal/feedback"
	"github.com/robalobadob/mysterynumber/internal/httpserver"
	"github.com/robalobadob/mysterynumber/internal/prefs"
	"github.com/robalobadob/mysterynumber/internal/random"
	"github.com/robalobadob/mysterynumber/internal/storage"
	"github.com/robalobadob/mysterynumber/internal/store"
	"github.com/robalobadob/mysterynumber/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.ServiceName, cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("flush traces")
		}
	}()

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := storage.Migrate(ctx, db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	catalog, err := feedback.LoadCatalog(cfg.TauntsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.TauntsFile).Msg("failed to load message pools")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(httpserver.Options{
		Store:         mem,
		Prefs:         prefs.NewStore(db),
		Catalog:       catalog,
		Random:        random.NewSource(cfg.RandomSeed),
		ClientOrigin:  cfg.ClientOrigin,
		PlayerSecret:  cfg.PlayerSecret,
		CookieSecure:  cfg.CookieSecure,
		SirenInterval: cfg.SirenInterval,
		Logger:        log.Logger,
	})

	go sweepIdle(ctx, mem, cfg.SessionIdleTTL)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting mysterynumber")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server exited")
		}
	}

	// close controllers first so open event streams end and Shutdown can drain
	if err := mem.Close(); err != nil {
		log.Warn().Err(err).Msg("close sessions")
	}
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// sweepIdle closes controllers nobody has used within ttl.
func sweepIdle(ctx context.Context, st store.Store, ttl time.Duration) {
	every := ttl / 2
	if every > time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.EvictIdle(ctx, ttl); n > 0 {
				log.Debug().Int("evicted", n).Int("live", st.Len()).Msg("idle sessions closed")
			}
		}
	}
}
