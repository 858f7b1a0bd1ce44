package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"movies_web/internal/adapters/fixture"
	server "movies_web/internal/adapters/http_server"
	"movies_web/internal/adapters/observability"
	"movies_web/internal/adapters/reviewsapi"
	"movies_web/internal/app"
	"movies_web/internal/domain"
	"movies_web/internal/shared"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	src, err := newSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("reviews source init failed")
	}

	// http
	reg := observability.InitRegistry()
	srv := server.New(log.Logger)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{C: app.NewReviewsController(src, log.Logger)})

	servers := []*http.Server{{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}}
	if ms := observability.Serve(cfg.MetricsAddr, reg); ms != nil {
		servers = append(servers, ms)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		s := s
		g.Go(func() error {
			log.Info().Str("addr", s.Addr).Msg("listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		var errs []error
		for _, s := range servers {
			errs = append(errs, s.Shutdown(sctx))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}

// newSource picks the review source once; it is never swapped afterwards.
func newSource(cfg shared.Config) (domain.ReviewSource, error) {
	if cfg.IsDev() {
		log.Info().Msg("using fixture reviews source")
		return fixture.New(), nil
	}
	log.Info().Str("base", cfg.ReviewsBaseURL).Int("rps", cfg.ReviewsRPS).Msg("using reviews API")
	return reviewsapi.New(reviewsapi.Config{
		BaseURL: cfg.ReviewsBaseURL,
		Timeout: cfg.RequestTimeout,
		RPS:     cfg.ReviewsRPS,
	})
}
