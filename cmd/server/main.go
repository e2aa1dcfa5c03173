package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/league-ledger/internal/api"
	"github.com/dom/league-ledger/internal/config"
	"github.com/dom/league-ledger/internal/events"
	"github.com/dom/league-ledger/internal/repository/postgres"
	"github.com/dom/league-ledger/internal/service"
	"github.com/dom/league-ledger/internal/websocket"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	config.SetupLogging(cfg)

	db, err := postgres.NewConnection(cfg.DatabaseURL, cfg.GormLogLevel())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	repos := postgres.NewRepositories(db)

	hub := websocket.NewHub()
	go hub.Run()

	var publisher events.Publisher = hub
	if cfg.NATSURL != "" {
		jsCfg := events.DefaultJetStreamConfig()
		jsCfg.URL = cfg.NATSURL
		jsCfg.StreamName = cfg.NATSStream
		jsCfg.SubjectPrefix = cfg.NATSSubjectPrefix

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		js, err := events.NewJetStreamPublisher(ctx, jsCfg)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("url", cfg.NATSURL).Msg("failed to connect event stream")
		}
		defer js.Close()

		publisher = events.Multi{hub, js}
		log.Info().Str("stream", jsCfg.StreamName).Msg("publishing league events to JetStream")
	}

	services := service.NewServices(repos, cfg, clockwork.NewRealClock(), publisher)
	hub.SetSnapshotFunc(func(ctx context.Context, leagueID uuid.UUID) (interface{}, error) {
		return services.Draft.Board(ctx, leagueID)
	})

	router := api.NewRouter(services, hub, cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	hub.Stop()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info().Msg("server stopped")
}
