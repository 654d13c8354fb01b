// Command robot runs one or more robot-brain seats against a live Catan
// game server, plus a small diagnostics HTTP surface for health and
// Prometheus scraping.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/settlers/robotbrain/internal/config"
	"github.com/settlers/robotbrain/internal/diagnostics"
	"github.com/settlers/robotbrain/internal/logger"
	"github.com/settlers/robotbrain/internal/orchestrator"
)

func main() {
	gameID := flag.String("game", "", "game ID to join")
	seats := flag.Int("seats", 4, "number of robot seats to run")
	flag.Parse()

	logger.Init()
	cfg := config.Load()

	if *gameID == "" {
		log.Fatal().Msg("missing required -game flag")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	sink := buildDiagnosticsSink(cfg)

	go serveDiagnostics(cfg.MetricsAddr)

	orch := orchestrator.New(orchestrator.Config{
		BaseURL:          cfg.ServerURL,
		GameID:           *gameID,
		NumSeats:         *seats,
		Strategy:         cfg.Strategy,
		ModelPath:        cfg.GonnxModelPath,
		TradeEnabled:     cfg.TradeFlag,
		MaxDeniedPerTurn: cfg.MaxDeniedPerTurn,
		Log:              logger.Get(),
		Diagnostics:      sink,
	})

	if err := orch.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("orchestrator failed")
	}
	log.Info().Msg("robot game completed")
}

func buildDiagnosticsSink(cfg *config.Config) diagnostics.Sink {
	if cfg.RedisURL != "" {
		if sink, err := diagnostics.NewRedisSink(cfg.RedisURL, logger.Get()); err == nil {
			return sink
		} else {
			log.Warn().Err(err).Msg("diagnostics: redis sink unavailable, falling back")
		}
	}
	if cfg.DatabaseURL != "" {
		if db, err := diagnostics.ConnectPostgres(cfg.DatabaseURL); err == nil {
			sink := diagnostics.NewPostgresSink(db, logger.Get())
			if err := sink.EnsureSchema(context.Background()); err != nil {
				log.Warn().Err(err).Msg("diagnostics: postgres schema setup failed, falling back")
			} else {
				return sink
			}
		} else {
			log.Warn().Err(err).Msg("diagnostics: postgres sink unavailable, falling back")
		}
	}
	return diagnostics.NoopSink{}
}

func serveDiagnostics(addr string) {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Warn().Err(err).Msg("diagnostics server stopped")
	}
}
