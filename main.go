package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/auctioneer"
	"github.com/mauv0809/player-auction/internal/auth"
	"github.com/mauv0809/player-auction/internal/config"
	"github.com/mauv0809/player-auction/internal/database"
	server "github.com/mauv0809/player-auction/internal/http"
	"github.com/mauv0809/player-auction/internal/live"
	"github.com/mauv0809/player-auction/internal/metrics"
	"github.com/mauv0809/player-auction/internal/notifier"
	"github.com/mauv0809/player-auction/internal/notifier/slack"
	"github.com/mauv0809/player-auction/internal/pubsub"
	"github.com/mauv0809/player-auction/internal/registry"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Fatalf("Failed to load rules: %s", err)
	}
	clock := clockwork.NewRealClock()
	store := registry.New(db)
	engine := auction.NewEngine(store, rules, clock)
	if err := engine.Load(); err != nil {
		log.Fatalf("Failed to load auction state: %s", err)
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	summary := engine.Summary()
	metricsSvc.SetPlayerCounts(summary.TotalSold, summary.Unsold)

	var notif notifier.Notifier = notifier.Noop{}
	if cfg.Slack.Enabled() {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("Slack is not configured, notifications are disabled")
	}

	var events pubsub.PubSubClient = pubsub.Noop{}
	if cfg.PubSub.Enabled() {
		events, err = pubsub.New(ctx, cfg.PubSub.ProjectID, cfg.PubSub.Topic)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	}
	defer events.Close()

	gate, err := auth.NewGate(cfg.Admin.Passphrase, cfg.Admin.JWTSecret, auth.DefaultTTL, clock)
	if err != nil {
		log.Fatalf("Failed to initialize admin gate: %s", err)
	}

	var auc *auctioneer.Auctioneer
	hub := live.NewHub(metricsSvc, cfg.AllowedOrigins, func() any { return auc.Board() })
	auc = auctioneer.New(engine, notif, metricsSvc, events, hub, clock)

	s := server.NewServer(
		engine,
		auc,
		gate,
		store.Stats,
		metricsSvc,
		metricsHandler,
		hub,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		log.Info("Server started", "port", cfg.Port, "players", summary.TotalSold+summary.Unsold)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received")

		// Create a context with a timeout for the shutdown.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
			return err
		}
		log.Info("Server gracefully stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server error", "error", err)
	}
	log.Info("Server process shutting down")
}
