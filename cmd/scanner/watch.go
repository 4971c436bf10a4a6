package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"WarrantSentinel/internal/scheduler"
	"WarrantSentinel/internal/telemetry"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Läuft als Dienst mit Cron-Scans, Telegram-Befehlen und Metriken",
	Long: `Startet den Scanner als Dienst: Scans laufen nach Cron-Plan, Ergebnisse
gehen an die konfigurierten Kanäle, /metrics liefert Prometheus-Daten
und Telegram beantwortet /scan und /status.`,
	RunE: runWatch,
}

func runWatch(_ *cobra.Command, _ []string) error {
	typ, err := parseWarrantType(flagType)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(registry)

	p, err := buildPipeline(cfg, metrics)
	if err != nil {
		return err
	}
	rec := buildRecorder(cfg)
	defer rec.Close()
	sinks, tg := buildSinks(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, p, typ, sinks, rec)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	srv := telemetry.NewServer(cfg.Telemetry.ListenAddr, registry)
	go srv.Start()

	if tg != nil {
		go tg.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, scanning now")
		go sched.RunNow()
	}

	log.Info().
		Str("cron", cfg.Schedule.Cron).
		Str("type", string(typ)).
		Str("metrics", cfg.Telemetry.ListenAddr).
		Msg("watch mode running, Ctrl+C stops")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("telemetry shutdown")
	}
	return nil
}
