package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"WarrantSentinel/internal/model"
)

var (
	cfgPath   string
	flagType  string
	flagLevel string
)

var rootCmd = &cobra.Command{
	Use:   "warrantsentinel",
	Short: "Scannt Aktien und Indizes nach handelbaren Optionsscheinen",
	Long: `WarrantSentinel prüft ein Universum aus Aktien und Indizes auf
optionsschein-taugliche Marktlagen, sucht für die Treffer passende
Scheine beim Listing-Dienst und bewertet sie nach Spread, Omega,
Strike-Nähe, Theta und Aufgeld.

  warrantsentinel scan            einmaliger Scan mit Konsolen-Report
  warrantsentinel watch           Dienstmodus mit Cron, Telegram und Metriken`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := zerolog.ParseLevel(flagLevel)
		if err != nil {
			return fmt.Errorf("unbekanntes Log-Level %q", flagLevel)
		}
		zerolog.SetGlobalLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "Pfad zur Konfigurationsdatei")
	rootCmd.PersistentFlags().StringVar(&flagType, "type", "call", "Optionsschein-Typ: call oder put")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "log-level", "info", "Log-Level: debug, info, warn oder error")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func parseWarrantType(s string) (model.WarrantType, error) {
	switch s {
	case "call":
		return model.WarrantCall, nil
	case "put":
		return model.WarrantPut, nil
	default:
		return "", fmt.Errorf("unbekannter Typ %q, erlaubt sind call und put", s)
	}
}
