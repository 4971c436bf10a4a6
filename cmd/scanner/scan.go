package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"WarrantSentinel/internal/export"
)

var (
	flagLimit    int
	flagMinScore int
	flagOut      string
	flagJSON     string
	flagVerbose  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Führt einen einzelnen Scan aus und schreibt die Exporte",
	Long: `Prüft das konfigurierte Universum einmal, zeigt das Ranking auf der
Konsole und schreibt CSV- und JSON-Export gemäß Konfiguration.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&flagLimit, "limit", 0, "nur die ersten N Ticker des Universums prüfen")
	scanCmd.Flags().IntVar(&flagMinScore, "min-score", 0, "Mindest-Score für die Eignung überschreiben")
	scanCmd.Flags().StringVar(&flagOut, "out", "", "CSV-Zieldatei überschreiben")
	scanCmd.Flags().StringVar(&flagJSON, "json", "", "JSON-Zieldatei überschreiben")
	scanCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Begründungen je Basiswert mit ausgeben")
}

func runScan(_ *cobra.Command, _ []string) error {
	typ, err := parseWarrantType(flagType)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagLimit > 0 {
		cfg.Universe.Limit = flagLimit
	}
	if flagMinScore > 0 {
		cfg.Scoring.MinScore = flagMinScore
	}
	if flagOut != "" {
		cfg.Export.CSVPath = flagOut
	}
	if flagJSON != "" {
		cfg.Export.JSONPath = flagJSON
	}

	p, err := buildPipeline(cfg, nil)
	if err != nil {
		return err
	}
	rec := buildRecorder(cfg)
	defer rec.Close()

	report, err := p.Run(context.Background(), typ)
	if err != nil {
		return err
	}

	if flagVerbose {
		export.RenderUnderlyings(os.Stdout, report)
	}
	export.RenderTop(os.Stdout, report)
	export.RenderSummary(os.Stdout, report)

	if cfg.Export.CSVPath != "" {
		if err := export.WriteCSV(cfg.Export.CSVPath, report); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		log.Info().Str("path", cfg.Export.CSVPath).Msg("csv written")
	}
	if cfg.Export.JSONPath != "" {
		if err := export.WriteJSON(cfg.Export.JSONPath, report); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		log.Info().Str("path", cfg.Export.JSONPath).Msg("json written")
	}

	if err := rec.RecordRun(report); err != nil {
		log.Error().Err(err).Str("run", report.RunID).Msg("record run")
	}
	return nil
}
