package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"WarrantSentinel/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (Grafana reads while the scanner writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id              TEXT PRIMARY KEY,
			started_at      INTEGER NOT NULL,
			finished_at     INTEGER NOT NULL,
			warrant_type    TEXT,
			tickers_scanned INTEGER,
			tickers_skipped INTEGER,
			eligible        INTEGER,
			top_count       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS run_underlyings (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			ticker     TEXT NOT NULL,
			score      INTEGER,
			eligible   INTEGER,
			close      REAL,
			currency   TEXT,
			atr_pct    REAL,
			rsi        REAL,
			rel_value  REAL,
			discovered INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_underlyings_run ON run_underlyings(run_id)`,

		`CREATE TABLE IF NOT EXISTS run_instruments (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           TEXT NOT NULL,
			rank             INTEGER,
			wkn              TEXT,
			underlying       TEXT,
			warrant_type     TEXT,
			strike           REAL,
			days_to_maturity INTEGER,
			bid              REAL,
			ask              REAL,
			spread_pct       REAL,
			leverage         REAL,
			omega            REAL,
			implied_vol      REAL,
			total_score      INTEGER,
			pieces           INTEGER,
			cost             REAL,
			risk             REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_instruments_run ON run_instruments(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun writes a run with its underlyings and global selection in
// one transaction.
func (r *SQLiteRecorder) RecordRun(report *model.RunReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO runs
		(id, started_at, finished_at, warrant_type, tickers_scanned, tickers_skipped, eligible, top_count)
		VALUES (?,?,?,?,?,?,?,?)`,
		report.RunID, report.StartedAt.Unix(), report.FinishedAt.Unix(),
		string(report.WarrantType), report.TickersScanned, report.TickersSkipped,
		report.Eligible, len(report.GlobalTop),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, ur := range report.Underlyings {
		res := ur.Result
		if _, err := tx.Exec(`INSERT INTO run_underlyings
			(run_id, ticker, score, eligible, close, currency, atr_pct, rsi, rel_value, discovered)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			report.RunID, res.Ticker, res.Score, res.Eligible, res.Close, res.Currency,
			res.Snapshot.ATRPct, res.Snapshot.RSI, res.RelStrength.Value, ur.Discovered,
		); err != nil {
			return fmt.Errorf("insert underlying: %w", err)
		}
	}

	for _, s := range report.GlobalTop {
		c := s.Candidate
		if _, err := tx.Exec(`INSERT INTO run_instruments
			(run_id, rank, wkn, underlying, warrant_type, strike, days_to_maturity,
			 bid, ask, spread_pct, leverage, omega, implied_vol, total_score, pieces, cost, risk)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			report.RunID, s.Rank, c.WKN, s.Underlying, string(c.Type), c.Strike, c.DaysToMaturity,
			c.Bid, c.Ask, c.SpreadPct, c.Leverage, c.Omega, c.ImpliedVol,
			s.TotalScore, s.Position.Pieces, s.Position.Cost, s.Position.Risk,
		); err != nil {
			return fmt.Errorf("insert instrument: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
