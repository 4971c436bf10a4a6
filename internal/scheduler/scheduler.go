package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"WarrantSentinel/internal/model"
	"WarrantSentinel/internal/notifier"
	"WarrantSentinel/internal/recorder"
)

// Runner runs one scan and returns its report.
type Runner interface {
	Run(ctx context.Context, typ model.WarrantType) (*model.RunReport, error)
}

// Scheduler fires the scan on a cron spec, delivers the report to every
// sink and keeps the last report around for the /status command.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   Runner
	Type     model.WarrantType
	Sinks    []notifier.Notifier
	Recorder recorder.Recorder
	Ctx      context.Context

	running atomic.Bool
	mu      sync.Mutex
	last    *model.RunReport
}

// NewScheduler creates a scheduler; the cron spec uses six fields with
// leading seconds.
func NewScheduler(ctx context.Context, r Runner, typ model.WarrantType, sinks []notifier.Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   r,
		Type:     typ,
		Sinks:    sinks,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// Register adds the scan job under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.scanTask); err != nil {
		return fmt.Errorf("register scan job: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the scan task immediately (manual trigger / run on start).
func (s *Scheduler) RunNow() {
	s.scanTask()
}

// LastReport returns the most recent report, or nil before the first scan.
func (s *Scheduler) LastReport() *model.RunReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Scheduler) scanTask() {
	// One scan at a time; a run that overlaps the next cron fire wins.
	if !s.running.CompareAndSwap(false, true) {
		log.Warn().Msg("scan already running, skipping trigger")
		return
	}
	defer s.running.Store(false)

	report, err := s.Runner.Run(s.Ctx, s.Type)
	if err != nil {
		log.Error().Err(err).Msg("scheduled scan failed")
		s.trySend(fmt.Sprintf("❌ Scan fehlgeschlagen: %v", err))
		return
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	s.trySend(notifier.FormatRunReport(report))

	if err := s.Recorder.RecordRun(report); err != nil {
		log.Error().Err(err).Str("run", report.RunID).Msg("record run")
	}
}

// HandleCommand processes a chat command and returns the reply text; an
// empty reply means the command answers asynchronously.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		go s.RunNow()
		return "🔍 Scan gestartet, Ergebnis folgt."
	case "/status":
		return notifier.FormatStatus(s.LastReport())
	default:
		return "Verfügbare Befehle:\n• /scan – Scan jetzt starten\n• /status – letzter Lauf"
	}
}

func (s *Scheduler) trySend(text string) {
	for _, sink := range s.Sinks {
		if err := notifier.SendWithRetry(s.Ctx, sink, text, 3); err != nil {
			log.Error().Err(err).Str("sink", sink.Name()).Msg("send notification")
		}
	}
}
