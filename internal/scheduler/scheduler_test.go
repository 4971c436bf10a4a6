package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WarrantSentinel/internal/model"
	"WarrantSentinel/internal/notifier"
)

type stubRunner struct {
	mu      sync.Mutex
	calls   int
	report  *model.RunReport
	err     error
	entered chan struct{} // receives one signal per Run start, when set
	release chan struct{} // Run blocks on this until closed, when set
}

func (r *stubRunner) Run(context.Context, model.WarrantType) (*model.RunReport, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.release != nil {
		<-r.release
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.report, nil
}

func (r *stubRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type memorySink struct {
	mu    sync.Mutex
	texts []string
}

func (m *memorySink) Name() string { return "memory" }

func (m *memorySink) Send(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	return nil
}

func (m *memorySink) all() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

type captureRecorder struct {
	mu      sync.Mutex
	reports []*model.RunReport
}

func (c *captureRecorder) RecordRun(r *model.RunReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, r)
	return nil
}

func (c *captureRecorder) Close() error { return nil }

func (c *captureRecorder) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reports)
}

func sampleReport() *model.RunReport {
	return &model.RunReport{
		RunID:          "run-42",
		FinishedAt:     time.Date(2026, 8, 25, 18, 0, 42, 0, time.UTC),
		WarrantType:    model.WarrantCall,
		TickersScanned: 5,
		Eligible:       1,
		GlobalTop: []model.ScoredInstrument{
			{
				Rank:       1,
				Underlying: "SAP.DE",
				TotalScore: 98,
				Candidate: model.InstrumentCandidate{
					WKN: "GK1AAA", Type: model.WarrantCall, Issuer: "Goldman Sachs",
					Strike: 133, DaysToMaturity: 12, Ask: 0.45, Currency: "EUR",
					SpreadPct: 0.5, Omega: 8, Leverage: 10,
				},
				Position: model.Position{Pieces: 444, Cost: 199.8, Stop: 0.405, Risk: 19.98},
			},
		},
	}
}

func newTestScheduler(runner *stubRunner) (*Scheduler, *memorySink, *captureRecorder) {
	sink := &memorySink{}
	rec := &captureRecorder{}
	s := NewScheduler(context.Background(), runner, model.WarrantCall, []notifier.Notifier{sink}, rec)
	return s, sink, rec
}

func TestRunNowNotifiesAndRecords(t *testing.T) {
	runner := &stubRunner{report: sampleReport()}
	s, sink, rec := newTestScheduler(runner)

	s.RunNow()

	require.Equal(t, 1, runner.callCount())
	texts := sink.all()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "GK1AAA")
	assert.Contains(t, texts[0], "Top Optionsscheine")
	assert.Equal(t, 1, rec.count())
	require.NotNil(t, s.LastReport())
	assert.Equal(t, "run-42", s.LastReport().RunID)
}

func TestFailedRunReportsErrorAndRecordsNothing(t *testing.T) {
	runner := &stubRunner{err: errors.New("yahoo down")}
	s, sink, rec := newTestScheduler(runner)

	s.RunNow()

	texts := sink.all()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Scan fehlgeschlagen")
	assert.Equal(t, 0, rec.count())
	assert.Nil(t, s.LastReport())
}

func TestOverlappingTriggerIsSkipped(t *testing.T) {
	runner := &stubRunner{
		report:  sampleReport(),
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s, _, _ := newTestScheduler(runner)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.RunNow()
	}()
	<-runner.entered

	// Second trigger while the first is still inside the runner.
	s.RunNow()
	assert.Equal(t, 1, runner.callCount())

	close(runner.release)
	wg.Wait()
}

func TestHandleCommandStatus(t *testing.T) {
	runner := &stubRunner{report: sampleReport()}
	s, _, _ := newTestScheduler(runner)

	assert.Equal(t, "Noch kein Scan gelaufen.", s.HandleCommand("/status"))

	s.RunNow()
	reply := s.HandleCommand("/status")
	assert.Contains(t, reply, "run-42")
	assert.Contains(t, reply, "CALL")
}

func TestHandleCommandScanRunsAsync(t *testing.T) {
	runner := &stubRunner{report: sampleReport()}
	s, _, _ := newTestScheduler(runner)

	reply := s.HandleCommand("/scan")
	assert.Contains(t, reply, "Scan gestartet")
	assert.Eventually(t, func() bool { return runner.callCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestHandleCommandHelp(t *testing.T) {
	s, _, _ := newTestScheduler(&stubRunner{})
	reply := s.HandleCommand("was?")
	assert.Contains(t, reply, "/scan")
	assert.Contains(t, reply, "/status")
}

func TestRegisterRejectsBadSpec(t *testing.T) {
	s, _, _ := newTestScheduler(&stubRunner{})
	assert.Error(t, s.Register("not a cron spec"))
	assert.NoError(t, s.Register("0 0 18 * * 1-5"))
}
