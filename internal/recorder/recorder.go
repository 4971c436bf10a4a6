package recorder

import "WarrantSentinel/internal/model"

// Recorder persists finished runs for later analysis.
type Recorder interface {
	RecordRun(report *model.RunReport) error
	Close() error
}
