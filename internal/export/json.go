package export

import (
	"encoding/json"
	"fmt"
	"os"

	"WarrantSentinel/internal/model"
)

// WriteJSON writes the full run report as indented JSON, the
// machine-readable counterpart of the CSV selection.
func WriteJSON(path string, report *model.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
