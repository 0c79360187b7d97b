package facade

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
)

// ExportFormat is the closed set of history export formats spec §6's
// `/api/export/executions` endpoint accepts.
type ExportFormat string

const (
	ExportJSON    ExportFormat = "json"
	ExportCSV     ExportFormat = "csv"
	ExportSummary ExportFormat = "summary"
)

// ExportHistory renders id's execution history in the requested format.
func (f *Facade) ExportHistory(id string, format ExportFormat) ([]byte, error) {
	entries := f.History(id)
	switch format {
	case ExportJSON, "":
		return json.MarshalIndent(entries, "", "  ")
	case ExportCSV:
		return exportHistoryCSV(entries)
	case ExportSummary:
		return []byte(exportHistorySummary(id, entries)), nil
	default:
		return nil, fmt.Errorf("facade: unknown export format %q", format)
	}
}

func exportHistoryCSV(entries []HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"key", "execution_id", "document_id", "started_at", "simulated", "success", "iterations_completed", "elapsed_ms", "trace_steps", "error_count"}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		row := []string{
			e.Key, e.ExecutionID, e.DocumentID, e.StartedAt, strconv.FormatBool(e.Simulated),
			strconv.FormatBool(e.Result.Success),
			strconv.Itoa(e.Result.Metrics.IterationsCompleted),
			strconv.FormatFloat(e.Result.Metrics.ElapsedMS, 'f', 3, 64),
			strconv.Itoa(e.Result.Metrics.TraceSteps),
			strconv.Itoa(len(e.Result.Errors)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportHistorySummary(id string, entries []HistoryEntry) string {
	successes := 0
	for _, e := range entries {
		if e.Result.Success {
			successes++
		}
	}
	summary := fmt.Sprintf("# Execution history: %s\n\n", id)
	summary += fmt.Sprintf("Total runs: %d\n", len(entries))
	summary += fmt.Sprintf("Successful: %d\n", successes)
	summary += fmt.Sprintf("Failed: %d\n", len(entries)-successes)
	return summary
}
