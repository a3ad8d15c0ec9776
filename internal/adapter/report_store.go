// Package adapter provides persistence adapters around the engine's report
// output.
package adapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/polyllc/gotester/pkg/journal"
)

const (
	latestReportName = "latest.json"
	historyName      = "history.jsonl"
)

// StoredReport is the decoded form of the engine's JSON report envelope.
type StoredReport struct {
	TestResults []StoredGroup `json:"testResults"`
}

// StoredGroup is one decoded group of a stored report.
type StoredGroup struct {
	Name       string            `json:"name"`
	Status     string            `json:"status"`
	NumPassing int               `json:"numPassing"`
	NumTotal   int               `json:"numTotal"`
	Elapsed    float64           `json:"elapsed"`
	Printables []StoredPrintable `json:"printables"`
}

// StoredPrintable is one decoded child entry. Passed is nil for entries with
// no pass semantics (messages, detached errors).
type StoredPrintable struct {
	Type       string  `json:"type"`
	Message    string  `json:"message"`
	Passed     *bool   `json:"passed,omitempty"`
	TestIndex  int     `json:"testIndex,omitempty"`
	Kind       string  `json:"kind,omitempty"`
	Code       int     `json:"code,omitempty"`
	Elapsed    float64 `json:"elapsed,omitempty"`
	GroupID    int64   `json:"groupId,omitempty"`
	GroupLabel string  `json:"groupLabel,omitempty"`

	// Errors holds a result's attached error entries.
	Errors []StoredPrintable `json:"errors,omitempty"`
}

// Passing reports the filterable pass state of the entry.
func (p StoredPrintable) Passing() bool {
	return p.Passed == nil || *p.Passed
}

// RunRecord is one saved run in the report history journal.
type RunRecord struct {
	SavedAt    time.Time       `json:"savedAt"`
	NumPassing int             `json:"numPassing"`
	NumTotal   int             `json:"numTotal"`
	Report     json.RawMessage `json:"report"`
}

// ReportStore saves and loads report envelopes under a reports directory.
type ReportStore interface {
	SaveReport(dir string, report []byte) error
	LoadReport(dir string) (StoredReport, error)
	History(dir string) ([]RunRecord, error)
}

type localReportStore struct{}

// NewReportStore creates a ReportStore backed by the local filesystem.
func NewReportStore() ReportStore {
	return localReportStore{}
}

// SaveReport writes the envelope to <dir>/latest.json and appends it, with
// aggregate counts, to the run-history journal.
func (localReportStore) SaveReport(dir string, report []byte) error {
	decoded, err := decodeReport(report)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create reports directory", "path", dir, "error", err)
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	latest := filepath.Join(dir, latestReportName)
	if err := os.WriteFile(latest, report, 0o640); err != nil {
		slog.Error("failed to write report", "path", latest, "error", err)
		return fmt.Errorf("failed to write report: %w", err)
	}

	record := RunRecord{SavedAt: time.Now().UTC(), Report: report}
	for _, g := range decoded.TestResults {
		record.NumPassing += g.NumPassing
		record.NumTotal += g.NumTotal
	}

	history, err := journal.Open[RunRecord](filepath.Join(dir, historyName))
	if err != nil {
		return err
	}

	defer func() {
		if err := history.Close(); err != nil {
			slog.Error("failed to close history journal", "path", history.Path(), "error", err)
		}
	}()

	if err := history.Append(record); err != nil {
		return err
	}

	slog.Debug("saved report", "path", latest, "passing", record.NumPassing, "total", record.NumTotal)

	return nil
}

// LoadReport reads and decodes <dir>/latest.json.
func (localReportStore) LoadReport(dir string) (StoredReport, error) {
	latest := filepath.Join(dir, latestReportName)

	raw, err := os.ReadFile(latest)
	if err != nil {
		slog.Error("failed to read report", "path", latest, "error", err)
		return StoredReport{}, fmt.Errorf("failed to read report: %w", err)
	}

	return decodeReport(raw)
}

// History replays the run-history journal, oldest first.
func (localReportStore) History(dir string) ([]RunRecord, error) {
	history, err := journal.Open[RunRecord](filepath.Join(dir, historyName))
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := history.Close(); err != nil {
			slog.Error("failed to close history journal", "path", history.Path(), "error", err)
		}
	}()

	records := make([]RunRecord, 0, history.Len())

	err = history.Range(func(_ uint64, record RunRecord) error {
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func decodeReport(raw []byte) (StoredReport, error) {
	var report StoredReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return StoredReport{}, fmt.Errorf("failed to decode report: %w", err)
	}

	return report, nil
}
