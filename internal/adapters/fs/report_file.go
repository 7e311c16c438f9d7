package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bft-labs/volbench/internal/domain"
)

// ReportFileRepository implements ports.ReportRepository as a JSON file.
type ReportFileRepository struct {
	path string
}

// NewReportFileRepository creates a repository writing to path.
func NewReportFileRepository(path string) *ReportFileRepository {
	return &ReportFileRepository{path: path}
}

// Save writes the report to a temp file and renames it into place.
func (r *ReportFileRepository) Save(ctx context.Context, report domain.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

// Load reads a report written by Save.
func (r *ReportFileRepository) Load(ctx context.Context) (domain.Report, error) {
	var report domain.Report
	data, err := os.ReadFile(r.path)
	if err != nil {
		return report, err
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return report, err
	}
	return report, nil
}

// Path returns the report file location.
func (r *ReportFileRepository) Path() string {
	return r.path
}
