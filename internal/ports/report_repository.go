package ports

import (
	"context"

	"github.com/bft-labs/volbench/internal/domain"
)

// ReportRepository persists the report of a completed run.
type ReportRepository interface {
	// Save writes the report atomically so a crash never leaves a partial file.
	Save(ctx context.Context, report domain.Report) error
}
