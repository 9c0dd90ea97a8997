package export

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jask/orderguide/internal/table"
)

// CSVExporter writes the rows with a header line.
type CSVExporter struct {
	Dir string
	log *zap.Logger
}

func (e *CSVExporter) Format() string { return FormatCSV }

func (e *CSVExporter) Export(ctx context.Context, s Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := outputPath(e.Dir, s.ExportedAt, "csv")
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create export: %w", err)
	}
	if err := table.WriteCSV(f, s.Table); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	e.log.Info("order guide exported",
		zap.String("format", FormatCSV),
		zap.String("path", path),
		zap.Int("rows", s.Table.Len()),
	)
	return path, nil
}
