// Package export writes the visible order guide rows to disk, either as a
// CSV file or as a self-contained SQLite snapshot.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/jask/orderguide/internal/guide"
	"github.com/jask/orderguide/internal/table"
	"github.com/jask/orderguide/internal/vendor"
)

const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Snapshot is one exported view of the guide.
type Snapshot struct {
	SessionID  string
	Vendors    []vendor.Vendor
	Table      table.Table
	Criteria   guide.Criteria
	SortColumn string
	Descending bool
	ExportedAt time.Time
}

// Exporter writes a snapshot and returns the path it created.
type Exporter interface {
	Export(ctx context.Context, s Snapshot) (string, error)
	Format() string
}

// New picks the exporter for format, writing into dir.
func New(format, dir string, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch format {
	case FormatCSV, "":
		return &CSVExporter{Dir: dir, log: logger}, nil
	case FormatSQLite:
		return &SQLiteExporter{Dir: dir, log: logger}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// Visible returns the rows an export covers: the selected rows of view when
// any are selected, else the whole view.
func Visible(view table.Table, selected []int) table.Table {
	if len(selected) == 0 {
		return view.Clone()
	}
	return view.Pick(selected)
}

// outputPath returns a not-yet-existing order-guide-<timestamp>.<ext> in dir.
func outputPath(dir string, at time.Time, ext string) (string, error) {
	if at.IsZero() {
		at = time.Now()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir export dir: %w", err)
	}
	stamp := at.Format("20060102-150405")
	base := filepath.Join(dir, "order-guide-"+stamp)
	path := base + "." + ext
	for n := 2; ; n++ {
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		path = fmt.Sprintf("%s-%d.%s", base, n, ext)
	}
}
