package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/orderguide/internal/database"
	"github.com/jask/orderguide/internal/database/repository"
)

// SQLiteExporter writes a new snapshot database per export.
type SQLiteExporter struct {
	Dir string
	log *zap.Logger
}

func (e *SQLiteExporter) Format() string { return FormatSQLite }

func (e *SQLiteExporter) Export(ctx context.Context, s Snapshot) (string, error) {
	path, err := outputPath(e.Dir, s.ExportedAt, "db")
	if err != nil {
		return "", err
	}
	db, err := database.OpenMigrated(path)
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("prepare snapshot: %w", err)
	}
	defer db.Close()

	exportedAt := s.ExportedAt
	if exportedAt.IsZero() {
		exportedAt = database.Now()
	}
	meta := repository.Snapshot{
		ID:             uuid.NewString(),
		SessionID:      s.SessionID,
		ExportedAt:     exportedAt.UTC(),
		RowCount:       s.Table.Len(),
		Search:         s.Criteria.Search,
		VendorFilter:   s.Criteria.Vendor,
		CategoryFilter: s.Criteria.Category,
		SortColumn:     s.SortColumn,
		SortDesc:       s.Descending,
	}
	err = database.WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := repository.NewSnapshotRepo(tx).Insert(ctx, meta); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		vendors := repository.NewVendorRepo(tx)
		for _, v := range s.Vendors {
			if err := vendors.Insert(ctx, repository.Vendor{
				SnapshotID: meta.ID,
				VendorID:   v.ID,
				Name:       v.Name,
				MinOrder:   v.MinOrder,
				Email:      v.Email,
			}); err != nil {
				return fmt.Errorf("insert vendor %q: %w", v.Name, err)
			}
		}
		grid := repository.NewGuideRepo(tx)
		if err := grid.InsertColumns(ctx, meta.ID, s.Table.Columns); err != nil {
			return err
		}
		for i, row := range s.Table.Rows {
			if err := grid.InsertRow(ctx, meta.ID, i, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		_ = os.Remove(path)
		return "", err
	}
	e.log.Info("order guide exported",
		zap.String("format", FormatSQLite),
		zap.String("path", path),
		zap.String("snapshot", meta.ID),
		zap.Int("rows", meta.RowCount),
	)
	return path, nil
}
