package repository

import (
	"context"
	"fmt"
)

// GuideRepo stores the exported grid as positioned columns and cells.
type GuideRepo struct {
	db DBTX
}

func NewGuideRepo(db DBTX) *GuideRepo { return &GuideRepo{db: db} }

func (r *GuideRepo) InsertColumns(ctx context.Context, snapshotID string, columns []string) error {
	for pos, name := range columns {
		if _, err := r.db.ExecContext(ctx, `
		INSERT INTO guide_columns(snapshot_id, position, name) VALUES (?, ?, ?);
		`, snapshotID, pos, name); err != nil {
			return fmt.Errorf("insert column %q: %w", name, err)
		}
	}
	return nil
}

func (r *GuideRepo) InsertRow(ctx context.Context, snapshotID string, rowIndex int, cells []string) error {
	for pos, value := range cells {
		if _, err := r.db.ExecContext(ctx, `
		INSERT INTO guide_cells(snapshot_id, row_index, column_position, value) VALUES (?, ?, ?, ?);
		`, snapshotID, rowIndex, pos, value); err != nil {
			return fmt.Errorf("insert cell %d/%d: %w", rowIndex, pos, err)
		}
	}
	return nil
}

func (r *GuideRepo) Columns(ctx context.Context, snapshotID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT name FROM guide_columns WHERE snapshot_id = ? ORDER BY position`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Rows rebuilds the grid; width is the number of columns of the snapshot.
func (r *GuideRepo) Rows(ctx context.Context, snapshotID string, width int) ([][]string, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT row_index, column_position, value FROM guide_cells
	WHERE snapshot_id = ? ORDER BY row_index, column_position`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out [][]string
	for rows.Next() {
		var ri, ci int
		var value string
		if err := rows.Scan(&ri, &ci, &value); err != nil {
			return nil, err
		}
		for len(out) <= ri {
			out = append(out, make([]string, width))
		}
		if ci < width {
			out[ri][ci] = value
		}
	}
	return out, rows.Err()
}
