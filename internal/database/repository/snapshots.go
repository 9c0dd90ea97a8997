package repository

import (
	"context"
	"database/sql"
	"errors"
)

// SnapshotRepo handles snapshot metadata.
type SnapshotRepo struct {
	db DBTX
}

func NewSnapshotRepo(db DBTX) *SnapshotRepo { return &SnapshotRepo{db: db} }

func (r *SnapshotRepo) Insert(ctx context.Context, s Snapshot) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO snapshots(id, session_id, exported_at, row_count, search, vendor_filter, category_filter, sort_column, sort_desc)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, s.ID, s.SessionID, s.ExportedAt, s.RowCount, s.Search, s.VendorFilter, s.CategoryFilter, s.SortColumn, s.SortDesc)
	return err
}

// Get returns nil when no snapshot has the id.
func (r *SnapshotRepo) Get(ctx context.Context, id string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, session_id, exported_at, row_count, search, vendor_filter, category_filter, sort_column, sort_desc
	FROM snapshots WHERE id = ?`, id)
	var s Snapshot
	err := row.Scan(&s.ID, &s.SessionID, &s.ExportedAt, &s.RowCount, &s.Search,
		&s.VendorFilter, &s.CategoryFilter, &s.SortColumn, &s.SortDesc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SnapshotRepo) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, exported_at, row_count, search, vendor_filter, category_filter, sort_column, sort_desc
	FROM snapshots ORDER BY exported_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.SessionID, &s.ExportedAt, &s.RowCount, &s.Search,
			&s.VendorFilter, &s.CategoryFilter, &s.SortColumn, &s.SortDesc); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
