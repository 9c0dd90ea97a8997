package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Snapshot represents a snapshots row: one exported guide view.
type Snapshot struct {
	ID             string
	SessionID      string
	ExportedAt     time.Time
	RowCount       int
	Search         string
	VendorFilter   string
	CategoryFilter string
	SortColumn     string
	SortDesc       bool
}

// Vendor represents a vendors row.
type Vendor struct {
	SnapshotID string
	VendorID   int
	Name       string
	MinOrder   string
	Email      string
}
