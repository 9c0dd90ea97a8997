package repository

import "context"

// VendorRepo handles the vendors captured with a snapshot.
type VendorRepo struct {
	db DBTX
}

func NewVendorRepo(db DBTX) *VendorRepo { return &VendorRepo{db: db} }

func (r *VendorRepo) Insert(ctx context.Context, v Vendor) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO vendors(snapshot_id, vendor_id, name, min_order, email) VALUES (?, ?, ?, ?, ?);
	`, v.SnapshotID, v.VendorID, v.Name, v.MinOrder, v.Email)
	return err
}

func (r *VendorRepo) List(ctx context.Context, snapshotID string) ([]Vendor, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT snapshot_id, vendor_id, name, min_order, email
	FROM vendors WHERE snapshot_id = ? ORDER BY vendor_id`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.SnapshotID, &v.VendorID, &v.Name, &v.MinOrder, &v.Email); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
