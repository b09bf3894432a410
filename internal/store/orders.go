// internal/store/orders.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Orders resolves order relationships: item store ids, store owners,
// and the delivery assignment.
type Orders struct {
	db *sql.DB
}

func NewOrders(db *sql.DB) *Orders {
	return &Orders{db: db}
}

// StoreIDs returns the distinct store ids across the order's items.
func (s *Orders) StoreIDs(ctx context.Context, orderID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT store_id FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan store id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// OwnerIDs returns the distinct non-null owner ids for the given
// stores. Stores without an owner on record are filtered here rather
// than treated as an error.
func (s *Orders) OwnerIDs(ctx context.Context, storeIDs []string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT owner_id FROM stores WHERE id = ANY($1) AND owner_id IS NOT NULL`,
		pq.Array(storeIDs))
	if err != nil {
		return nil, fmt.Errorf("query store owners: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan owner id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DriverID returns the driver assigned to the order's delivery. An
// absent delivery row or a null driver_id both return empty without
// error; the dispatcher decides what that means.
func (s *Orders) DriverID(ctx context.Context, orderID string) (string, error) {
	var driverID sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT driver_id FROM deliveries WHERE order_id = $1`, orderID).Scan(&driverID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query delivery: %w", err)
	}
	if !driverID.Valid {
		return "", nil
	}
	return driverID.String, nil
}
