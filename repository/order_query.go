package repository

import (
	"context"
	"database/sql"
	"strings"

	"wholesaleDelivery/models"
)

// OrderFilter narrows List. Zero values match everything.
type OrderFilter struct {
	Statuses  []models.OrderStatus
	DriverID  *int64
	ProductID *int64
	Limit     int
}

// List returns orders matching f, newest first.
func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var where []string
	var args []any

	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		where = append(where, "status IN ("+strings.Join(placeholders, ",")+")")
	}
	if f.DriverID != nil {
		where = append(where, "driver_id = ?")
		args = append(args, *f.DriverID)
	}
	if f.ProductID != nil {
		where = append(where, "product_id = ?")
		args = append(args, *f.ProductID)
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderRows(rows)
}

// ListAvailable returns the job board: orders no driver has accepted yet,
// oldest first.
func (r *OrderRepository) ListAvailable(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE status = ? AND driver_id IS NULL
ORDER BY created_at ASC, id ASC`, string(models.OrderStatusPlaced))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderRows(rows)
}

// ListActiveForDriver returns the orders held by driverID that are not yet
// delivered, oldest first.
func (r *OrderRepository) ListActiveForDriver(ctx context.Context, driverID int64) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE driver_id = ? AND status <> ?
ORDER BY created_at ASC, id ASC`, driverID, string(models.OrderStatusDelivered))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderRows(rows)
}

func scanOrderRows(rows *sql.Rows) ([]models.Order, error) {
	out := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
