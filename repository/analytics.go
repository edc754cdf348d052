package repository

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"wholesaleDelivery/models"
)

// Summary holds the admin dashboard totals.
type Summary struct {
	Products int64           `json:"products"`
	Orders   int64           `json:"orders"`
	Drivers  int64           `json:"drivers"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// ProductRevenue is the grand total billed for one product name.
type ProductRevenue struct {
	ProductName string          `json:"product_name"`
	Orders      int64           `json:"orders"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// Summary counts products, orders and drivers and sums the grand totals of
// every order placed.
func (r *OrderRepository) Summary(ctx context.Context) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var s Summary
	err := r.db.QueryRowContext(ctx, `
SELECT (SELECT COUNT(*) FROM products),
       (SELECT COUNT(*) FROM orders),
       (SELECT COUNT(*) FROM drivers)`).Scan(&s.Products, &s.Orders, &s.Drivers)
	if err != nil {
		return nil, err
	}

	// Money is stored as text; sum it here rather than through SQLite's REAL.
	rows, err := r.db.QueryContext(ctx, `SELECT grand_total FROM orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	s.Revenue = decimal.Zero
	for rows.Next() {
		var v decimal.Decimal
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		s.Revenue = s.Revenue.Add(v)
	}
	return &s, rows.Err()
}

// StatusCounts returns how many orders are in each status, listing every
// known status even when its count is zero.
func (r *OrderRepository) StatusCounts(ctx context.Context) ([]StatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[models.OrderStatus]int64{}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[models.OrderStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	all := append([]models.OrderStatus{models.OrderStatusPlaced}, models.DriverStatuses...)
	out := make([]StatusCount, 0, len(all))
	for _, s := range all {
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	return out, nil
}

// RevenueByProduct sums grand totals per frozen product name, highest first.
func (r *OrderRepository) RevenueByProduct(ctx context.Context) ([]ProductRevenue, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT product_name, grand_total FROM orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var order []string
	byName := map[string]*ProductRevenue{}
	for rows.Next() {
		var name string
		var total decimal.Decimal
		if err := rows.Scan(&name, &total); err != nil {
			return nil, err
		}
		pr, ok := byName[name]
		if !ok {
			pr = &ProductRevenue{ProductName: name, Revenue: decimal.Zero}
			byName[name] = pr
			order = append(order, name)
		}
		pr.Orders++
		pr.Revenue = pr.Revenue.Add(total)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]ProductRevenue, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out, nil
}
