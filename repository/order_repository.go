package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"wholesaleDelivery/internal/pricing"
	"wholesaleDelivery/models"
)

const orderColumns = `id, product_id, product_name, buyer_name, buyer_phone, quantity, delivery_location, delivery_address,
pickup_location, product_total, delivery_charge, grand_total, distance_km, status, driver_id, created_at, weight_kg, volume_m3`

// PlaceOrderInput is a buyer's order request.
type PlaceOrderInput struct {
	ProductID        int64  `json:"product_id"`
	Quantity         int64  `json:"quantity"`
	BuyerName        string `json:"buyer_name"`
	BuyerPhone       string `json:"buyer_phone"`
	DeliveryLocation string `json:"delivery_location"`
	DeliveryAddress  string `json:"delivery_address"`
}

// OrderRepository is the order store. It prices orders with a pricing.Engine
// and reads products through the same database.
type OrderRepository struct {
	db     *sql.DB
	engine *pricing.Engine
	now    func() time.Time
}

// OrderOption configures an OrderRepository.
type OrderOption func(*OrderRepository)

// WithClock replaces the clock used to stamp new orders.
func WithClock(now func() time.Time) OrderOption {
	return func(r *OrderRepository) { r.now = now }
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sql.DB, engine *pricing.Engine, opts ...OrderOption) *OrderRepository {
	r := &OrderRepository{db: db, engine: engine, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Quote prices an order without placing it or reserving stock.
func (r *OrderRepository) Quote(ctx context.Context, productID, quantity int64, destination string) (*pricing.Quote, error) {
	if quantity <= 0 {
		return nil, invalid("quantity", "must be positive")
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	p, err := getProduct(ctx, r.db, productID)
	if err != nil {
		return nil, err
	}
	if err := checkQuantity(p, quantity); err != nil {
		return nil, err
	}
	q := r.engine.Quote(p, quantity, destination)
	return &q, nil
}

func checkQuantity(p *models.Product, qty int64) error {
	if qty < p.MinQuantity {
		return invalid("quantity", "minimum order quantity is %d", p.MinQuantity)
	}
	if qty > p.Stock {
		return invalid("quantity", "only %d in stock", p.Stock)
	}
	return nil
}

// PlaceOrder validates the request against the product, prices it, takes the
// quantity out of stock and records the order, all in one transaction.
func (r *OrderRepository) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	p, err := getProduct(ctx, tx, in.ProductID)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.TrimSpace(in.BuyerName) == "":
		return nil, invalid("buyer_name", "is required")
	case strings.TrimSpace(in.BuyerPhone) == "":
		return nil, invalid("buyer_phone", "is required")
	case strings.TrimSpace(in.DeliveryAddress) == "":
		return nil, invalid("delivery_address", "is required")
	case strings.TrimSpace(in.DeliveryLocation) == "":
		return nil, invalid("delivery_location", "is required")
	case !r.engine.Table().Has(in.DeliveryLocation):
		return nil, invalid("delivery_location", "unknown location %q", in.DeliveryLocation)
	}
	if err := checkQuantity(p, in.Quantity); err != nil {
		return nil, err
	}

	q := r.engine.Quote(p, in.Quantity, in.DeliveryLocation)
	if err := decrementStock(ctx, tx, p.ID, in.Quantity); err != nil {
		return nil, err
	}

	o := &models.Order{
		ProductID:        p.ID,
		ProductName:      p.Name,
		BuyerName:        strings.TrimSpace(in.BuyerName),
		BuyerPhone:       strings.TrimSpace(in.BuyerPhone),
		Quantity:         in.Quantity,
		DeliveryLocation: in.DeliveryLocation,
		DeliveryAddress:  strings.TrimSpace(in.DeliveryAddress),
		PickupLocation:   p.Location,
		ProductTotal:     q.ProductTotal,
		DeliveryCharge:   q.DeliveryCharge,
		GrandTotal:       q.GrandTotal,
		DistanceKm:       q.DistanceKm,
		Status:           models.OrderStatusPlaced,
		CreatedAt:        r.now().UTC(),
		WeightKg:         p.WeightKg * float64(in.Quantity),
		VolumeM3:         p.VolumeM3 * float64(in.Quantity),
	}
	res, err := tx.ExecContext(ctx, `
INSERT INTO orders (product_id, product_name, buyer_name, buyer_phone, quantity, delivery_location, delivery_address,
                    pickup_location, product_total, delivery_charge, grand_total, distance_km, status, driver_id,
                    created_at, weight_kg, volume_m3)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,NULL,?,?,?)`,
		o.ProductID, o.ProductName, o.BuyerName, o.BuyerPhone, o.Quantity, o.DeliveryLocation, o.DeliveryAddress,
		o.PickupLocation, o.ProductTotal, o.DeliveryCharge, o.GrandTotal, o.DistanceKm, string(o.Status),
		o.CreatedAt, o.WeightKg, o.VolumeM3)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	if o.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID fetches an order, or a NotFoundError.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return getOrder(ctx, r.db, id)
}

func getOrder(ctx context.Context, q queryer, id int64) (*models.Order, error) {
	o, err := scanOrder(q.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("order", id)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// AssignDriver hands an order still in Order Placed to driverID and moves it
// to Driver Assigned. Only one of several concurrent callers can win.
func (r *OrderRepository) AssignDriver(ctx context.Context, orderID, driverID int64) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := getDriver(ctx, tx, driverID); err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `UPDATE orders SET driver_id = ?, status = ? WHERE id = ? AND status = ?`,
		driverID, string(models.OrderStatusDriverAssigned), orderID, string(models.OrderStatusPlaced))
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		o, err := getOrder(ctx, tx, orderID)
		if err != nil {
			return nil, err
		}
		return nil, invalid("status", "order %d is %s and can no longer be accepted", orderID, o.Status)
	}
	o, err := getOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

// SetStatus moves an order to status. Any driver-settable status may follow
// any other; only Delivered is final.
func (r *OrderRepository) SetStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	if !status.IsDriverSettable() {
		return nil, invalid("status", "%q is not a status that can be set", status)
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	o, err := getOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.IsTerminal() {
		return nil, invalid("status", "order %d is already %s", orderID, o.Status)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, string(status), orderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	o.Status = status
	return o, nil
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var status string
	var driverID sql.NullInt64
	if err := row.Scan(&o.ID, &o.ProductID, &o.ProductName, &o.BuyerName, &o.BuyerPhone, &o.Quantity,
		&o.DeliveryLocation, &o.DeliveryAddress, &o.PickupLocation, &o.ProductTotal, &o.DeliveryCharge,
		&o.GrandTotal, &o.DistanceKm, &status, &driverID, &o.CreatedAt, &o.WeightKg, &o.VolumeM3); err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	if driverID.Valid {
		v := driverID.Int64
		o.DriverID = &v
	}
	return &o, nil
}
