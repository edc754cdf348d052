// Package app wires the stores, pricing, auth and metrics that the HTTP and
// gRPC surfaces share.
package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"wholesaleDelivery/internal/auth"
	"wholesaleDelivery/internal/config"
	"wholesaleDelivery/internal/geo"
	"wholesaleDelivery/internal/metrics"
	"wholesaleDelivery/internal/pricing"
	"wholesaleDelivery/models"
	"wholesaleDelivery/repository"
)

// App is the shared application context.
type App struct {
	Table    *geo.Table
	Engine   *pricing.Engine
	Products repository.ProductRepositoryI
	Orders   repository.OrderRepositoryI
	Drivers  repository.DriverRepositoryI
	Issuer   *auth.Issuer
	Admin    *auth.AdminGate
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// New builds an App over an opened database.
func New(cfg *config.Config, d *sql.DB, logger *slog.Logger, m *metrics.Metrics) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New()
	}
	table := geo.NewAssamTable()
	engine := pricing.NewEngine(table,
		pricing.WithLogger(logger),
		pricing.WithFallbackHook(m.ObserveFallback),
	)
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	gate, err := auth.NewAdminGate(cfg.Auth.AdminPassword, issuer)
	if err != nil {
		return nil, err
	}
	return &App{
		Table:    table,
		Engine:   engine,
		Products: repository.NewProductRepository(d, table),
		Orders:   repository.NewOrderRepository(d, engine),
		Drivers:  repository.NewDriverRepository(d, table),
		Issuer:   issuer,
		Admin:    gate,
		Metrics:  m,
		Logger:   logger,
	}, nil
}

// Quote prices an order and counts it.
func (a *App) Quote(ctx context.Context, productID, quantity int64, destination string) (*pricing.Quote, error) {
	q, err := a.Orders.Quote(ctx, productID, quantity, destination)
	if err != nil {
		return nil, err
	}
	a.Metrics.QuotesTotal.Inc()
	return q, nil
}

// PlaceOrder places an order, recording the outcome in logs and metrics.
func (a *App) PlaceOrder(ctx context.Context, in repository.PlaceOrderInput) (*models.Order, error) {
	o, err := a.Orders.PlaceOrder(ctx, in)
	if err != nil {
		a.Metrics.OrdersRejected.WithLabelValues(rejectReason(err)).Inc()
		a.Logger.Info("order rejected", "product_id", in.ProductID, "quantity", in.Quantity, "error", err)
		return nil, err
	}
	a.Metrics.OrdersPlacedTotal.Inc()
	a.Logger.Info("order placed",
		"order_id", o.ID,
		"product_id", o.ProductID,
		"quantity", o.Quantity,
		"grand_total", o.GrandTotal.StringFixed(2),
	)
	return o, nil
}

// AcceptJob assigns an open order to a driver.
func (a *App) AcceptJob(ctx context.Context, orderID, driverID int64) (*models.Order, error) {
	o, err := a.Orders.AssignDriver(ctx, orderID, driverID)
	if err != nil {
		return nil, err
	}
	a.Metrics.OrderStatusChanges.WithLabelValues(string(o.Status)).Inc()
	a.Logger.Info("job accepted", "order_id", orderID, "driver_id", driverID)
	return o, nil
}

// UpdateDeliveryStatus changes the status of an order held by driverID.
func (a *App) UpdateDeliveryStatus(ctx context.Context, orderID, driverID int64, status models.OrderStatus) (*models.Order, error) {
	o, err := a.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.DriverID == nil || *o.DriverID != driverID {
		return nil, ErrNotAssigned
	}
	o, err = a.Orders.SetStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	a.Metrics.OrderStatusChanges.WithLabelValues(string(o.Status)).Inc()
	a.Logger.Info("order status changed", "order_id", orderID, "driver_id", driverID, "status", o.Status)
	return o, nil
}

// ErrNotAssigned is returned when a driver acts on an order it does not hold.
var ErrNotAssigned = errors.New("order is not assigned to this driver")

func rejectReason(err error) string {
	switch {
	case repository.IsValidation(err):
		return "validation"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
