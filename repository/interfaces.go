package repository

import (
	"context"
	"database/sql"
	"time"

	"wholesaleDelivery/internal/pricing"
	"wholesaleDelivery/models"
)

const (
	queryTimeout = 3 * time.Second
	listTimeout  = 5 * time.Second
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// ProductRepositoryI is the catalog store.
type ProductRepositoryI interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, f ProductFilter) ([]models.Product, error)
	Update(ctx context.Context, id int64, u ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	DecrementStock(ctx context.Context, id, qty int64) error
	Categories(ctx context.Context) ([]string, error)
	Locations(ctx context.Context) ([]string, error)
}

// OrderRepositoryI is the order store.
type OrderRepositoryI interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error)
	Quote(ctx context.Context, productID, quantity int64, destination string) (*pricing.Quote, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, f OrderFilter) ([]models.Order, error)
	ListAvailable(ctx context.Context) ([]models.Order, error)
	ListActiveForDriver(ctx context.Context, driverID int64) ([]models.Order, error)
	AssignDriver(ctx context.Context, orderID, driverID int64) (*models.Order, error)
	SetStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error)
	Summary(ctx context.Context) (*Summary, error)
	StatusCounts(ctx context.Context) ([]StatusCount, error)
	RevenueByProduct(ctx context.Context) ([]ProductRevenue, error)
}

// DriverRepositoryI is the driver store.
type DriverRepositoryI interface {
	Register(ctx context.Context, in DriverRegistration) (*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	List(ctx context.Context) ([]models.Driver, error)
}

var (
	_ ProductRepositoryI = (*ProductRepository)(nil)
	_ OrderRepositoryI   = (*OrderRepository)(nil)
	_ DriverRepositoryI  = (*DriverRepository)(nil)
)
