package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"wholesaleDelivery/internal/geo"
	"wholesaleDelivery/internal/pricing"
	"wholesaleDelivery/internal/testutil"
	"wholesaleDelivery/models"
)

type stores struct {
	products *ProductRepository
	orders   *OrderRepository
	drivers  *DriverRepository
}

// stepClock returns a clock that advances one minute per call.
func stepClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newStores(t *testing.T) stores {
	t.Helper()
	d := testutil.OpenInMemoryDB(t)
	table := geo.NewAssamTable()
	engine := pricing.NewEngine(table)
	return stores{
		products: NewProductRepository(d, table),
		orders:   NewOrderRepository(d, engine, WithClock(stepClock())),
		drivers:  NewDriverRepository(d, table),
	}
}

func fertilizer() *models.Product {
	return &models.Product{
		Name:        "Urea Fertilizer",
		Category:    "Agriculture",
		Price:       decimal.NewFromInt(800),
		WeightKg:    50,
		VolumeM3:    0.5,
		MinQuantity: 5,
		Unit:        "bag",
		Supplier:    "Brahmaputra Agro",
		Location:    "Dibrugarh",
		Description: "Nitrogen fertilizer in 50 kg bags",
		Stock:       100,
	}
}

func thermocol() *models.Product {
	return &models.Product{
		Name:        "Thermocol Sheets",
		Category:    "Packaging",
		Price:       decimal.NewFromInt(50),
		WeightKg:    0.5,
		VolumeM3:    0.15,
		MinQuantity: 10,
		Unit:        "sheet",
		Supplier:    "Barpeta Packaging",
		Location:    "Barpeta Road",
		Description: "Lightweight insulation and packing sheets",
		Stock:       500,
	}
}

func mustCreateProduct(t *testing.T, ctx context.Context, s stores, p *models.Product) *models.Product {
	t.Helper()
	created, err := s.products.Create(ctx, p)
	require.NoError(t, err)
	return created
}

func mustRegisterDriver(t *testing.T, ctx context.Context, s stores, name string) *models.Driver {
	t.Helper()
	d, err := s.drivers.Register(ctx, DriverRegistration{
		Name:        name,
		Phone:       "9876543210",
		VehicleType: models.VehicleMediumTruck,
		Location:    "Guwahati",
	})
	require.NoError(t, err)
	return d
}

func fertilizerOrder(productID int64) PlaceOrderInput {
	return PlaceOrderInput{
		ProductID:        productID,
		Quantity:         10,
		BuyerName:        "Ranjit Das",
		BuyerPhone:       "9000000001",
		DeliveryLocation: "Guwahati",
		DeliveryAddress:  "Fancy Bazar, Guwahati",
	}
}
