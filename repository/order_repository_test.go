package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wholesaleDelivery/internal/testutil"
	"wholesaleDelivery/models"
)

func TestPlaceOrder_Success(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	p := mustCreateProduct(t, ctx, s, fertilizer())

	o, err := s.orders.PlaceOrder(ctx, fertilizerOrder(p.ID))
	require.NoError(t, err)

	assert.Equal(t, int64(1), o.ID)
	assert.Equal(t, models.OrderStatusPlaced, o.Status)
	assert.Nil(t, o.DriverID)
	assert.Equal(t, "Urea Fertilizer", o.ProductName)
	assert.Equal(t, "Dibrugarh", o.PickupLocation)
	assert.Equal(t, "8000", o.ProductTotal.String())
	assert.Equal(t, "7170.18", o.DeliveryCharge.StringFixed(2))
	assert.Equal(t, "15170.18", o.GrandTotal.StringFixed(2))
	assert.InDelta(t, 348.34, o.DistanceKm, 1e-9)
	assert.Equal(t, 500.0, o.WeightKg)
	assert.Equal(t, 5.0, o.VolumeM3)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 1, 0, 0, time.UTC), o.CreatedAt)

	prod, err := s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(90), prod.Stock)

	got, err := s.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, got.GrandTotal.Equal(o.GrandTotal))
	assert.Equal(t, o.CreatedAt, got.CreatedAt.UTC())
	assert.Equal(t, "Fancy Bazar, Guwahati", got.DeliveryAddress)
}

func TestPlaceOrder_GrandTotalIdentity(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	p := mustCreateProduct(t, ctx, s, thermocol())

	o, err := s.orders.PlaceOrder(ctx, PlaceOrderInput{
		ProductID:        p.ID,
		Quantity:         20,
		BuyerName:        "Mina Bora",
		BuyerPhone:       "9000000002",
		DeliveryLocation: "Howly",
		DeliveryAddress:  "Station Road",
	})
	require.NoError(t, err)
	assert.Equal(t, "435.09", o.DeliveryCharge.StringFixed(2))
	assert.True(t, o.GrandTotal.Equal(o.ProductTotal.Add(o.DeliveryCharge)))
	assert.Equal(t, "1435.09", o.GrandTotal.StringFixed(2))
}

func TestPlaceOrder_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(in *PlaceOrderInput)
		field  string
	}{
		{"below minimum", func(in *PlaceOrderInput) { in.Quantity = 4 }, "quantity"},
		{"above stock", func(in *PlaceOrderInput) { in.Quantity = 101 }, "quantity"},
		{"zero quantity", func(in *PlaceOrderInput) { in.Quantity = 0 }, "quantity"},
		{"missing buyer name", func(in *PlaceOrderInput) { in.BuyerName = "" }, "buyer_name"},
		{"missing buyer phone", func(in *PlaceOrderInput) { in.BuyerPhone = " " }, "buyer_phone"},
		{"missing address", func(in *PlaceOrderInput) { in.DeliveryAddress = "" }, "delivery_address"},
		{"missing destination", func(in *PlaceOrderInput) { in.DeliveryLocation = "" }, "delivery_location"},
		{"unknown destination", func(in *PlaceOrderInput) { in.DeliveryLocation = "Shillong" }, "delivery_location"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := testutil.Ctx(t)
			s := newStores(t)
			p := mustCreateProduct(t, ctx, s, fertilizer())

			in := fertilizerOrder(p.ID)
			tc.mutate(&in)
			_, err := s.orders.PlaceOrder(ctx, in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)

			prod, err := s.products.GetByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(100), prod.Stock, "stock untouched on rejection")
			orders, err := s.orders.List(ctx, OrderFilter{})
			require.NoError(t, err)
			assert.Empty(t, orders)
		})
	}
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)

	_, err := s.orders.PlaceOrder(ctx, fertilizerOrder(7))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrder_UnknownDestinationRejected(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	p := mustCreateProduct(t, ctx, s, fertilizer())

	for _, dest := range []string{"Shillong", ""} {
		in := fertilizerOrder(p.ID)
		in.DeliveryLocation = dest
		_, err := s.orders.PlaceOrder(ctx, in)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "destination %q", dest)
		assert.Equal(t, "delivery_location", ve.Field)
	}

	jobs, err := s.orders.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs, "nothing reaches the job board")

	q, err := s.orders.Quote(ctx, p.ID, 10, "Shillong")
	require.NoError(t, err)
	assert.True(t, q.FallbackUsed, "quotes still price unknown names from the depot")
	assert.Equal(t, "7170.18", q.DeliveryCharge.StringFixed(2))
}

func TestPlaceOrder_SnapshotSurvivesProductChanges(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	p := mustCreateProduct(t, ctx, s, fertilizer())
	o, err := s.orders.PlaceOrder(ctx, fertilizerOrder(p.ID))
	require.NoError(t, err)

	name := "Renamed"
	price := decimal.NewFromInt(1)
	location := "Silchar"
	_, err = s.products.Update(ctx, p.ID, ProductUpdate{Name: &name, Price: &price, Location: &location})
	require.NoError(t, err)

	got, err := s.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Urea Fertilizer", got.ProductName)
	assert.Equal(t, "Dibrugarh", got.PickupLocation)
	assert.Equal(t, "15170.18", got.GrandTotal.StringFixed(2))

	require.NoError(t, s.products.Delete(ctx, p.ID))
	got, err = s.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ProductID)
	assert.Equal(t, "Urea Fertilizer", got.ProductName)
	assert.Equal(t, "8000", got.ProductTotal.String())
}

func TestPlaceOrder_ConcurrentBuyersCannotOversell(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	prod := fertilizer()
	prod.Stock = 30
	p := mustCreateProduct(t, ctx, s, prod)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.orders.PlaceOrder(ctx, fertilizerOrder(p.ID))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	placed := 0
	for err := range errs {
		if err == nil {
			placed++
			continue
		}
		assert.True(t, IsValidation(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 3, placed)

	got, err := s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Stock)
}

func TestQuote(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	p := mustCreateProduct(t, ctx, s, fertilizer())

	q, err := s.orders.Quote(ctx, p.ID, 10, "Guwahati")
	require.NoError(t, err)
	assert.Equal(t, "15170.18", q.GrandTotal.StringFixed(2))
	assert.False(t, q.FallbackUsed)

	_, err = s.orders.Quote(ctx, 99, 10, "Guwahati")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.orders.Quote(ctx, p.ID, 0, "Guwahati")
	assert.True(t, IsValidation(err))
	_, err = s.orders.Quote(ctx, p.ID, 4, "Guwahati")
	assert.True(t, IsValidation(err), "below minimum")
	_, err = s.orders.Quote(ctx, p.ID, 101, "Guwahati")
	assert.True(t, IsValidation(err), "above stock")

	prod, err := s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), prod.Stock, "quoting does not reserve stock")
}

func TestAssignDriver(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	p := mustCreateProduct(t, ctx, s, fertilizer())
	o, err := s.orders.PlaceOrder(ctx, fertilizerOrder(p.ID))
	require.NoError(t, err)
	rahul := mustRegisterDriver(t, ctx, s, "Rahul")
	amit := mustRegisterDriver(t, ctx, s, "Amit")

	_, err = s.orders.AssignDriver(ctx, o.ID, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.orders.AssignDriver(ctx, 99, rahul.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assigned, err := s.orders.AssignDriver(ctx, o.ID, rahul.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDriverAssigned, assigned.Status)
	require.NotNil(t, assigned.DriverID)
	assert.Equal(t, rahul.ID, *assigned.DriverID)

	_, err = s.orders.AssignDriver(ctx, o.ID, amit.ID)
	assert.True(t, IsValidation(err))
	got, err := s.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, rahul.ID, *got.DriverID)
}

func TestSetStatus(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	p := mustCreateProduct(t, ctx, s, fertilizer())
	o, err := s.orders.PlaceOrder(ctx, fertilizerOrder(p.ID))
	require.NoError(t, err)

	_, err = s.orders.SetStatus(ctx, o.ID, models.OrderStatusPlaced)
	assert.True(t, IsValidation(err), "Order Placed is not settable")
	_, err = s.orders.SetStatus(ctx, o.ID, "Lost")
	assert.True(t, IsValidation(err))
	_, err = s.orders.SetStatus(ctx, 99, models.OrderStatusPickedUp)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.orders.SetStatus(ctx, o.ID, models.OrderStatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInTransit, got.Status)

	// Moving backwards is allowed.
	got, err = s.orders.SetStatus(ctx, o.ID, models.OrderStatusPickedUp)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPickedUp, got.Status)

	_, err = s.orders.SetStatus(ctx, o.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	_, err = s.orders.SetStatus(ctx, o.ID, models.OrderStatusInTransit)
	assert.True(t, IsValidation(err), "Delivered is final")

	stored, err := s.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)
}
