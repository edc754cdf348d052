package repository

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wholesaleDelivery/internal/geo"
	"wholesaleDelivery/internal/testutil"
	"wholesaleDelivery/models"
)

func TestProductCreate_AssignsMaxPlusOneIDs(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)

	a := mustCreateProduct(t, ctx, s, fertilizer())
	b := mustCreateProduct(t, ctx, s, thermocol())
	c := mustCreateProduct(t, ctx, s, fertilizer())
	require.Equal(t, []int64{1, 2, 3}, []int64{a.ID, b.ID, c.ID})

	require.NoError(t, s.products.Delete(ctx, c.ID))
	d := mustCreateProduct(t, ctx, s, thermocol())
	assert.Equal(t, int64(3), d.ID, "highest id was freed, so it is reused")

	require.NoError(t, s.products.Delete(ctx, a.ID))
	e := mustCreateProduct(t, ctx, s, thermocol())
	assert.Equal(t, int64(4), e.ID, "gaps below the maximum are not filled")
}

func TestProductCreate_CopiesCoordinates(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)

	p := mustCreateProduct(t, ctx, s, fertilizer())
	want := geo.AssamCities["Dibrugarh"]
	assert.Equal(t, want.Lat, p.Lat)
	assert.Equal(t, want.Lng, p.Lng)

	got, err := s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Lat, got.Lat)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(800)))
}

func TestProductCreate_LeavesArgumentUntouched(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)

	in := fertilizer()
	created := mustCreateProduct(t, ctx, s, in)
	assert.NotSame(t, in, created)
	assert.Zero(t, in.ID)
	assert.Zero(t, in.Lat)
	assert.Zero(t, in.Lng)
	assert.Equal(t, int64(1), created.ID)
}

func TestProductCreate_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *models.Product)
		field  string
	}{
		{"missing name", func(p *models.Product) { p.Name = "  " }, "name"},
		{"missing supplier", func(p *models.Product) { p.Supplier = "" }, "supplier"},
		{"missing description", func(p *models.Product) { p.Description = "" }, "description"},
		{"negative price", func(p *models.Product) { p.Price = decimal.NewFromInt(-1) }, "price"},
		{"zero weight", func(p *models.Product) { p.WeightKg = 0 }, "weight_kg"},
		{"zero volume", func(p *models.Product) { p.VolumeM3 = 0 }, "volume_m3"},
		{"zero min quantity", func(p *models.Product) { p.MinQuantity = 0 }, "min_quantity"},
		{"negative stock", func(p *models.Product) { p.Stock = -1 }, "stock"},
		{"unknown location", func(p *models.Product) { p.Location = "Atlantis" }, "location"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := testutil.Ctx(t)
			s := newStores(t)
			p := fertilizer()
			tc.mutate(p)

			_, err := s.products.Create(ctx, p)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)

			all, err := s.products.List(ctx, ProductFilter{})
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestProductList_Filters(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)

	mustCreateProduct(t, ctx, s, fertilizer())
	mustCreateProduct(t, ctx, s, thermocol())
	teak := fertilizer()
	teak.Name = "Teak Wood Planks"
	teak.Category = "Timber"
	teak.Location = "Guwahati"
	teak.Description = "Seasoned TEAK for furniture"
	mustCreateProduct(t, ctx, s, teak)

	all, err := s.products.List(ctx, ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1), all[0].ID)

	byCategory, err := s.products.List(ctx, ProductFilter{Category: "Packaging"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Thermocol Sheets", byCategory[0].Name)

	byLocation, err := s.products.List(ctx, ProductFilter{Location: "Dibrugarh"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)

	byText, err := s.products.List(ctx, ProductFilter{Query: "teak"})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "Timber", byText[0].Category)

	byDescription, err := s.products.List(ctx, ProductFilter{Query: "INSULATION"})
	require.NoError(t, err)
	require.Len(t, byDescription, 1)

	none, err := s.products.List(ctx, ProductFilter{Category: "Timber", Location: "Dibrugarh"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductUpdate(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	p := mustCreateProduct(t, ctx, s, fertilizer())

	price := decimal.RequireFromString("850.50")
	location := "Jorhat"
	updated, err := s.products.Update(ctx, p.ID, ProductUpdate{Price: &price, Location: &location})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, "Jorhat", updated.Location)
	assert.Equal(t, geo.AssamCities["Jorhat"].Lat, updated.Lat)
	assert.Equal(t, "Urea Fertilizer", updated.Name, "unnamed fields are kept")

	got, err := s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(price))
	assert.Equal(t, "Jorhat", got.Location)

	zero := 0.0
	_, err = s.products.Update(ctx, p.ID, ProductUpdate{WeightKg: &zero})
	assert.True(t, IsValidation(err))
	got, err = s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.WeightKg)

	_, err = s.products.Update(ctx, 99, ProductUpdate{Price: &price})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	p := mustCreateProduct(t, ctx, s, fertilizer())

	require.NoError(t, s.products.Delete(ctx, p.ID))
	_, err := s.products.GetByID(ctx, p.ID)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "product", nf.Entity)

	assert.ErrorIs(t, s.products.Delete(ctx, p.ID), ErrNotFound)
}

func TestProductDecrementStock(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	p := mustCreateProduct(t, ctx, s, fertilizer())

	require.NoError(t, s.products.DecrementStock(ctx, p.ID, 40))
	got, err := s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.Stock)

	err = s.products.DecrementStock(ctx, p.ID, 61)
	assert.True(t, IsValidation(err))
	got, err = s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.Stock)

	require.NoError(t, s.products.DecrementStock(ctx, p.ID, 60))
	assert.True(t, IsValidation(s.products.DecrementStock(ctx, p.ID, 0)))
	assert.ErrorIs(t, s.products.DecrementStock(ctx, 42, 1), ErrNotFound)
}

func TestProductMenus(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)

	cats, err := s.products.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	mustCreateProduct(t, ctx, s, thermocol())
	mustCreateProduct(t, ctx, s, fertilizer())
	mustCreateProduct(t, ctx, s, fertilizer())

	cats, err = s.products.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Agriculture", "Packaging"}, cats)

	locs, err := s.products.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Barpeta Road", "Dibrugarh"}, locs)
}
