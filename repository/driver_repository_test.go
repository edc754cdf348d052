package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wholesaleDelivery/internal/geo"
	"wholesaleDelivery/internal/testutil"
	"wholesaleDelivery/models"
)

func TestDriverRegister(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)

	d, err := s.drivers.Register(ctx, DriverRegistration{
		Name:        " Rahul Sharma ",
		Phone:       "9876543210",
		VehicleType: models.VehicleLargeTruck,
		Location:    "Tezpur",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ID)
	assert.Equal(t, "Rahul Sharma", d.Name)
	assert.Equal(t, 5000.0, d.CapacityKg)
	assert.Equal(t, 30.0, d.CapacityM3)
	assert.Equal(t, geo.AssamCities["Tezpur"].Lat, d.Lat)
	assert.True(t, d.Available)

	got, err := s.drivers.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	second := mustRegisterDriver(t, ctx, s, "Amit")
	assert.Equal(t, int64(2), second.ID)

	all, err := s.drivers.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Rahul Sharma", all[0].Name)
	assert.Equal(t, models.VehicleMediumTruck, all[1].VehicleType)
}

func TestDriverRegister_Validation(t *testing.T) {
	valid := DriverRegistration{Name: "Rahul", Phone: "98765", VehicleType: models.VehicleMiniTruck, Location: "Jorhat"}
	cases := []struct {
		name   string
		mutate func(r *DriverRegistration)
		field  string
	}{
		{"missing name", func(r *DriverRegistration) { r.Name = "" }, "name"},
		{"missing phone", func(r *DriverRegistration) { r.Phone = "" }, "phone"},
		{"unknown vehicle", func(r *DriverRegistration) { r.VehicleType = "Bicycle" }, "vehicle_type"},
		{"unknown location", func(r *DriverRegistration) { r.Location = "Mumbai" }, "location"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := testutil.Ctx(t)
			s := newStores(t)
			in := valid
			tc.mutate(&in)

			_, err := s.drivers.Register(ctx, in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestDriverGetByID_NotFound(t *testing.T) {
	ctx := testutil.Ctx(t)
	s := newStores(t)
	_, err := s.drivers.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
