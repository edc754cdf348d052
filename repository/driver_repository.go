package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"wholesaleDelivery/internal/geo"
	"wholesaleDelivery/models"
)

const driverColumns = `id, name, phone, vehicle_type, capacity_kg, capacity_m3, location, lat, lng, available`

// DriverRegistration is the self-registration form of a driver.
type DriverRegistration struct {
	Name        string             `json:"name"`
	Phone       string             `json:"phone"`
	VehicleType models.VehicleType `json:"vehicle_type"`
	Location    string             `json:"location"`
}

// DriverRepository is the driver store.
type DriverRepository struct {
	db    *sql.DB
	table *geo.Table
}

// NewDriverRepository creates a DriverRepository resolving locations in table.
func NewDriverRepository(db *sql.DB, table *geo.Table) *DriverRepository {
	return &DriverRepository{db: db, table: table}
}

// Register validates in and stores a new available driver. Capacity comes
// from the vehicle type and coordinates from the geo table.
func (r *DriverRepository) Register(ctx context.Context, in DriverRegistration) (*models.Driver, error) {
	name, phone := strings.TrimSpace(in.Name), strings.TrimSpace(in.Phone)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if phone == "" {
		return nil, invalid("phone", "is required")
	}
	capacity, ok := models.CapacityFor(in.VehicleType)
	if !ok {
		return nil, invalid("vehicle_type", "unknown vehicle type %q", in.VehicleType)
	}
	pt, ok := r.table.Lookup(in.Location)
	if !ok {
		return nil, invalid("location", "unknown location %q", in.Location)
	}
	d := &models.Driver{
		Name:        name,
		Phone:       phone,
		VehicleType: in.VehicleType,
		CapacityKg:  capacity.Kg,
		CapacityM3:  capacity.M3,
		Location:    in.Location,
		Lat:         pt.Lat,
		Lng:         pt.Lng,
		Available:   true,
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO drivers (id, name, phone, vehicle_type, capacity_kg, capacity_m3, location, lat, lng, available)
VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM drivers), ?,?,?,?,?,?,?,?,?)`,
		d.Name, d.Phone, string(d.VehicleType), d.CapacityKg, d.CapacityM3, d.Location, d.Lat, d.Lng, d.Available)
	if err != nil {
		return nil, fmt.Errorf("insert driver: %w", err)
	}
	if d.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByID fetches a driver, or a NotFoundError.
func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return getDriver(ctx, r.db, id)
}

// List returns every registered driver in identifier order.
func (r *DriverRepository) List(ctx context.Context) ([]models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func getDriver(ctx context.Context, q queryer, id int64) (*models.Driver, error) {
	d, err := scanDriver(q.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("driver", id)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func scanDriver(row rowScanner) (*models.Driver, error) {
	var d models.Driver
	var vehicle string
	if err := row.Scan(&d.ID, &d.Name, &d.Phone, &vehicle, &d.CapacityKg, &d.CapacityM3,
		&d.Location, &d.Lat, &d.Lng, &d.Available); err != nil {
		return nil, err
	}
	d.VehicleType = models.VehicleType(vehicle)
	return &d, nil
}
