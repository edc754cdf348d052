package models

// VehicleType is the class of truck a driver operates.
type VehicleType string

const (
	VehicleMiniTruck       VehicleType = "Mini Truck (1 Ton)"
	VehicleMediumTruck     VehicleType = "Medium Truck (3 Ton)"
	VehicleLargeTruck      VehicleType = "Large Truck (5 Ton)"
	VehicleExtraLargeTruck VehicleType = "Extra Large Truck (10 Ton)"
)

// Capacity is the load a vehicle can carry.
type Capacity struct {
	Kg float64 `json:"kg"`
	M3 float64 `json:"m3"`
}

// VehicleCapacities is the fixed capacity table per vehicle type.
var VehicleCapacities = map[VehicleType]Capacity{
	VehicleMiniTruck:       {Kg: 1000, M3: 10},
	VehicleMediumTruck:     {Kg: 3000, M3: 20},
	VehicleLargeTruck:      {Kg: 5000, M3: 30},
	VehicleExtraLargeTruck: {Kg: 10000, M3: 50},
}

// VehicleTypes lists the vehicle types in ascending capacity.
var VehicleTypes = []VehicleType{
	VehicleMiniTruck,
	VehicleMediumTruck,
	VehicleLargeTruck,
	VehicleExtraLargeTruck,
}

// CapacityFor resolves a vehicle type to its capacity.
func CapacityFor(v VehicleType) (Capacity, bool) {
	c, ok := VehicleCapacities[v]
	return c, ok
}

// Driver represents a registered delivery driver.
type Driver struct {
	ID          int64       `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	Phone       string      `db:"phone" json:"phone"`
	VehicleType VehicleType `db:"vehicle_type" json:"vehicle_type"`
	CapacityKg  float64     `db:"capacity_kg" json:"capacity_kg"`
	CapacityM3  float64     `db:"capacity_m3" json:"capacity_m3"`
	Location    string      `db:"location" json:"location"`
	Lat         float64     `db:"lat" json:"lat"`
	Lng         float64     `db:"lng" json:"lng"`
	// Available is always true; nothing toggles it yet.
	Available bool `db:"available" json:"available"`
}
