package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the current progress of an order.
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "Order Placed"
	OrderStatusDriverAssigned OrderStatus = "Driver Assigned"
	OrderStatusPickedUp       OrderStatus = "Picked Up"
	OrderStatusInTransit      OrderStatus = "In Transit"
	OrderStatusDelivered      OrderStatus = "Delivered"
)

// DriverStatuses are the values a driver may set on an order they hold.
// Ordering between them is not enforced.
var DriverStatuses = []OrderStatus{
	OrderStatusDriverAssigned,
	OrderStatusPickedUp,
	OrderStatusInTransit,
	OrderStatusDelivered,
}

// IsDriverSettable reports whether s is one of DriverStatuses.
func (s OrderStatus) IsDriverSettable() bool {
	for _, v := range DriverStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	return s == OrderStatusPlaced || s.IsDriverSettable()
}

// Order is a placed order. Product name, pickup location, money, distance,
// weight and volume are copied at creation and never change afterwards,
// even if the product is edited or deleted.
type Order struct {
	ID               int64           `db:"id" json:"id"`
	ProductID        int64           `db:"product_id" json:"product_id"`
	ProductName      string          `db:"product_name" json:"product_name"`
	BuyerName        string          `db:"buyer_name" json:"buyer_name"`
	BuyerPhone       string          `db:"buyer_phone" json:"buyer_phone"`
	Quantity         int64           `db:"quantity" json:"quantity"`
	DeliveryLocation string          `db:"delivery_location" json:"delivery_location"`
	DeliveryAddress  string          `db:"delivery_address" json:"delivery_address"`
	PickupLocation   string          `db:"pickup_location" json:"pickup_location"`
	ProductTotal     decimal.Decimal `db:"product_total" json:"product_total"`
	DeliveryCharge   decimal.Decimal `db:"delivery_charge" json:"delivery_charge"`
	GrandTotal       decimal.Decimal `db:"grand_total" json:"grand_total"`
	DistanceKm       float64         `db:"distance_km" json:"distance_km"`
	Status           OrderStatus     `db:"status" json:"status"`
	// DriverID is nil until a driver accepts the order.
	DriverID  *int64    `db:"driver_id" json:"driver_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	WeightKg  float64   `db:"weight_kg" json:"weight_kg"`
	VolumeM3  float64   `db:"volume_m3" json:"volume_m3"`
}
