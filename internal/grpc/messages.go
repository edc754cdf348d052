package grpcserver

import "wholesaleDelivery/models"

// RegisterRequest is a driver self-registration.
type RegisterRequest struct {
	Name        string             `json:"name"`
	Phone       string             `json:"phone"`
	VehicleType models.VehicleType `json:"vehicle_type"`
	Location    string             `json:"location"`
}

// RegisterResponse returns the new driver and the bearer token the driver
// presents on every later call.
type RegisterResponse struct {
	Driver *models.Driver `json:"driver"`
	Token  string         `json:"token"`
}

// Empty is the request of calls that take no arguments.
type Empty struct{}

type DriverReply struct {
	Driver *models.Driver `json:"driver"`
}

type JobsReply struct {
	Jobs []models.Order `json:"jobs"`
}

type AcceptJobRequest struct {
	OrderID int64 `json:"order_id"`
}

type UpdateStatusRequest struct {
	OrderID int64              `json:"order_id"`
	Status  models.OrderStatus `json:"status"`
}

type JobReply struct {
	Job *models.Order `json:"job"`
}
