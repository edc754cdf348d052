package grpcserver

import (
	"context"
	"errors"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"wholesaleDelivery/internal/app"
	"wholesaleDelivery/internal/auth"
	"wholesaleDelivery/repository"
)

// DriverServer implements DriverServiceServer over the shared App.
type DriverServer struct {
	App *app.App
}

var _ DriverServiceServer = (*DriverServer)(nil)

// Register creates a driver and hands back a driver token.
func (s *DriverServer) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	d, err := s.App.Drivers.Register(ctx, repository.DriverRegistration{
		Name:        req.Name,
		Phone:       req.Phone,
		VehicleType: req.VehicleType,
		Location:    req.Location,
	})
	if err != nil {
		return nil, toStatus(err, "register driver")
	}
	tok, err := s.App.Issuer.Issue(strconv.FormatInt(d.ID, 10), auth.KindDriver)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "issue token: %v", err)
	}
	s.App.Logger.Info("driver registered", "driver_id", d.ID, "vehicle_type", d.VehicleType, "location", d.Location)
	return &RegisterResponse{Driver: d, Token: tok}, nil
}

// Me returns the calling driver.
func (s *DriverServer) Me(ctx context.Context, _ *Empty) (*DriverReply, error) {
	id, err := auth.RequireDriver(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.App.Drivers.GetByID(ctx, id)
	if err != nil {
		return nil, toStatus(err, "get driver")
	}
	return &DriverReply{Driver: d}, nil
}

// ListAvailableJobs lists orders no driver has accepted yet.
func (s *DriverServer) ListAvailableJobs(ctx context.Context, _ *Empty) (*JobsReply, error) {
	if _, err := auth.RequireDriver(ctx); err != nil {
		return nil, err
	}
	jobs, err := s.App.Orders.ListAvailable(ctx)
	if err != nil {
		return nil, toStatus(err, "list jobs")
	}
	return &JobsReply{Jobs: jobs}, nil
}

// AcceptJob claims an open order for the calling driver. Only one of
// several concurrent callers wins; the rest get FailedPrecondition.
func (s *DriverServer) AcceptJob(ctx context.Context, req *AcceptJobRequest) (*JobReply, error) {
	id, err := auth.RequireDriver(ctx)
	if err != nil {
		return nil, err
	}
	if req.OrderID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	o, err := s.App.AcceptJob(ctx, req.OrderID, id)
	if err != nil {
		if repository.IsValidation(err) {
			return nil, status.Error(codes.FailedPrecondition, "job no longer available")
		}
		return nil, toStatus(err, "accept job")
	}
	return &JobReply{Job: o}, nil
}

// ListMyDeliveries lists the caller's orders that are not yet delivered.
func (s *DriverServer) ListMyDeliveries(ctx context.Context, _ *Empty) (*JobsReply, error) {
	id, err := auth.RequireDriver(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.App.Orders.ListActiveForDriver(ctx, id)
	if err != nil {
		return nil, toStatus(err, "list deliveries")
	}
	return &JobsReply{Jobs: jobs}, nil
}

// UpdateStatus moves one of the caller's orders to a new status.
func (s *DriverServer) UpdateStatus(ctx context.Context, req *UpdateStatusRequest) (*JobReply, error) {
	id, err := auth.RequireDriver(ctx)
	if err != nil {
		return nil, err
	}
	if req.OrderID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	if !req.Status.IsDriverSettable() {
		return nil, status.Errorf(codes.InvalidArgument, "status %q cannot be set by a driver", req.Status)
	}
	o, err := s.App.UpdateDeliveryStatus(ctx, req.OrderID, id, req.Status)
	if err != nil {
		if repository.IsValidation(err) {
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		}
		return nil, toStatus(err, "update status")
	}
	return &JobReply{Job: o}, nil
}

// toStatus maps store and app errors onto gRPC codes.
func toStatus(err error, op string) error {
	var ve *repository.ValidationError
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Error())
	case errors.Is(err, repository.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, app.ErrNotAssigned):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s: %v", op, err)
	default:
		return status.Errorf(codes.Internal, "%s: %v", op, err)
	}
}
