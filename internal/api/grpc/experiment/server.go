package experiment

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/elevator-ids/internal/domain/attack"
	"github.com/oshokin/elevator-ids/internal/domain/detect"
	"github.com/oshokin/elevator-ids/internal/domain/report"
	"github.com/oshokin/elevator-ids/internal/logger"
	"github.com/oshokin/elevator-ids/internal/service/experiment"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	RunRound(ctx context.Context, req experiment.RoundRequest) (report.Row, error)
	RunGrid(ctx context.Context, opts experiment.Options, sel report.Selection) (*report.Run, error)
}

// Server implements the ExperimentService gRPC API.
type Server struct {
	// service runs the simulations.
	service Service
}

var _ ExperimentServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// RunRound scores one round.
func (s *Server) RunRound(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var req RoundRequest
	if err := Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	ctx = logger.WithKV(ctx, "requested_by", req.RequestedBy)

	row, err := s.service.RunRound(ctx, req.Round())
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	resp := RoundResponse{Row: row}
	if req.WithReadings {
		resp.Readings = row.Readings
	}

	return encodeResponse(resp)
}

// RunGrid runs a grid search.
func (s *Server) RunGrid(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var req GridRequest
	if err := Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	ctx = logger.WithKV(ctx, "requested_by", req.RequestedBy)

	run, err := s.service.RunGrid(ctx, req.Options(), req.Selection)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return encodeResponse(run)
}

func encodeResponse(v any) (*structpb.Struct, error) {
	out, err := Encode(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode response")
	}

	return out, nil
}

// toStatus maps service errors to gRPC status codes.
func toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, experiment.ErrEmptyGrid),
		errors.Is(err, experiment.ErrNoRounds),
		errors.Is(err, attack.ErrUnknownKind),
		errors.Is(err, detect.ErrUnknownSensor):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		logger.ErrorKV(ctx, "Experiment failed", "error", err)

		return status.Error(codes.Internal, "experiment failed")
	}
}
