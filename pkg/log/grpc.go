package log

import (
	"context"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// metadataRequestID is the lower-cased HeaderRequestID, as gRPC metadata keys are.
const metadataRequestID = "x-request-id"

// UnaryServerInterceptor tags every call with a request id (taken from the
// incoming metadata or generated) and echoes it back in the response header.
func UnaryServerInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		reqID := incomingRequestID(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(metadataRequestID, reqID))

		child := logger.With().
			Str(FieldRequestID, reqID).
			Str(FieldGRPCMethod, path.Base(info.FullMethod)).
			Logger()

		resp, err := handler(WithLogger(ctx, child), req)

		code := status.Code(err)
		child.WithLevel(levelForCode(code)).
			Str(FieldGRPCCode, code.String()).
			Float64(FieldLatency, float64(time.Since(start).Milliseconds())).
			Err(err).
			Msg("rpc completed")

		return resp, err
	}
}

// levelForCode logs caller mistakes at warn and server faults at error.
func levelForCode(code codes.Code) zerolog.Level {
	switch code {
	case codes.OK:
		return zerolog.InfoLevel
	case codes.InvalidArgument, codes.NotFound, codes.AlreadyExists, codes.Canceled, codes.DeadlineExceeded:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func incomingRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.NewString()
	}
	for _, v := range md.Get(metadataRequestID) {
		if v != "" {
			return v
		}
	}
	return uuid.NewString()
}
