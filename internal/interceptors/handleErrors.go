package interceptors

import (
	"context"

	customerrors "thyrocheck/internal/customErrors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func ErrorInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		return nil, handleGrpcError(err)
	}
	return resp, nil
}

func handleGrpcError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(customerrors.GRPCCode(err), customerrors.GetMessage(err))
}
