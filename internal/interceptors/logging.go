package interceptors

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs one line per unary call. Health checks from the
// probe CLI arrive every few seconds, so only failures of those are logged.
func LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	if err == nil && info.FullMethod == healthCheckMethod {
		return resp, nil
	}

	caller := "unknown"
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		caller = p.Addr.String()
	}

	log.Printf("Completed: %s | Code: %s | Duration: %v | Peer: %s",
		info.FullMethod, code, time.Since(start), caller)

	return resp, err
}

const healthCheckMethod = "/grpc.health.v1.Health/Check"
