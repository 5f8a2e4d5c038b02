package config

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"log"
	"net"
	"os"
	"time"

	"thyrocheck/internal/interceptors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	Server          *grpc.Server
	Health          *health.Server
	addr            string
	shutdownTimeout time.Duration
}

func NewGRPCServer(cfg *Config) *GRPCServer {
	creds, err := loadCredentials(cfg)
	if err != nil {
		log.Fatalf("Failed to load TLS credentials: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.Creds(creds),
		grpc.ChainUnaryInterceptor(
			interceptors.LoggingInterceptor,
			interceptors.ErrorInterceptor,
		),
	)

	healthServer := health.NewServer()
	// Not serving until the first database probe succeeds.
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return &GRPCServer{
		Server:          grpcServer,
		Health:          healthServer,
		addr:            cfg.GRPCAddr,
		shutdownTimeout: 10 * time.Second,
	}
}

// Start blocks serving on the configured address.
func (s *GRPCServer) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	log.Printf("Server gRPC is listening on %s", s.addr)
	return s.Server.Serve(lis)
}

func (s *GRPCServer) GracefulShutdown() {
	s.Health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.Server.GracefulStop()
		close(stopped)
	}()

	timer := time.NewTimer(s.shutdownTimeout)
	select {
	case <-timer.C:
		log.Println("Forcing gRPC shutdown...")
		s.Server.Stop()
	case <-stopped:
		timer.Stop()
		log.Println("gRPC server stopped gracefully")
	}
}

// loadCredentials uses mutual TLS when a certificate is configured and
// plaintext otherwise.
func loadCredentials(cfg *Config) (credentials.TransportCredentials, error) {
	if cfg.TLSCertFile == "" {
		return insecure.NewCredentials(), nil
	}

	serverCert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
	if err != nil {
		return nil, err
	}

	caCert, err := os.ReadFile(cfg.CACertFile)
	if err != nil {
		return nil, err
	}

	certPool := x509.NewCertPool()
	if !certPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("no CA certificates found in " + cfg.CACertFile)
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{serverCert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    certPool,
		MinVersion:   tls.VersionTLS13,
	}

	return credentials.NewTLS(tlsConfig), nil
}
