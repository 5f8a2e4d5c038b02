// Command healthprobe asks the gRPC health service whether the server is
// serving and exits non-zero when it is not. It is meant for container
// health checks.
package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
)

func main() {
	addr := flag.String("addr", "localhost:50051", "gRPC server address")
	timeout := flag.Duration("timeout", 3*time.Second, "probe timeout")
	asJSON := flag.Bool("json", false, "print the raw health response as JSON")
	flag.Parse()

	creds, err := clientCredentials(
		os.Getenv("GRPC_CLIENT_CERT"),
		os.Getenv("GRPC_CLIENT_KEY"),
		os.Getenv("GRPC_CA_CERT"),
	)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		log.Fatal(err)
	}

	if *asJSON {
		os.Stdout.WriteString(protojson.Format(resp) + "\n")
	} else {
		log.Printf("Status: %s", resp.GetStatus())
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		os.Exit(1)
	}
}

func clientCredentials(certFile, keyFile, caFile string) (credentials.TransportCredentials, error) {
	if certFile == "" {
		return insecure.NewCredentials(), nil
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, err
	}

	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, err
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("no CA certificates found in " + caFile)
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS13,
	}), nil
}
