// Package jobs runs the periodic background work: a database probe that
// drives the gRPC health status and a daily prediction digest.
package jobs

import (
	"context"
	"log"
	"time"

	"thyrocheck/internal/models"

	"github.com/robfig/cron/v3"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	probeSpec  = "@every 30s"
	digestSpec = "5 0 * * *"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type StatusSetter interface {
	SetServingStatus(service string, servingStatus healthpb.HealthCheckResponse_ServingStatus)
}

type Digester interface {
	Digest(ctx context.Context, day time.Time) ([]models.LabelCount, error)
}

type Scheduler struct {
	cron    *cron.Cron
	checker HealthChecker
	status  StatusSetter
	digest  Digester
	now     func() time.Time
}

func NewScheduler(checker HealthChecker, status StatusSetter, digest Digester) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		checker: checker,
		status:  status,
		digest:  digest,
		now:     time.Now,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(probeSpec, s.ProbeDatabase); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(digestSpec, s.LogDigest); err != nil {
		return err
	}

	s.ProbeDatabase()
	s.cron.Start()
	log.Println("Background jobs scheduled")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("Background jobs stopped")
}

func (s *Scheduler) ProbeDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.checker.HealthCheck(ctx); err != nil {
		log.Printf("Database probe failed: %v", err)
		s.status.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.status.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

// LogDigest reports yesterday's predictions per label.
func (s *Scheduler) LogDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	day := s.now().AddDate(0, 0, -1)
	counts, err := s.digest.Digest(ctx, day)
	if err != nil {
		log.Printf("Prediction digest failed: %v", err)
		return
	}

	var total int64
	for _, c := range counts {
		total += c.Count
	}
	log.Printf("Prediction digest for %s: %d total", day.Format("2006-01-02"), total)
	for _, c := range counts {
		log.Printf("  %s: %d", c.Result, c.Count)
	}
}
