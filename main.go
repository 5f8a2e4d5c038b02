package main

import (
	"log"

	"thyrocheck/internal/api"
	authcontroller "thyrocheck/internal/auth/controller"
	"thyrocheck/internal/auth/limiter"
	authrepository "thyrocheck/internal/auth/repository"
	authservice "thyrocheck/internal/auth/service"
	cliniccontroller "thyrocheck/internal/clinic/controller"
	clinicrepository "thyrocheck/internal/clinic/repository"
	clinicservice "thyrocheck/internal/clinic/service"
	"thyrocheck/internal/config"
	"thyrocheck/internal/jobs"
	"thyrocheck/internal/middleware"
	"thyrocheck/internal/thyroid/classifier"
	thyroidcontroller "thyrocheck/internal/thyroid/controller"
	thyroidrepository "thyrocheck/internal/thyroid/repository"
	thyroidservice "thyrocheck/internal/thyroid/service"
)

func main() {
	cfg := config.LoadEnv()

	db := config.NewPostgres(cfg)
	db.InitDB()

	jwt := config.NewJWT(cfg)
	sessions := middleware.NewSessions(jwt, cfg)

	loginLimiter, closeLimiter := newLimiter(cfg)

	authRepo := authrepository.NewUserRepository(db.Db)
	authService := authservice.NewAuthService(authRepo, jwt, loginLimiter)

	clinicRepo := clinicrepository.NewClinicRepository(db.Db)
	clinicService := clinicservice.NewClinicService(clinicRepo)

	predictionRepo := thyroidrepository.NewPredictionRepository(db.Db)
	thyroidService := thyroidservice.NewThyroidService(predictionRepo, loadPredictor(cfg.ModelPath))

	router := api.SetupRoutes(api.Controllers{
		Auth:    authcontroller.NewAuthController(authService, sessions, cfg.DbSSLMode),
		Clinic:  cliniccontroller.NewClinicController(clinicService),
		Thyroid: thyroidcontroller.NewThyroidController(thyroidService),
	}, sessions)

	grpcServer := config.NewGRPCServer(cfg)
	go func() {
		if err := grpcServer.Start(); err != nil {
			log.Printf("gRPC server stopped: %v", err)
		}
	}()

	scheduler := jobs.NewScheduler(authService, grpcServer.Health, thyroidService)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Error scheduling jobs: %v", err)
	}

	server := config.NewServer(cfg.HTTPAddr, router)
	server.OnShutdown(grpcServer.GracefulShutdown)
	server.OnShutdown(scheduler.Stop)
	server.OnShutdown(closeLimiter)
	server.OnShutdown(db.CloseDB)

	server.StartWithGracefulShutdown()
}

// loadPredictor returns nil when the model cannot be read so that
// ThyroCheck reports the model as unavailable instead of failing startup.
func loadPredictor(path string) classifier.Predictor {
	forest, err := classifier.Load(path)
	if err != nil {
		log.Printf("Thyroid model not loaded from %s: %v", path, err)
		return nil
	}
	log.Printf("Thyroid model loaded from %s", path)
	return forest
}

// newLimiter shares login failure counters through Redis when configured
// and falls back to process memory otherwise.
func newLimiter(cfg *config.Config) (limiter.Limiter, func()) {
	memory := limiter.NewMemoryLimiter(cfg.LoginMaxAttempts, cfg.LoginLockout)
	if cfg.RedisAddr == "" {
		return memory, func() {}
	}

	client, err := config.NewRedis(cfg.RedisAddr)
	if err != nil {
		log.Printf("Redis unavailable, throttling logins in memory: %v", err)
		return memory, func() {}
	}

	return limiter.NewRedisLimiter(client, cfg.LoginMaxAttempts, cfg.LoginLockout), func() {
		if err := client.Close(); err != nil {
			log.Printf("Could not close redis: %v", err)
		}
	}
}
