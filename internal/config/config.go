package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string

	DbConnStr      string
	DbSSLMode      string
	DbMaxOpenConns int
	DbMaxIdleConns int

	SessionSecret []byte
	SessionTTL    time.Duration
	SecureCookies bool

	ModelPath string

	RedisAddr        string
	LoginMaxAttempts int
	LoginLockout     time.Duration

	TLSCertFile string
	TLSKeyFile  string
	CACertFile  string
}

// LoadEnv reads an optional .env file and then the process environment.
func LoadEnv() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using process environment")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("SESSION_SECRET not defined")
	}

	sslMode := getEnv("DB_SSLMODE", "disable")
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		getEnv("POSTGRES_DB", "thyroid_model"),
		sslMode,
	)
	if root := os.Getenv("DB_SSLROOTCERT"); root != "" {
		connStr += " sslrootcert=" + root
	}

	return &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		GRPCAddr:         getEnv("GRPC_ADDR", ":50051"),
		DbConnStr:        connStr,
		DbSSLMode:        sslMode,
		DbMaxOpenConns:   getInt("DB_MAX_OPEN_CONNS", 25),
		DbMaxIdleConns:   getInt("DB_MAX_IDLE_CONNS", 10),
		SessionSecret:    []byte(secret),
		SessionTTL:       getDuration("SESSION_TTL", 12*time.Hour),
		SecureCookies:    getBool("SECURE_COOKIES", false),
		ModelPath:        getEnv("MODEL_PATH", "thyroid_model.json"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		LoginMaxAttempts: getInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockout:     getDuration("LOGIN_LOCKOUT", 15*time.Minute),
		TLSCertFile:      os.Getenv("GRPC_TLS_CERT"),
		TLSKeyFile:       os.Getenv("GRPC_TLS_KEY"),
		CACertFile:       os.Getenv("GRPC_CA_CERT"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
