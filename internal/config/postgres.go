package config

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

const (
	dbPingAttempts = 5
	dbPingDelay    = 2 * time.Second
)

type postgres struct {
	Db *sql.DB

	connStr      string
	maxOpenConns int
	maxIdleConns int
}

func NewPostgres(cfg *Config) *postgres {
	if cfg.DbConnStr == "" {
		log.Fatal("DB connection string not defined")
	}

	return &postgres{
		connStr:      cfg.DbConnStr,
		maxOpenConns: cfg.DbMaxOpenConns,
		maxIdleConns: cfg.DbMaxIdleConns,
	}
}

// InitDB opens the pool and waits for the database to answer. A failed
// certificate check is fatal at once since retrying cannot fix it.
func (p *postgres) InitDB() {
	db, err := sql.Open("postgres", p.connStr)
	if err != nil {
		log.Fatal("Error opening database: ", err)
	}

	db.SetMaxOpenConns(p.maxOpenConns)
	db.SetMaxIdleConns(p.maxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			break
		}
		if strings.Contains(err.Error(), "certificate") {
			log.Fatal("SSL verification failed: ", err)
		}
		if attempt == dbPingAttempts {
			log.Fatal("Database unreachable: ", err)
		}

		log.Printf("Database not ready (attempt %d/%d): %v", attempt, dbPingAttempts, err)
		time.Sleep(dbPingDelay)
	}

	p.Db = db
	log.Println("Connected to thyroid database")
}

func (p *postgres) CloseDB() {
	if p.Db == nil {
		return
	}

	if err := p.Db.Close(); err != nil {
		log.Println("Error closing database: ", err)
		return
	}
	log.Println("Database connection closed")
}
