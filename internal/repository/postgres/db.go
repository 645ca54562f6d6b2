package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"legalyze/internal/config"
)

// connectTimeout bounds the startup ping.
const connectTimeout = 10 * time.Second

// NewDB opens the history database pool and verifies it is reachable.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging history database %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	log.Printf("postgres.NewDB: connected to %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
	return db, nil
}
