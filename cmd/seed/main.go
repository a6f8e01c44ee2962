// Package main provides a CLI tool that bootstraps the database schema
// and optionally seeds demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/pkg/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                  UUID PRIMARY KEY,
		name                TEXT NOT NULL,
		email               TEXT NOT NULL UNIQUE,
		password_hash       TEXT NOT NULL,
		reset_token         TEXT,
		reset_token_expires TIMESTAMPTZ,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		id           UUID PRIMARY KEY,
		owner_id     UUID NOT NULL REFERENCES users(id),
		name         TEXT NOT NULL,
		quantity     NUMERIC(14,3) NOT NULL DEFAULT 0,
		buying_rate  NUMERIC(14,2) NOT NULL DEFAULT 0,
		selling_rate NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// The upsert conflict target; one item per owner and folded name.
	`CREATE UNIQUE INDEX IF NOT EXISTS items_owner_name_uq
		ON items (owner_id, lower(name))`,

	`CREATE TABLE IF NOT EXISTS sales (
		id            UUID PRIMARY KEY,
		owner_id      UUID NOT NULL REFERENCES users(id),
		item_id       UUID NOT NULL REFERENCES items(id),
		quantity      NUMERIC(14,3) NOT NULL,
		selling_price NUMERIC(14,2) NOT NULL,
		total_price   NUMERIC(16,2) NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS sales_owner_created_idx
		ON sales (owner_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS debts (
		id              UUID PRIMARY KEY,
		owner_id        UUID NOT NULL REFERENCES users(id),
		customer_name   TEXT NOT NULL,
		customer_number VARCHAR(10) NOT NULL,
		total           NUMERIC(16,2) NOT NULL DEFAULT 0,
		credit          NUMERIC(16,2) NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS debts_owner_customer_idx
		ON debts (owner_id, customer_number, created_at)`,

	`CREATE TABLE IF NOT EXISTS sys_audit (
		id                 UUID PRIMARY KEY,
		entity_type        TEXT NOT NULL,
		entity_id          UUID NOT NULL,
		owner_id           UUID NOT NULL,
		action             TEXT NOT NULL,
		payload            JSONB,
		payload_compressed BYTEA,
		compression_algo   TEXT NOT NULL DEFAULT 'none',
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS sys_audit_entity_idx
		ON sys_audit (entity_type, entity_id, created_at)`,
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalw("failed to apply schema statement", "error", err)
		}
	}
	log.Info("schema applied")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
		log.Info("demo data seeded")
	}

	log.Info("seeding completed successfully")
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	email := os.Getenv("DEMO_EMAIL")
	if email == "" {
		email = "demo@stockbook.local"
	}
	password := os.Getenv("DEMO_PASSWORD")
	if password == "" {
		password = "Demo1234!"
	}

	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check demo user: %w", err)
	}
	if exists {
		log.Infow("demo user already present", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	ownerID := id.New()
	now := time.Now().UTC()

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		ownerID, "Demo Shop", email, string(hash), now,
	)
	if err != nil {
		return fmt.Errorf("insert demo user: %w", err)
	}

	demoItems := []struct {
		name                string
		qty, buying, selling string
	}{
		{"Rice", "120", "38.50", "45"},
		{"Sugar", "80", "36", "42"},
		{"Tea Powder", "25.5", "240", "310"},
	}
	for _, it := range demoItems {
		_, err = pool.Exec(ctx,
			`INSERT INTO items (id, owner_id, name, quantity, buying_rate, selling_rate, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
			id.New(), ownerID, it.name,
			types.MustMoney(it.qty), types.MustMoney(it.buying), types.MustMoney(it.selling),
			now,
		)
		if err != nil {
			return fmt.Errorf("insert demo item %s: %w", it.name, err)
		}
	}

	log.Infow("demo account created", "email", email)
	return nil
}
