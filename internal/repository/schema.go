package repository

import (
	"context"
	"fmt"
	"slices"

	"ota-rewards/internal/seed"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the postgres schema of the store. Catalog tables keep insertion
// order in position; transaction tables are listed newest first by seq.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT NOT NULL,
		points INTEGER NOT NULL CHECK (points >= 0),
		level TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rewards (
		position SERIAL,
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		points_cost INTEGER NOT NULL CHECK (points_cost >= 0),
		category TEXT NOT NULL,
		image_url TEXT NOT NULL,
		partner_name TEXT NOT NULL,
		expiry_date TIMESTAMPTZ,
		terms TEXT
	);

	CREATE TABLE IF NOT EXISTS add_ons (
		position SERIAL,
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		original_price NUMERIC(12,2),
		category TEXT NOT NULL,
		image_url TEXT NOT NULL,
		partner_name TEXT NOT NULL,
		features TEXT[] NOT NULL DEFAULT '{}',
		popularity INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS user_rewards (
		seq BIGSERIAL,
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		reward_id TEXT NOT NULL REFERENCES rewards(id),
		redeemed_at TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		voucher_code TEXT UNIQUE,
		expiry_date TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS purchases (
		seq BIGSERIAL,
		id TEXT PRIMARY KEY,
		add_on_id TEXT NOT NULL REFERENCES add_ons(id),
		purchased_at TIMESTAMPTZ NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL,
		transaction_id TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS purchase_items (
		purchase_id TEXT NOT NULL REFERENCES purchases(id) ON DELETE CASCADE,
		line INTEGER NOT NULL,
		add_on_id TEXT NOT NULL,
		title TEXT NOT NULL,
		unit_price NUMERIC(12,2) NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		subtotal NUMERIC(12,2) NOT NULL,
		PRIMARY KEY (purchase_id, line)
	);

	CREATE INDEX IF NOT EXISTS idx_user_rewards_seq ON user_rewards(seq DESC);
	CREATE INDEX IF NOT EXISTS idx_purchases_seq ON purchases(seq DESC);
`

const truncateAll = `
	TRUNCATE purchase_items, purchases, user_rewards, add_ons, rewards, users
	RESTART IDENTITY CASCADE
`

// Bootstrap creates the schema, wipes any previous state and loads f, all in
// one transaction. The postgres backend therefore starts from the fixture on
// every run, like the in-memory backend.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool, f *seed.Fixture, logger zerolog.Logger) error {
	logger = logger.With().Str("repository", "bootstrap").Logger()

	if f.User == nil {
		return fmt.Errorf("failed to bootstrap database: fixture has no user")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to create schema")
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := tx.Exec(ctx, truncateAll); err != nil {
		logger.Error().Err(err).Msg("failed to reset tables")
		return fmt.Errorf("failed to reset tables: %w", err)
	}

	batch := &pgx.Batch{}
	u := f.User
	batch.Queue(`INSERT INTO users (id, email, name, points, level) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Name, u.Points, u.Level)

	for _, r := range f.Rewards {
		batch.Queue(insertReward,
			r.ID, r.Title, r.Description, r.PointsCost, string(r.Category),
			r.ImageURL, r.PartnerName, r.ExpiryDate, r.Terms)
	}
	for _, a := range f.AddOns {
		batch.Queue(insertAddOn,
			a.ID, a.Title, a.Description, a.Price, a.OriginalPrice,
			a.Category, a.ImageURL, a.PartnerName, nonNilStrings(a.Features), a.Popularity)
	}

	// Fixture lists are newest first; insert oldest first so seq grows with age.
	for _, ur := range slices.Backward(f.UserRewards) {
		batch.Queue(insertUserReward,
			ur.ID, u.ID, ur.RewardID, ur.RedeemedAt, string(ur.Status), ur.VoucherCode, ur.ExpiryDate)
	}
	for _, p := range slices.Backward(f.Purchases) {
		queuePurchase(batch, &p)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			logger.Error().Err(err).Int("statement", i).Msg("failed to seed database")
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to commit bootstrap transaction")
		return fmt.Errorf("failed to commit bootstrap transaction: %w", err)
	}

	logger.Info().
		Str("user_id", u.ID).
		Int("rewards", len(f.Rewards)).
		Int("add_ons", len(f.AddOns)).
		Int("user_rewards", len(f.UserRewards)).
		Int("purchases", len(f.Purchases)).
		Msg("database bootstrapped")

	return nil
}

const (
	insertReward = `
		INSERT INTO rewards (id, title, description, points_cost, category, image_url, partner_name, expiry_date, terms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	insertAddOn = `
		INSERT INTO add_ons (id, title, description, price, original_price, category, image_url, partner_name, features, popularity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	insertUserReward = `
		INSERT INTO user_rewards (id, user_id, reward_id, redeemed_at, status, voucher_code, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	insertPurchase = `
		INSERT INTO purchases (id, add_on_id, purchased_at, amount, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	insertPurchaseItem = `
		INSERT INTO purchase_items (purchase_id, line, add_on_id, title, unit_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
)

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
