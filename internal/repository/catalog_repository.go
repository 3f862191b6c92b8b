package repository

import (
	"context"
	"errors"
	"fmt"

	"ota-rewards/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

// NewPostgresRepositories wires every repository to the same pool.
func NewPostgresRepositories(pool *pgxpool.Pool, logger zerolog.Logger) Repositories {
	return Repositories{
		Users:       NewUserRepository(pool, logger),
		Catalog:     NewCatalogRepository(pool, logger),
		Redemptions: NewRedemptionRepository(pool, logger),
		Purchases:   NewPurchaseRepository(pool, logger),
	}
}

const (
	rewardColumns = `id, title, description, points_cost, category, image_url, partner_name, expiry_date, terms`
	addOnColumns  = `id, title, description, price, original_price, category, image_url, partner_name, features, popularity`
)

func scanReward(row pgx.Row) (model.Reward, error) {
	var r model.Reward
	var category string
	err := row.Scan(&r.ID, &r.Title, &r.Description, &r.PointsCost, &category,
		&r.ImageURL, &r.PartnerName, &r.ExpiryDate, &r.Terms)
	r.Category = model.RewardCategory(category)
	return r, err
}

func scanAddOn(row pgx.Row) (model.AddOn, error) {
	var a model.AddOn
	var original decimal.NullDecimal
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Price, &original,
		&a.Category, &a.ImageURL, &a.PartnerName, &a.Features, &a.Popularity)
	if original.Valid {
		a.OriginalPrice = &original.Decimal
	}
	return a, err
}

// ListRewards retrieves every reward in catalog order.
func (r *catalogRepository) ListRewards(ctx context.Context) ([]model.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards ORDER BY position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query rewards")
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	defer rows.Close()

	rewards := []model.Reward{}
	for rows.Next() {
		reward, err := scanReward(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan reward row")
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, reward)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating reward rows")
		return nil, fmt.Errorf("error iterating rewards: %w", err)
	}

	return rewards, nil
}

// GetReward retrieves a single reward by its ID.
func (r *catalogRepository) GetReward(ctx context.Context, id string) (*model.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE id = $1`

	reward, err := scanReward(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("reward_id", id).Msg("reward not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("reward_id", id).Msg("failed to query reward")
		return nil, fmt.Errorf("failed to query reward: %w", err)
	}

	return &reward, nil
}

// ListAddOns retrieves every add-on in catalog order.
func (r *catalogRepository) ListAddOns(ctx context.Context) ([]model.AddOn, error) {
	query := `SELECT ` + addOnColumns + ` FROM add_ons ORDER BY position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query add-ons")
		return nil, fmt.Errorf("failed to query add-ons: %w", err)
	}
	defer rows.Close()

	addOns := []model.AddOn{}
	for rows.Next() {
		a, err := scanAddOn(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan add-on row")
			return nil, fmt.Errorf("failed to scan add-on: %w", err)
		}
		addOns = append(addOns, a)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating add-on rows")
		return nil, fmt.Errorf("error iterating add-ons: %w", err)
	}

	return addOns, nil
}

// GetAddOn retrieves a single add-on by its ID.
func (r *catalogRepository) GetAddOn(ctx context.Context, id string) (*model.AddOn, error) {
	query := `SELECT ` + addOnColumns + ` FROM add_ons WHERE id = $1`

	a, err := scanAddOn(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("add_on_id", id).Msg("add-on not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("add_on_id", id).Msg("failed to query add-on")
		return nil, fmt.Errorf("failed to query add-on: %w", err)
	}

	return &a, nil
}
