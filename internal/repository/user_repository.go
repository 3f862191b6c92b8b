package repository

import (
	"context"
	"errors"
	"fmt"

	"ota-rewards/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// GetUser returns the single seeded user.
func (r *userRepository) GetUser(ctx context.Context) (*model.User, error) {
	query := `
		SELECT id, email, name, points, level
		FROM users
		ORDER BY id
		LIMIT 1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query).Scan(&u.ID, &u.Email, &u.Name, &u.Points, &u.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error().Msg("no user seeded")
			return nil, fmt.Errorf("no user seeded")
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}
