package repository

import (
	"context"
	"fmt"

	"ota-rewards/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// redemptionRepository implements the RedemptionRepository interface using PostgreSQL.
type redemptionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRedemptionRepository creates a new PostgreSQL-backed redemption repository.
func NewRedemptionRepository(pool *pgxpool.Pool, logger zerolog.Logger) RedemptionRepository {
	return &redemptionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "redemption").Logger(),
	}
}

// SaveRedemption writes the new balance and the redemption in one transaction.
func (r *redemptionRepository) SaveRedemption(ctx context.Context, userID string, remainingPoints int, ur *model.UserReward) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE users SET points = $2 WHERE id = $1`, userID, remainingPoints)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update points")
		return fmt.Errorf("failed to update points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to save redemption: unknown user %s", userID)
	}

	_, err = tx.Exec(ctx, insertUserReward,
		ur.ID, userID, ur.RewardID, ur.RedeemedAt, string(ur.Status), ur.VoucherCode, ur.ExpiryDate)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_reward_id", ur.ID).
			Msg("failed to create user reward")
		return fmt.Errorf("failed to create user reward: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("user_reward_id", ur.ID).Msg("failed to commit redemption")
		return fmt.Errorf("failed to commit redemption: %w", err)
	}

	r.logger.Debug().
		Str("user_reward_id", ur.ID).
		Int("points", remainingPoints).
		Msg("redemption saved successfully")

	return nil
}

// ListUserRewards returns every redemption, newest first, with the reward
// embedded.
func (r *redemptionRepository) ListUserRewards(ctx context.Context) ([]model.UserReward, error) {
	query := `
		SELECT ur.id, ur.reward_id, ur.redeemed_at, ur.status, ur.voucher_code, ur.expiry_date,
		       r.title, r.description, r.points_cost, r.category, r.image_url, r.partner_name, r.expiry_date, r.terms
		FROM user_rewards ur
		JOIN rewards r ON r.id = ur.reward_id
		ORDER BY ur.seq DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query user rewards")
		return nil, fmt.Errorf("failed to query user rewards: %w", err)
	}
	defer rows.Close()

	userRewards := []model.UserReward{}
	for rows.Next() {
		var ur model.UserReward
		var status, category string
		err := rows.Scan(
			&ur.ID, &ur.RewardID, &ur.RedeemedAt, &status, &ur.VoucherCode, &ur.ExpiryDate,
			&ur.Reward.Title, &ur.Reward.Description, &ur.Reward.PointsCost, &category,
			&ur.Reward.ImageURL, &ur.Reward.PartnerName, &ur.Reward.ExpiryDate, &ur.Reward.Terms,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user reward row")
			return nil, fmt.Errorf("failed to scan user reward: %w", err)
		}
		ur.Status = model.UserRewardStatus(status)
		ur.Reward.ID = ur.RewardID
		ur.Reward.Category = model.RewardCategory(category)
		userRewards = append(userRewards, ur)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user reward rows")
		return nil, fmt.Errorf("error iterating user rewards: %w", err)
	}

	return userRewards, nil
}
