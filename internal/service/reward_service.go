package service

import (
	"context"
	"fmt"

	"ota-rewards/internal/model"
	"ota-rewards/internal/repository"

	"github.com/rs/zerolog"
)

// rewardService implements RewardService.
type rewardService struct {
	users       repository.UserRepository
	catalog     repository.CatalogRepository
	redemptions repository.RedemptionRepository
	opts        Options
	logger      zerolog.Logger
}

// NewRewardService creates a new reward service.
func NewRewardService(repos repository.Repositories, opts Options, logger zerolog.Logger) RewardService {
	return &rewardService{
		users:       repos.Users,
		catalog:     repos.Catalog,
		redemptions: repos.Redemptions,
		opts:        opts.withDefaults(),
		logger:      logger.With().Str("service", "reward").Logger(),
	}
}

// GetUser returns the current user snapshot.
func (s *rewardService) GetUser(ctx context.Context) (*model.User, error) {
	if err := s.opts.Delayer.Delay(ctx, OpGetUser); err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserRewards returns the user's redemptions, newest first.
func (s *rewardService) GetUserRewards(ctx context.Context) ([]model.UserReward, error) {
	if err := s.opts.Delayer.Delay(ctx, OpGetUserRewards); err != nil {
		return nil, err
	}

	userRewards, err := s.redemptions.ListUserRewards(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list user rewards")
		return nil, fmt.Errorf("failed to list user rewards: %w", err)
	}
	if userRewards == nil {
		userRewards = []model.UserReward{}
	}
	return userRewards, nil
}

// GetAvailableRewards returns the reward catalog.
func (s *rewardService) GetAvailableRewards(ctx context.Context) ([]model.Reward, error) {
	if err := s.opts.Delayer.Delay(ctx, OpGetAvailableRewards); err != nil {
		return nil, err
	}

	rewards, err := s.catalog.ListRewards(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list rewards")
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	if rewards == nil {
		rewards = []model.Reward{}
	}
	return rewards, nil
}

// CreateVoucher redeems rewardID for a voucher. On failure nothing is
// written. A started redemption runs to completion even if ctx is
// cancelled.
func (s *rewardService) CreateVoucher(ctx context.Context, rewardID string) (*model.UserReward, error) {
	ctx = context.WithoutCancel(ctx)
	if err := s.opts.Delayer.Delay(ctx, OpCreateVoucher); err != nil {
		return nil, err
	}

	release := s.opts.Gate.Enter()
	defer release()

	reward, err := s.catalog.GetReward(ctx, rewardID)
	if err != nil {
		s.logger.Error().Err(err).Str("reward_id", rewardID).Msg("failed to look up reward")
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}
	if reward == nil {
		s.logger.Warn().Str("reward_id", rewardID).Msg("reward not found")
		return nil, model.ErrRewardNotFound
	}

	user, err := s.users.GetUser(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get user")
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}
	if user.Points < reward.PointsCost {
		s.logger.Warn().
			Str("reward_id", rewardID).
			Int("points", user.Points).
			Int("points_cost", reward.PointsCost).
			Msg("insufficient points")
		return nil, model.ErrInsufficientPoints
	}

	now := s.opts.Clock.Now()
	code := s.opts.IDs.NewVoucherCode(reward.PartnerName)
	userReward := &model.UserReward{
		ID:          s.opts.IDs.NewID(),
		RewardID:    reward.ID,
		Reward:      *reward,
		RedeemedAt:  now,
		Status:      model.UserRewardActive,
		VoucherCode: &code,
		ExpiryDate:  now.Add(model.VoucherValidity),
	}

	remaining := user.Points - reward.PointsCost
	if err := s.redemptions.SaveRedemption(ctx, user.ID, remaining, userReward); err != nil {
		s.logger.Error().Err(err).Str("reward_id", rewardID).Msg("failed to save redemption")
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	s.logger.Info().
		Str("user_reward_id", userReward.ID).
		Str("reward_id", reward.ID).
		Int("points_cost", reward.PointsCost).
		Int("points_remaining", remaining).
		Msg("voucher created successfully")

	return userReward, nil
}
