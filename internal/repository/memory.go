package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"ota-rewards/internal/model"
	"ota-rewards/internal/seed"

	"github.com/rs/zerolog"
)

// MemoryStore keeps the whole store state in process memory. It implements
// every repository interface. All reads return copies, so callers can never
// alias stored records.
type MemoryStore struct {
	mu          sync.RWMutex
	user        model.User
	rewards     []model.Reward
	addOns      []model.AddOn
	userRewards []model.UserReward
	purchases   []model.PurchaseHistory
	logger      zerolog.Logger
}

// NewMemoryStore creates a store holding a copy of the fixture's state.
func NewMemoryStore(f *seed.Fixture, logger zerolog.Logger) *MemoryStore {
	s := &MemoryStore{
		logger: logger.With().Str("repository", "memory").Logger(),
	}
	if f.User != nil {
		s.user = *f.User
	}
	s.rewards = copyRewards(f.Rewards)
	s.addOns = copyAddOns(f.AddOns)
	s.userRewards = copyUserRewards(f.UserRewards)
	s.purchases = copyPurchases(f.Purchases)

	s.logger.Debug().
		Str("user_id", s.user.ID).
		Int("rewards", len(s.rewards)).
		Int("add_ons", len(s.addOns)).
		Msg("memory store initialised")

	return s
}

// Repositories returns the store behind all four repository interfaces.
func (s *MemoryStore) Repositories() Repositories {
	return Repositories{
		Users:       s,
		Catalog:     s,
		Redemptions: s,
		Purchases:   s,
	}
}

// GetUser returns a snapshot of the current user.
func (s *MemoryStore) GetUser(ctx context.Context) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.user
	return &u, nil
}

// ListRewards returns every reward in catalog order.
func (s *MemoryStore) ListRewards(ctx context.Context) ([]model.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyRewards(s.rewards), nil
}

// GetReward returns the reward with the given id, or nil.
func (s *MemoryStore) GetReward(ctx context.Context, id string) (*model.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rewards {
		if r.ID == id {
			return &r, nil
		}
	}
	s.logger.Debug().Str("reward_id", id).Msg("reward not found")
	return nil, nil
}

// ListAddOns returns every add-on in catalog order.
func (s *MemoryStore) ListAddOns(ctx context.Context) ([]model.AddOn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyAddOns(s.addOns), nil
}

// GetAddOn returns the add-on with the given id, or nil.
func (s *MemoryStore) GetAddOn(ctx context.Context, id string) (*model.AddOn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.addOns {
		if a.ID == id {
			c := copyAddOn(a)
			return &c, nil
		}
	}
	s.logger.Debug().Str("add_on_id", id).Msg("add-on not found")
	return nil, nil
}

// ListUserRewards returns every redemption, newest first.
func (s *MemoryStore) ListUserRewards(ctx context.Context) ([]model.UserReward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyUserRewards(s.userRewards), nil
}

// SaveRedemption stores the new balance and prepends ur.
func (s *MemoryStore) SaveRedemption(ctx context.Context, userID string, remainingPoints int, ur *model.UserReward) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID != s.user.ID {
		return fmt.Errorf("failed to save redemption: unknown user %s", userID)
	}

	s.user.Points = remainingPoints
	s.userRewards = slices.Insert(s.userRewards, 0, copyUserReward(*ur))

	s.logger.Debug().
		Str("user_reward_id", ur.ID).
		Int("points", remainingPoints).
		Msg("redemption saved")

	return nil
}

// ListPurchases returns the purchase history, newest first.
func (s *MemoryStore) ListPurchases(ctx context.Context) ([]model.PurchaseHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyPurchases(s.purchases), nil
}

// SavePurchase prepends p to the history.
func (s *MemoryStore) SavePurchase(ctx context.Context, p *model.PurchaseHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purchases = slices.Insert(s.purchases, 0, copyPurchase(*p))

	s.logger.Debug().
		Str("purchase_id", p.ID).
		Str("transaction_id", p.TransactionID).
		Msg("purchase saved")

	return nil
}

func copyRewards(in []model.Reward) []model.Reward {
	out := make([]model.Reward, len(in))
	copy(out, in)
	return out
}

func copyAddOn(a model.AddOn) model.AddOn {
	a.Features = slices.Clone(a.Features)
	return a
}

func copyAddOns(in []model.AddOn) []model.AddOn {
	out := make([]model.AddOn, len(in))
	for i, a := range in {
		out[i] = copyAddOn(a)
	}
	return out
}

func copyUserReward(ur model.UserReward) model.UserReward {
	if ur.VoucherCode != nil {
		code := *ur.VoucherCode
		ur.VoucherCode = &code
	}
	return ur
}

func copyUserRewards(in []model.UserReward) []model.UserReward {
	out := make([]model.UserReward, len(in))
	for i, ur := range in {
		out[i] = copyUserReward(ur)
	}
	return out
}

func copyPurchase(p model.PurchaseHistory) model.PurchaseHistory {
	p.AddOn = copyAddOn(p.AddOn)
	p.Items = slices.Clone(p.Items)
	return p
}

func copyPurchases(in []model.PurchaseHistory) []model.PurchaseHistory {
	out := make([]model.PurchaseHistory, len(in))
	for i, p := range in {
		out[i] = copyPurchase(p)
	}
	return out
}
