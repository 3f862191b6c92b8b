package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"ota-rewards/internal/model"
	"ota-rewards/internal/repository"
	"ota-rewards/internal/seed"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUser(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListRewards(ctx context.Context) ([]model.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reward), args.Error(1)
}

func (m *MockCatalogRepository) GetReward(ctx context.Context, id string) (*model.Reward, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reward), args.Error(1)
}

func (m *MockCatalogRepository) ListAddOns(ctx context.Context) ([]model.AddOn, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AddOn), args.Error(1)
}

func (m *MockCatalogRepository) GetAddOn(ctx context.Context, id string) (*model.AddOn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AddOn), args.Error(1)
}

// MockRedemptionRepository is a mock implementation of RedemptionRepository.
type MockRedemptionRepository struct {
	mock.Mock
}

func (m *MockRedemptionRepository) ListUserRewards(ctx context.Context) ([]model.UserReward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserReward), args.Error(1)
}

func (m *MockRedemptionRepository) SaveRedemption(ctx context.Context, userID string, remainingPoints int, ur *model.UserReward) error {
	args := m.Called(ctx, userID, remainingPoints, ur)
	return args.Error(0)
}

// MockPurchaseRepository is a mock implementation of PurchaseRepository.
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context) ([]model.PurchaseHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PurchaseHistory), args.Error(1)
}

func (m *MockPurchaseRepository) SavePurchase(ctx context.Context, p *model.PurchaseHistory) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// fixedClock always reports the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// sequentialIDs produces predictable ids.
type sequentialIDs struct {
	n atomic.Int64
}

func (g *sequentialIDs) NewID() string {
	return fmt.Sprintf("id-%d", g.n.Add(1))
}

func (g *sequentialIDs) NewTransactionID() string {
	return fmt.Sprintf("txn_%d", g.n.Add(1))
}

func (g *sequentialIDs) NewVoucherCode(partnerName string) string {
	return fmt.Sprintf("%s-%04d-0000-0000", VoucherPrefix(partnerName), g.n.Add(1))
}

func testOptions() Options {
	return Options{
		Delayer: NoDelay(),
		Clock:   fixedClock{now: testNow},
		IDs:     &sequentialIDs{},
	}
}

// newSeededServices builds services over a fresh in-memory store holding
// the default fixture.
func newSeededServices(opts Options) (*repository.MemoryStore, RewardService, AddOnService) {
	store := repository.NewMemoryStore(seed.Default(), zerolog.Nop())
	repos := store.Repositories()
	return store,
		NewRewardService(repos, opts, zerolog.Nop()),
		NewAddOnService(repos, opts, zerolog.Nop())
}
