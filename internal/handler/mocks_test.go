package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"ota-rewards/internal/model"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRewardService is a mock implementation of RewardService.
type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) GetUser(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockRewardService) GetUserRewards(ctx context.Context) ([]model.UserReward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserReward), args.Error(1)
}

func (m *MockRewardService) GetAvailableRewards(ctx context.Context) ([]model.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reward), args.Error(1)
}

func (m *MockRewardService) CreateVoucher(ctx context.Context, rewardID string) (*model.UserReward, error) {
	args := m.Called(ctx, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserReward), args.Error(1)
}

// MockAddOnService is a mock implementation of AddOnService.
type MockAddOnService struct {
	mock.Mock
}

func (m *MockAddOnService) GetAddOns(ctx context.Context) ([]model.AddOn, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AddOn), args.Error(1)
}

func (m *MockAddOnService) GetAddOn(ctx context.Context, id string) (*model.AddOn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AddOn), args.Error(1)
}

func (m *MockAddOnService) GetPurchaseHistory(ctx context.Context) ([]model.PurchaseHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PurchaseHistory), args.Error(1)
}

func (m *MockAddOnService) PurchaseAddOns(ctx context.Context, items []model.CartItem) (*model.PurchaseHistory, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseHistory), args.Error(1)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) View(sessionID string) model.Cart {
	return m.Called(sessionID).Get(0).(model.Cart)
}

func (m *MockCartService) AddItem(ctx context.Context, sessionID, addOnID string) (model.Cart, error) {
	args := m.Called(ctx, sessionID, addOnID)
	return args.Get(0).(model.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(sessionID, addOnID string) model.Cart {
	return m.Called(sessionID, addOnID).Get(0).(model.Cart)
}

func (m *MockCartService) Clear(sessionID string) model.Cart {
	return m.Called(sessionID).Get(0).(model.Cart)
}

func (m *MockCartService) Checkout(ctx context.Context, sessionID string) (*model.PurchaseHistory, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseHistory), args.Error(1)
}

// envelope mirrors model.Response with raw data for decoding in tests.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	return env
}
