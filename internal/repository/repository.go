package repository

import (
	"context"

	"ota-rewards/internal/model"
)

// UserRepository gives access to the single account the service reports on.
type UserRepository interface {
	// GetUser returns a snapshot of the current user.
	GetUser(ctx context.Context) (*model.User, error)
}

// CatalogRepository gives read access to the reward and add-on catalogs.
// Lookups of unknown ids return nil without an error.
type CatalogRepository interface {
	// ListRewards returns every reward in catalog order.
	ListRewards(ctx context.Context) ([]model.Reward, error)

	// GetReward returns the reward with the given id.
	GetReward(ctx context.Context, id string) (*model.Reward, error)

	// ListAddOns returns every add-on in catalog order.
	ListAddOns(ctx context.Context) ([]model.AddOn, error)

	// GetAddOn returns the add-on with the given id.
	GetAddOn(ctx context.Context, id string) (*model.AddOn, error)
}

// RedemptionRepository stores redeemed rewards.
type RedemptionRepository interface {
	// ListUserRewards returns every redemption, newest first.
	ListUserRewards(ctx context.Context) ([]model.UserReward, error)

	// SaveRedemption sets the user's balance to remainingPoints and records
	// the redemption as the newest entry. Both writes happen together or not
	// at all.
	SaveRedemption(ctx context.Context, userID string, remainingPoints int, ur *model.UserReward) error
}

// PurchaseRepository stores completed purchases.
type PurchaseRepository interface {
	// ListPurchases returns the purchase history, newest first.
	ListPurchases(ctx context.Context) ([]model.PurchaseHistory, error)

	// SavePurchase records p as the newest purchase.
	SavePurchase(ctx context.Context, p *model.PurchaseHistory) error
}

// Repositories bundles the repositories backing one store.
type Repositories struct {
	Users       UserRepository
	Catalog     CatalogRepository
	Redemptions RedemptionRepository
	Purchases   PurchaseRepository
}
