package service

import (
	"context"

	"ota-rewards/internal/model"
)

// RewardService covers the user's account, the reward catalog and voucher
// redemption.
type RewardService interface {
	// GetUser returns the current user snapshot.
	GetUser(ctx context.Context) (*model.User, error)

	// GetUserRewards returns the user's redemptions, newest first.
	GetUserRewards(ctx context.Context) ([]model.UserReward, error)

	// GetAvailableRewards returns the reward catalog in catalog order.
	GetAvailableRewards(ctx context.Context) ([]model.Reward, error)

	// CreateVoucher redeems a reward for a voucher, deducting its cost from
	// the user's points.
	CreateVoucher(ctx context.Context, rewardID string) (*model.UserReward, error)
}

// AddOnService covers the add-on catalog and purchases.
type AddOnService interface {
	// GetAddOns returns the add-on catalog in catalog order.
	GetAddOns(ctx context.Context) ([]model.AddOn, error)

	// GetAddOn returns a single add-on or model.ErrAddOnNotFound.
	GetAddOn(ctx context.Context, id string) (*model.AddOn, error)

	// GetPurchaseHistory returns past purchases, newest first.
	GetPurchaseHistory(ctx context.Context) ([]model.PurchaseHistory, error)

	// PurchaseAddOns buys the given selections as one purchase.
	PurchaseAddOns(ctx context.Context, items []model.CartItem) (*model.PurchaseHistory, error)
}

// CartService manages one cart per session.
type CartService interface {
	// View returns the session's cart.
	View(sessionID string) model.Cart

	// AddItem adds one unit of the catalog add-on to the session's cart.
	AddItem(ctx context.Context, sessionID, addOnID string) (model.Cart, error)

	// RemoveItem drops the add-on's whole line from the session's cart.
	RemoveItem(sessionID, addOnID string) model.Cart

	// Clear empties the session's cart.
	Clear(sessionID string) model.Cart

	// Checkout purchases the session's cart and empties it on success.
	Checkout(ctx context.Context, sessionID string) (*model.PurchaseHistory, error)
}

// Options carries the collaborators shared by the services. Zero fields are
// replaced with NoDelay, the system clock, the default id generator and a
// disabled write gate.
type Options struct {
	Delayer Delayer
	Clock   Clock
	IDs     IDGenerator
	Gate    *WriteGate

	// VerifyCatalog makes PurchaseAddOns resolve every item against the
	// add-on catalog, pricing it from there and rejecting unknown add-ons.
	VerifyCatalog bool
}

func (o Options) withDefaults() Options {
	if o.Delayer == nil {
		o.Delayer = NoDelay()
	}
	if o.Clock == nil {
		o.Clock = SystemClock()
	}
	if o.IDs == nil {
		o.IDs = NewIDGenerator()
	}
	if o.Gate == nil {
		o.Gate = NewWriteGate(false)
	}
	return o
}
