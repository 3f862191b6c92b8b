package model

import "time"

// RewardCategory groups rewards for display.
type RewardCategory string

const (
	RewardCategoryVoucher  RewardCategory = "voucher"
	RewardCategoryDiscount RewardCategory = "discount"
	RewardCategoryCashback RewardCategory = "cashback"
)

// Valid reports whether c is one of the known categories.
func (c RewardCategory) Valid() bool {
	switch c {
	case RewardCategoryVoucher, RewardCategoryDiscount, RewardCategoryCashback:
		return true
	}
	return false
}

// Reward is a points-redeemable catalog entry.
type Reward struct {
	ID          string         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	PointsCost  int            `json:"pointsCost" db:"points_cost"`
	Category    RewardCategory `json:"category" db:"category"`
	ImageURL    string         `json:"imageUrl" db:"image_url"`
	PartnerName string         `json:"partnerName" db:"partner_name"`
	ExpiryDate  *time.Time     `json:"expiryDate,omitempty" db:"expiry_date"`
	Terms       *string        `json:"terms,omitempty" db:"terms"`
}

// UserRewardStatus is the lifecycle state of a redemption.
type UserRewardStatus string

const (
	UserRewardPending UserRewardStatus = "pending"
	UserRewardActive  UserRewardStatus = "active"
	UserRewardExpired UserRewardStatus = "expired"
	UserRewardUsed    UserRewardStatus = "used"
)

// VoucherValidity is how long a freshly redeemed voucher stays usable.
const VoucherValidity = 30 * 24 * time.Hour

// UserReward records one redemption of a Reward.
type UserReward struct {
	ID          string           `json:"id" db:"id"`
	RewardID    string           `json:"rewardId" db:"reward_id"`
	Reward      Reward           `json:"reward"`
	RedeemedAt  time.Time        `json:"redeemedAt" db:"redeemed_at"`
	Status      UserRewardStatus `json:"status" db:"status"`
	VoucherCode *string          `json:"voucherCode,omitempty" db:"voucher_code"`
	ExpiryDate  time.Time        `json:"expiryDate" db:"expiry_date"`
}

// CreateVoucherRequest is the payload for POST /api/ota/vouchers/create.
type CreateVoucherRequest struct {
	RewardID string `json:"rewardId"`
}
