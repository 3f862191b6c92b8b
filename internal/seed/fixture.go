// Package seed provides the initial state the store starts from: the user,
// the reward and add-on catalogs, and any pre-existing transactions.
package seed

import (
	"fmt"
	"time"

	"ota-rewards/internal/model"

	"github.com/shopspring/decimal"
)

// Fixture is a complete or partial initial state.
type Fixture struct {
	User        *model.User             `json:"user,omitempty"`
	Rewards     []model.Reward          `json:"rewards,omitempty"`
	AddOns      []model.AddOn           `json:"addOns,omitempty"`
	UserRewards []model.UserReward      `json:"userRewards,omitempty"`
	Purchases   []model.PurchaseHistory `json:"purchases,omitempty"`
}

// Merge folds other into f. A user in other replaces f's user; catalog and
// transaction lists are appended, with entries whose id is already present
// replaced in place.
func (f *Fixture) Merge(other *Fixture) {
	if other == nil {
		return
	}
	if other.User != nil {
		u := *other.User
		f.User = &u
	}
	f.Rewards = mergeByID(f.Rewards, other.Rewards, func(r model.Reward) string { return r.ID })
	f.AddOns = mergeByID(f.AddOns, other.AddOns, func(a model.AddOn) string { return a.ID })
	f.UserRewards = mergeByID(f.UserRewards, other.UserRewards, func(u model.UserReward) string { return u.ID })
	f.Purchases = mergeByID(f.Purchases, other.Purchases, func(p model.PurchaseHistory) string { return p.ID })
}

func mergeByID[T any](base, extra []T, id func(T) string) []T {
	index := make(map[string]int, len(base))
	for i, item := range base {
		index[id(item)] = i
	}
	for _, item := range extra {
		if i, ok := index[id(item)]; ok {
			base[i] = item
			continue
		}
		index[id(item)] = len(base)
		base = append(base, item)
	}
	return base
}

// Validate checks the invariants the store relies on.
func (f *Fixture) Validate() error {
	if f.User == nil {
		return fmt.Errorf("fixture has no user")
	}
	if f.User.ID == "" {
		return fmt.Errorf("user ID is required")
	}
	if f.User.Points < 0 {
		return fmt.Errorf("user %s: points must not be negative", f.User.ID)
	}

	rewards := make(map[string]model.Reward, len(f.Rewards))
	for i, r := range f.Rewards {
		if r.ID == "" {
			return fmt.Errorf("reward %d: ID is required", i)
		}
		if _, dup := rewards[r.ID]; dup {
			return fmt.Errorf("reward %s: duplicate ID", r.ID)
		}
		if r.PointsCost < 0 {
			return fmt.Errorf("reward %s: points cost must not be negative", r.ID)
		}
		if !r.Category.Valid() {
			return fmt.Errorf("reward %s: unknown category %q", r.ID, r.Category)
		}
		rewards[r.ID] = r
	}

	addOns := make(map[string]struct{}, len(f.AddOns))
	for i, a := range f.AddOns {
		if a.ID == "" {
			return fmt.Errorf("add-on %d: ID is required", i)
		}
		if _, dup := addOns[a.ID]; dup {
			return fmt.Errorf("add-on %s: duplicate ID", a.ID)
		}
		if a.Price.IsNegative() {
			return fmt.Errorf("add-on %s: price must not be negative", a.ID)
		}
		if !a.Price.Equal(model.RoundMoney(a.Price)) {
			return fmt.Errorf("add-on %s: price %s has more than %d decimal places", a.ID, a.Price, model.MoneyPlaces)
		}
		if a.OriginalPrice != nil && !a.OriginalPrice.Equal(model.RoundMoney(*a.OriginalPrice)) {
			return fmt.Errorf("add-on %s: original price %s has more than %d decimal places", a.ID, a.OriginalPrice, model.MoneyPlaces)
		}
		if a.OriginalPrice != nil && a.OriginalPrice.LessThan(a.Price) {
			return fmt.Errorf("add-on %s: original price %s is below price %s", a.ID, a.OriginalPrice, a.Price)
		}
		addOns[a.ID] = struct{}{}
	}

	for _, ur := range f.UserRewards {
		if _, ok := rewards[ur.RewardID]; !ok {
			return fmt.Errorf("user reward %s: unknown reward %s", ur.ID, ur.RewardID)
		}
	}

	for _, p := range f.Purchases {
		if _, ok := addOns[p.AddOnID]; !ok {
			return fmt.Errorf("purchase %s: unknown add-on %s", p.ID, p.AddOnID)
		}
	}

	return nil
}

// Resolve fills the embedded Reward and AddOn copies of transaction records
// from the catalogs, so fixture files only need to carry the ids.
func (f *Fixture) Resolve() {
	rewards := make(map[string]model.Reward, len(f.Rewards))
	for _, r := range f.Rewards {
		rewards[r.ID] = r
	}
	addOns := make(map[string]model.AddOn, len(f.AddOns))
	for _, a := range f.AddOns {
		addOns[a.ID] = a
	}

	for i := range f.UserRewards {
		if r, ok := rewards[f.UserRewards[i].RewardID]; ok {
			f.UserRewards[i].Reward = r
		}
	}
	for i := range f.Purchases {
		p := &f.Purchases[i]
		if a, ok := addOns[p.AddOnID]; ok {
			p.AddOn = a
		}
		if len(p.Items) == 0 && p.AddOnID != "" {
			p.Items = []model.PurchaseItem{{
				AddOnID:   p.AddOnID,
				Title:     p.AddOn.Title,
				UnitPrice: p.Amount,
				Quantity:  1,
				Subtotal:  p.Amount,
			}}
		}
	}
}

// Default returns the built-in demo state.
func Default() *Fixture {
	analyticsOriginal := decimal.RequireFromString("49.99")
	amazonTerms := "Valid for 1 year from redemption date"
	discountTerms := "Valid for 30 days from redemption"
	voucherCode := "AMZ-ABC123"

	f := &Fixture{
		User: &model.User{
			ID:     "user-1",
			Email:  "user@actyme.com",
			Name:   "Alex Johnson",
			Points: 2500,
			Level:  "Gold",
		},
		Rewards: []model.Reward{
			{
				ID:          "reward-1",
				Title:       "$10 Amazon Gift Card",
				Description: "Redeem for any purchase on Amazon",
				PointsCost:  1000,
				Category:    model.RewardCategoryVoucher,
				ImageURL:    "https://images.pexels.com/photos/1292294/pexels-photo-1292294.jpeg?auto=compress&cs=tinysrgb&w=400",
				PartnerName: "Amazon",
				Terms:       &amazonTerms,
			},
			{
				ID:          "reward-2",
				Title:       "20% Off Next Purchase",
				Description: "Get 20% discount on your next order",
				PointsCost:  500,
				Category:    model.RewardCategoryDiscount,
				ImageURL:    "https://images.pexels.com/photos/3962294/pexels-photo-3962294.jpeg?auto=compress&cs=tinysrgb&w=400",
				PartnerName: "Store Partner",
				Terms:       &discountTerms,
			},
		},
		AddOns: []model.AddOn{
			{
				ID:            "addon-1",
				Title:         "Premium Analytics Dashboard",
				Description:   "Advanced analytics and reporting tools for better insights",
				Price:         decimal.RequireFromString("29.99"),
				OriginalPrice: &analyticsOriginal,
				Category:      "Analytics",
				ImageURL:      "https://images.pexels.com/photos/590022/pexels-photo-590022.jpeg?auto=compress&cs=tinysrgb&w=400",
				PartnerName:   "Analytics Pro",
				Features:      []string{"Real-time dashboards", "Custom reports", "Data export", "API access"},
				Popularity:    85,
			},
			{
				ID:          "addon-2",
				Title:       "Social Media Boost",
				Description: "Enhance your social media presence with automation tools",
				Price:       decimal.RequireFromString("19.99"),
				Category:    "Marketing",
				ImageURL:    "https://images.pexels.com/photos/267350/pexels-photo-267350.jpeg?auto=compress&cs=tinysrgb&w=400",
				PartnerName: "Social Boost",
				Features:    []string{"Auto-posting", "Content calendar", "Analytics tracking", "24/7 support"},
				Popularity:  92,
			},
			{
				ID:          "addon-3",
				Title:       "Cloud Storage Plus",
				Description: "Extra 100GB cloud storage with advanced security",
				Price:       decimal.RequireFromString("9.99"),
				Category:    "Storage",
				ImageURL:    "https://images.pexels.com/photos/2881229/pexels-photo-2881229.jpeg?auto=compress&cs=tinysrgb&w=400",
				PartnerName: "CloudSafe",
				Features:    []string{"100GB storage", "End-to-end encryption", "File sharing", "Version history"},
				Popularity:  78,
			},
		},
		UserRewards: []model.UserReward{
			{
				ID:          "user-reward-1",
				RewardID:    "reward-1",
				RedeemedAt:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
				Status:      model.UserRewardActive,
				VoucherCode: &voucherCode,
				ExpiryDate:  time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC),
			},
		},
		Purchases: []model.PurchaseHistory{
			{
				ID:            "purchase-1",
				AddOnID:       "addon-1",
				PurchasedAt:   time.Date(2024, 1, 10, 14, 20, 0, 0, time.UTC),
				Amount:        decimal.RequireFromString("29.99"),
				Status:        model.PurchaseCompleted,
				TransactionID: "txn_abc123def456",
			},
		},
	}
	f.Resolve()
	return f
}
