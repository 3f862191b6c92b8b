package model

import "github.com/shopspring/decimal"

// AddOn is a purchasable feature offered through the store catalog.
type AddOn struct {
	ID            string           `json:"id" db:"id"`
	Title         string           `json:"title" db:"title"`
	Description   string           `json:"description" db:"description"`
	Price         decimal.Decimal  `json:"price" db:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty" db:"original_price"`
	Category      string           `json:"category" db:"category"`
	ImageURL      string           `json:"imageUrl" db:"image_url"`
	PartnerName   string           `json:"partnerName" db:"partner_name"`
	Features      []string         `json:"features" db:"features"`
	Popularity    int              `json:"popularity" db:"popularity"`
}

// CartItem is one add-on selection and its quantity.
type CartItem struct {
	AddOn    AddOn `json:"addOn"`
	Quantity int   `json:"quantity"`
}

// Subtotal returns unit price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.AddOn.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is a point-in-time view of a cart ledger.
type Cart struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// AddToCartRequest is the payload for POST /api/ota/cart/items.
type AddToCartRequest struct {
	AddOnID string `json:"addOnId"`
}
