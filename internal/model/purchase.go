package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus is the settlement state of a purchase.
type PurchaseStatus string

const (
	PurchaseCompleted PurchaseStatus = "completed"
	PurchasePending   PurchaseStatus = "pending"
	PurchaseFailed    PurchaseStatus = "failed"
)

// PurchaseHistory is an immutable record of one checkout.
//
// AddOnID and AddOn name the first purchased line for clients that only
// render a single add-on; Items holds every line.
type PurchaseHistory struct {
	ID            string          `json:"id" db:"id"`
	AddOnID       string          `json:"addOnId" db:"add_on_id"`
	AddOn         AddOn           `json:"addOn"`
	Items         []PurchaseItem  `json:"items"`
	PurchasedAt   time.Time       `json:"purchasedAt" db:"purchased_at"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Status        PurchaseStatus  `json:"status" db:"status"`
	TransactionID string          `json:"transactionId" db:"transaction_id"`
}

// PurchaseItem is one line of a purchase.
type PurchaseItem struct {
	AddOnID   string          `json:"addOnId" db:"add_on_id"`
	Title     string          `json:"title" db:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// PurchaseRequest is the payload for POST /api/ota/purchases/create.
type PurchaseRequest struct {
	Items []CartItem `json:"items"`
}
