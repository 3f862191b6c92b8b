// Package cart keeps the add-on selections of a session before checkout.
package cart

import (
	"ota-rewards/internal/model"

	"github.com/shopspring/decimal"
)

// Ledger tracks pending add-on selections and their aggregate cost.
// A Ledger is owned by a single session and is not safe for concurrent use.
type Ledger struct {
	items []model.CartItem
	total decimal.Decimal
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{items: []model.CartItem{}, total: decimal.Zero}
}

// Add puts one more unit of addOn in the cart. An add-on already present has
// its quantity incremented instead of gaining a second line.
func (l *Ledger) Add(addOn model.AddOn) {
	for i := range l.items {
		if l.items[i].AddOn.ID == addOn.ID {
			l.items[i].Quantity++
			l.recompute()
			return
		}
	}
	l.items = append(l.items, model.CartItem{AddOn: addOn, Quantity: 1})
	l.recompute()
}

// Remove drops the whole line for addOnID regardless of its quantity.
// Removing an add-on that is not in the cart is a no-op.
func (l *Ledger) Remove(addOnID string) {
	kept := l.items[:0]
	for _, item := range l.items {
		if item.AddOn.ID != addOnID {
			kept = append(kept, item)
		}
	}
	// zero the tail so dropped add-ons are not retained
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = model.CartItem{}
	}
	l.items = kept
	l.recompute()
}

// Clear empties the cart.
func (l *Ledger) Clear() {
	l.items = []model.CartItem{}
	l.recompute()
}

// Deduct takes purchased quantities out of the cart. A line whose quantity
// drops to zero is removed; units added since the purchase was priced stay.
func (l *Ledger) Deduct(purchased []model.CartItem) {
	for _, p := range purchased {
		for i := range l.items {
			if l.items[i].AddOn.ID == p.AddOn.ID {
				l.items[i].Quantity -= p.Quantity
				break
			}
		}
	}

	kept := l.items[:0]
	for _, item := range l.items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = model.CartItem{}
	}
	l.items = kept
	l.recompute()
}

// Total returns the sum of unit price times quantity over every line.
func (l *Ledger) Total() decimal.Decimal {
	return l.total
}

// Items returns a copy of the cart lines in insertion order.
func (l *Ledger) Items() []model.CartItem {
	items := make([]model.CartItem, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of distinct add-ons in the cart.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Quantity returns the total number of units across all lines.
func (l *Ledger) Quantity() int {
	n := 0
	for _, item := range l.items {
		n += item.Quantity
	}
	return n
}

// Snapshot returns the cart contents and total as a detached value.
func (l *Ledger) Snapshot() model.Cart {
	return model.Cart{Items: l.Items(), Total: l.total}
}

// recompute derives the total from the current items.
func (l *Ledger) recompute() {
	total := decimal.Zero
	for _, item := range l.items {
		total = total.Add(item.Subtotal())
	}
	l.total = total
}
