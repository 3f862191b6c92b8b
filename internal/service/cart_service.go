package service

import (
	"context"

	"ota-rewards/internal/cart"
	"ota-rewards/internal/model"

	"github.com/rs/zerolog"
)

// cartService implements CartService on top of per-session ledgers.
type cartService struct {
	sessions *cart.Sessions
	addOns   AddOnService
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(sessions *cart.Sessions, addOns AddOnService, logger zerolog.Logger) CartService {
	return &cartService{
		sessions: sessions,
		addOns:   addOns,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) View(sessionID string) model.Cart {
	return s.sessions.Snapshot(sessionID)
}

// AddItem resolves addOnID in the catalog and adds one unit of it.
func (s *cartService) AddItem(ctx context.Context, sessionID, addOnID string) (model.Cart, error) {
	if addOnID == "" {
		return model.Cart{}, model.ErrMissingAddOn
	}

	addOn, err := s.addOns.GetAddOn(ctx, addOnID)
	if err != nil {
		return model.Cart{}, err
	}

	var units int
	c := s.sessions.Update(sessionID, func(l *cart.Ledger) {
		l.Add(*addOn)
		units = l.Quantity()
	})

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("add_on_id", addOnID).
		Int("lines", len(c.Items)).
		Int("units", units).
		Int("active_sessions", s.sessions.Len()).
		Str("total", c.Total.StringFixed(model.MoneyPlaces)).
		Msg("item added to cart")

	return c, nil
}

func (s *cartService) RemoveItem(sessionID, addOnID string) model.Cart {
	return s.sessions.Update(sessionID, func(l *cart.Ledger) {
		l.Remove(addOnID)
	})
}

func (s *cartService) Clear(sessionID string) model.Cart {
	return s.sessions.Update(sessionID, func(l *cart.Ledger) {
		l.Clear()
	})
}

// Checkout purchases the current cart contents. Only when the purchase
// succeeds are the bought quantities taken out of the cart; anything added
// while the purchase was in flight stays.
func (s *cartService) Checkout(ctx context.Context, sessionID string) (*model.PurchaseHistory, error) {
	snapshot := s.sessions.Snapshot(sessionID)

	purchase, err := s.addOns.PurchaseAddOns(ctx, snapshot.Items)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("checkout failed")
		return nil, err
	}

	var remaining int
	s.sessions.Update(sessionID, func(l *cart.Ledger) {
		l.Deduct(snapshot.Items)
		remaining = l.Len()
	})

	s.logger.Info().
		Str("session_id", sessionID).
		Str("purchase_id", purchase.ID).
		Int("lines_remaining", remaining).
		Msg("cart checked out")

	return purchase, nil
}
