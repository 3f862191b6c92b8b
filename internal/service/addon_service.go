package service

import (
	"context"
	"fmt"

	"ota-rewards/internal/model"
	"ota-rewards/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// addOnService implements AddOnService.
type addOnService struct {
	catalog   repository.CatalogRepository
	purchases repository.PurchaseRepository
	opts      Options
	logger    zerolog.Logger
}

// NewAddOnService creates a new add-on service.
func NewAddOnService(repos repository.Repositories, opts Options, logger zerolog.Logger) AddOnService {
	return &addOnService{
		catalog:   repos.Catalog,
		purchases: repos.Purchases,
		opts:      opts.withDefaults(),
		logger:    logger.With().Str("service", "addon").Logger(),
	}
}

// GetAddOns returns the add-on catalog.
func (s *addOnService) GetAddOns(ctx context.Context) ([]model.AddOn, error) {
	if err := s.opts.Delayer.Delay(ctx, OpGetAddOns); err != nil {
		return nil, err
	}

	addOns, err := s.catalog.ListAddOns(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list add-ons")
		return nil, fmt.Errorf("failed to list add-ons: %w", err)
	}
	if addOns == nil {
		addOns = []model.AddOn{}
	}
	return addOns, nil
}

// GetAddOn returns a single catalog add-on.
func (s *addOnService) GetAddOn(ctx context.Context, id string) (*model.AddOn, error) {
	addOn, err := s.catalog.GetAddOn(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("add_on_id", id).Msg("failed to get add-on")
		return nil, fmt.Errorf("failed to get add-on: %w", err)
	}
	if addOn == nil {
		return nil, model.ErrAddOnNotFound
	}
	return addOn, nil
}

// GetPurchaseHistory returns past purchases, newest first.
func (s *addOnService) GetPurchaseHistory(ctx context.Context) ([]model.PurchaseHistory, error) {
	if err := s.opts.Delayer.Delay(ctx, OpGetPurchaseHistory); err != nil {
		return nil, err
	}

	purchases, err := s.purchases.ListPurchases(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list purchases")
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	if purchases == nil {
		purchases = []model.PurchaseHistory{}
	}
	return purchases, nil
}

// PurchaseAddOns records one purchase covering every item, priced as
// submitted. With VerifyCatalog set each add-on is instead resolved against
// the catalog and priced from it. Once validation passes the purchase is
// not abandoned when ctx is cancelled.
func (s *addOnService) PurchaseAddOns(ctx context.Context, items []model.CartItem) (*model.PurchaseHistory, error) {
	if err := s.validateItems(items); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	if err := s.opts.Delayer.Delay(ctx, OpPurchaseAddOn); err != nil {
		return nil, err
	}

	release := s.opts.Gate.Enter()
	defer release()

	lines := make([]model.PurchaseItem, len(items))
	var first model.AddOn
	amount := decimal.Zero
	for i, item := range items {
		addOn := item.AddOn
		if s.opts.VerifyCatalog {
			resolved, err := s.catalog.GetAddOn(ctx, item.AddOn.ID)
			if err != nil {
				s.logger.Error().Err(err).Str("add_on_id", item.AddOn.ID).Msg("failed to look up add-on")
				return nil, fmt.Errorf("failed to purchase add-ons: %w", err)
			}
			if resolved == nil {
				s.logger.Warn().Str("add_on_id", item.AddOn.ID).Msg("add-on not found")
				return nil, model.ErrAddOnNotFound
			}
			addOn = *resolved
		}
		if i == 0 {
			first = addOn
		}

		priced := model.CartItem{AddOn: addOn, Quantity: item.Quantity}
		lines[i] = model.PurchaseItem{
			AddOnID:   addOn.ID,
			Title:     addOn.Title,
			UnitPrice: addOn.Price,
			Quantity:  item.Quantity,
			Subtotal:  model.RoundMoney(priced.Subtotal()),
		}
		amount = amount.Add(priced.Subtotal())
	}

	purchase := &model.PurchaseHistory{
		ID:            s.opts.IDs.NewID(),
		AddOnID:       first.ID,
		AddOn:         first,
		Items:         lines,
		PurchasedAt:   s.opts.Clock.Now(),
		Amount:        model.RoundMoney(amount),
		Status:        model.PurchaseCompleted,
		TransactionID: s.opts.IDs.NewTransactionID(),
	}

	if err := s.purchases.SavePurchase(ctx, purchase); err != nil {
		s.logger.Error().Err(err).Str("purchase_id", purchase.ID).Msg("failed to save purchase")
		return nil, fmt.Errorf("failed to purchase add-ons: %w", err)
	}

	s.logger.Info().
		Str("purchase_id", purchase.ID).
		Str("transaction_id", purchase.TransactionID).
		Int("item_count", len(lines)).
		Str("amount", purchase.Amount.StringFixed(model.MoneyPlaces)).
		Msg("purchase completed successfully")

	return purchase, nil
}

func (s *addOnService) validateItems(items []model.CartItem) error {
	if len(items) == 0 {
		return model.ErrEmptyPurchase
	}

	for i, item := range items {
		if item.AddOn.ID == "" {
			s.logger.Warn().Int("item_index", i).Msg("item without add-on")
			return model.ErrMissingAddOn
		}
		if item.Quantity < 1 {
			s.logger.Warn().
				Int("item_index", i).
				Str("add_on_id", item.AddOn.ID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}
