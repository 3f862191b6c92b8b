package repository

import (
	"context"
	"fmt"

	"ota-rewards/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// purchaseRepository implements the PurchaseRepository interface using PostgreSQL.
type purchaseRepository struct {
	pool    *pgxpool.Pool
	catalog CatalogRepository
	logger  zerolog.Logger
}

// NewPurchaseRepository creates a new PostgreSQL-backed purchase repository.
func NewPurchaseRepository(pool *pgxpool.Pool, logger zerolog.Logger) PurchaseRepository {
	return &purchaseRepository{
		pool:    pool,
		catalog: NewCatalogRepository(pool, logger),
		logger:  logger.With().Str("repository", "purchase").Logger(),
	}
}

// queuePurchase adds the purchase row and one row per line to batch.
func queuePurchase(batch *pgx.Batch, p *model.PurchaseHistory) {
	batch.Queue(insertPurchase,
		p.ID, p.AddOnID, p.PurchasedAt, p.Amount, string(p.Status), p.TransactionID)
	for i, item := range p.Items {
		batch.Queue(insertPurchaseItem,
			p.ID, i, item.AddOnID, item.Title, item.UnitPrice, item.Quantity, item.Subtotal)
	}
}

// SavePurchase inserts the purchase and its lines in a single transaction.
func (r *purchaseRepository) SavePurchase(ctx context.Context, p *model.PurchaseHistory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	queuePurchase(batch, p)

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			r.logger.Error().
				Err(err).
				Str("purchase_id", p.ID).
				Msg("failed to create purchase")
			return fmt.Errorf("failed to create purchase: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("purchase_id", p.ID).Msg("failed to commit purchase")
		return fmt.Errorf("failed to commit purchase: %w", err)
	}

	r.logger.Debug().
		Str("purchase_id", p.ID).
		Str("transaction_id", p.TransactionID).
		Int("items", len(p.Items)).
		Msg("purchase created successfully")

	return nil
}

// ListPurchases returns the purchase history, newest first, with lines and
// the embedded add-on filled in.
func (r *purchaseRepository) ListPurchases(ctx context.Context) ([]model.PurchaseHistory, error) {
	query := `
		SELECT id, add_on_id, purchased_at, amount, status, transaction_id
		FROM purchases
		ORDER BY seq DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query purchases")
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	purchases := []model.PurchaseHistory{}
	index := make(map[string]int)
	for rows.Next() {
		var p model.PurchaseHistory
		var status string
		err := rows.Scan(&p.ID, &p.AddOnID, &p.PurchasedAt, &p.Amount, &status, &p.TransactionID)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan purchase row")
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		p.Status = model.PurchaseStatus(status)
		p.Items = []model.PurchaseItem{}
		index[p.ID] = len(purchases)
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating purchase rows")
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}
	rows.Close()

	if err := r.attachItems(ctx, purchases, index); err != nil {
		return nil, err
	}

	addOns, err := r.catalog.ListAddOns(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.AddOn, len(addOns))
	for _, a := range addOns {
		byID[a.ID] = a
	}
	for i := range purchases {
		purchases[i].AddOn = byID[purchases[i].AddOnID]
	}

	return purchases, nil
}

func (r *purchaseRepository) attachItems(ctx context.Context, purchases []model.PurchaseHistory, index map[string]int) error {
	if len(purchases) == 0 {
		return nil
	}

	query := `
		SELECT purchase_id, add_on_id, title, unit_price, quantity, subtotal
		FROM purchase_items
		ORDER BY purchase_id, line
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query purchase items")
		return fmt.Errorf("failed to query purchase items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var purchaseID string
		var item model.PurchaseItem
		err := rows.Scan(&purchaseID, &item.AddOnID, &item.Title, &item.UnitPrice, &item.Quantity, &item.Subtotal)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan purchase item row")
			return fmt.Errorf("failed to scan purchase item: %w", err)
		}
		if i, ok := index[purchaseID]; ok {
			purchases[i].Items = append(purchases[i].Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating purchase item rows")
		return fmt.Errorf("error iterating purchase items: %w", err)
	}

	return nil
}
