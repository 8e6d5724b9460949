package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// InventoryRepository implements the item catalogue and user inventories for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetItemByKey retrieves a catalogue item by its key
func (r *InventoryRepository) GetItemByKey(ctx context.Context, itemKey string) (*domain.InventoryItem, error) {
	query := `
		SELECT item_id, item_key, name, rarity, category,
		       COALESCE(slot, ''), COALESCE(stat_bonus, ''), bonus_value
		FROM inventory_items
		WHERE item_key = $1
	`

	var item domain.InventoryItem
	var stat string
	err := r.db.QueryRow(ctx, query, itemKey).Scan(
		&item.ID,
		&item.Key,
		&item.Name,
		&item.Rarity,
		&item.Category,
		&item.Slot,
		&stat,
		&item.BonusValue,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemKey)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItemByKey, err)
	}
	item.StatBonus = domain.StatName(stat)

	return &item, nil
}

// GetInventory lists the items a user owns with a positive quantity
func (r *InventoryRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	query := `
		SELECT ui.user_id, ui.quantity,
		       i.item_id, i.item_key, i.name, i.rarity, i.category,
		       COALESCE(i.slot, ''), COALESCE(i.stat_bonus, ''), i.bonus_value
		FROM user_inventory ui
		JOIN inventory_items i ON i.item_id = ui.item_id
		WHERE ui.user_id = $1 AND ui.quantity > 0
		ORDER BY i.item_id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	defer rows.Close()

	entries := []domain.InventoryEntry{}
	for rows.Next() {
		var e domain.InventoryEntry
		var stat string
		err := rows.Scan(
			&e.UserID,
			&e.Quantity,
			&e.Item.ID,
			&e.Item.Key,
			&e.Item.Name,
			&e.Item.Rarity,
			&e.Item.Category,
			&e.Item.Slot,
			&stat,
			&e.Item.BonusValue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		e.Item.StatBonus = domain.StatName(stat)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// GetQuantity returns how many of an item the user owns, 0 when none
func (r *InventoryRepository) GetQuantity(ctx context.Context, userID string, itemID int) (int, error) {
	query := `SELECT quantity FROM user_inventory WHERE user_id = $1 AND item_id = $2`

	var quantity int
	err := r.db.QueryRow(ctx, query, userID, itemID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return quantity, nil
}

// AddItem increments the user's quantity of an item
func (r *InventoryRepository) AddItem(ctx context.Context, userID string, itemID, quantity int) error {
	query := `
		INSERT INTO user_inventory (user_id, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = user_inventory.quantity + EXCLUDED.quantity, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, userID, itemID, quantity); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInventory, err)
	}
	return nil
}

// ConsumeItem decrements the quantity only when enough is owned.
// Returns false, nil when the user owns fewer than quantity.
func (r *InventoryRepository) ConsumeItem(ctx context.Context, userID string, itemID, quantity int) (bool, error) {
	query := `
		UPDATE user_inventory
		SET quantity = quantity - $3, updated_at = NOW()
		WHERE user_id = $1 AND item_id = $2 AND quantity >= $3
	`

	tag, err := r.db.Exec(ctx, query, userID, itemID, quantity)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInventory, err)
	}
	return tag.RowsAffected() == 1, nil
}
