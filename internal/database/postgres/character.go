package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// CharacterRepository implements the character repository for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// GetCharacter retrieves a user's character together with its equipment
func (r *CharacterRepository) GetCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	query := `
		SELECT character_id, user_id, name, level, experience,
		       intelligence, vitality, wisdom, charisma, dexterity, creativity,
		       available_points, specialization, created_at, updated_at
		FROM characters
		WHERE user_id = $1
	`

	var c domain.Character
	var spec *string
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Level,
		&c.Experience,
		&c.Stats.Intelligence,
		&c.Stats.Vitality,
		&c.Stats.Wisdom,
		&c.Stats.Charisma,
		&c.Stats.Dexterity,
		&c.Stats.Creativity,
		&c.AvailablePoints,
		&spec,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrCharacterNotFound, userID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}
	if spec != nil {
		s := domain.Specialization(*spec)
		c.Specialization = &s
	}

	equipment, err := r.getEquipment(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Equipment = equipment

	return &c, nil
}

func (r *CharacterRepository) getEquipment(ctx context.Context, characterID string) ([]domain.EquippedItem, error) {
	query := `
		SELECT ce.slot, ce.item_id, i.item_key, COALESCE(i.stat_bonus, ''), i.bonus_value
		FROM character_equipment ce
		JOIN inventory_items i ON i.item_id = ce.item_id
		WHERE ce.character_id = $1
		ORDER BY ce.slot
	`

	rows, err := r.db.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEquipment, err)
	}
	defer rows.Close()

	equipment := []domain.EquippedItem{}
	for rows.Next() {
		var item domain.EquippedItem
		var stat string
		if err := rows.Scan(&item.Slot, &item.ItemID, &item.ItemKey, &stat, &item.BonusValue); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		item.StatBonus = domain.StatName(stat)
		equipment = append(equipment, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return equipment, nil
}

// CreateCharacter inserts a new character and fills in its generated fields
func (r *CharacterRepository) CreateCharacter(ctx context.Context, c *domain.Character) error {
	query := `
		INSERT INTO characters (user_id, name, level, experience,
		                        intelligence, vitality, wisdom, charisma, dexterity, creativity,
		                        available_points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING character_id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		c.UserID,
		c.Name,
		c.Level,
		c.Experience,
		c.Stats.Intelligence,
		c.Stats.Vitality,
		c.Stats.Wisdom,
		c.Stats.Charisma,
		c.Stats.Dexterity,
		c.Stats.Creativity,
		c.AvailablePoints,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %s", domain.ErrCharacterExists, c.UserID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateCharacter, err)
	}

	if c.Equipment == nil {
		c.Equipment = []domain.EquippedItem{}
	}
	return nil
}

// UpdateCharacter persists level, experience, stats, points and specialization
func (r *CharacterRepository) UpdateCharacter(ctx context.Context, c *domain.Character) error {
	query := `
		UPDATE characters
		SET level = $2, experience = $3,
		    intelligence = $4, vitality = $5, wisdom = $6,
		    charisma = $7, dexterity = $8, creativity = $9,
		    available_points = $10, specialization = $11, updated_at = NOW()
		WHERE character_id = $1
		RETURNING updated_at
	`

	var spec interface{}
	if c.Specialization != nil {
		spec = string(*c.Specialization)
	}

	err := r.db.QueryRow(ctx, query,
		c.ID,
		c.Level,
		c.Experience,
		c.Stats.Intelligence,
		c.Stats.Vitality,
		c.Stats.Wisdom,
		c.Stats.Charisma,
		c.Stats.Dexterity,
		c.Stats.Creativity,
		c.AvailablePoints,
		spec,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: character %s", domain.ErrCharacterNotFound, c.ID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCharacter, err)
	}

	return nil
}

// EquipItem binds an item to a slot, replacing whatever was there
func (r *CharacterRepository) EquipItem(ctx context.Context, characterID string, item domain.EquippedItem) error {
	query := `
		INSERT INTO character_equipment (character_id, slot, item_id, equipped_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (character_id, slot)
		DO UPDATE SET item_id = EXCLUDED.item_id, equipped_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, characterID, item.Slot, item.ItemID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEquipItem, err)
	}
	return nil
}
