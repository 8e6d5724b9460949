package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// AchievementRepository implements achievement catalogue and award storage for PostgreSQL
type AchievementRepository struct {
	db *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// GetAchievementCatalogue retrieves every achievement definition
func (r *AchievementRepository) GetAchievementCatalogue(ctx context.Context) ([]domain.Achievement, error) {
	query := `
		SELECT achievement_id, name, description, icon, unlock_criteria, rarity, category
		FROM achievements
		ORDER BY achievement_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryAchievements, err)
	}
	defer rows.Close()

	achievements := []domain.Achievement{}
	for rows.Next() {
		var a domain.Achievement
		var criteria []byte
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Description,
			&a.Icon,
			&criteria,
			&a.Rarity,
			&a.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		if err := json.Unmarshal(criteria, &a.Criteria); err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToUnmarshalCriteria, a.ID, err)
		}
		achievements = append(achievements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return achievements, nil
}

// GetUserAchievements retrieves the achievements a user has unlocked
func (r *AchievementRepository) GetUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error) {
	query := `
		SELECT user_id, achievement_id, unlocked_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY unlocked_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUserAchievements, err)
	}
	defer rows.Close()

	awards := []domain.UserAchievement{}
	for rows.Next() {
		var ua domain.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.AchievementID, &ua.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user achievement: %w", err)
		}
		awards = append(awards, ua)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return awards, nil
}

// InsertUserAchievement awards an achievement. A duplicate award returns false, nil.
func (r *AchievementRepository) InsertUserAchievement(ctx context.Context, award *domain.UserAchievement) (bool, error) {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.Exec(ctx, query, award.UserID, award.AchievementID, award.UnlockedAt); err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertUserAchievement, err)
	}
	return true, nil
}
