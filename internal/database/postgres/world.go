package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// WorldRepository implements per-user world progress storage for PostgreSQL
type WorldRepository struct {
	db *pgxpool.Pool
}

// NewWorldRepository creates a new WorldRepository
func NewWorldRepository(db *pgxpool.Pool) *WorldRepository {
	return &WorldRepository{db: db}
}

const worldProgressColumns = `
	user_id, world_id, unlocked_at, quests_completed, total_quests,
	time_spent, last_visited, favorite_rating, completion_percentage
`

func scanWorldProgress(row pgx.Row) (*domain.WorldProgress, error) {
	var p domain.WorldProgress
	err := row.Scan(
		&p.UserID,
		&p.WorldID,
		&p.UnlockedAt,
		&p.QuestsCompleted,
		&p.TotalQuests,
		&p.TimeSpent,
		&p.LastVisited,
		&p.FavoriteRating,
		&p.CompletionPercentage,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetWorldProgress retrieves every unlocked world for a user
func (r *WorldRepository) GetWorldProgress(ctx context.Context, userID string) ([]domain.WorldProgress, error) {
	query := `SELECT ` + worldProgressColumns + ` FROM world_progress WHERE user_id = $1 ORDER BY world_id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryWorldProgress, err)
	}
	defer rows.Close()

	progress := []domain.WorldProgress{}
	for rows.Next() {
		p, err := scanWorldProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan world progress: %w", err)
		}
		progress = append(progress, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return progress, nil
}

// GetWorldProgressByID returns nil, nil when the world has not been unlocked
func (r *WorldRepository) GetWorldProgressByID(ctx context.Context, userID, worldID string) (*domain.WorldProgress, error) {
	query := `SELECT ` + worldProgressColumns + ` FROM world_progress WHERE user_id = $1 AND world_id = $2`

	p, err := scanWorldProgress(r.db.QueryRow(ctx, query, userID, worldID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWorldProgress, err)
	}
	return p, nil
}

// InsertWorldProgress creates the unlock row. A duplicate key returns false, nil.
func (r *WorldRepository) InsertWorldProgress(ctx context.Context, p *domain.WorldProgress) (bool, error) {
	query := `
		INSERT INTO world_progress (user_id, world_id, unlocked_at, quests_completed, total_quests,
		                            time_spent, last_visited, completion_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		p.UserID,
		p.WorldID,
		p.UnlockedAt,
		p.QuestsCompleted,
		p.TotalQuests,
		p.TimeSpent,
		p.LastVisited,
		p.CompletionPercentage,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertWorldProgress, err)
	}
	return true, nil
}

// UpsertWorldProgress writes the mutable progress fields. Last writer wins.
func (r *WorldRepository) UpsertWorldProgress(ctx context.Context, p *domain.WorldProgress) error {
	query := `
		INSERT INTO world_progress (user_id, world_id, unlocked_at, quests_completed, total_quests,
		                            time_spent, last_visited, favorite_rating, completion_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, world_id)
		DO UPDATE SET
			quests_completed = EXCLUDED.quests_completed,
			total_quests = EXCLUDED.total_quests,
			time_spent = EXCLUDED.time_spent,
			last_visited = EXCLUDED.last_visited,
			favorite_rating = EXCLUDED.favorite_rating,
			completion_percentage = EXCLUDED.completion_percentage
	`

	_, err := r.db.Exec(ctx, query,
		p.UserID,
		p.WorldID,
		p.UnlockedAt,
		p.QuestsCompleted,
		p.TotalQuests,
		p.TimeSpent,
		p.LastVisited,
		p.FavoriteRating,
		p.CompletionPercentage,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertWorldProgress, err)
	}
	return nil
}

// GetWorldQuests lists a world's quests in play order
func (r *WorldRepository) GetWorldQuests(ctx context.Context, worldID string) ([]domain.Quest, error) {
	query := `
		SELECT quest_id, world_id, title, sort_order, xp_reward
		FROM world_quests
		WHERE world_id = $1
		ORDER BY sort_order
	`

	rows, err := r.db.Query(ctx, query, worldID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryWorldQuests, err)
	}
	defer rows.Close()

	quests := []domain.Quest{}
	for rows.Next() {
		var q domain.Quest
		if err := rows.Scan(&q.ID, &q.WorldID, &q.Title, &q.SortOrder, &q.XPReward); err != nil {
			return nil, fmt.Errorf("failed to scan quest: %w", err)
		}
		quests = append(quests, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return quests, nil
}
