package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestAcademy_Go/internal/eventlog"
)

type activityLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates the activity log store
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Append(ctx context.Context, entry eventlog.Entry) (int64, error) {
	if entry.Payload == nil {
		return 0, fmt.Errorf("%s: empty payload", ErrMsgFailedToEncodeEvent)
	}

	// pgx encodes maps as jsonb; a nil metadata map stays SQL NULL
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO activity_log (event_type, user_id, payload, metadata)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING id
	`, entry.Type, entry.UserID, entry.Payload, entry.Metadata).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertEvent, err)
	}
	return id, nil
}

func (r *activityLogRepository) Feed(ctx context.Context, q eventlog.FeedQuery) ([]eventlog.Entry, error) {
	query := `
		SELECT id, event_type, user_id, payload, metadata, occurred_at
		FROM activity_log
		WHERE user_id = $1
		  AND ($2::text = '' OR event_type = $2)
		  AND ($3::bigint = 0 OR id < $3)
		ORDER BY id DESC
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, q.UserID, q.Type, q.BeforeID, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeEvent, err)
	}
	return entries, nil
}

func (r *activityLogRepository) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM activity_log WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteEvents, err)
	}
	return tag.RowsAffected(), nil
}

func scanEntry(row pgx.CollectableRow) (eventlog.Entry, error) {
	var (
		e      eventlog.Entry
		userID *string
	)
	if err := row.Scan(&e.ID, &e.Type, &userID, &e.Payload, &e.Metadata, &e.OccurredAt); err != nil {
		return e, err
	}
	if userID != nil {
		e.UserID = *userID
	}
	return e, nil
}
