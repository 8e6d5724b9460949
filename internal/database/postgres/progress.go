package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/repository"
)

// ProgressRepository implements subject progress and response storage for PostgreSQL
type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetSubjectProgress retrieves every subject row for a user
func (r *ProgressRepository) GetSubjectProgress(ctx context.Context, userID string) ([]domain.SubjectProgress, error) {
	query := `
		SELECT user_id, subject_id, subject_name, total_xp, questions_answered,
		       correct_answers, current_streak, best_streak, updated_at
		FROM user_progress
		WHERE user_id = $1
		ORDER BY subject_id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySubjectProgress, err)
	}
	defer rows.Close()

	progress := []domain.SubjectProgress{}
	for rows.Next() {
		var p domain.SubjectProgress
		err := rows.Scan(
			&p.UserID,
			&p.SubjectID,
			&p.SubjectName,
			&p.TotalXP,
			&p.QuestionsAnswered,
			&p.CorrectAnswers,
			&p.CurrentStreak,
			&p.BestStreak,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subject progress: %w", err)
		}
		progress = append(progress, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return progress, nil
}

// RecordResponse stores a single answered question
func (r *ProgressRepository) RecordResponse(ctx context.Context, resp *domain.QuestionResponse) error {
	return recordResponse(ctx, r.db, resp)
}

// BeginTx starts a transaction for recording an answer
func (r *ProgressRepository) BeginTx(ctx context.Context) (repository.ProgressTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	return &progressTx{tx: tx}, nil
}

// progressTx implements repository.ProgressTx
type progressTx struct {
	tx pgx.Tx
}

func (t *progressTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *progressTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// GetSubjectProgressForUpdate inserts a zero row when the subject is new and
// then locks it. A concurrent first answer blocks on the primary key until
// this transaction ends, so both always see the other's totals.
func (t *progressTx) GetSubjectProgressForUpdate(ctx context.Context, userID, subjectID, subjectName string) (*domain.SubjectProgress, error) {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO user_progress (user_id, subject_id, subject_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, subject_id) DO NOTHING
	`, userID, subjectID, subjectName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockSubjectProgress, err)
	}

	query := `
		SELECT user_id, subject_id, subject_name, total_xp, questions_answered,
		       correct_answers, current_streak, best_streak, updated_at
		FROM user_progress
		WHERE user_id = $1 AND subject_id = $2
		FOR UPDATE
	`

	var p domain.SubjectProgress
	err = t.tx.QueryRow(ctx, query, userID, subjectID).Scan(
		&p.UserID,
		&p.SubjectID,
		&p.SubjectName,
		&p.TotalXP,
		&p.QuestionsAnswered,
		&p.CorrectAnswers,
		&p.CurrentStreak,
		&p.BestStreak,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockSubjectProgress, err)
	}
	return &p, nil
}

// UpdateSubjectProgress writes the totals of a row locked by GetSubjectProgressForUpdate
func (t *progressTx) UpdateSubjectProgress(ctx context.Context, p *domain.SubjectProgress) error {
	query := `
		UPDATE user_progress
		SET subject_name = $3,
		    total_xp = $4,
		    questions_answered = $5,
		    correct_answers = $6,
		    current_streak = $7,
		    best_streak = $8,
		    updated_at = NOW()
		WHERE user_id = $1 AND subject_id = $2
		RETURNING updated_at
	`

	err := t.tx.QueryRow(ctx, query,
		p.UserID,
		p.SubjectID,
		p.SubjectName,
		p.TotalXP,
		p.QuestionsAnswered,
		p.CorrectAnswers,
		p.CurrentStreak,
		p.BestStreak,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateSubjectProgress, err)
	}
	return nil
}

func (t *progressTx) RecordResponse(ctx context.Context, resp *domain.QuestionResponse) error {
	return recordResponse(ctx, t.tx, resp)
}

// execer is the part of pgxpool.Pool and pgx.Tx that recordResponse needs
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func recordResponse(ctx context.Context, db execer, resp *domain.QuestionResponse) error {
	query := `
		INSERT INTO question_responses (response_id, user_id, subject_id, subject_name,
		                                question_id, correct, response_time, answered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := db.Exec(ctx, query,
		resp.ID,
		resp.UserID,
		resp.SubjectID,
		resp.SubjectName,
		resp.QuestionID,
		resp.Correct,
		resp.ResponseTime,
		resp.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordResponse, err)
	}
	return nil
}

// GetResponses returns the user's responses in chronological order
func (r *ProgressRepository) GetResponses(ctx context.Context, userID string) ([]domain.QuestionResponse, error) {
	query := `
		SELECT response_id, user_id, subject_id, subject_name, question_id,
		       correct, response_time, answered_at
		FROM question_responses
		WHERE user_id = $1
		ORDER BY answered_at ASC, response_id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryResponses, err)
	}
	defer rows.Close()

	responses := []domain.QuestionResponse{}
	for rows.Next() {
		var resp domain.QuestionResponse
		err := rows.Scan(
			&resp.ID,
			&resp.UserID,
			&resp.SubjectID,
			&resp.SubjectName,
			&resp.QuestionID,
			&resp.Correct,
			&resp.ResponseTime,
			&resp.AnsweredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return responses, nil
}

// GetActiveUsersSince lists users who answered at least one question after since
func (r *ProgressRepository) GetActiveUsersSince(ctx context.Context, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT user_id
		FROM question_responses
		WHERE answered_at > $1
		ORDER BY user_id
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryActiveUsers, err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		users = append(users, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}
