package repository

import (
	"context"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// Progress defines the data access interface for subject progress and answered questions
type Progress interface {
	GetSubjectProgress(ctx context.Context, userID string) ([]domain.SubjectProgress, error)
	RecordResponse(ctx context.Context, response *domain.QuestionResponse) error
	// GetResponses returns the user's responses ordered by answered_at ascending
	GetResponses(ctx context.Context, userID string) ([]domain.QuestionResponse, error)
	GetActiveUsersSince(ctx context.Context, since time.Time) ([]string, error)

	BeginTx(ctx context.Context) (ProgressTx, error)
}

// ProgressTx serializes answers for the same (user, subject) pair
type ProgressTx interface {
	Tx

	// GetSubjectProgressForUpdate creates an empty row for a new subject and
	// locks the row until the transaction ends
	GetSubjectProgressForUpdate(ctx context.Context, userID, subjectID, subjectName string) (*domain.SubjectProgress, error)
	UpdateSubjectProgress(ctx context.Context, progress *domain.SubjectProgress) error
	RecordResponse(ctx context.Context, response *domain.QuestionResponse) error
}
