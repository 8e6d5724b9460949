package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/event"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
	"github.com/osse101/QuestAcademy_Go/internal/repository"
	"github.com/osse101/QuestAcademy_Go/internal/world"
)

// ExperienceAwarder levels a user's character
type ExperienceAwarder interface {
	AwardExperience(ctx context.Context, userID string, xp int64) (*domain.LevelResult, error)
}

// Service records learning activity
type Service interface {
	RecordAnswer(ctx context.Context, submission domain.AnswerSubmission) (*domain.AnswerResult, error)
	GetSubjectProgress(ctx context.Context, userID string) ([]domain.SubjectProgress, error)
}

type service struct {
	repo      repository.Progress
	awarder   ExperienceAwarder
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new progress service. awarder and publisher may be nil.
func NewService(repo repository.Progress, awarder ExperienceAwarder, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		awarder:   awarder,
		publisher: publisher,
		now:       time.Now,
	}
}

// RecordAnswer stores the response, updates the subject totals and daily
// streak, and passes the earned XP on to the character.
func (s *service) RecordAnswer(ctx context.Context, submission domain.AnswerSubmission) (*domain.AnswerResult, error) {
	log := logger.FromContext(ctx)

	sub, err := normalize(submission)
	if err != nil {
		return nil, err
	}

	now := s.now()
	response := domain.QuestionResponse{
		ID:           uuid.New(),
		UserID:       sub.UserID,
		SubjectID:    sub.SubjectID,
		SubjectName:  sub.SubjectName,
		QuestionID:   sub.QuestionID,
		Correct:      sub.Correct,
		ResponseTime: sub.ResponseTime,
		AnsweredAt:   now,
	}

	xp := int64(XPAttempt)
	if sub.Correct {
		xp = XPCorrectAnswer
	}

	progress, err := s.applyAnswer(ctx, &response, xp)
	if err != nil {
		return nil, err
	}

	result := &domain.AnswerResult{
		Response: response,
		Progress: *progress,
		XPGained: xp,
	}

	if s.awarder != nil {
		levelResult, err := s.awarder.AwardExperience(ctx, sub.UserID, xp)
		switch {
		case errors.Is(err, domain.ErrCharacterNotFound):
			log.Debug(LogMsgCharacterXPSkipped, "user_id", sub.UserID)
		case err != nil:
			// The answer is already stored; the XP shortfall is only logged
			log.Error(LogMsgCharacterXPAwardFailed, "user_id", sub.UserID, "error", err)
		default:
			result.Character = levelResult
		}
	}

	log.Info(LogMsgAnswerRecorded, "user_id", sub.UserID, "subject_id", sub.SubjectID, "correct", sub.Correct, "xp", xp)
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewAnswerRecordedEvent(sub.UserID, sub.SubjectID, sub.Correct, xp))
	}

	return result, nil
}

func (s *service) GetSubjectProgress(ctx context.Context, userID string) ([]domain.SubjectProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	progress, err := s.repo.GetSubjectProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetProgressFailed, err)
	}
	if progress == nil {
		progress = []domain.SubjectProgress{}
	}
	return progress, nil
}

func normalize(sub domain.AnswerSubmission) (domain.AnswerSubmission, error) {
	sub.UserID = strings.TrimSpace(sub.UserID)
	sub.SubjectID = strings.TrimSpace(sub.SubjectID)
	sub.SubjectName = strings.TrimSpace(sub.SubjectName)
	sub.QuestionID = strings.TrimSpace(sub.QuestionID)

	if sub.UserID == "" || sub.QuestionID == "" {
		return sub, fmt.Errorf("%w: user id and question id are required", domain.ErrInvalidInput)
	}
	if sub.SubjectID == "" && sub.SubjectName == "" {
		return sub, fmt.Errorf("%w: subject is required", domain.ErrInvalidInput)
	}
	if sub.ResponseTime < 0 {
		return sub, fmt.Errorf("%w: response time cannot be negative", domain.ErrInvalidInput)
	}

	if sub.SubjectID == "" {
		sub.SubjectID = world.SubjectSlug(sub.SubjectName)
	}
	if sub.SubjectName == "" {
		sub.SubjectName = sub.SubjectID
	}
	return sub, nil
}

// applyAnswer stores the response and folds it into the subject totals in one
// transaction. The progress row stays locked until commit so concurrent
// answers for the same subject are applied one after the other.
func (s *service) applyAnswer(ctx context.Context, response *domain.QuestionResponse, xp int64) (*domain.SubjectProgress, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	progress, err := tx.GetSubjectProgressForUpdate(ctx, response.UserID, response.SubjectID, response.SubjectName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetProgressFailed, err)
	}
	if err := tx.RecordResponse(ctx, response); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRecordResponseFailed, err)
	}

	progress.TotalXP += xp
	progress.QuestionsAnswered++
	if response.Correct {
		progress.CorrectAnswers++
	}
	progress.CurrentStreak = nextStreak(progress.CurrentStreak, progress.UpdatedAt, response.AnsweredAt)
	if progress.CurrentStreak > progress.BestStreak {
		progress.BestStreak = progress.CurrentStreak
	}

	if err := tx.UpdateSubjectProgress(ctx, progress); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSaveProgressFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return progress, nil
}
