package world

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/event"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
	"github.com/osse101/QuestAcademy_Go/internal/repository"
)

// Service evaluates world unlocks and tracks per-user world progress
type Service interface {
	ListWorlds(ctx context.Context, userID string) ([]domain.WorldView, error)
	UnlockWorld(ctx context.Context, userID, worldID string) (bool, error)
	UpdateWorldProgress(ctx context.Context, userID, worldID string, update domain.WorldProgressUpdate) (*domain.WorldProgress, error)
	RecommendWorld(ctx context.Context, userID string) (string, error)
	GetWorldQuests(ctx context.Context, worldID string) ([]domain.Quest, error)
	SyncQuestTotal(ctx context.Context, userID, worldID string) (*domain.WorldProgress, error)
}

type service struct {
	characters repository.Character
	progress   repository.Progress
	worlds     repository.World
	publisher  event.Publisher
	now        func() time.Time
}

// NewService creates a new world service. publisher may be nil.
func NewService(characters repository.Character, progress repository.Progress, worlds repository.World, publisher event.Publisher) Service {
	return &service{
		characters: characters,
		progress:   progress,
		worlds:     worlds,
		publisher:  publisher,
		now:        time.Now,
	}
}

// ListWorlds returns every catalogue world annotated with the user's unlock state and progress
func (s *service) ListWorlds(ctx context.Context, userID string) ([]domain.WorldView, error) {
	level, subjectXP, err := s.loadEligibility(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress, err := s.worlds.GetWorldProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetWorldProgressFailed, err)
	}

	return BuildViews(catalogue, level, subjectXP, progress), nil
}

// UnlockWorld creates the world progress record when the user qualifies.
// Returns false without an error when the requirements are not met.
func (s *service) UnlockWorld(ctx context.Context, userID, worldID string) (bool, error) {
	log := logger.FromContext(ctx)

	w, ok := FindWorld(worldID)
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrWorldNotFound, worldID)
	}

	existing, err := s.worlds.GetWorldProgressByID(ctx, userID, worldID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgGetWorldProgressFailed, err)
	}
	if existing != nil {
		log.Debug(LogMsgWorldAlreadyUnlocked, "user_id", userID, "world_id", worldID)
		return true, nil
	}

	// Eligibility is always recomputed; level and XP may have changed since the list was read
	level, subjectXP, err := s.loadEligibility(ctx, userID)
	if err != nil {
		return false, err
	}
	if !IsUnlocked(w, level, subjectXP) {
		log.Info(LogMsgWorldRequirementsUnmet, "user_id", userID, "world_id", worldID,
			"level", level, "subject_xp", subjectXP[w.SubjectID])
		return false, nil
	}

	now := s.now()
	inserted, err := s.worlds.InsertWorldProgress(ctx, &domain.WorldProgress{
		UserID:          userID,
		WorldID:         worldID,
		UnlockedAt:      now,
		QuestsCompleted: 0,
		TotalQuests:     0,
		LastVisited:     now,
	})
	if err != nil {
		log.Error(ErrMsgUnlockWorldFailed, "user_id", userID, "world_id", worldID, "error", err)
		return false, fmt.Errorf("%s: %w", ErrMsgUnlockWorldFailed, err)
	}

	if inserted {
		log.Info(LogMsgWorldUnlocked, "user_id", userID, "world_id", worldID)
		if s.publisher != nil {
			s.publisher.PublishWithRetry(ctx, event.NewWorldUnlockedEvent(userID, worldID))
		}
	}
	return true, nil
}

// UpdateWorldProgress applies the supplied fields to an unlocked world.
// Last writer wins.
func (s *service) UpdateWorldProgress(ctx context.Context, userID, worldID string, update domain.WorldProgressUpdate) (*domain.WorldProgress, error) {
	if _, ok := FindWorld(worldID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorldNotFound, worldID)
	}
	if err := validateUpdate(update); err != nil {
		return nil, err
	}

	current, err := s.worlds.GetWorldProgressByID(ctx, userID, worldID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetWorldProgressFailed, err)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorldLocked, worldID)
	}

	if update.TimeSpent != nil {
		current.TimeSpent = *update.TimeSpent
	}
	if update.QuestsCompleted != nil {
		current.QuestsCompleted = *update.QuestsCompleted
		if current.TotalQuests > 0 && current.QuestsCompleted > current.TotalQuests {
			logger.FromContext(ctx).Warn(LogMsgQuestsCompletedClamped, "user_id", userID, "world_id", worldID,
				"quests_completed", current.QuestsCompleted, "total_quests", current.TotalQuests)
			current.QuestsCompleted = current.TotalQuests
		}
	}
	if update.FavoriteRating != nil {
		rating := *update.FavoriteRating
		current.FavoriteRating = &rating
	}
	current.LastVisited = s.now()
	current.CompletionPercentage = CompletionPercentage(current.QuestsCompleted, current.TotalQuests)

	if err := s.worlds.UpsertWorldProgress(ctx, current); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateWorldFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgWorldProgressUpdated, "user_id", userID, "world_id", worldID,
		"completion", current.CompletionPercentage)
	return current, nil
}

// RecommendWorld returns the id of the world the user should visit next, or "" when there is none
func (s *service) RecommendWorld(ctx context.Context, userID string) (string, error) {
	views, err := s.ListWorlds(ctx, userID)
	if err != nil {
		return "", err
	}
	return Recommend(views), nil
}

// GetWorldQuests lists a world's quests. Store failures degrade to an empty list.
func (s *service) GetWorldQuests(ctx context.Context, worldID string) ([]domain.Quest, error) {
	if _, ok := FindWorld(worldID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorldNotFound, worldID)
	}

	quests, err := s.worlds.GetWorldQuests(ctx, worldID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgWorldQuestsUnavailable, "world_id", worldID, "error", err)
		return []domain.Quest{}, nil
	}
	if quests == nil {
		quests = []domain.Quest{}
	}
	return quests, nil
}

// SyncQuestTotal sets TotalQuests from the world's quest list and recomputes completion
func (s *service) SyncQuestTotal(ctx context.Context, userID, worldID string) (*domain.WorldProgress, error) {
	if _, ok := FindWorld(worldID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorldNotFound, worldID)
	}

	current, err := s.worlds.GetWorldProgressByID(ctx, userID, worldID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetWorldProgressFailed, err)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorldLocked, worldID)
	}

	// Unlike the read path, a missing quest list must not zero the total
	quests, err := s.worlds.GetWorldQuests(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetQuestsFailed, err)
	}

	current.TotalQuests = len(quests)
	if current.TotalQuests > 0 && current.QuestsCompleted > current.TotalQuests {
		current.QuestsCompleted = current.TotalQuests
	}
	current.CompletionPercentage = CompletionPercentage(current.QuestsCompleted, current.TotalQuests)

	if err := s.worlds.UpsertWorldProgress(ctx, current); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateWorldFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgQuestTotalSynced, "user_id", userID, "world_id", worldID, "total_quests", current.TotalQuests)
	return current, nil
}

func (s *service) loadEligibility(ctx context.Context, userID string) (int, map[string]int64, error) {
	character, err := s.characters.GetCharacter(ctx, userID)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}

	progress, err := s.progress.GetSubjectProgress(ctx, userID)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", ErrMsgGetSubjectProgressFail, err)
	}

	return character.Level, SubjectXP(progress), nil
}

func validateUpdate(update domain.WorldProgressUpdate) error {
	if update.TimeSpent != nil && *update.TimeSpent < 0 {
		return fmt.Errorf("%w: time spent cannot be negative", domain.ErrInvalidInput)
	}
	if update.QuestsCompleted != nil && *update.QuestsCompleted < 0 {
		return fmt.Errorf("%w: quests completed cannot be negative", domain.ErrInvalidInput)
	}
	if update.FavoriteRating != nil {
		if r := *update.FavoriteRating; r < MinFavoriteRating || r > MaxFavoriteRating {
			return fmt.Errorf("%w: favorite rating must be between %d and %d", domain.ErrInvalidInput, MinFavoriteRating, MaxFavoriteRating)
		}
	}
	return nil
}
