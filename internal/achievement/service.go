package achievement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/event"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
	"github.com/osse101/QuestAcademy_Go/internal/repository"
)

// Service evaluates achievement criteria and records awards
type Service interface {
	// CheckAndAward evaluates every achievement the user does not hold yet and
	// returns the newly awarded ones. Never returns a nil slice on success.
	CheckAndAward(ctx context.Context, userID string) ([]domain.Achievement, error)
	GetCatalogue(ctx context.Context) ([]domain.Achievement, error)
	GetUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievementView, error)
	InvalidateCatalogue()
}

type service struct {
	repo       repository.Achievement
	progress   repository.Progress
	characters repository.Character
	publisher  event.Publisher
	cache      *expirable.LRU[string, []domain.Achievement]
	now        func() time.Time
}

// NewService creates a new achievement service. The catalogue is cached for cacheTTL.
func NewService(repo repository.Achievement, progress repository.Progress, characters repository.Character, publisher event.Publisher, cacheTTL time.Duration) Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCatalogueTTL
	}
	return &service{
		repo:       repo,
		progress:   progress,
		characters: characters,
		publisher:  publisher,
		cache:      expirable.NewLRU[string, []domain.Achievement](catalogueCacheSize, nil, cacheTTL),
		now:        time.Now,
	}
}

func (s *service) CheckAndAward(ctx context.Context, userID string) ([]domain.Achievement, error) {
	log := logger.FromContext(ctx)

	snapshot, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		log.Error(LogMsgAchievementCheckFailed, "user_id", userID, "error", err)
		return nil, err
	}

	catalogue, err := s.GetCatalogue(ctx)
	if err != nil {
		log.Error(LogMsgAchievementCheckFailed, "user_id", userID, "error", err)
		return nil, err
	}

	held, err := s.repo.GetUserAchievements(ctx, userID)
	if err != nil {
		log.Error(LogMsgAchievementCheckFailed, "user_id", userID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserAchievementsFailed, err)
	}
	unlocked := make(map[string]bool, len(held))
	for _, ua := range held {
		unlocked[ua.AchievementID] = true
	}

	awarded := []domain.Achievement{}
	for _, a := range catalogue {
		if unlocked[a.ID] || !Evaluate(a.Criteria, snapshot) {
			continue
		}

		inserted, err := s.repo.InsertUserAchievement(ctx, &domain.UserAchievement{
			UserID:        userID,
			AchievementID: a.ID,
			UnlockedAt:    s.now(),
		})
		if err != nil {
			log.Error(ErrMsgAwardFailed, "user_id", userID, "achievement_id", a.ID, "error", err)
			return nil, fmt.Errorf("%s %s: %w", ErrMsgAwardFailed, a.ID, err)
		}
		if !inserted {
			// Another check won the race
			log.Debug(LogMsgAchievementAlreadyHeld, "user_id", userID, "achievement_id", a.ID)
			continue
		}

		log.Info(LogMsgAchievementAwarded, "user_id", userID, "achievement_id", a.ID, "rarity", a.Rarity)
		if s.publisher != nil {
			s.publisher.PublishWithRetry(ctx, event.NewAchievementUnlockedEvent(userID, a.ID, a.Rarity))
		}
		awarded = append(awarded, a)
	}

	return awarded, nil
}

func (s *service) GetCatalogue(ctx context.Context) ([]domain.Achievement, error) {
	if cached, ok := s.cache.Get(catalogueCacheKey); ok {
		return cached, nil
	}

	catalogue, err := s.repo.GetAchievementCatalogue(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCatalogueFailed, err)
	}
	if catalogue == nil {
		catalogue = []domain.Achievement{}
	}

	s.cache.Add(catalogueCacheKey, catalogue)
	logger.FromContext(ctx).Debug(LogMsgCatalogueCacheRefreshed, "count", len(catalogue))
	return catalogue, nil
}

// GetUserAchievements returns the full catalogue annotated with the user's unlock state
func (s *service) GetUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievementView, error) {
	catalogue, err := s.GetCatalogue(ctx)
	if err != nil {
		return nil, err
	}

	held, err := s.repo.GetUserAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserAchievementsFailed, err)
	}
	unlockedAt := make(map[string]time.Time, len(held))
	for _, ua := range held {
		unlockedAt[ua.AchievementID] = ua.UnlockedAt
	}

	views := make([]domain.UserAchievementView, 0, len(catalogue))
	for _, a := range catalogue {
		view := domain.UserAchievementView{Achievement: a}
		if at, ok := unlockedAt[a.ID]; ok {
			view.Unlocked = true
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}
	return views, nil
}

// InvalidateCatalogue drops the cached catalogue
func (s *service) InvalidateCatalogue() {
	s.cache.Purge()
}

func (s *service) loadSnapshot(ctx context.Context, userID string) (domain.ActivitySnapshot, error) {
	var snapshot domain.ActivitySnapshot

	progress, err := s.progress.GetSubjectProgress(ctx, userID)
	if err != nil {
		return snapshot, fmt.Errorf("%s: %w", ErrMsgGetProgressFailed, err)
	}

	responses, err := s.progress.GetResponses(ctx, userID)
	if err != nil {
		return snapshot, fmt.Errorf("%s: %w", ErrMsgGetResponsesFailed, err)
	}

	// A user without a character can still earn activity achievements
	character, err := s.characters.GetCharacter(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrCharacterNotFound) {
		return snapshot, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}

	snapshot.Progress = progress
	snapshot.Responses = responses
	snapshot.Character = character
	return snapshot, nil
}
