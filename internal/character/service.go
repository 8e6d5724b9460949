package character

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/concurrency"
	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/event"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
	"github.com/osse101/QuestAcademy_Go/internal/metrics"
	"github.com/osse101/QuestAcademy_Go/internal/repository"
)

// Service defines the character business logic
type Service interface {
	// Core operations
	GetCharacter(ctx context.Context, userID string) (*domain.CharacterView, error)
	CreateCharacter(ctx context.Context, userID, name string) (*domain.CharacterView, error)
	AwardExperience(ctx context.Context, userID string, xp int64) (*domain.LevelResult, error)

	// Stat operations
	AllocateStats(ctx context.Context, userID string, allocations map[domain.StatName]int) (*domain.CharacterView, error)
	Respec(ctx context.Context, userID string) (*domain.RespecResult, error)
	SelectSpecialization(ctx context.Context, userID string, spec domain.Specialization) (bool, error)
	EquipItem(ctx context.Context, userID, slot, itemKey string) (*domain.CharacterView, error)

	// Respec flow
	GetRespecSession(ctx context.Context, userID string) RespecSession
	BeginRespec(ctx context.Context, userID string) (bool, error)
	ConfirmRespec(ctx context.Context, userID string) (*domain.RespecResult, error)
	Redistribute(ctx context.Context, userID string, allocations map[domain.StatName]int) (*domain.CharacterView, error)
	CancelRespec(ctx context.Context, userID string) error
}

type service struct {
	characters repository.Character
	inventory  repository.Inventory
	publisher  event.Publisher
	sessions   *sessionStore
	locks      *concurrency.LockManager
	now        func() time.Time
}

// NewService creates a new character service. publisher may be nil.
func NewService(characters repository.Character, inventory repository.Inventory, publisher event.Publisher, sessionTTL time.Duration) Service {
	return &service{
		characters: characters,
		inventory:  inventory,
		publisher:  publisher,
		sessions:   newSessionStore(sessionTTL),
		locks:      concurrency.NewLockManager(),
		now:        time.Now,
	}
}

func (s *service) GetCharacter(ctx context.Context, userID string) (*domain.CharacterView, error) {
	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return View(c), nil
}

func (s *service) CreateCharacter(ctx context.Context, userID, name string) (*domain.CharacterView, error) {
	name = strings.TrimSpace(name)
	if userID == "" || name == "" || len(name) > MaxNameLength {
		return nil, fmt.Errorf("%w: character name must be 1-%d characters", domain.ErrInvalidInput, MaxNameLength)
	}

	c := &domain.Character{
		UserID:          userID,
		Name:            name,
		Level:           StartingLevel,
		Stats:           domain.BaseStats(),
		AvailablePoints: InitialStatPoints,
		Equipment:       []domain.EquippedItem{},
	}
	if err := s.characters.CreateCharacter(ctx, c); err != nil {
		if errors.Is(err, domain.ErrCharacterExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateCharacterFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgCharacterCreated, "user_id", userID, "character_id", c.ID)
	return View(c), nil
}

// AwardExperience adds XP, levels the character along the curve and grants stat points per level gained
func (s *service) AwardExperience(ctx context.Context, userID string, xp int64) (*domain.LevelResult, error) {
	if xp <= 0 {
		return nil, fmt.Errorf("%w: experience must be positive", domain.ErrInvalidInput)
	}
	defer s.locks.Lock(userID)()

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldLevel := c.Level
	c.Experience += xp
	newLevel := CalculateLevel(c.Experience)
	if newLevel < oldLevel {
		newLevel = oldLevel
	}

	pointsGained := (newLevel - oldLevel) * StatPointsPerLevel
	c.Level = newLevel
	c.AvailablePoints += pointsGained

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgExperienceAwarded, "user_id", userID, "xp", xp,
		"new_level", newLevel, "leveled_up", newLevel > oldLevel)

	if newLevel > oldLevel && s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewCharacterLevelUpEvent(userID, oldLevel, newLevel, pointsGained))
	}

	return &domain.LevelResult{
		XPGained:     xp,
		NewXP:        c.Experience,
		OldLevel:     oldLevel,
		NewLevel:     newLevel,
		LeveledUp:    newLevel > oldLevel,
		PointsGained: pointsGained,
	}, nil
}

func (s *service) AllocateStats(ctx context.Context, userID string, allocations map[domain.StatName]int) (*domain.CharacterView, error) {
	defer s.locks.Lock(userID)()

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := ValidateAllocation(c, allocations); err != nil {
		return nil, err
	}
	Allocate(c, allocations)

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	for stat, points := range allocations {
		if points > 0 {
			metrics.StatPointsAllocated.WithLabelValues(string(stat)).Add(float64(points))
		}
	}
	logger.FromContext(ctx).Info(LogMsgStatsAllocated, "user_id", userID, "remaining", c.AvailablePoints)
	return View(c), nil
}

// Respec spends one respec token and refunds every invested stat point.
// Without a token the result has Performed set to false.
func (s *service) Respec(ctx context.Context, userID string) (*domain.RespecResult, error) {
	log := logger.FromContext(ctx)
	defer s.locks.Lock(userID)()

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	token, err := s.inventory.GetItemByKey(ctx, domain.ItemKeyRespecToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetItemFailed, err)
	}

	consumed, err := s.inventory.ConsumeItem(ctx, userID, token.ID, 1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgConsumeTokenFailed, err)
	}
	if !consumed {
		log.Info(LogMsgRespecNoToken, "user_id", userID)
		metrics.Respecs.WithLabelValues(metrics.OutcomeNoToken).Inc()
		return &domain.RespecResult{Performed: false}, nil
	}

	invested := Respec(c)
	if err := s.save(ctx, c); err != nil {
		// The token was spent but the stats were not reset
		if refundErr := s.inventory.AddItem(ctx, userID, token.ID, 1); refundErr != nil {
			log.Error(LogMsgRespecTokenRefundFailed, "user_id", userID, "error", refundErr)
		} else {
			log.Warn(LogMsgRespecTokenRefunded, "user_id", userID)
		}
		return nil, err
	}

	log.Info(LogMsgRespecPerformed, "user_id", userID, "invested_points", invested)
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewCharacterRespecEvent(userID, invested))
	}

	return &domain.RespecResult{
		Performed:      true,
		InvestedPoints: invested,
		Character:      c,
	}, nil
}

// SelectSpecialization returns false when the character does not qualify
func (s *service) SelectSpecialization(ctx context.Context, userID string, spec domain.Specialization) (bool, error) {
	if _, ok := PrimaryStat(spec); !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrInvalidSpecialization, spec)
	}
	defer s.locks.Lock(userID)()

	c, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}

	if !CanSpecialize(c, spec) {
		logger.FromContext(ctx).Info(LogMsgSpecializationDenied, "user_id", userID, "specialization", spec, "level", c.Level)
		return false, nil
	}

	c.Specialization = &spec
	if err := s.save(ctx, c); err != nil {
		return false, err
	}

	logger.FromContext(ctx).Info(LogMsgSpecializationSelected, "user_id", userID, "specialization", spec)
	return true, nil
}

// EquipItem places an owned equipment item in the slot, replacing the current one
func (s *service) EquipItem(ctx context.Context, userID, slot, itemKey string) (*domain.CharacterView, error) {
	defer s.locks.Lock(userID)()

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.inventory.GetItemByKey(ctx, itemKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetItemFailed, err)
	}
	if item.Category != domain.ItemCategoryEquipment || item.Slot == "" || item.Slot != slot {
		return nil, fmt.Errorf("%w: %s in %s", domain.ErrInvalidEquipmentSlot, itemKey, slot)
	}

	owned, err := s.inventory.GetQuantity(ctx, userID, item.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetItemFailed, err)
	}
	if owned < 1 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientQuantity, itemKey)
	}

	equipped := domain.EquippedItem{
		Slot:       item.Slot,
		ItemID:     item.ID,
		ItemKey:    item.Key,
		StatBonus:  item.StatBonus,
		BonusValue: item.BonusValue,
	}
	if err := s.characters.EquipItem(ctx, c.ID, equipped); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgEquipItemFailed, err)
	}

	replaced := false
	for i := range c.Equipment {
		if c.Equipment[i].Slot == equipped.Slot {
			c.Equipment[i] = equipped
			replaced = true
		}
	}
	if !replaced {
		c.Equipment = append(c.Equipment, equipped)
	}

	logger.FromContext(ctx).Info(LogMsgItemEquipped, "user_id", userID, "item", itemKey, "slot", item.Slot)
	return View(c), nil
}

func (s *service) GetRespecSession(_ context.Context, userID string) RespecSession {
	session, _ := s.sessions.Get(userID)
	return session
}

// BeginRespec opens a respec session. Returns false when the user holds no respec token.
func (s *service) BeginRespec(ctx context.Context, userID string) (bool, error) {
	if _, err := s.load(ctx, userID); err != nil {
		return false, err
	}

	token, err := s.inventory.GetItemByKey(ctx, domain.ItemKeyRespecToken)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgGetItemFailed, err)
	}
	balance, err := s.inventory.GetQuantity(ctx, userID, token.ID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgCheckTokenFailed, err)
	}
	if balance < 1 {
		return false, nil
	}

	if _, err := s.sessions.Begin(userID, s.now()); err != nil {
		return false, err
	}
	logger.FromContext(ctx).Info(LogMsgRespecSessionStarted, "user_id", userID)
	return true, nil
}

// ConfirmRespec performs the respec for a confirming session and moves it to redistributing
func (s *service) ConfirmRespec(ctx context.Context, userID string) (*domain.RespecResult, error) {
	// Claim the session so a second confirm cannot spend another token
	if err := s.sessions.Transition(userID, RespecStateConfirming, RespecStateApplying); err != nil {
		return nil, err
	}

	result, err := s.Respec(ctx, userID)
	if err != nil {
		_ = s.sessions.Transition(userID, RespecStateApplying, RespecStateConfirming)
		return nil, err
	}
	if !result.Performed {
		s.sessions.End(userID)
		return result, nil
	}

	s.sessions.SetInvested(userID, result.InvestedPoints)
	if err := s.sessions.Transition(userID, RespecStateApplying, RespecStateRedistributing); err != nil {
		return nil, err
	}
	return result, nil
}

// Redistribute allocates points during a respec. The session ends once every point is spent.
func (s *service) Redistribute(ctx context.Context, userID string, allocations map[domain.StatName]int) (*domain.CharacterView, error) {
	if state := s.sessions.State(userID); state != RespecStateRedistributing {
		if state == RespecStateIdle {
			return nil, domain.ErrRespecSessionNotFound
		}
		return nil, fmt.Errorf("%w: expected %s, got %s", domain.ErrInvalidRespecState, RespecStateRedistributing, state)
	}

	view, err := s.AllocateStats(ctx, userID, allocations)
	if err != nil {
		return nil, err
	}

	if view.AvailablePoints == 0 {
		s.sessions.End(userID)
		logger.FromContext(ctx).Info(LogMsgRespecSessionCompleted, "user_id", userID)
	}
	return view, nil
}

// CancelRespec abandons a session that has not spent its token yet
func (s *service) CancelRespec(ctx context.Context, userID string) error {
	if err := s.sessions.Transition(userID, RespecStateConfirming, RespecStateIdle); err != nil {
		return err
	}
	s.sessions.End(userID)
	logger.FromContext(ctx).Info(LogMsgRespecSessionCancelled, "user_id", userID)
	return nil
}

func (s *service) load(ctx context.Context, userID string) (*domain.Character, error) {
	c, err := s.characters.GetCharacter(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCharacterNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}
	return c, nil
}

func (s *service) save(ctx context.Context, c *domain.Character) error {
	if err := s.characters.UpdateCharacter(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateCharacterFailed, err)
	}
	return nil
}
