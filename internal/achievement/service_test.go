package achievement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/event"
	"github.com/osse101/QuestAcademy_Go/internal/testing/mocks"
)

const testUserID = "user-1"

var (
	firstSteps = domain.Achievement{
		ID:       "first-steps",
		Name:     "First Steps",
		Criteria: domain.UnlockCriteria{Type: domain.CriteriaLessonsCompleted, Count: 1},
		Rarity:   domain.RarityCommon,
	}
	mathApprentice = domain.Achievement{
		ID:       "math-apprentice",
		Name:     "Math Apprentice",
		Criteria: domain.UnlockCriteria{Type: domain.CriteriaSubjectCorrectAnswers, Subject: "Mathematics", Count: 5},
		Rarity:   domain.RarityUncommon,
	}
	risingStar = domain.Achievement{
		ID:       "rising-star",
		Name:     "Rising Star",
		Criteria: domain.UnlockCriteria{Type: domain.CriteriaCharacterLevel, Level: 5},
		Rarity:   domain.RarityRare,
	}
)

type testDeps struct {
	repo       *mocks.AchievementRepository
	progress   *mocks.ProgressRepository
	characters *mocks.CharacterRepository
	publisher  *mocks.Publisher
	svc        *service
}

func newTestService() *testDeps {
	d := &testDeps{
		repo:       new(mocks.AchievementRepository),
		progress:   new(mocks.ProgressRepository),
		characters: new(mocks.CharacterRepository),
		publisher:  new(mocks.Publisher),
	}
	d.svc = NewService(d.repo, d.progress, d.characters, d.publisher, time.Minute).(*service)
	return d
}

func (d *testDeps) withActivity(responses []domain.QuestionResponse, level int) {
	d.progress.On("GetSubjectProgress", mock.Anything, testUserID).Return([]domain.SubjectProgress{}, nil)
	d.progress.On("GetResponses", mock.Anything, testUserID).Return(responses, nil)
	d.characters.On("GetCharacter", mock.Anything, testUserID).Return(&domain.Character{UserID: testUserID, Level: level}, nil)
	d.repo.On("GetAchievementCatalogue", mock.Anything).Return([]domain.Achievement{firstSteps, mathApprentice, risingStar}, nil)
}

func TestCheckAndAward_FiveCorrectMathematicsAnswers(t *testing.T) {
	d := newTestService()
	d.withActivity(responses("yyyyy", "mathematics", "Mathematics", 3), 1)

	d.repo.On("GetUserAchievements", mock.Anything, testUserID).Return([]domain.UserAchievement{}, nil).Once()
	d.repo.On("GetUserAchievements", mock.Anything, testUserID).Return([]domain.UserAchievement{
		{UserID: testUserID, AchievementID: firstSteps.ID},
		{UserID: testUserID, AchievementID: mathApprentice.ID},
	}, nil).Once()
	d.repo.On("InsertUserAchievement", mock.Anything, mock.Anything).Return(true, nil)

	first, err := d.svc.CheckAndAward(context.Background(), testUserID)
	require.NoError(t, err)
	second, err := d.svc.CheckAndAward(context.Background(), testUserID)
	require.NoError(t, err)

	ids := make([]string, 0, len(first))
	for _, a := range first {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"first-steps", "math-apprentice"}, ids)

	assert.NotNil(t, second)
	assert.Empty(t, second)
	d.repo.AssertNumberOfCalls(t, "InsertUserAchievement", 2)
	assert.Len(t, d.publisher.OfType(event.AchievementUnlocked), 2)
	// The catalogue is served from cache on the second call
	d.repo.AssertNumberOfCalls(t, "GetAchievementCatalogue", 1)
}

func TestCheckAndAward_DuplicateInsertIgnored(t *testing.T) {
	d := newTestService()
	d.withActivity(responses("y", "science", "Science", 3), 1)
	d.repo.On("GetUserAchievements", mock.Anything, testUserID).Return([]domain.UserAchievement{}, nil)
	d.repo.On("InsertUserAchievement", mock.Anything, mock.Anything).Return(false, nil)

	awarded, err := d.svc.CheckAndAward(context.Background(), testUserID)

	require.NoError(t, err)
	assert.Empty(t, awarded)
	assert.Empty(t, d.publisher.Events())
}

func TestCheckAndAward_CharacterLevel(t *testing.T) {
	d := newTestService()
	d.withActivity(nil, 6)
	d.repo.On("GetUserAchievements", mock.Anything, testUserID).Return([]domain.UserAchievement{}, nil)
	d.repo.On("InsertUserAchievement", mock.Anything, mock.MatchedBy(func(ua *domain.UserAchievement) bool {
		return ua.AchievementID == risingStar.ID && ua.UserID == testUserID
	})).Return(true, nil)

	awarded, err := d.svc.CheckAndAward(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, risingStar.ID, awarded[0].ID)
}

func TestCheckAndAward_WithoutCharacter(t *testing.T) {
	d := newTestService()
	d.progress.On("GetSubjectProgress", mock.Anything, testUserID).Return(nil, nil)
	d.progress.On("GetResponses", mock.Anything, testUserID).Return(responses("y", "art", "Art", 3), nil)
	d.characters.On("GetCharacter", mock.Anything, testUserID).Return(nil, domain.ErrCharacterNotFound)
	d.repo.On("GetAchievementCatalogue", mock.Anything).Return([]domain.Achievement{firstSteps, risingStar}, nil)
	d.repo.On("GetUserAchievements", mock.Anything, testUserID).Return(nil, nil)
	d.repo.On("InsertUserAchievement", mock.Anything, mock.Anything).Return(true, nil)

	awarded, err := d.svc.CheckAndAward(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, firstSteps.ID, awarded[0].ID)
}

func TestCheckAndAward_StoreFailures(t *testing.T) {
	storeErr := errors.New("connection refused")

	t.Run("responses", func(t *testing.T) {
		d := newTestService()
		d.progress.On("GetSubjectProgress", mock.Anything, testUserID).Return(nil, nil)
		d.progress.On("GetResponses", mock.Anything, testUserID).Return(nil, storeErr)

		awarded, err := d.svc.CheckAndAward(context.Background(), testUserID)

		assert.Nil(t, awarded)
		assert.ErrorIs(t, err, storeErr)
		assert.Contains(t, err.Error(), ErrMsgGetResponsesFailed)
	})

	t.Run("insert", func(t *testing.T) {
		d := newTestService()
		d.withActivity(responses("y", "science", "Science", 3), 1)
		d.repo.On("GetUserAchievements", mock.Anything, testUserID).Return(nil, nil)
		d.repo.On("InsertUserAchievement", mock.Anything, mock.Anything).Return(false, storeErr)

		_, err := d.svc.CheckAndAward(context.Background(), testUserID)

		assert.ErrorIs(t, err, storeErr)
		assert.Contains(t, err.Error(), ErrMsgAwardFailed)
	})

	t.Run("character", func(t *testing.T) {
		d := newTestService()
		d.progress.On("GetSubjectProgress", mock.Anything, testUserID).Return(nil, nil)
		d.progress.On("GetResponses", mock.Anything, testUserID).Return(nil, nil)
		d.characters.On("GetCharacter", mock.Anything, testUserID).Return(nil, storeErr)

		_, err := d.svc.CheckAndAward(context.Background(), testUserID)

		assert.ErrorIs(t, err, storeErr)
	})
}

func TestGetUserAchievements(t *testing.T) {
	d := newTestService()
	unlockedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	d.repo.On("GetAchievementCatalogue", mock.Anything).Return([]domain.Achievement{firstSteps, mathApprentice}, nil)
	d.repo.On("GetUserAchievements", mock.Anything, testUserID).Return([]domain.UserAchievement{
		{UserID: testUserID, AchievementID: firstSteps.ID, UnlockedAt: unlockedAt},
	}, nil)

	views, err := d.svc.GetUserAchievements(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].Unlocked)
	require.NotNil(t, views[0].UnlockedAt)
	assert.True(t, views[0].UnlockedAt.Equal(unlockedAt))
	assert.False(t, views[1].Unlocked)
	assert.Nil(t, views[1].UnlockedAt)
}

func TestGetCatalogue_InvalidateReloads(t *testing.T) {
	d := newTestService()
	d.repo.On("GetAchievementCatalogue", mock.Anything).Return([]domain.Achievement{firstSteps}, nil)

	_, err := d.svc.GetCatalogue(context.Background())
	require.NoError(t, err)
	_, err = d.svc.GetCatalogue(context.Background())
	require.NoError(t, err)
	d.repo.AssertNumberOfCalls(t, "GetAchievementCatalogue", 1)

	d.svc.InvalidateCatalogue()
	_, err = d.svc.GetCatalogue(context.Background())
	require.NoError(t, err)
	d.repo.AssertNumberOfCalls(t, "GetAchievementCatalogue", 2)
}

func TestGetCatalogue_FailureNotCached(t *testing.T) {
	d := newTestService()
	d.repo.On("GetAchievementCatalogue", mock.Anything).Return(nil, errors.New("boom")).Once()
	d.repo.On("GetAchievementCatalogue", mock.Anything).Return([]domain.Achievement{firstSteps}, nil).Once()

	_, err := d.svc.GetCatalogue(context.Background())
	require.Error(t, err)

	catalogue, err := d.svc.GetCatalogue(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalogue, 1)
}
