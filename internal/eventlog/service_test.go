package eventlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestAcademy_Go/internal/event"
)

func TestService_SubscribeRecordsProgressionEvents(t *testing.T) {
	repo := new(MockRepository)
	bus := event.NewMemoryBus()
	NewService(repo).Subscribe(bus)

	repo.On("Append", mock.Anything, mock.MatchedBy(func(e Entry) bool {
		return e.Type == string(event.WorldUnlocked) &&
			e.UserID == "user-1" &&
			e.Payload["world_id"] == "science-citadel"
	})).Return(int64(1), nil)

	require.NoError(t, bus.Publish(context.Background(), event.NewWorldUnlockedEvent("user-1", "science-citadel")))
	repo.AssertExpectations(t)
}

func TestService_RecordKeepsMetadata(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo).(*service)

	repo.On("Append", mock.Anything, mock.MatchedBy(func(e Entry) bool {
		return e.Payload["achievement_id"] == "first-steps" && e.Metadata["rarity"] == "common"
	})).Return(int64(9), nil)

	assert.NoError(t, svc.record(context.Background(), event.NewAchievementUnlockedEvent("user-1", "first-steps", "common")))
	repo.AssertExpectations(t)
}

func TestService_RecordSkipsNonObjectPayload(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo).(*service)

	err := svc.record(context.Background(), event.Event{Type: event.AnswerRecorded, Payload: "not an object"})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestService_RecordStoreFailure(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo).(*service)
	repo.On("Append", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	err := svc.record(context.Background(), event.NewCharacterRespecEvent("user-1", 10))

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), ErrMsgAppendFailed)
}

func entries(ids ...int64) []Entry {
	out := make([]Entry, len(ids))
	for i, id := range ids {
		out[i] = Entry{ID: id, Type: string(event.CharacterLevelUp), UserID: "user-1"}
	}
	return out
}

func TestService_GetUserFeed(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		query      FeedQuery
		wantLimit  int // limit passed to the store, including the lookahead row
		stored     []Entry
		wantIDs    []int64
		wantCursor int64
	}{
		{
			name:      "default limit, empty feed",
			query:     FeedQuery{UserID: "user-1"},
			wantLimit: DefaultFeedLimit + 1,
			stored:    nil,
			wantIDs:   []int64{},
		},
		{
			name:      "limit clamped to max",
			query:     FeedQuery{UserID: "user-1", Limit: 10_000},
			wantLimit: MaxFeedLimit + 1,
			stored:    entries(3, 2, 1),
			wantIDs:   []int64{3, 2, 1},
		},
		{
			name:       "more rows than the limit yields a cursor",
			query:      FeedQuery{UserID: "user-1", Limit: 2},
			wantLimit:  3,
			stored:     entries(9, 7, 4),
			wantIDs:    []int64{9, 7},
			wantCursor: 7,
		},
		{
			name:      "exactly the limit is the last page",
			query:     FeedQuery{UserID: "user-1", Limit: 2, BeforeID: 7},
			wantLimit: 3,
			stored:    entries(4, 1),
			wantIDs:   []int64{4, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("Feed", ctx, mock.MatchedBy(func(q FeedQuery) bool {
				return q.UserID == tt.query.UserID && q.BeforeID == tt.query.BeforeID && q.Limit == tt.wantLimit
			})).Return(tt.stored, nil)

			feed, err := NewService(repo).GetUserFeed(ctx, tt.query)
			require.NoError(t, err)

			ids := []int64{}
			for _, e := range feed.Entries {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantCursor, feed.NextCursor)
			assert.NotNil(t, feed.Entries)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_GetUserFeed_TypeAndStoreFailure(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("Feed", ctx, mock.MatchedBy(func(q FeedQuery) bool {
		return q.Type == string(event.CharacterRespec)
	})).Return(nil, assert.AnError)

	_, err := NewService(repo).GetUserFeed(ctx, FeedQuery{UserID: "user-1", Type: string(event.CharacterRespec)})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), ErrMsgGetEventsFailed)
}

func TestService_Prune(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockRepository)
	svc := &service{repo: repo, now: func() time.Time { return now }}

	repo.On("Prune", mock.Anything, now.Add(-48*time.Hour)).Return(int64(12), nil)

	n, err := svc.Prune(context.Background(), 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	repo.AssertExpectations(t)
}
