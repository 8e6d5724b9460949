package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/event"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// Service records progression events and serves them back as a paged activity feed
type Service interface {
	// Subscribe registers the recorder for every type in LoggedEventTypes
	Subscribe(bus event.Bus)

	GetUserFeed(ctx context.Context, q FeedQuery) (Feed, error)

	// Prune deletes entries older than retention and returns how many went
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus) {
	for _, t := range LoggedEventTypes {
		bus.Subscribe(t, s.record)
	}
}

// record persists one event. Payloads that are not JSON objects are skipped, not failed.
func (s *service) record(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
		return nil
	}

	entry := Entry{Type: string(evt.Type), Payload: payload, Metadata: evt.Metadata}
	if uid, ok := payload[PayloadKeyUserID].(string); ok {
		entry.UserID = uid
	}

	id, err := s.repo.Append(ctx, entry)
	if err != nil {
		log.Error(LogMsgFailedToLogEvent, "type", evt.Type, "user_id", entry.UserID, "error", err)
		return fmt.Errorf("%s: %w", ErrMsgAppendFailed, err)
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "user_id", entry.UserID, "id", id)
	return nil
}

func (s *service) GetUserFeed(ctx context.Context, q FeedQuery) (Feed, error) {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultFeedLimit
	case q.Limit > MaxFeedLimit:
		q.Limit = MaxFeedLimit
	}
	if q.BeforeID < 0 {
		q.BeforeID = 0
	}

	// One extra row tells us whether another page exists
	page := q
	page.Limit = q.Limit + 1

	entries, err := s.repo.Feed(ctx, page)
	if err != nil {
		return Feed{}, fmt.Errorf("%s: %w", ErrMsgGetEventsFailed, err)
	}

	feed := Feed{Entries: entries}
	if feed.Entries == nil {
		feed.Entries = []Entry{}
	}
	if len(feed.Entries) > q.Limit {
		feed.Entries = feed.Entries[:q.Limit]
		feed.NextCursor = feed.Entries[q.Limit-1].ID
	}
	return feed, nil
}

func (s *service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := s.repo.Prune(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgPruneFailed, err)
	}
	return n, nil
}
