package eventlog

import (
	"context"
	"time"
)

// Entry is one persisted progression event
type Entry struct {
	ID         int64                  `json:"id"`
	Type       string                 `json:"type"`
	UserID     string                 `json:"user_id,omitempty"`
	Payload    map[string]interface{} `json:"payload"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// FeedQuery selects one page of a user's activity. Zero Type matches every type;
// zero BeforeID starts from the newest entry.
type FeedQuery struct {
	UserID   string
	Type     string
	BeforeID int64
	Limit    int
}

// Feed is a page of entries, newest first. NextCursor is the BeforeID of the
// following page, or zero on the last page.
type Feed struct {
	Entries    []Entry `json:"entries"`
	NextCursor int64   `json:"next_cursor,omitempty"`
}

// Repository stores the activity log
type Repository interface {
	// Append stores entry and returns its id. ID and OccurredAt are assigned by the store.
	Append(ctx context.Context, entry Entry) (int64, error)

	// Feed returns at most q.Limit entries ordered by id descending
	Feed(ctx context.Context, q FeedQuery) ([]Entry, error)

	// Prune deletes entries that occurred before cutoff
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}
