package character

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// RespecState is the step a user has reached in the respec flow
type RespecState string

const (
	RespecStateIdle           RespecState = "idle"
	RespecStateConfirming     RespecState = "confirming"
	RespecStateApplying       RespecState = "applying"
	RespecStateRedistributing RespecState = "redistributing"
)

// RespecSession tracks one user's respec flow
type RespecSession struct {
	UserID         string      `json:"user_id"`
	State          RespecState `json:"state"`
	InvestedPoints int         `json:"invested_points,omitempty"`
	StartedAt      time.Time   `json:"started_at"`
}

// sessionStore holds respec sessions keyed by user id. Expired sessions fall back to idle.
type sessionStore struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, *RespecSession]
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = DefaultRespecSessionTTL
	}
	return &sessionStore{
		lru: expirable.NewLRU[string, *RespecSession](respecSessionCacheSize, nil, ttl),
	}
}

// State returns the user's current state
func (s *sessionStore) State(userID string) RespecState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.lru.Get(userID); ok {
		return session.State
	}
	return RespecStateIdle
}

// Get returns a copy of the user's session
func (s *sessionStore) Get(userID string) (RespecSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.lru.Get(userID)
	if !ok {
		return RespecSession{UserID: userID, State: RespecStateIdle}, false
	}
	return *session, true
}

// Begin moves idle to confirming
func (s *sessionStore) Begin(userID string, now time.Time) (RespecSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.lru.Get(userID); ok {
		return *session, fmt.Errorf("%w: respec already %s", domain.ErrInvalidRespecState, session.State)
	}
	session := &RespecSession{UserID: userID, State: RespecStateConfirming, StartedAt: now}
	s.lru.Add(userID, session)
	return *session, nil
}

// Transition moves the session from one state to another, failing when the current state differs
func (s *sessionStore) Transition(userID string, from, to RespecState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.lru.Get(userID)
	if !ok {
		return domain.ErrRespecSessionNotFound
	}
	if session.State != from {
		return fmt.Errorf("%w: expected %s, got %s", domain.ErrInvalidRespecState, from, session.State)
	}
	session.State = to
	return nil
}

// SetInvested records the points refunded by the respec
func (s *sessionStore) SetInvested(userID string, invested int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.lru.Get(userID); ok {
		session.InvestedPoints = invested
	}
}

// End returns the user to idle
func (s *sessionStore) End(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Remove(userID)
}
