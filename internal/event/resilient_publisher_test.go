package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestAcademy_Go/internal/testing/leaktest"
)

var errBusDown = errors.New("bus unavailable")

// flakyBus fails the first failFirst publishes, or every publish when failAlways is set.
// When block is non-nil, publishes after the failures wait on it.
type flakyBus struct {
	mu         sync.Mutex
	published  []Event
	failFirst  int
	failAlways bool
	block      chan struct{}
	handlers   map[Type][]Handler
}

func (b *flakyBus) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	b.published = append(b.published, e)
	n := len(b.published)
	fail := b.failAlways || n <= b.failFirst
	block := b.block
	b.mu.Unlock()

	if fail {
		return errBusDown
	}
	if block != nil {
		<-block
	}
	return nil
}

func (b *flakyBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = make(map[Type][]Handler)
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

func (b *flakyBus) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.published)
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry DeadLetterEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func deadLetterPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "deadletter.jsonl")
}

func TestResilientPublisher_PublishesOnFirstAttempt(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewAchievementUnlockedEvent("user-1", "first_steps", "common"))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.calls())
	assert.Equal(t, AchievementUnlocked, bus.published[0].Type)
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetriesUntilDelivered(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failFirst: 2}

	rp, err := NewResilientPublisher(bus, 3, 5*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewWorldUnlockedEvent("user-1", "math_kingdom"))

	require.Eventually(t, func() bool { return bus.calls() == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 3, bus.calls())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetriesOnlyFailedHandlers(t *testing.T) {
	path := deadLetterPath(t)
	bus := NewMemoryBus()

	var mu sync.Mutex
	counted, logged := 0, 0
	bus.Subscribe(WorldUnlocked, func(context.Context, Event) error {
		mu.Lock()
		defer mu.Unlock()
		counted++
		return nil
	})
	bus.Subscribe(WorldUnlocked, func(context.Context, Event) error {
		mu.Lock()
		defer mu.Unlock()
		logged++
		if logged <= 2 {
			return errBusDown
		}
		return nil
	})

	rp, err := NewResilientPublisher(bus, 3, 5*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewWorldUnlockedEvent("user-1", "math_kingdom"))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return logged == 3
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, counted)
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_DeadLettersAfterMaxRetries(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failAlways: true}

	rp, err := NewResilientPublisher(bus, 2, 5*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewCharacterRespecEvent("user-7", 12))

	// initial attempt plus two retries
	require.Eventually(t, func() bool { return bus.calls() == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Equal(t, CharacterRespec, entries[0].Event.Type)
	assert.Equal(t, 3, entries[0].Attempts)
	assert.Equal(t, errBusDown.Error(), entries[0].LastError)

	payload, err := DecodePayload[CharacterRespecPayloadV1](entries[0].Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, "user-7", payload.UserID)
	assert.Equal(t, 12, payload.InvestedPoints)
}

func TestResilientPublisher_FullQueueDeadLettersImmediately(t *testing.T) {
	path := deadLetterPath(t)
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	// No retry worker, so the single queue slot stays occupied
	rp := &ResilientPublisher{
		bus:        &flakyBus{failAlways: true},
		retryQueue: make(chan retryEntry, 1),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	for _, world := range []string{"math_kingdom", "science_lab", "history_hall"} {
		rp.PublishWithRetry(context.Background(), NewWorldUnlockedEvent("user-2", world))
	}

	assert.Len(t, rp.retryQueue, 1)
	require.NoError(t, dl.Close())

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, WorldUnlocked, entry.Event.Type)
		assert.Equal(t, 1, entry.Attempts)
	}
}

func TestResilientPublisher_ShutdownFlushesPendingRetries(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failFirst: 2}

	leaktest.CheckNoGoroutineLeak(t, func() {
		// Backoff long enough that nothing is retried before shutdown
		rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
		require.NoError(t, err)

		rp.PublishWithRetry(context.Background(), NewCharacterLevelUpEvent("user-3", 1, 2, 3))
		rp.PublishWithRetry(context.Background(), NewCharacterLevelUpEvent("user-4", 4, 5, 3))

		require.NoError(t, rp.Shutdown(context.Background()))
	})

	assert.Equal(t, 4, bus.calls())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ShutdownHonorsContext(t *testing.T) {
	path := deadLetterPath(t)
	release := make(chan struct{})
	bus := &flakyBus{failFirst: 1, block: release}

	rp, err := NewResilientPublisher(bus, 3, time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewAnswerRecordedEvent("user-5", "math", true, 10))

	// The retry is now stuck inside the bus
	require.Eventually(t, func() bool { return bus.calls() == 2 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, rp.Shutdown(ctx), context.Canceled)

	close(release)
	assert.NoError(t, rp.Shutdown(context.Background()))
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, deadLetterPath(t))
	require.NoError(t, err)

	const users = 8
	const answersPerUser = 25

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < answersPerUser; j++ {
				rp.PublishWithRetry(context.Background(), NewAnswerRecordedEvent("user", "science", j%2 == 0, int64(n)))
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Equal(t, users*answersPerUser, bus.calls())
}

func TestResilientPublisher_DelegatesToInnerBus(t *testing.T) {
	inner := NewMemoryBus()
	rp, err := NewResilientPublisher(inner, 1, time.Millisecond, deadLetterPath(t))
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	var got []string
	rp.Subscribe(AchievementUnlocked, func(ctx context.Context, e Event) error {
		payload, err := DecodePayload[AchievementUnlockedPayloadV1](e.Payload)
		if err != nil {
			return err
		}
		got = append(got, payload.AchievementID)
		return nil
	})

	require.NoError(t, rp.Publish(context.Background(), NewAchievementUnlockedEvent("user-6", "night_owl", "rare")))
	assert.Equal(t, []string{"night_owl"}, got)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 100 * time.Millisecond

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{5, 1600 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateRetryDelay(base, tt.attempt), "attempt %d", tt.attempt)
	}
}
