package notifications

import (
	"context"
	"sync"
	"testing"
	"time"

	"codenest/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T) *Notifier {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewNotifier(client)
}

func TestNotifier_PublishAndSubscribe(t *testing.T) {
	n := newTestNotifier(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []Event
	require.NoError(t, n.StartSubscriber(ctx, func(_ string, ev Event) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
	}))

	// give the pattern subscription a moment to register
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, n.PublishEngagement(ctx, models.EngagementLike, 1, 2))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, EventLike, got[0].Type)
	assert.Equal(t, uint(1), got[0].ActorID)
	assert.Equal(t, uint(2), got[0].TargetID)
	assert.False(t, got[0].At.IsZero())
}

func TestNotifier_UnknownKind(t *testing.T) {
	n := newTestNotifier(t)
	err := n.PublishEngagement(context.Background(), models.EngagementKind("poke"), 1, 2)
	assert.Error(t, err)
}

func TestNotifier_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	ctx := context.Background()
	assert.NoError(t, n.PublishActivity(ctx, 1, Event{Type: EventComment}))
	assert.NoError(t, n.StartSubscriber(ctx, func(string, Event) {}))
}
