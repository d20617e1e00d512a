// Package notifications publishes activity events over Redis pub/sub so other
// processes (digest workers, websocket gateways) can react without coupling
// to the API server.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"codenest/internal/middleware"
	"codenest/internal/models"

	"github.com/redis/go-redis/v9"
)

// Event is the payload published for every activity notification.
type Event struct {
	Type     string    `json:"type"`
	ActorID  uint      `json:"actor_id"`
	TargetID uint      `json:"target_id"`
	At       time.Time `json:"at"`
}

// Event types.
const (
	EventPostPublished = "post.published"
	EventPostDeleted   = "post.deleted"
	EventComment       = "comment.created"
	EventLike          = "engagement.like"
	EventBookmark      = "engagement.bookmark"
	EventFollow        = "engagement.follow"
)

// Notifier publishes events into Redis channels. All methods are no-ops when
// Redis is not configured.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishActivity sends an event to the channel of the user it concerns.
func (n *Notifier) PublishActivity(ctx context.Context, userID uint, ev Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	channel := fmt.Sprintf("activity:user:%d", userID)
	return n.rdb.Publish(ctx, channel, payload).Err()
}

// PublishEngagement emits the event for a like, bookmark or follow toggle
// that turned the edge on. Toggle-offs are not published.
func (n *Notifier) PublishEngagement(ctx context.Context, kind models.EngagementKind, actorID, ownerID uint) error {
	var typ string
	switch kind {
	case models.EngagementLike:
		typ = EventLike
	case models.EngagementBookmark:
		typ = EventBookmark
	case models.EngagementFollow:
		typ = EventFollow
	default:
		return fmt.Errorf("unknown engagement kind %q", kind)
	}
	return n.PublishActivity(ctx, ownerID, Event{Type: typ, ActorID: actorID, TargetID: ownerID})
}

// StartSubscriber subscribes to the pattern `activity:user:*` and calls
// onEvent for every decoded event until ctx is cancelled. Malformed payloads
// are dropped.
func (n *Notifier) StartSubscriber(ctx context.Context, onEvent func(channel string, ev Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "activity:user:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					middleware.Logger.Warn("dropping malformed activity event", "channel", msg.Channel, "error", err)
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in activity subscriber", "panic", r, "stack", string(debug.Stack()))
						}
					}()
					onEvent(msg.Channel, ev)
				}()
			}
		}
	}()

	return nil
}
