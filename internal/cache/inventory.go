package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%d"
	PostKeyPrefix = "post:%d"
	FeedKeyPrefix = "feed:%s"
)

const (
	UserTTL = 5 * time.Minute
	PostTTL = 10 * time.Minute
	// FeedTTL is short: the trend feed recomputes scores against wall time,
	// so a stale window quickly drifts from the true order.
	FeedTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// FeedKey caches anonymous feed pages per tab. Viewer-specific decoration is
// re-applied after the cached page is loaded, so one entry serves everyone.
func FeedKey(tab string) string {
	return fmt.Sprintf(FeedKeyPrefix, tab)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFeeds drops the shared feed pages. Called on any post write and
// on like toggles, since likes feed the trend ranking.
func InvalidateFeeds(ctx context.Context) {
	Invalidate(ctx, FeedKey("trend"))
	Invalidate(ctx, FeedKey("latest"))
}
