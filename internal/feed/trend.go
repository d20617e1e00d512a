// Package feed implements trend scoring and ordering for the post feed.
package feed

import (
	"math"
	"sort"
	"time"

	"codenest/internal/models"
)

// DefaultGravity controls how fast recency dominates popularity. At 1.8 a
// post needs roughly double the likes every time its age doubles to hold its
// rank.
const DefaultGravity = 1.8

// Score computes the recency-decayed popularity of a post:
//
//	likes / (hoursSince(createdAt) + 2) ^ gravity
//
// The +2 offset keeps the denominator above zero and damps the first two
// hours, so brand-new posts aren't ranked on a handful of early likes. The
// result is deterministic given now, finite and non-negative for
// non-negative like counts.
func Score(likeCount int, createdAt time.Time, gravity float64, now time.Time) float64 {
	if likeCount < 0 {
		likeCount = 0
	}
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return float64(likeCount) / math.Pow(ageHours+2, gravity)
}

// RankByTrend orders posts by descending trend score, breaking ties by
// CreatedAt descending so the ordering is deterministic, and truncates the
// result to limit. The input slice is not modified.
func RankByTrend(posts []*models.Post, gravity float64, now time.Time, limit int) []*models.Post {
	ranked := make([]*models.Post, len(posts))
	copy(ranked, posts)

	scores := make(map[uint]float64, len(ranked))
	for _, p := range ranked {
		scores[p.ID] = Score(p.LikesCount, p.CreatedAt, gravity, now)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].ID], scores[ranked[j].ID]
		if si != sj {
			return si > sj
		}
		return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
