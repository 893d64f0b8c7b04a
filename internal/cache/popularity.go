// Package cache mirrors derived counters in Redis. The database stays the
// source of truth; every read path here has a storage fallback.
package cache

import (
	"context"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// keyFilmLikes is the sorted set scoring film id by like count.
const keyFilmLikes = "films:likes"

// Popularity keeps like counts in a sorted set so the popular-films listing
// avoids the full aggregate query. Counts are written authoritatively from
// storage (never incremented blindly), which keeps idempotent likes from
// drifting the score.
type Popularity struct {
	rdb *redis.Client
}

func NewPopularity(rdb *redis.Client) *Popularity {
	return &Popularity{rdb: rdb}
}

// SetCount stores the current like count of one film.
func (c *Popularity) SetCount(ctx context.Context, filmID, count int64) error {
	return c.rdb.ZAdd(ctx, keyFilmLikes, redis.Z{
		Score:  float64(count),
		Member: strconv.FormatInt(filmID, 10),
	}).Err()
}

// Rebuild replaces the whole set with the given counts.
func (c *Popularity) Rebuild(ctx context.Context, counts map[int64]int64) error {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, keyFilmLikes)
	if len(counts) > 0 {
		members := make([]redis.Z, 0, len(counts))
		for id, n := range counts {
			members = append(members, redis.Z{
				Score:  float64(n),
				Member: strconv.FormatInt(id, 10),
			})
		}
		pipe.ZAdd(ctx, keyFilmLikes, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// TopIDs returns up to n film ids ordered by like count descending, film id
// ascending. The whole set is fetched so the id tie-break is exact; Redis
// orders equal scores lexicographically, which is wrong for numeric ids.
func (c *Popularity) TopIDs(ctx context.Context, n int) ([]int64, error) {
	if n <= 0 {
		return []int64{}, nil
	}

	members, err := c.rdb.ZRevRangeWithScores(ctx, keyFilmLikes, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	type entry struct {
		id    int64
		score float64
	}
	entries := make([]entry, 0, len(members))
	for _, m := range members {
		s, ok := m.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, entry{id: id, score: m.Score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].id < entries[j].id
	})

	if n > len(entries) {
		n = len(entries)
	}
	out := make([]int64, 0, n)
	for _, e := range entries[:n] {
		out = append(out, e.id)
	}
	return out, nil
}
