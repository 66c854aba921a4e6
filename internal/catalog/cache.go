package catalog

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Fetcher is the upstream dependency of the cache.
type Fetcher interface {
	FetchAllGames(ctx context.Context) ([]Game, error)
	FetchGameByID(ctx context.Context, id int) (*Game, error)
}

type listEntry struct {
	games     []Game
	expiresAt time.Time
}

type gameEntry struct {
	game      Game
	expiresAt time.Time
}

// Cache serves catalog reads with bounded upstream load. The all-games list
// and each requested game id are cached independently under a fixed TTL; an
// expired entry counts as absent. Upstream failures are logged and degrade to
// empty results, so nothing above the cache ever sees an upstream error.
//
// Concurrent misses on the same key may fetch more than once. Upstream reads
// are idempotent, so the extra fetch is harmless and no single-flight is done.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration

	mu   sync.RWMutex
	all  *listEntry
	byID map[int]gameEntry
}

// NewCache creates a cache over the given fetcher. One instance is shared by
// the whole process; the catalog is not user-specific.
func NewCache(fetcher Fetcher, ttl time.Duration) *Cache {
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		byID:    make(map[int]gameEntry),
	}
}

// GetAllGames returns the cached game list, refreshing it from upstream when
// the entry is missing or expired. On upstream failure it returns an empty
// slice so the catalog page degrades to zero games instead of an error.
func (c *Cache) GetAllGames(ctx context.Context) []Game {
	c.mu.RLock()
	if e := c.all; e != nil && time.Now().Before(e.expiresAt) {
		games := make([]Game, len(e.games))
		copy(games, e.games)
		c.mu.RUnlock()
		return games
	}
	c.mu.RUnlock()

	games, err := c.fetcher.FetchAllGames(ctx)
	if err != nil {
		log.Errorf("catalog: refreshing game list: %v", err)
		return []Game{}
	}

	c.mu.Lock()
	c.all = &listEntry{games: games, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	out := make([]Game, len(games))
	copy(out, games)
	return out
}

// GetGameByID returns a single game, cached per id. Both upstream failure and
// upstream absence come back as nil; absence is not cached, matching the list
// behavior of only storing successful fetches.
func (c *Cache) GetGameByID(ctx context.Context, id int) *Game {
	c.mu.RLock()
	if e, ok := c.byID[id]; ok && time.Now().Before(e.expiresAt) {
		c.mu.RUnlock()
		game := e.game
		return &game
	}
	c.mu.RUnlock()

	game, err := c.fetcher.FetchGameByID(ctx, id)
	if err != nil {
		log.Errorf("catalog: fetching game %d: %v", id, err)
		return nil
	}
	if game == nil {
		return nil
	}

	c.mu.Lock()
	c.byID[id] = gameEntry{game: *game, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	out := *game
	return &out
}

// InvalidateAll force-expires the all-games entry. Used by the admin endpoint
// and tests; the next GetAllGames call hits upstream again.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.all = nil
	c.mu.Unlock()
}
