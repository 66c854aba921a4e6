package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher counts upstream calls so tests can verify how often the cache
// actually reaches out.
type stubFetcher struct {
	games     []Game
	gamesByID map[int]*Game
	err       error

	listCalls int
	idCalls   int
}

func (f *stubFetcher) FetchAllGames(ctx context.Context) ([]Game, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.games, nil
}

func (f *stubFetcher) FetchGameByID(ctx context.Context, id int) (*Game, error) {
	f.idCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.gamesByID[id], nil
}

func testGames() []Game {
	return []Game{
		{ID: 1, Title: "Foo", Genre: "Shooter", Platform: "PC (Windows)"},
		{ID: 2, Title: "Bar", Genre: "MMORPG", Platform: "Web Browser"},
		{ID: 3, Title: "Baz", Genre: "Shooter", Platform: "PC (Windows)"},
	}
}

func TestCacheServesFromCacheWithinTTL(t *testing.T) {
	fetcher := &stubFetcher{games: testGames()}
	cache := NewCache(fetcher, time.Hour)

	first := cache.GetAllGames(context.Background())
	second := cache.GetAllGames(context.Background())

	assert.Equal(t, 1, fetcher.listCalls)
	assert.Equal(t, first, second)
	require.Len(t, second, 3)
}

func TestCacheRefetchesAfterExpiry(t *testing.T) {
	fetcher := &stubFetcher{games: testGames()}
	cache := NewCache(fetcher, 10*time.Millisecond)

	cache.GetAllGames(context.Background())
	time.Sleep(20 * time.Millisecond)
	cache.GetAllGames(context.Background())

	assert.Equal(t, 2, fetcher.listCalls)
}

func TestCacheDegradesToEmptyOnFailure(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("upstream down")}
	cache := NewCache(fetcher, time.Hour)

	games := cache.GetAllGames(context.Background())

	assert.NotNil(t, games)
	assert.Empty(t, games)
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("upstream down")}
	cache := NewCache(fetcher, time.Hour)

	cache.GetAllGames(context.Background())
	assert.Equal(t, 1, fetcher.listCalls)

	// Upstream recovers; the next read should fetch again and succeed.
	fetcher.err = nil
	fetcher.games = testGames()
	games := cache.GetAllGames(context.Background())

	assert.Equal(t, 2, fetcher.listCalls)
	assert.Len(t, games, 3)
}

func TestCacheInvalidateAll(t *testing.T) {
	fetcher := &stubFetcher{games: testGames()}
	cache := NewCache(fetcher, time.Hour)

	cache.GetAllGames(context.Background())
	cache.InvalidateAll()
	cache.GetAllGames(context.Background())

	assert.Equal(t, 2, fetcher.listCalls)
}

func TestCacheGetGameByIDCachesPerID(t *testing.T) {
	fetcher := &stubFetcher{gamesByID: map[int]*Game{
		1: {ID: 1, Title: "Foo"},
		2: {ID: 2, Title: "Bar"},
	}}
	cache := NewCache(fetcher, time.Hour)

	game := cache.GetGameByID(context.Background(), 1)
	require.NotNil(t, game)
	assert.Equal(t, "Foo", game.Title)

	cache.GetGameByID(context.Background(), 2)
	assert.Equal(t, 2, fetcher.idCalls)

	// Cached ids do not hit upstream again.
	cache.GetGameByID(context.Background(), 1)
	assert.Equal(t, 2, fetcher.idCalls)
}

func TestCacheGetGameByIDAbsent(t *testing.T) {
	fetcher := &stubFetcher{gamesByID: map[int]*Game{}}
	cache := NewCache(fetcher, time.Hour)

	game := cache.GetGameByID(context.Background(), 999)

	assert.Nil(t, game)
}

func TestCacheGetGameByIDFailure(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("upstream down")}
	cache := NewCache(fetcher, time.Hour)

	game := cache.GetGameByID(context.Background(), 1)

	assert.Nil(t, game)
}

func TestCacheReturnsCopies(t *testing.T) {
	fetcher := &stubFetcher{games: testGames()}
	cache := NewCache(fetcher, time.Hour)

	first := cache.GetAllGames(context.Background())
	first[0].Title = "mutated"

	second := cache.GetAllGames(context.Background())
	assert.Equal(t, "Foo", second[0].Title)
}
