package handler

import (
	"errors"
	"net/http"
	"testing"

	"gamevoyage/backend/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type homeBody struct {
	Games         []catalog.Game    `json:"games"`
	UserFavorites []int             `json:"userFavorites"`
	UserNotes     map[string]string `json:"userNotes"`
	Auth          struct {
		User *UserResponse `json:"user"`
	} `json:"auth"`
}

func TestHomeAnonymous(t *testing.T) {
	env := setupTest(t, &fakeFetcher{games: threeGames()})

	w := performRequest(env.router, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var home homeBody
	decodeBody(t, w, &home)
	assert.Len(t, home.Games, 3)
	assert.Empty(t, home.UserFavorites)
	assert.NotNil(t, home.UserFavorites)
	assert.Empty(t, home.UserNotes)
	assert.Nil(t, home.Auth.User)
}

func TestHomeAuthenticated(t *testing.T) {
	env := setupTest(t, &fakeFetcher{games: threeGames()})
	user, token := createTestUser(t, env.db, "alice")

	performRequest(env.router, http.MethodPost, "/favorites", validFavoriteInput(), token)
	performRequest(env.router, http.MethodPost, "/notes",
		map[string]interface{}{"game_id": 42, "note": "great game"}, token)

	w := performRequest(env.router, http.MethodGet, "/", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var home homeBody
	decodeBody(t, w, &home)
	assert.Len(t, home.Games, 3)
	assert.Equal(t, []int{42}, home.UserFavorites)
	assert.Equal(t, map[string]string{"42": "great game"}, home.UserNotes)
	require.NotNil(t, home.Auth.User)
	assert.Equal(t, user.ID, home.Auth.User.ID)
	assert.Equal(t, "alice", home.Auth.User.Nickname)
}

func TestHomeDegradesWhenUpstreamDown(t *testing.T) {
	env := setupTest(t, &fakeFetcher{err: errors.New("upstream down")})

	w := performRequest(env.router, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var home homeBody
	decodeBody(t, w, &home)
	assert.Empty(t, home.Games)
	assert.NotNil(t, home.Games)
}

func TestHomeIgnoresInvalidToken(t *testing.T) {
	env := setupTest(t, &fakeFetcher{games: threeGames()})

	w := performRequest(env.router, http.MethodGet, "/", nil, "not-a-token")
	require.Equal(t, http.StatusOK, w.Code)

	var home homeBody
	decodeBody(t, w, &home)
	assert.Nil(t, home.Auth.User)
}

func TestListGamesFiltersByGenre(t *testing.T) {
	env := setupTest(t, &fakeFetcher{games: threeGames()})

	w := performRequest(env.router, http.MethodGet, "/games?genre=shooter", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedGameResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Data, 2)
	for _, game := range resp.Data {
		assert.Equal(t, "Shooter", game.Genre)
	}
	assert.Equal(t, int64(2), resp.Meta.TotalItems)
}

func TestListGamesFiltersByPlatformAndQuery(t *testing.T) {
	env := setupTest(t, &fakeFetcher{games: threeGames()})

	w := performRequest(env.router, http.MethodGet, "/games?platform=browser", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedGameResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Bar", resp.Data[0].Title)

	w = performRequest(env.router, http.MethodGet, "/games?q=ba", nil, "")
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Data, 2) // Bar, Baz
}

func TestListGamesPagination(t *testing.T) {
	env := setupTest(t, &fakeFetcher{games: threeGames()})

	w := performRequest(env.router, http.MethodGet, "/games?page=2&limit=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedGameResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(3), resp.Meta.TotalItems)
	assert.Equal(t, 2, resp.Meta.TotalPages)
	assert.Equal(t, 2, resp.Meta.CurrentPage)
}

func TestGetGameByID(t *testing.T) {
	env := setupTest(t, &fakeFetcher{
		gamesByID: map[int]*catalog.Game{42: {ID: 42, Title: "Foo"}},
	})

	w := performRequest(env.router, http.MethodGet, "/games/42", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var game catalog.Game
	decodeBody(t, w, &game)
	assert.Equal(t, 42, game.ID)

	w = performRequest(env.router, http.MethodGet, "/games/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidateCacheRequiresAdmin(t *testing.T) {
	env := setupTest(t, &fakeFetcher{games: threeGames()})
	_, token := createTestUser(t, env.db, "alice")

	w := performRequest(env.router, http.MethodPost, "/admin/cache/invalidate", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(env.router, http.MethodPost, "/admin/cache/invalidate", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInvalidateCacheForcesRefetch(t *testing.T) {
	env := setupTest(t, &fakeFetcher{games: threeGames()})
	admin, token := createTestUser(t, env.db, "admin")
	require.NoError(t, env.db.Model(&admin).Update("role", "admin").Error)

	performRequest(env.router, http.MethodGet, "/", nil, "")
	performRequest(env.router, http.MethodGet, "/", nil, "")
	assert.Equal(t, 1, env.fetcher.listCalls)

	w := performRequest(env.router, http.MethodPost, "/admin/cache/invalidate", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	performRequest(env.router, http.MethodGet, "/", nil, "")
	assert.Equal(t, 2, env.fetcher.listCalls)
}
