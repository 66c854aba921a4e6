package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"gamevoyage/backend/internal/auth"
	"gamevoyage/backend/internal/catalog"
	"gamevoyage/backend/internal/config"
	"gamevoyage/backend/internal/database"
	"gamevoyage/backend/internal/models"
	"gamevoyage/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeFetcher stands in for the upstream catalog API in handler tests.
type fakeFetcher struct {
	games     []catalog.Game
	gamesByID map[int]*catalog.Game
	err       error

	listCalls int
}

func (f *fakeFetcher) FetchAllGames(ctx context.Context) ([]catalog.Game, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.games, nil
}

func (f *fakeFetcher) FetchGameByID(ctx context.Context, id int) (*catalog.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.gamesByID[id], nil
}

func threeGames() []catalog.Game {
	return []catalog.Game{
		{ID: 1, Title: "Foo", Genre: "Shooter", Platform: "PC (Windows)"},
		{ID: 2, Title: "Bar", Genre: "MMORPG", Platform: "Web Browser"},
		{ID: 3, Title: "Baz", Genre: "Shooter", Platform: "PC (Windows)"},
	}
}

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	fetcher *fakeFetcher
	cache   *catalog.Cache
}

// setupTest wires a router against an in-memory database and the fake
// upstream, mirroring the route table in cmd/server/main.go.
func setupTest(t *testing.T, fetcher *fakeFetcher) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Favorite{}, &models.Note{}))
	database.DB = db

	cache := catalog.NewCache(fetcher, time.Hour)
	catalogHandler := NewCatalogHandler(cache, catalog.NewComposer(cache, db))

	router := gin.New()
	router.GET("/", auth.OptionalAuthMiddleware(), catalogHandler.GetHome)

	gameRoutes := router.Group("/games")
	{
		gameRoutes.GET("", catalogHandler.ListGames)
		gameRoutes.GET("/:id", catalogHandler.GetGameByID)
	}

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", RegisterUser)
		authRoutes.POST("/login", LoginUser)
	}

	userRoutes := router.Group("/users")
	userRoutes.Use(auth.AuthMiddleware())
	{
		userRoutes.GET("/me", GetMe)
	}

	favoriteRoutes := router.Group("/favorites")
	favoriteRoutes.Use(auth.AuthMiddleware())
	{
		favoriteRoutes.POST("", AddFavorite)
		favoriteRoutes.GET("", ListFavorites)
		favoriteRoutes.DELETE("/:gameId", RemoveFavorite)
	}

	noteRoutes := router.Group("/notes")
	noteRoutes.Use(auth.AuthMiddleware())
	{
		noteRoutes.POST("", UpsertNote)
		noteRoutes.DELETE("/:gameId", DeleteNote)
	}

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
	{
		adminRoutes.POST("/cache/invalidate", catalogHandler.InvalidateCache)
	}

	return &testEnv{router: router, db: db, fetcher: fetcher, cache: cache}
}

func createTestUser(t *testing.T, db *gorm.DB, nickname string) (models.User, string) {
	t.Helper()
	user := models.User{
		Nickname:     nickname,
		Email:        nickname + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := jwt.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
