package handler

import (
	"net/http"
	"strconv"
	"strings"

	"gamevoyage/backend/internal/catalog"
	"gamevoyage/backend/internal/database"
	"gamevoyage/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the catalog routes. The cache and composer are
// constructed once in main and injected here; there is no package-level
// catalog state.
type CatalogHandler struct {
	cache    *catalog.Cache
	composer *catalog.Composer
}

func NewCatalogHandler(cache *catalog.Cache, composer *catalog.Composer) *CatalogHandler {
	return &CatalogHandler{cache: cache, composer: composer}
}

// region --- DTOs ---

// AuthContext mirrors the auth block of the home payload; User is null for
// anonymous requests.
type AuthContext struct {
	User *UserResponse `json:"user"`
}

// HomeResponse is the initial payload the single-page front end boots from.
type HomeResponse struct {
	Games         []catalog.Game `json:"games"`
	UserFavorites []int          `json:"userFavorites"`
	UserNotes     map[int]string `json:"userNotes"`
	Auth          AuthContext    `json:"auth"`
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []catalog.Game `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

// GetHome godoc
// @Summary      Get the composed catalog view
// @Description  Returns the cached game catalog merged with the requesting user's favorites and notes. Anonymous callers get empty collections.
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  HomeResponse
// @Router       / [get]
func (h *CatalogHandler) GetHome(c *gin.Context) {
	userID := currentUserID(c)

	view, err := h.composer.Compose(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compose view"})
		return
	}

	var userResponse *UserResponse
	if userID != nil {
		var user models.User
		if err := database.DB.First(&user, *userID).Error; err == nil {
			resp := newUserResponse(user)
			userResponse = &resp
		}
	}

	c.JSON(http.StatusOK, HomeResponse{
		Games:         view.Games,
		UserFavorites: view.FavoriteGameIDs,
		UserNotes:     view.NotesByGameID,
		Auth:          AuthContext{User: userResponse},
	})
}

// ListGames godoc
// @Summary      Get a list of games
// @Description  Retrieves a paginated slice of the cached catalog, with optional filtering by title, genre and platform.
// @Tags         catalog
// @Produce      json
// @Param        q        query  string  false  "Search query for game title"
// @Param        genre    query  string  false  "Filter by genre"
// @Param        platform query  string  false  "Filter by platform"
// @Param        page     query  int     false  "Page number" default(1)
// @Param        limit    query  int     false  "Items per page" default(10)
// @Success      200  {object}  PaginatedGameResponse
// @Router       /games [get]
func (h *CatalogHandler) ListGames(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	searchQuery := strings.ToLower(c.Query("q"))
	genre := c.Query("genre")
	platform := strings.ToLower(c.Query("platform"))

	games := h.cache.GetAllGames(c.Request.Context())

	filtered := make([]catalog.Game, 0, len(games))
	for _, game := range games {
		if searchQuery != "" && !strings.Contains(strings.ToLower(game.Title), searchQuery) {
			continue
		}
		if genre != "" && !strings.EqualFold(game.Genre, genre) {
			continue
		}
		// Upstream platform values are composites like "PC (Windows)", so
		// match by substring rather than equality.
		if platform != "" && !strings.Contains(strings.ToLower(game.Platform), platform) {
			continue
		}
		filtered = append(filtered, game)
	}

	pageItems := PaginateSlice(filtered, page, limit)
	c.JSON(http.StatusOK, NewPaginatedResponse(pageItems, int64(len(filtered)), page, limit))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves one game from the cached catalog proxy. Unknown ids return 404.
// @Tags         catalog
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200  {object}  catalog.Game
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *CatalogHandler) GetGameByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid game ID"})
		return
	}

	game := h.cache.GetGameByID(c.Request.Context(), id)
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	c.JSON(http.StatusOK, game)
}

// InvalidateCache godoc
// @Summary      Invalidate the catalog cache
// @Description  Force-expires the cached game list so the next read refetches from upstream.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]bool "{"success": true}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/cache/invalidate [post]
func (h *CatalogHandler) InvalidateCache(c *gin.Context) {
	h.cache.InvalidateAll()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
