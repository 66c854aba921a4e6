package handler

import (
	"net/http"
	"strconv"
	"time"

	"gamevoyage/backend/internal/database"
	"gamevoyage/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// region --- DTOs ---

// FavoriteInput carries the game snapshot captured at favorite-time.
type FavoriteInput struct {
	GameID        int    `json:"game_id" binding:"required"`
	GameTitle     string `json:"game_title" binding:"required,max=255"`
	GameThumbnail string `json:"game_thumbnail" binding:"required,url"`
	GameGenre     string `json:"game_genre" binding:"required,max=100"`
}

type FavoriteResponse struct {
	ID            uint      `json:"id"`
	GameID        int       `json:"game_id"`
	GameTitle     string    `json:"game_title"`
	GameThumbnail string    `json:"game_thumbnail"`
	GameGenre     string    `json:"game_genre"`
	CreatedAt     time.Time `json:"created_at"`
}

func newFavoriteResponse(favorite models.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:            favorite.ID,
		GameID:        favorite.GameID,
		GameTitle:     favorite.GameTitle,
		GameThumbnail: favorite.GameThumbnail,
		GameGenre:     favorite.GameGenre,
		CreatedAt:     favorite.CreatedAt,
	}
}

// endregion

// AddFavorite godoc
// @Summary      Add a game to favorites
// @Description  Stores a favorite with a snapshot of the game's title, thumbnail and genre. Favoriting the same game twice is a no-op success.
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FavoriteInput true "Game snapshot"
// @Success      200  {object}  map[string]interface{} "{"success": true, "favorite": {...}}"
// @Failure      401  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /favorites [post]
func AddFavorite(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input FavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	favorite := models.Favorite{
		UserID:        userID,
		GameID:        input.GameID,
		GameTitle:     input.GameTitle,
		GameThumbnail: input.GameThumbnail,
		GameGenre:     input.GameGenre,
	}

	// The composite unique index on (user_id, game_id) settles concurrent
	// adds: the losing insert hits the conflict clause and we hand back the
	// row that won.
	result := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
		DoNothing: true,
	}).Create(&favorite)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}
	if result.RowsAffected == 0 {
		if err := database.DB.Where("user_id = ? AND game_id = ?", userID, input.GameID).First(&favorite).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load favorite"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "favorite": newFavoriteResponse(favorite)})
}

// RemoveFavorite godoc
// @Summary      Remove a game from favorites
// @Description  Deletes the user's favorite for the game. Removing a favorite that does not exist is still a success.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path int true "Game ID"
// @Success      200  {object}  map[string]bool "{"success": true}"
// @Failure      401  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /favorites/{gameId} [delete]
func RemoveFavorite(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid game ID"})
		return
	}

	if err := database.DB.Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&models.Favorite{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListFavorites godoc
// @Summary      List the user's favorites
// @Description  Retrieves all of the user's favorites, newest first.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   FavoriteResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /favorites [get]
func ListFavorites(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var favorites []models.Favorite
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favorites"})
		return
	}

	response := make([]FavoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		response = append(response, newFavoriteResponse(favorite))
	}
	c.JSON(http.StatusOK, response)
}
