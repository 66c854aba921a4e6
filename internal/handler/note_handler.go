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

type NoteInput struct {
	GameID int    `json:"game_id" binding:"required"`
	Note   string `json:"note" binding:"required,max=1000"`
}

type NoteResponse struct {
	ID        uint      `json:"id"`
	GameID    int       `json:"game_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newNoteResponse(note models.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		GameID:    note.GameID,
		Note:      note.Note,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// endregion

// UpsertNote godoc
// @Summary      Create or update a note
// @Description  Writes the user's note for a game. A user holds at most one note per game; a second write overwrites the first.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body NoteInput true "Note"
// @Success      200  {object}  map[string]interface{} "{"success": true, "note": {...}}"
// @Failure      401  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /notes [post]
func UpsertNote(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	note := models.Note{
		UserID: userID,
		GameID: input.GameID,
		Note:   input.Note,
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"note", "updated_at"}),
	}).Create(&note).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save note"})
		return
	}

	// Reload so the response carries the surviving row's id and timestamps.
	if err := database.DB.Where("user_id = ? AND game_id = ?", userID, input.GameID).First(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "note": newNoteResponse(note)})
}

// DeleteNote godoc
// @Summary      Delete a note
// @Description  Deletes the user's note for the game. Deleting a note that does not exist is still a success.
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path int true "Game ID"
// @Success      200  {object}  map[string]bool "{"success": true}"
// @Failure      401  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /notes/{gameId} [delete]
func DeleteNote(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid game ID"})
		return
	}

	if err := database.DB.Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&models.Note{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
