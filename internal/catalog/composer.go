package catalog

import (
	"context"

	"gamevoyage/backend/internal/models"

	"gorm.io/gorm"
)

// View is the initial payload the front end boots from: the cached catalog
// merged with the requesting user's favorites and notes.
type View struct {
	Games           []Game
	FavoriteGameIDs []int
	NotesByGameID   map[int]string
}

// Composer merges the catalog cache with a user's stored collections.
// Composing is a pure read; neither the cache nor the database is mutated.
type Composer struct {
	cache *Cache
	db    *gorm.DB
}

func NewComposer(cache *Cache, db *gorm.DB) *Composer {
	return &Composer{cache: cache, db: db}
}

// Compose builds the view for the given user. A nil userID means an anonymous
// request: the catalog is returned with empty favorite and note collections.
func (cv *Composer) Compose(ctx context.Context, userID *uint) (View, error) {
	view := View{
		Games:           cv.cache.GetAllGames(ctx),
		FavoriteGameIDs: []int{},
		NotesByGameID:   map[int]string{},
	}
	if userID == nil {
		return view, nil
	}

	var favoriteIDs []int
	err := cv.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", *userID).
		Order("created_at DESC").
		Pluck("game_id", &favoriteIDs).Error
	if err != nil {
		return View{}, err
	}
	if favoriteIDs != nil {
		view.FavoriteGameIDs = favoriteIDs
	}

	var notes []models.Note
	err = cv.db.WithContext(ctx).
		Where("user_id = ?", *userID).
		Find(&notes).Error
	if err != nil {
		return View{}, err
	}
	for _, note := range notes {
		view.NotesByGameID[note.GameID] = note.Note
	}

	return view, nil
}
