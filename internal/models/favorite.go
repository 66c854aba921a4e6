package models

import "time"

// Favorite marks a catalog game as bookmarked by a user. Title, thumbnail and
// genre are copied from the catalog at favorite-time; the snapshot is not kept
// in sync with upstream, which can change or drop games at any time.
type Favorite struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_user_game"`
	GameID        int       `json:"game_id" gorm:"not null;uniqueIndex:idx_favorites_user_game"`
	GameTitle     string    `json:"game_title" gorm:"size:255;not null"`
	GameThumbnail string    `json:"game_thumbnail" gorm:"size:512;not null"`
	GameGenre     string    `json:"game_genre" gorm:"size:100;not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
