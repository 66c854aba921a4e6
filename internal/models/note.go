package models

import "time"

// Note is a user's private free-text annotation on a catalog game.
// A user holds at most one note per game; writes go through an upsert.
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_game_notes_user_game"`
	GameID    int       `json:"game_id" gorm:"not null;uniqueIndex:idx_game_notes_user_game"`
	Note      string    `json:"note" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Note) TableName() string {
	return "game_notes"
}
