package store

import (
	"time"

	"gorm.io/gorm"
)

// Match statuses
const (
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Match represents a game in the database
type Match struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug      string    `gorm:"type:text;uniqueIndex" json:"slug"`
	Size      int       `gorm:"not null" json:"size"`
	Packed    bool      `gorm:"default:false" json:"packed"`
	RoadTie   string    `gorm:"type:text;default:'order'" json:"road_tie"`
	Status    string    `gorm:"type:text;default:'active'" json:"status"`
	Winner    int       `gorm:"default:0" json:"winner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Tags  []Tag        `gorm:"foreignKey:MatchID" json:"tags,omitempty"`
	Moves []MoveRecord `gorm:"foreignKey:MatchID" json:"moves,omitempty"`
}

// Tag represents match metadata tags
type Tag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID   int64     `gorm:"index;not null;uniqueIndex:idx_match_key" json:"match_id"`
	Key       string    `gorm:"type:text;uniqueIndex:idx_match_key" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// MoveRecord is one accepted move of a match. Ply counts from zero.
type MoveRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID   int64     `gorm:"index;not null" json:"match_id"`
	Ply       int       `gorm:"not null" json:"ply"`
	Player    int       `gorm:"not null" json:"player"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AutoMigrate runs the database migrations
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Match{}, &Tag{}, &MoveRecord{})
}
