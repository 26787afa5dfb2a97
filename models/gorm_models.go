package models

import (
	"time"
)

// GormGameRecord is the GORM mapping for archived game summaries.
type GormGameRecord struct {
	ID        uint           `gorm:"primaryKey"`
	RoomCode  string         `gorm:"index;not null"`
	GameType  string         `gorm:"not null"`
	Players   []PlayerResult `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time
}

func (GormGameRecord) TableName() string {
	return "game_records"
}
