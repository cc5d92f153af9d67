package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MashupRecord struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId    string         `gorm:"type:uuid;not null;index"`
	Title        string         `gorm:"type:text;not null"`
	Lyrics       string         `gorm:"type:text"`
	Educational  datatypes.JSON `gorm:"type:jsonb"`
	QualityScore float64        `gorm:"not null;default:0"`
	FallbackUsed bool           `gorm:"not null;default:false"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (MashupRecord) TableName() string {
	return "mashup_records"
}
