package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ConversationSession struct {
	Id        string         `gorm:"type:uuid;primaryKey"`
	Phase     string         `gorm:"type:text;not null"`
	Ready     bool           `gorm:"not null;default:false"`
	Context   datatypes.JSON `gorm:"type:jsonb"`
	Messages  datatypes.JSON `gorm:"type:jsonb"`
	ToolCalls datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ConversationSession) TableName() string {
	return "conversation_sessions"
}
