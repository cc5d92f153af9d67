package entity

import (
	"time"

	"github.com/google/uuid"

	"lit-mashup-be/pkg/store"
)

type MashupRecord struct {
	Id           uuid.UUID
	SessionId    string
	Title        string
	Lyrics       string
	Educational  store.EducationalContent
	QualityScore float64
	FallbackUsed bool
	Metadata     map[string]any
	CreatedAt    time.Time
}
