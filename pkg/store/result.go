package store

import "time"

// EducationalContent is the teaching material attached to a generated mashup
type EducationalContent struct {
	TheoryConcepts  []string `json:"theory_concepts"`
	CulturalContext string   `json:"cultural_context"`
	TeachingNotes   string   `json:"teaching_notes"`
}

// GenerationResult is the terminal artifact of a pipeline run.
// Immutable once produced.
type GenerationResult struct {
	SessionID    string             `json:"session_id"`
	Title        string             `json:"title"`
	Lyrics       string             `json:"lyrics"`
	Educational  EducationalContent `json:"educational_content"`
	QualityScore float64            `json:"quality_score"`
	FallbackUsed bool               `json:"fallback_used"`
	Metadata     map[string]any     `json:"metadata,omitempty"`
	GeneratedAt  time.Time          `json:"generated_at"`
}
