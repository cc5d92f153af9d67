package dto

import (
	"time"

	"lit-mashup-be/pkg/store"
)

type ProcessTurnRequest struct {
	SessionId string `json:"session_id,omitempty"`
	Message   string `json:"message" validate:"required"`
}

type ToolCallDTO struct {
	Tool        string    `json:"tool"`
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	CalledAt    time.Time `json:"called_at"`
}

type ProcessTurnResponse struct {
	SessionId          string                `json:"session_id"`
	Reply              string                `json:"reply"`
	ToolCalls          []ToolCallDTO         `json:"tool_calls"`
	GatheredContext    store.GatheredContext `json:"gathered_context"`
	Phase              string                `json:"phase"`
	ReadyForGeneration bool                  `json:"ready_for_generation"`
	// Mashup is set when a ready session's turn confirms generation
	Mashup *GenerateResponse `json:"mashup,omitempty"`
}

type MessageDTO struct {
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	ToolCalls []ToolCallDTO `json:"tool_calls,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type GetSessionResponse struct {
	SessionId          string                `json:"session_id"`
	Phase              string                `json:"phase"`
	GatheredContext    store.GatheredContext `json:"gathered_context"`
	Messages           []MessageDTO          `json:"messages"`
	ReadyForGeneration bool                  `json:"ready_for_generation"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}
