package store

import "time"

// Conversation phases for the educational mashup flow
const (
	PhaseInitial                  = "INITIAL"
	PhaseGenreExploration         = "GENRE_EXPLORATION"
	PhaseEducationalClarification = "EDUCATIONAL_CLARIFICATION"
	PhaseCulturalResearch         = "CULTURAL_RESEARCH"
	PhaseReadyForGeneration       = "READY_FOR_GENERATION"
	PhaseCompleted                = "COMPLETED"
)

// Message roles
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is a single entry in the session transcript
type Message struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToolCall records one enrichment query attempt and its outcome.
// Immutable once recorded.
type ToolCall struct {
	Tool        string    `json:"tool"`
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	CalledAt    time.Time `json:"called_at"`
}

// Session represents the durable per-conversation state addressed by id
type Session struct {
	ID        string          `json:"id"`
	Phase     string          `json:"phase"`
	Context   GatheredContext `json:"context"`
	Messages  []Message       `json:"messages"`
	ToolCalls []ToolCall      `json:"tool_calls"`
	Ready     bool            `json:"ready"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewSession creates a session in the INITIAL phase
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Phase:     PhaseInitial,
		Context:   GatheredContext{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendTurn records a user message (with its tool calls) and the model reply
func (s *Session) AppendTurn(userMsg, reply string, toolCalls []ToolCall, now time.Time) {
	s.Messages = append(s.Messages, Message{
		Role:      RoleUser,
		Content:   userMsg,
		ToolCalls: toolCalls,
		CreatedAt: now,
	})
	s.Messages = append(s.Messages, Message{
		Role:      RoleModel,
		Content:   reply,
		CreatedAt: now,
	})
	s.ToolCalls = append(s.ToolCalls, toolCalls...)
	s.UpdatedAt = now
}
