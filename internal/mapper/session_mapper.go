package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"lit-mashup-be/internal/model"
	"lit-mashup-be/pkg/store"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToModel(s *store.Session) (*model.ConversationSession, error) {
	if s == nil {
		return nil, nil
	}

	ctx, err := json.Marshal(s.Context)
	if err != nil {
		return nil, err
	}
	msgs, err := json.Marshal(s.Messages)
	if err != nil {
		return nil, err
	}
	calls, err := json.Marshal(s.ToolCalls)
	if err != nil {
		return nil, err
	}

	return &model.ConversationSession{
		Id:        s.ID,
		Phase:     s.Phase,
		Ready:     s.Ready,
		Context:   datatypes.JSON(ctx),
		Messages:  datatypes.JSON(msgs),
		ToolCalls: datatypes.JSON(calls),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

func (m *SessionMapper) ToSession(s *model.ConversationSession) (*store.Session, error) {
	if s == nil {
		return nil, nil
	}

	session := &store.Session{
		ID:        s.Id,
		Phase:     s.Phase,
		Ready:     s.Ready,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	if len(s.Context) > 0 {
		if err := json.Unmarshal(s.Context, &session.Context); err != nil {
			return nil, err
		}
	}
	if len(s.Messages) > 0 {
		if err := json.Unmarshal(s.Messages, &session.Messages); err != nil {
			return nil, err
		}
	}
	if len(s.ToolCalls) > 0 {
		if err := json.Unmarshal(s.ToolCalls, &session.ToolCalls); err != nil {
			return nil, err
		}
	}

	return session, nil
}
