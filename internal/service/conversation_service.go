package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lit-mashup-be/internal/dto"
	"lit-mashup-be/internal/pkg/logger"
	"lit-mashup-be/internal/repository/contract"
	"lit-mashup-be/pkg/conversation"
	"lit-mashup-be/pkg/llm"
	"lit-mashup-be/pkg/research"
	"lit-mashup-be/pkg/store"
)

const historyWindow = 6

type IConversationService interface {
	ProcessTurn(ctx context.Context, request *dto.ProcessTurnRequest) (*dto.ProcessTurnResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error)
}

type conversationService struct {
	sessionRepo   contract.SessionRepository
	extractor     conversation.Extractor
	orchestrator  *research.Orchestrator
	llmProvider   llm.Provider
	logger        logger.ILogger
	maxMessageLen int
	locks         *SessionLocks
}

func NewConversationService(
	sessionRepo contract.SessionRepository,
	extractor conversation.Extractor,
	orchestrator *research.Orchestrator,
	llmProvider llm.Provider,
	log logger.ILogger,
	maxMessageLen int,
	locks *SessionLocks,
) IConversationService {
	if maxMessageLen <= 0 {
		maxMessageLen = 2000
	}
	if locks == nil {
		locks = NewSessionLocks()
	}
	return &conversationService{
		sessionRepo:   sessionRepo,
		extractor:     extractor,
		orchestrator:  orchestrator,
		llmProvider:   llmProvider,
		logger:        log,
		maxMessageLen: maxMessageLen,
		locks:         locks,
	}
}

func (s *conversationService) ProcessTurn(ctx context.Context, request *dto.ProcessTurnRequest) (*dto.ProcessTurnResponse, error) {
	if request.Message == "" {
		return nil, &dto.ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if len(request.Message) > s.maxMessageLen {
		return nil, &dto.ValidationError{
			Field:  "message",
			Reason: fmt.Sprintf("must not exceed %d characters", s.maxMessageLen),
		}
	}

	sessionId := request.SessionId
	isNew := sessionId == ""
	if isNew {
		sessionId = uuid.NewString()
	}

	// Load (or create) under the session lock, then release it before any
	// model or search call. The snapshot is what the slow work runs on.
	snapshot, err := s.loadSnapshot(ctx, sessionId, isNew)
	if err != nil {
		return nil, err
	}

	partial := s.extractor.Extract(request.Message, snapshot.Context)

	snippets, toolCalls := s.enrich(ctx, snapshot.Phase, partial, snapshot.Context)

	reply := s.synthesizeReply(ctx, snapshot, request.Message)

	// Merge back under the lock against a fresh read, so a concurrent turn
	// on the same session is never overwritten.
	session, err := s.commitTurn(ctx, sessionId, request.Message, reply, partial, snippets, toolCalls)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ConversationService", "Turn processed", map[string]interface{}{
		"session_id": sessionId,
		"phase":      session.Phase,
		"ready":      session.Ready,
		"tool_calls": len(toolCalls),
	})

	return &dto.ProcessTurnResponse{
		SessionId:          sessionId,
		Reply:              reply,
		ToolCalls:          toToolCallDTOs(toolCalls),
		GatheredContext:    session.Context.Clone(),
		Phase:              session.Phase,
		ReadyForGeneration: session.Ready,
	}, nil
}

func (s *conversationService) loadSnapshot(ctx context.Context, sessionId string, isNew bool) (*store.Session, error) {
	mu := s.locks.lockFor(sessionId)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err == contract.ErrSessionNotFound {
		if !isNew {
			return nil, &dto.SessionNotFoundError{SessionId: sessionId}
		}
		session = store.NewSession(sessionId, time.Now())
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	snapshot := *session
	snapshot.Context = session.Context.Clone()
	snapshot.Messages = append([]store.Message(nil), session.Messages...)
	return &snapshot, nil
}

// enrich issues phase-appropriate research queries. With no provider
// configured this is a no-op and no tool calls are recorded.
func (s *conversationService) enrich(ctx context.Context, phase string, partial, existing store.GatheredContext) ([]store.ResearchSnippet, []store.ToolCall) {
	var queries []string
	switch phase {
	case store.PhaseInitial, store.PhaseGenreExploration:
		queries = research.GenreQueries(capList(partial.Genres, 3))
	case store.PhaseCulturalResearch:
		elements := partial.CulturalFocus
		if len(elements) == 0 {
			elements = existing.CulturalFocus
		}
		queries = research.CulturalQueries(capList(elements, 3))
	}
	if len(queries) == 0 {
		return nil, nil
	}

	merged := existing.Clone()
	merged.Merge(partial)
	return s.orchestrator.Enrich(ctx, queries, merged)
}

func (s *conversationService) synthesizeReply(ctx context.Context, snapshot *store.Session, userMessage string) string {
	history := []llm.Message{
		{Role: "system", Content: conversation.SystemPrompt(snapshot.Phase)},
	}

	messages := snapshot.Messages
	if len(messages) > historyWindow {
		messages = messages[len(messages)-historyWindow:]
	}
	for _, m := range messages {
		role := "user"
		if m.Role == store.RoleModel {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: m.Content})
	}
	history = append(history, llm.Message{Role: "user", Content: userMessage})

	reply, err := s.llmProvider.Chat(ctx, history, llm.WithTemperature(0.7))
	if err != nil || reply == "" {
		if err != nil {
			s.logger.Warn("ConversationService", "Reply synthesis failed, using canned reply", map[string]interface{}{
				"session_id": snapshot.ID,
				"error":      err.Error(),
			})
		}
		return conversation.FallbackReply(snapshot.Phase)
	}
	return reply
}

func (s *conversationService) commitTurn(
	ctx context.Context,
	sessionId, userMessage, reply string,
	partial store.GatheredContext,
	snippets []store.ResearchSnippet,
	toolCalls []store.ToolCall,
) (*store.Session, error) {
	mu := s.locks.lockFor(sessionId)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	session.Context.Merge(partial)
	session.Context.MergeResearch(snippets)
	session.Phase = conversation.Next(session.Phase, session.Context)
	session.Ready = session.Phase == store.PhaseReadyForGeneration
	session.AppendTurn(userMessage, reply, toolCalls, time.Now())

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *conversationService) GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error) {
	// Read under the session lock: the memory store hands out the live
	// struct, so an unlocked read races with a concurrent merge-back.
	mu := s.locks.lockFor(sessionId)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err == contract.ErrSessionNotFound {
		return nil, &dto.SessionNotFoundError{SessionId: sessionId}
	} else if err != nil {
		return nil, err
	}

	messages := make([]dto.MessageDTO, 0, len(session.Messages))
	for _, m := range session.Messages {
		messages = append(messages, dto.MessageDTO{
			Role:      m.Role,
			Content:   m.Content,
			ToolCalls: toToolCallDTOs(m.ToolCalls),
			CreatedAt: m.CreatedAt,
		})
	}

	return &dto.GetSessionResponse{
		SessionId:          session.ID,
		Phase:              session.Phase,
		GatheredContext:    session.Context.Clone(),
		Messages:           messages,
		ReadyForGeneration: session.Ready,
		CreatedAt:          session.CreatedAt,
		UpdatedAt:          session.UpdatedAt,
	}, nil
}

func toToolCallDTOs(calls []store.ToolCall) []dto.ToolCallDTO {
	out := make([]dto.ToolCallDTO, 0, len(calls))
	for _, c := range calls {
		out = append(out, dto.ToolCallDTO{
			Tool:        c.Tool,
			Query:       c.Query,
			ResultCount: c.ResultCount,
			Success:     c.Success,
			Error:       c.Error,
			CalledAt:    c.CalledAt,
		})
	}
	return out
}

func capList(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
