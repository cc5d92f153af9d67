package service

import (
	"context"
	"encoding/json"
	"time"

	"lit-mashup-be/internal/dto"
	"lit-mashup-be/internal/entity"
	"lit-mashup-be/internal/pkg/logger"
	"lit-mashup-be/internal/repository/contract"
	"lit-mashup-be/pkg/pipeline"
	"lit-mashup-be/pkg/store"
)

type IGenerationService interface {
	Generate(ctx context.Context, sessionId string) (*dto.GenerateResponse, error)
	ListMashups(ctx context.Context, sessionId string) ([]dto.MashupListItem, error)
}

type generationService struct {
	sessionRepo contract.SessionRepository
	mashupRepo  contract.MashupRepository
	pipeline    *pipeline.Pipeline
	publisher   IPublisherService
	logger      logger.ILogger
	locks       *SessionLocks
}

func NewGenerationService(
	sessionRepo contract.SessionRepository,
	mashupRepo contract.MashupRepository,
	pipe *pipeline.Pipeline,
	publisher IPublisherService,
	log logger.ILogger,
	locks *SessionLocks,
) IGenerationService {
	if locks == nil {
		locks = NewSessionLocks()
	}
	return &generationService{
		sessionRepo: sessionRepo,
		mashupRepo:  mashupRepo,
		pipeline:    pipe,
		publisher:   publisher,
		logger:      log,
		locks:       locks,
	}
}

func (s *generationService) Generate(ctx context.Context, sessionId string) (*dto.GenerateResponse, error) {
	// Snapshot the context under the session lock, run the pipeline outside
	// it, then complete the session against a fresh read under the lock.
	gathered, err := s.snapshotReady(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	// Pipeline always produces a result; quality may be degraded
	result := s.pipeline.Run(ctx, sessionId, gathered)

	if err := s.completeSession(ctx, sessionId); err != nil {
		return nil, err
	}

	s.publishResult(ctx, &result)

	s.logger.Info("GenerationService", "Mashup generated", map[string]interface{}{
		"session_id":    sessionId,
		"quality_score": result.QualityScore,
		"fallback_used": result.FallbackUsed,
	})

	return &dto.GenerateResponse{
		SessionId: result.SessionID,
		Title:     result.Title,
		Lyrics:    result.Lyrics,
		Educational: dto.EducationalContentDTO{
			TheoryConcepts:  result.Educational.TheoryConcepts,
			CulturalContext: result.Educational.CulturalContext,
			TeachingNotes:   result.Educational.TeachingNotes,
		},
		QualityScore: result.QualityScore,
		FallbackUsed: result.FallbackUsed,
		Metadata:     result.Metadata,
		GeneratedAt:  result.GeneratedAt,
	}, nil
}

func (s *generationService) snapshotReady(ctx context.Context, sessionId string) (store.GatheredContext, error) {
	mu := s.locks.lockFor(sessionId)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err == contract.ErrSessionNotFound {
		return store.GatheredContext{}, &dto.SessionNotFoundError{SessionId: sessionId}
	} else if err != nil {
		return store.GatheredContext{}, err
	}

	if !session.Ready && session.Phase != store.PhaseReadyForGeneration {
		return store.GatheredContext{}, &dto.SessionNotReadyError{SessionId: sessionId, Phase: session.Phase}
	}

	return session.Context.Clone(), nil
}

func (s *generationService) completeSession(ctx context.Context, sessionId string) error {
	mu := s.locks.lockFor(sessionId)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return err
	}

	session.Phase = store.PhaseCompleted
	session.Ready = false
	session.UpdatedAt = time.Now()
	return s.sessionRepo.Save(ctx, session)
}

func (s *generationService) publishResult(ctx context.Context, result *store.GenerationResult) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(dto.MashupGeneratedMessage{Result: *result})
	if err != nil {
		s.logger.Error("GenerationService", "Failed to marshal mashup event", map[string]interface{}{
			"session_id": result.SessionID,
			"error":      err.Error(),
		})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Error("GenerationService", "Failed to publish mashup event", map[string]interface{}{
			"session_id": result.SessionID,
			"error":      err.Error(),
		})
	}
}

// ListMashups returns persisted records newest first, optionally filtered to
// one session.
func (s *generationService) ListMashups(ctx context.Context, sessionId string) ([]dto.MashupListItem, error) {
	if s.mashupRepo == nil {
		return []dto.MashupListItem{}, nil
	}

	var records []*entity.MashupRecord
	var err error
	if sessionId != "" {
		records, err = s.mashupRepo.FindBySessionId(ctx, sessionId)
	} else {
		records, err = s.mashupRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.MashupListItem, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.MashupListItem{
			Id:           rec.Id.String(),
			SessionId:    rec.SessionId,
			Title:        rec.Title,
			QualityScore: rec.QualityScore,
			FallbackUsed: rec.FallbackUsed,
			CreatedAt:    rec.CreatedAt,
		})
	}
	return items, nil
}
