package service

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"lit-mashup-be/internal/dto"
	"lit-mashup-be/internal/entity"
	"lit-mashup-be/internal/repository/memory"
	"lit-mashup-be/pkg/pipeline"
	"lit-mashup-be/pkg/pipeline/fallback"
	"lit-mashup-be/pkg/pipeline/quality"
	"lit-mashup-be/pkg/store"
)

func newTestGenerationService(t *testing.T, repo *memory.SessionRepository) IGenerationService {
	t.Helper()
	return newTestGenerationServiceWith(t, repo, nil, NewSessionLocks())
}

func newTestGenerationServiceWith(t *testing.T, repo *memory.SessionRepository, mashups *fakeMashupRepo, locks *SessionLocks) IGenerationService {
	t.Helper()
	pipe := pipeline.NewPipeline(
		&stubLLM{reply: "not json"},
		quality.NewValidator(quality.DefaultConfig()),
		fallback.NewProvider(),
		1,
		log.New(io.Discard, "", 0),
	)
	if mashups == nil {
		return NewGenerationService(repo, nil, pipe, nil, noopLogger{}, locks)
	}
	return NewGenerationService(repo, mashups, pipe, nil, noopLogger{}, locks)
}

type fakeMashupRepo struct {
	records []*entity.MashupRecord
}

func (f *fakeMashupRepo) Create(_ context.Context, result *store.GenerationResult) error {
	f.records = append(f.records, &entity.MashupRecord{
		Id:        uuid.New(),
		SessionId: result.SessionID,
		Title:     result.Title,
		CreatedAt: time.Now(),
	})
	return nil
}

func (f *fakeMashupRepo) FindAll(context.Context) ([]*entity.MashupRecord, error) {
	return f.records, nil
}

func (f *fakeMashupRepo) FindBySessionId(_ context.Context, sessionId string) ([]*entity.MashupRecord, error) {
	var out []*entity.MashupRecord
	for _, rec := range f.records {
		if rec.SessionId == sessionId {
			out = append(out, rec)
		}
	}
	return out, nil
}

func readySession(id string) *store.Session {
	s := store.NewSession(id, time.Now())
	s.Phase = store.PhaseReadyForGeneration
	s.Ready = true
	s.Context = store.GatheredContext{
		Genres:             []string{"jazz", "blues"},
		SkillLevel:         store.SkillBeginner,
		LearningObjectives: []string{"teaching"},
		TargetAudience:     "higher_education",
	}
	return s
}

func TestGenerateRequiresReadySession(t *testing.T) {
	repo := memory.NewSessionRepository(0)
	svc := newTestGenerationService(t, repo)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "missing")
	var notFound *dto.SessionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("missing session should 404, got %v", err)
	}

	early := store.NewSession("early", time.Now())
	_ = repo.Create(ctx, early)

	_, err = svc.Generate(ctx, "early")
	var notReady *dto.SessionNotReadyError
	if !errors.As(err, &notReady) {
		t.Fatalf("unready session should be rejected, got %v", err)
	}
}

func TestGenerateAlwaysProducesAResult(t *testing.T) {
	repo := memory.NewSessionRepository(0)
	svc := newTestGenerationService(t, repo)
	ctx := context.Background()

	_ = repo.Create(ctx, readySession("ready-1"))

	res, err := svc.Generate(ctx, "ready-1")
	if err != nil {
		t.Fatalf("generation must not fail even with a broken model: %v", err)
	}
	if !res.FallbackUsed {
		t.Error("unparseable model output should end in the fallback artifact")
	}
	if res.Title == "" || res.Lyrics == "" {
		t.Error("result must satisfy the structural minimums")
	}

	// Generation completes the session
	session, err := repo.Get(ctx, "ready-1")
	if err != nil {
		t.Fatal(err)
	}
	if session.Phase != store.PhaseCompleted {
		t.Errorf("phase = %s, want COMPLETED", session.Phase)
	}
	if session.Ready {
		t.Error("ready flag should be cleared after generation")
	}
}

func TestGenerateSerializesWithConversationTurns(t *testing.T) {
	repo := memory.NewSessionRepository(0)
	locks := NewSessionLocks()
	genSvc := newTestGenerationServiceWith(t, repo, nil, locks)
	convSvc := newTestServiceWith(&stubLLM{reply: "noted"}, repo, locks)
	ctx := context.Background()

	_ = repo.Create(ctx, readySession("shared"))

	// A turn and a generation on the same session must not corrupt it even
	// though the memory store hands both services the same struct.
	var wg sync.WaitGroup
	var turnErr, genErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, turnErr = convSvc.ProcessTurn(ctx, &dto.ProcessTurnRequest{SessionId: "shared", Message: "tell me more about the blues"})
	}()
	go func() {
		defer wg.Done()
		_, genErr = genSvc.Generate(ctx, "shared")
	}()
	wg.Wait()

	if turnErr != nil {
		t.Fatalf("concurrent turn failed: %v", turnErr)
	}
	if genErr != nil {
		t.Fatalf("concurrent generation failed: %v", genErr)
	}

	session, err := repo.Get(ctx, "shared")
	if err != nil {
		t.Fatal(err)
	}
	if session.Phase != store.PhaseCompleted {
		t.Errorf("phase = %s, want COMPLETED after generation", session.Phase)
	}
}

func TestListMashupsFiltersBySession(t *testing.T) {
	repo := memory.NewSessionRepository(0)
	mashups := &fakeMashupRepo{}
	svc := newTestGenerationServiceWith(t, repo, mashups, NewSessionLocks())
	ctx := context.Background()

	_ = mashups.Create(ctx, &store.GenerationResult{SessionID: "sess-a", Title: "First"})
	_ = mashups.Create(ctx, &store.GenerationResult{SessionID: "sess-b", Title: "Second"})
	_ = mashups.Create(ctx, &store.GenerationResult{SessionID: "sess-a", Title: "Third"})

	all, err := svc.ListMashups(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("unfiltered list = %d items, want 3", len(all))
	}

	filtered, err := svc.ListMashups(ctx, "sess-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 2 {
		t.Fatalf("filtered list = %d items, want 2", len(filtered))
	}
	for _, item := range filtered {
		if item.SessionId != "sess-a" {
			t.Errorf("filtered item has session %q", item.SessionId)
		}
	}
}
