package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"lit-mashup-be/internal/dto"
	"lit-mashup-be/internal/pkg/serverutils"
	"lit-mashup-be/internal/repository/memory"
	"lit-mashup-be/internal/service"
	"lit-mashup-be/pkg/conversation"
	"lit-mashup-be/pkg/llm"
	"lit-mashup-be/pkg/pipeline"
	"lit-mashup-be/pkg/pipeline/fallback"
	"lit-mashup-be/pkg/pipeline/quality"
	"lit-mashup-be/pkg/research"
	"lit-mashup-be/pkg/store"
)

type silentLogger struct{}

func (silentLogger) Debug(string, string, map[string]interface{}) {}
func (silentLogger) Info(string, string, map[string]interface{})  {}
func (silentLogger) Warn(string, string, map[string]interface{})  {}
func (silentLogger) Error(string, string, map[string]interface{}) {}
func (silentLogger) Sync() error                                  { return nil }

type cannedLLM struct {
	reply string
}

func (m *cannedLLM) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return m.reply, nil
}

func (m *cannedLLM) Generate(context.Context, string, ...llm.Option) (string, error) {
	return m.reply, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := memory.NewSessionRepository(0)
	locks := service.NewSessionLocks()
	orchestrator := research.NewOrchestrator(nil, research.DefaultOptions(), log.New(io.Discard, "", 0))
	convSvc := service.NewConversationService(
		repo,
		conversation.NewKeywordExtractor(),
		orchestrator,
		&cannedLLM{reply: "noted"},
		silentLogger{},
		2000,
		locks,
	)
	pipe := pipeline.NewPipeline(
		&cannedLLM{reply: "not json"},
		quality.NewValidator(quality.DefaultConfig()),
		fallback.NewProvider(),
		1,
		log.New(io.Discard, "", 0),
	)
	genSvc := service.NewGenerationService(repo, nil, pipe, nil, silentLogger{}, locks)

	app := fiber.New()
	api := app.Group("/api")
	NewConversationController(convSvc, genSvc).RegisterRoutes(api, serverutils.ErrorHandlerMiddleware())
	return app
}

func postTurn(t *testing.T, app *fiber.App, sessionId, message string) *dto.ProcessTurnResponse {
	t.Helper()

	body, err := json.Marshal(dto.ProcessTurnRequest{SessionId: sessionId, Message: message})
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/conversation/v1/turn", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("turn %q returned %d: %s", message, resp.StatusCode, raw)
	}

	var envelope serverutils.Response[*dto.ProcessTurnResponse]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Data == nil {
		t.Fatalf("turn %q returned no payload", message)
	}
	return envelope.Data
}

func driveToReady(t *testing.T, app *fiber.App) string {
	t.Helper()

	turns := []string{
		"I want to teach my high school class with jazz",
		"Let's also add blues",
		"They are beginners, focus on rhythm",
		"The cultural heritage matters to me",
	}

	sessionId := ""
	var res *dto.ProcessTurnResponse
	for _, msg := range turns {
		res = postTurn(t, app, sessionId, msg)
		sessionId = res.SessionId
	}
	if res.Phase != store.PhaseReadyForGeneration || !res.ReadyForGeneration {
		t.Fatalf("setup turns ended in phase %s (ready=%v), want READY_FOR_GENERATION", res.Phase, res.ReadyForGeneration)
	}
	return sessionId
}

func TestTurnConfirmationGeneratesMashup(t *testing.T) {
	app := newTestApp(t)
	sessionId := driveToReady(t, app)

	res := postTurn(t, app, sessionId, "Yes, let's do it")

	if res.Mashup == nil {
		t.Fatal("confirming turn on a ready session must return the mashup")
	}
	if res.Mashup.Title == "" || res.Mashup.Lyrics == "" {
		t.Error("generated mashup must carry a title and lyrics")
	}
	if res.Phase != store.PhaseCompleted {
		t.Errorf("phase = %s, want COMPLETED", res.Phase)
	}
	if res.ReadyForGeneration {
		t.Error("ready flag must clear once generation has run")
	}
}

func TestTurnWithoutConfirmationStaysReady(t *testing.T) {
	app := newTestApp(t)
	sessionId := driveToReady(t, app)

	res := postTurn(t, app, sessionId, "Tell me more about how the styles differ")

	if res.Mashup != nil {
		t.Error("a non-confirming turn must not trigger generation")
	}
	if res.Phase != store.PhaseReadyForGeneration {
		t.Errorf("phase = %s, want READY_FOR_GENERATION", res.Phase)
	}
}
