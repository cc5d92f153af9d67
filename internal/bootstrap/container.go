package bootstrap

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"lit-mashup-be/internal/config"
	"lit-mashup-be/internal/controller"
	"lit-mashup-be/internal/pkg/logger"
	"lit-mashup-be/internal/repository/contract"
	"lit-mashup-be/internal/repository/implementation"
	"lit-mashup-be/internal/repository/memory"
	redisrepo "lit-mashup-be/internal/repository/redis"
	"lit-mashup-be/internal/service"
	"lit-mashup-be/pkg/conversation"
	"lit-mashup-be/pkg/llm/factory"
	pktNats "lit-mashup-be/pkg/nats"
	"lit-mashup-be/pkg/pipeline"
	"lit-mashup-be/pkg/pipeline/fallback"
	"lit-mashup-be/pkg/pipeline/quality"
	"lit-mashup-be/pkg/research"
	"lit-mashup-be/pkg/search/tavily"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const topicMashupGenerated = "MASHUP_GENERATED"

// initPipelineLogger writes LLM pipeline traces to an isolated plain-text
// log so they do not flood the structured app log.
func initPipelineLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	MashupController       controller.IMashupController
	HealthController       controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := initPipelineLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Session Storage
	sessionTTL := time.Duration(cfg.Conversation.SessionTTLMinutes) * time.Minute
	var sessionRepo contract.SessionRepository
	switch cfg.App.SessionStore {
	case "redis":
		redisRepo, err := redisrepo.NewSessionRepository(cfg.App.RedisURL, sessionTTL)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize Redis session store: %v", err)
		}
		sessionRepo = redisRepo
		log.Printf("[INFO] Using Session Store: REDIS")
	case "postgres":
		if db == nil {
			log.Fatalf("[FATAL] SESSION_STORE=postgres requires DB_CONNECTION_STRING")
		}
		sessionRepo = implementation.NewSessionRepository(db)
		log.Printf("[INFO] Using Session Store: POSTGRES")
	default:
		sessionRepo = memory.NewSessionRepository(sessionTTL)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 5. Mashup Persistence (optional, requires postgres)
	var mashupRepo contract.MashupRepository
	if db != nil {
		mashupRepo = implementation.NewMashupRepository(db)
	}

	// 6. Infrastructure
	var eventPub service.EventPublisher
	if natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPub = natsPub
	}

	// 7. Research Orchestrator (degrades to no-op without a Tavily key)
	searchProvider := tavily.NewTavilyClient(cfg.Keys.Tavily)
	orchestrator := research.NewOrchestrator(searchProvider, research.Options{
		MaxConcurrent:   cfg.Research.MaxConcurrent,
		PerQueryTimeout: time.Duration(cfg.Research.PerQueryTimeoutSec) * time.Second,
		MinContentLen:   cfg.Research.MinContentLen,
		TopK:            cfg.Research.TopK,
	}, pipelineLogger)

	// 8. Generation Pipeline
	validator := quality.NewValidator(quality.Config{
		ConceptWeight:  cfg.Pipeline.ConceptWeight,
		CulturalWeight: cfg.Pipeline.CulturalWeight,
		ErrorPenalty:   cfg.Pipeline.ErrorPenalty,
		MinConcepts:    cfg.Pipeline.MinConcepts,
		MinCulturalLen: cfg.Pipeline.MinCulturalLen,
		Threshold:      cfg.Pipeline.QualityThreshold,
	})
	generationPipeline := pipeline.NewPipeline(
		llmProvider,
		validator,
		fallback.NewProvider(),
		cfg.Pipeline.MaxRetries,
		pipelineLogger,
	)

	// 9. Services
	publisherService := service.NewPublisherService(topicMashupGenerated, pubSub)
	consumerService := service.NewConsumerService(pubSub, topicMashupGenerated, mashupRepo, eventPub)

	sessionLocks := service.NewSessionLocks()
	conversationService := service.NewConversationService(
		sessionRepo,
		conversation.NewKeywordExtractor(),
		orchestrator,
		llmProvider,
		sysLogger,
		cfg.Conversation.MaxMessageLen,
		sessionLocks,
	)
	generationService := service.NewGenerationService(
		sessionRepo,
		mashupRepo,
		generationPipeline,
		publisherService,
		sysLogger,
		sessionLocks,
	)

	// 10. Controllers
	return &Container{
		ConversationController: controller.NewConversationController(conversationService, generationService),
		MashupController:       controller.NewMashupController(generationService),
		HealthController:       controller.NewHealthController(db),
		ConsumerService:        consumerService,
		Logger:                 sysLogger,
	}
}
