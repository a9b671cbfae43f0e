package bootstrap

import (
	"fmt"
	"log"

	"portfolio-chat-be/internal/config"
	"portfolio-chat-be/internal/controller"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/internal/service"
	"portfolio-chat-be/pkg/ai/orchestrator"
	"portfolio-chat-be/pkg/events"
	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/llm/factory"
	llmMetrics "portfolio-chat-be/pkg/llm/metrics"
	"portfolio-chat-be/pkg/llm/ratelimit"
	"portfolio-chat-be/pkg/portfolio"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
)

type Container struct {
	// Controllers
	HealthController controller.IHealthController
	ChatController   controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Metrics collected by the LLM decorator, served on /metrics
	MetricsGatherer prometheus.Gatherer

	Logger logger.ILogger
	Bus    *events.Bus

	// External event sink, nil unless NATS_URL is set
	NATS *events.NATSPublisher
}

// Dependencies lets tests swap the infrastructure NewContainer would otherwise build.
type Dependencies struct {
	LLMProvider llm.LLMProvider
	Store       *portfolio.Store
	Logger      logger.ILogger
	AuditLogger logger.ILogger
	NATS        *events.NATSPublisher // optional
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Portfolio data, loaded once and read-only afterwards
	store, err := portfolio.Load(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("load portfolio data: %w", err)
	}

	// 3. LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider:    cfg.Ai.LLMProvider,
		Model:       cfg.Ai.LLMModel,
		BaseURL:     cfg.Ai.LLMBaseURL,
		APIKey:      cfg.Ai.LLMAPIKey,
		MaxTokens:   cfg.Ai.MaxTokens,
		Temperature: cfg.Ai.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Optional NATS forwarding
	var natsPublisher *events.NATSPublisher
	if cfg.Events.NatsURL != "" {
		natsPublisher, err = events.NewNATSPublisher(cfg.Events.NatsURL)
		if err != nil {
			return nil, fmt.Errorf("initialize NATS publisher: %w", err)
		}
		log.Printf("[INFO] Forwarding events to NATS at %s", cfg.Events.NatsURL)
	}

	return NewContainerWith(cfg, Dependencies{
		LLMProvider: llmProvider,
		Store:       store,
		Logger:      sysLogger,
		AuditLogger: auditLogger,
		NATS:        natsPublisher,
	}), nil
}

// NewContainerWith wires the application around already-built infrastructure.
func NewContainerWith(cfg *config.Config, deps Dependencies) *Container {
	registry := prometheus.NewRegistry()

	// rate limit outside, metrics inside: waiting for a slot is not provider latency
	var llmProvider llm.LLMProvider = llmMetrics.NewProvider(deps.LLMProvider, cfg.Ai.LLMModel, registry)
	llmProvider = ratelimit.NewProvider(llmProvider, ratelimit.Config{
		RequestsPerMinute: cfg.Ai.RequestsPerMinute,
		MaxConcurrent:     cfg.Ai.MaxConcurrent,
	})

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	bus := events.NewBus(pubSub)

	var publisher events.Publisher = bus
	if deps.NATS != nil {
		publisher = events.FanOut{bus, deps.NATS}
	}

	turnOrchestrator := orchestrator.New(orchestrator.Config{
		LLMProvider: llmProvider,
		Store:       deps.Store,
		Window:      cfg.Ai.HistoryWindow,
		Publisher:   publisher,
		Logger:      deps.Logger,
	})

	chatService := service.NewChatService(turnOrchestrator, deps.Store, deps.Logger)
	consumerService := service.NewConsumerService(bus, deps.AuditLogger, deps.Logger)

	return &Container{
		HealthController: controller.NewHealthController(),
		ChatController:   controller.NewChatController(chatService),

		ConsumerService: consumerService,
		MetricsGatherer: registry,

		Logger: deps.Logger,
		Bus:    bus,
		NATS:   deps.NATS,
	}
}
