package bootstrap

import (
	"context"
	"log"

	"ai-homework-helper-be/internal/config"
	"ai-homework-helper-be/internal/controller"
	"ai-homework-helper-be/internal/handler"
	"ai-homework-helper-be/internal/pkg/logger"
	"ai-homework-helper-be/internal/repository/memory"
	"ai-homework-helper-be/internal/repository/unitofwork"
	"ai-homework-helper-be/internal/service"
	"ai-homework-helper-be/internal/websocket"
	"ai-homework-helper-be/pkg/llm/factory"
	"ai-homework-helper-be/pkg/ocr"
	"ai-homework-helper-be/pkg/tutor/classify"
	"ai-homework-helper-be/pkg/tutor/transcript"

	pktNats "ai-homework-helper-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HomeworkController controller.IHomeworkController
	GuestController    controller.IGuestController
	ProgressController controller.IProgressController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Streaming
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Components
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	classifier := classify.NewClassifier(llmProvider, sysLogger)
	extractor := ocr.NewMockExtractor()

	// In-Memory State
	flowRepo := memory.NewFlowRepository()
	guestRepo := memory.NewGuestRepository()
	reconciler := transcript.NewReconciler()

	// 2.5 Infrastructure (Moved up for dependency injection)
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Topics.Progress, pubSub)
	progressService := service.NewProgressService(uowFactory)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.Progress,
		progressService,
	)

	homeworkService := service.NewHomeworkService(
		uowFactory,
		llmProvider,
		classifier,
		extractor,
		flowRepo,
		reconciler,
		natsPub,
		publisherService,
		wsHub,
		sysLogger,
	)
	guestService := service.NewGuestService(
		guestRepo,
		flowRepo,
		llmProvider,
		classifier,
		extractor,
		wsHub,
		sysLogger,
	)

	streamHandler := handler.NewStreamHandler(homeworkService, guestService, wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		HomeworkController: controller.NewHomeworkController(homeworkService),
		GuestController:    controller.NewGuestController(guestService),
		ProgressController: controller.NewProgressController(progressService),

		ConsumerService: consumerService,

		StreamHandler: streamHandler,
		WebSocketHub:  wsHub,
	}
}
