package bootstrap

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"re-ad-be/internal/config"
	"re-ad-be/internal/controller"
	"re-ad-be/internal/handler"
	"re-ad-be/internal/pkg/logger"
	"re-ad-be/internal/pkg/serverutils"
	"re-ad-be/internal/repository/memory"
	"re-ad-be/internal/repository/unitofwork"
	"re-ad-be/internal/service"
	"re-ad-be/internal/websocket"
	"re-ad-be/pkg/llm/factory"
	pktNats "re-ad-be/pkg/nats"
	"re-ad-be/pkg/summarizer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ReadController      controller.IReadController
	HighlightController controller.IHighlightController
	GraphController     controller.IGraphController
	PaperController     controller.IPaperController
	WorkspaceController controller.IWorkspaceController
	LiveHandler         *handler.LiveHandler

	Auth fiber.Handler

	// Background workers, run by main
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

// Close releases external connections opened by NewContainer.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newSummarizer(cfg config.SummaryConfig) summarizer.Summarizer {
	if !cfg.Enabled {
		log.Println("[INFO] Summaries disabled (set SUMMARY_ENABLED=true to enable)")
		return summarizer.Disabled{}
	}

	if cfg.Provider == "ollama" {
		provider, err := factory.NewLLMProvider(cfg.Provider, cfg.LLMModel, cfg.OllamaBaseURL)
		if err != nil {
			log.Printf("[WARN] Failed to initialize LLM provider: %v. Summaries disabled", err)
			return summarizer.Disabled{}
		}
		log.Printf("[INFO] Using summary provider: OLLAMA (%s)", cfg.LLMModel)
		return summarizer.NewLLMSummarizer(provider)
	}

	log.Printf("[INFO] Using summary provider: GEMINI (%s)", cfg.GeminiModel)
	return summarizer.NewGeminiSummarizer(cfg.GeminiAPIKey, cfg.GeminiModel, "")
}

func newRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Live updates stay local", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync() })

	registry := memory.NewWorkspaceRegistry(cfg.Workspace.TTL)

	// 2. Infrastructure
	var eventPublisher service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	rdb := newRedis(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	wsLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "live.log"))
	wsHub := websocket.NewHub(rdb, wsLogger)
	c.WebSocketHub = wsHub

	// 3. Summary queue
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 4. Services
	n := service.NewNotifier(eventPublisher, wsHub, sysLogger)

	annotationService := service.NewAnnotationService(registry, n)
	paperService := service.NewPaperService(registry, n)
	workspaceService := service.NewWorkspaceService(uowFactory, registry, n)
	publisherService := service.NewPublisherService(cfg.Summary.TopicName, pubSub)
	summaryService := service.NewSummaryService(registry, publisherService, n)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Summary.TopicName,
		registry,
		newSummarizer(cfg.Summary),
		n,
		sysLogger,
	)

	// 5. Controllers
	c.Auth = serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)
	c.ReadController = controller.NewReadController(annotationService)
	c.HighlightController = controller.NewHighlightController(annotationService, summaryService)
	c.GraphController = controller.NewGraphController(annotationService)
	c.PaperController = controller.NewPaperController(paperService)
	c.WorkspaceController = controller.NewWorkspaceController(workspaceService)
	c.LiveHandler = handler.NewLiveHandler(wsHub, registry, cfg.Auth.JwtSecret, wsLogger)

	return c
}
