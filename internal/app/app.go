package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"secretary/internal/bot"
	"secretary/internal/config"
	"secretary/internal/embedding"
	"secretary/internal/knowledge"
	"secretary/internal/knowledge/ch"
	"secretary/internal/knowledge/pg"
	"secretary/internal/knowledge/stubs"
	"secretary/internal/llm"
	"secretary/internal/llm/gemini"
	"secretary/internal/logger"
	"secretary/internal/navigator"
	"secretary/internal/tools"
)

// App represents the application
type App struct {
	config    *config.Config
	logger    *zap.Logger
	store     knowledge.Store
	knowledge *knowledge.Service
	bot       *bot.Bot
	server    *http.Server
}

// New creates and initializes a new application instance
func New() (*App, error) {
	// Load .env file if it exists
	envLoaded := godotenv.Load() == nil

	// Load configuration from environment variables
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	app := &App{
		config: cfg,
		logger: logger.New(cfg.LogFile, cfg.Production),
	}

	app.logger.Info("Starting secretary bot", zap.Bool("env_file", envLoaded))

	// Initialize knowledge base
	if err := app.initKnowledge(); err != nil {
		return nil, err
	}

	// Initialize bot
	if err := app.initBot(); err != nil {
		return nil, err
	}

	// Initialize HTTP server
	app.initHTTPServer()

	return app, nil
}

// initKnowledge picks the vector store backend and builds the knowledge
// service on top of it.
func (a *App) initKnowledge() error {
	var (
		store    knowledge.Store
		embedder embedding.Provider
		err      error
	)

	switch a.config.KnowledgeBackend {
	case config.BackendMock:
		a.logger.Info("Using in-memory knowledge store")
		store = stubs.NewMockStore()
		embedder = stubs.HashEmbedder{Dim: 768}

	case config.BackendPostgres:
		a.logger.Info("Connecting to Postgres")
		store, err = pg.NewPostgresStore(a.config.PostgresDSN)
		if err != nil {
			return fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		embedder = embedding.NewGemini(a.config.GeminiAPIKey, a.config.EmbeddingModel)

	case config.BackendClickHouse:
		a.logger.Info("Connecting to ClickHouse",
			zap.String("host", a.config.ClickHouseHost),
			zap.Int("port", a.config.ClickHousePort),
			zap.String("database", a.config.ClickHouseDatabase),
			zap.Bool("tls", a.config.ClickHouseUseTLS),
		)
		store, err = ch.NewClickHouseStore(
			a.config.ClickHouseHost,
			a.config.ClickHousePort,
			a.config.ClickHouseDatabase,
			a.config.ClickHouseUser,
			a.config.ClickHousePassword,
			a.config.ClickHouseUseTLS,
		)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		embedder = embedding.NewGemini(a.config.GeminiAPIKey, a.config.EmbeddingModel)

	default:
		return fmt.Errorf("unknown knowledge backend: %s", a.config.KnowledgeBackend)
	}

	// Initialize storage schema
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize knowledge store: %w", err)
	}
	a.logger.Info("Knowledge store initialized", zap.String("backend", a.config.KnowledgeBackend))

	a.store = store
	a.knowledge = knowledge.NewService(store, embedder, a.logger)
	return nil
}

// initBot builds the navigator and the Telegram transport around it.
func (a *App) initBot() error {
	chat := &llm.Generator{
		Client: gemini.New(a.config.GeminiAPIKey),
		Model:  a.config.ChatModel,
	}

	nav := navigator.New(navigator.Config{
		Chat:      chat,
		Retrieval: a.knowledge,
		Ingestion: a.knowledge,
		Weather:   tools.NewWeatherClient(a.logger),
		Rates:     tools.NewMarketRates(a.config.MarketRateDefault),
		Logger:    a.logger,
		TopK:      a.config.RetrievalTopK,
		Timeout:   a.config.RequestTimeout,
	})

	telegramBot, err := bot.NewBot(
		a.config.TelegramToken,
		nav,
		navigator.NewStore(),
		a.knowledge,
		a.config.AllowedUserIDs,
		a.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	a.logger.Info("Bot created successfully", zap.Int64s("allowed_users", a.config.AllowedUserIDs))

	a.bot = telegramBot
	return nil
}

// initHTTPServer initializes the HTTP server for health checks and webhook
func (a *App) initHTTPServer() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default port
	}

	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	// Root endpoint
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		mode := "polling"
		if a.config.WebhookMode {
			mode = "webhook"
		}
		fmt.Fprintf(w, "Secretary bot is running (mode: %s)", mode)
	})

	// Webhook endpoint (only used in webhook mode)
	mux.HandleFunc("/telegram-webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			a.logger.Warn("Error decoding webhook update", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Process update in background to respond quickly to Telegram
		go a.bot.HandleWebhookUpdate(update)

		w.WriteHeader(http.StatusOK)
	})

	a.server = &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start HTTP server in background
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", port))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start bot in appropriate mode
	if a.config.WebhookMode {
		// Webhook mode: configure webhook and wait for HTTP requests
		a.logger.Info("Starting bot in webhook mode", zap.String("url", a.config.WebhookURL))
		if err := a.bot.StartWebhook(a.config.WebhookURL); err != nil {
			return fmt.Errorf("failed to setup webhook: %w", err)
		}
	} else {
		// Polling mode: actively poll Telegram servers
		go func() {
			if err := a.bot.Start(); err != nil {
				a.logger.Fatal("Failed to start bot", zap.Error(err))
			}
		}()
	}

	// Wait for interrupt signal
	<-sigChan

	a.logger.Info("Shutting down...")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	// Shutdown HTTP server gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	// Close knowledge store
	if err := a.store.Close(); err != nil {
		a.logger.Error("Error closing knowledge store", zap.Error(err))
		return err
	}

	a.logger.Info("Shutdown complete")
	_ = a.logger.Sync()
	return nil
}
