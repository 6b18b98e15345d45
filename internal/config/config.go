package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Knowledge backend selection values.
const (
	BackendPostgres   = "postgres"
	BackendClickHouse = "clickhouse"
	BackendMock       = "mock"
)

// Config holds the application configuration
type Config struct {
	TelegramToken  string
	AllowedUserIDs []int64 // empty means the bot is open to everyone

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // URL for webhook (required if WebhookMode is true)

	// Gemini configuration
	GeminiAPIKey   string
	ChatModel      string
	EmbeddingModel string

	// Knowledge base backend: postgres, clickhouse or mock
	KnowledgeBackend string

	// Postgres configuration (backend=postgres)
	PostgresDSN string

	// ClickHouse configuration (backend=clickhouse)
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool

	// Behavior tuning
	MarketRateDefault int
	RetrievalTopK     int
	RequestTimeout    time.Duration

	LogFile    string
	Production bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	// Allowed User IDs (optional; empty means open access)
	if allowedIDsStr := os.Getenv("ALLOWED_USER_IDS"); allowedIDsStr != "" {
		for _, idStr := range strings.Split(allowedIDsStr, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID in ALLOWED_USER_IDS: %s", idStr)
			}
			config.AllowedUserIDs = append(config.AllowedUserIDs, id)
		}
	}

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = os.Getenv("WEBHOOK_URL")
		if config.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}

	// Knowledge backend selection (default: postgres)
	config.KnowledgeBackend = os.Getenv("KNOWLEDGE_BACKEND")
	if config.KnowledgeBackend == "" {
		config.KnowledgeBackend = BackendPostgres
	}

	switch config.KnowledgeBackend {
	case BackendPostgres:
		config.PostgresDSN = os.Getenv("POSTGRES_DSN")
		if config.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required when KNOWLEDGE_BACKEND is postgres")
		}

	case BackendClickHouse:
		config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
		if config.ClickHouseHost == "" {
			return nil, fmt.Errorf("CLICKHOUSE_HOST is required when KNOWLEDGE_BACKEND is clickhouse")
		}

		portStr := os.Getenv("CLICKHOUSE_PORT")
		if portStr == "" {
			config.ClickHousePort = 9000 // Default ClickHouse native port
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return nil, fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
			}
			config.ClickHousePort = port
		}

		config.ClickHouseDatabase = os.Getenv("CLICKHOUSE_DATABASE")
		if config.ClickHouseDatabase == "" {
			config.ClickHouseDatabase = "default"
		}

		config.ClickHouseUser = os.Getenv("CLICKHOUSE_USER")
		if config.ClickHouseUser == "" {
			config.ClickHouseUser = "default"
		}

		config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
		// Password is optional, can be empty

		config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"

	case BackendMock:
		// Nothing to configure

	default:
		return nil, fmt.Errorf("unknown KNOWLEDGE_BACKEND: %s (want postgres, clickhouse or mock)", config.KnowledgeBackend)
	}

	// Gemini API key (required; the chat model is always Gemini even
	// when the mock knowledge backend is selected)
	config.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	config.ChatModel = os.Getenv("CHAT_MODEL")
	if config.ChatModel == "" {
		config.ChatModel = "gemini-2.5-flash"
	}

	config.EmbeddingModel = os.Getenv("EMBEDDING_MODEL")
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = "text-embedding-004"
	}

	var err error
	config.MarketRateDefault, err = intEnv("MARKET_RATE_DEFAULT", 4500)
	if err != nil {
		return nil, err
	}

	config.RetrievalTopK, err = intEnv("RETRIEVAL_TOP_K", 4)
	if err != nil {
		return nil, err
	}

	timeoutSecs, err := intEnv("REQUEST_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	config.RequestTimeout = time.Duration(timeoutSecs) * time.Second

	config.LogFile = os.Getenv("LOG_FILE")
	config.Production = os.Getenv("APP_ENV") == "production"

	return config, nil
}

func intEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
