package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable through DATA_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      slog.Level
	DataBackend   string
	DatabaseURL   string
	EnableDBCheck bool
	// MigrationsPath is a golang-migrate source URL for the Postgres schema.
	MigrationsPath string
	SQLitePath     string

	WebhookSecret string
	// TelegramBotToken enables out-of-band Bot API calls such as answering button presses.
	TelegramBotToken    string
	TelegramAPIEndpoint string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string
	RateLimit          string

	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	PosthogAPIKey string

	PayeePolicy    string
	CurrencySymbol string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_BACKEND", BackendSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("SQLITE_PATH", "data/expense_bot.db")
	v.SetDefault("WEBHOOK_SECRET", "")
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_API_ENDPOINT", "")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "expense-bot")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "30-M")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "expense_bot")
	v.SetDefault("AMQP_ROUTING_KEY", "ledger")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("PAYEE_POLICY", "delimited")
	v.SetDefault("CURRENCY_SYMBOL", "₹")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		DataBackend:         strings.ToLower(strings.TrimSpace(v.GetString("DATA_BACKEND"))),
		DatabaseURL:         v.GetString("PGSQL_URL"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		SQLitePath:          v.GetString("SQLITE_PATH"),
		WebhookSecret:       v.GetString("WEBHOOK_SECRET"),
		TelegramBotToken:    v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramAPIEndpoint: v.GetString("TELEGRAM_API_ENDPOINT"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		AMQPURL:             v.GetString("AMQP_URL"),
		AMQPExchange:        v.GetString("AMQP_EXCHANGE"),
		AMQPRoutingKey:      v.GetString("AMQP_ROUTING_KEY"),
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
		PayeePolicy:         v.GetString("PAYEE_POLICY"),
		CurrencySymbol:      v.GetString("CURRENCY_SYMBOL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	switch cfg.DataBackend {
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when DATA_BACKEND is %s", BackendPostgres)
		}
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH must be set when DATA_BACKEND is %s", BackendSQLite)
		}
	case BackendMemory:
		log.Println("Warning: DATA_BACKEND is memory. Ledger data will be lost on restart.")
	default:
		return nil, fmt.Errorf("unknown DATA_BACKEND %q", cfg.DataBackend)
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	if cfg.WebhookSecret == "" {
		log.Println("Warning: WEBHOOK_SECRET not set. The webhook endpoint will reject every update.")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set. Button presses will not be acknowledged.")
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "₹"
	}

	return cfg, nil
}
