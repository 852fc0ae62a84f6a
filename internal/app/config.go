package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/codelearn-backend/internal/data/db"
	"github.com/yungbote/codelearn-backend/internal/modules/learning/catalog"
	"github.com/yungbote/codelearn-backend/internal/observability"
	"github.com/yungbote/codelearn-backend/internal/platform/envutil"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
	"github.com/yungbote/codelearn-backend/internal/platform/openai"
	"github.com/yungbote/codelearn-backend/internal/platform/redis"
)

type Config struct {
	Port        string
	CORSOrigins []string

	DB db.Config

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	// DefaultUserID is the learner whose view anonymous reads get. uuid.Nil
	// disables the fallback and anonymous reads see the shared status column.
	DefaultUserID           uuid.UUID
	ProgressRequireUnlocked bool
	SeedOnStart             bool

	Redis    redis.Config
	CacheTTL time.Duration

	OpenAI openai.Config

	Otel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "3000"),
		CORSOrigins: envutil.List("CORS_ORIGINS", nil),
		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", "postgres"),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "codelearn"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:       envutil.String("SQLITE_PATH", "codelearn.db"),
		},
		JWTSecretKey:            envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:          envutil.Duration("ACCESS_TOKEN_TTL", time.Hour),
		DefaultUserID:           catalog.DefaultUserID,
		ProgressRequireUnlocked: envutil.Bool("PROGRESS_REQUIRE_UNLOCKED", false),
		SeedOnStart:             envutil.Bool("SEED_ON_START", false),
		Redis: redis.Config{
			Addr:      envutil.String("REDIS_ADDR", ""),
			Password:  envutil.String("REDIS_PASSWORD", ""),
			DB:        envutil.Int("REDIS_DB", 0),
			KeyPrefix: envutil.String("REDIS_KEY_PREFIX", "codelearn"),
		},
		CacheTTL: envutil.Duration("CACHE_TTL", time.Hour),
		OpenAI: openai.Config{
			APIKey:  envutil.String("OPENAI_API_KEY", ""),
			BaseURL: envutil.String("OPENAI_BASE_URL", ""),
			Model:   envutil.String("OPENAI_MODEL", "gpt-4"),
			Timeout: time.Duration(envutil.Int("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "codelearn-backend"),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development"),
			Version:     envutil.String("OTEL_SERVICE_VERSION", "dev"),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLE_RATIO", 0.1),
		},
	}

	temperature := envutil.Float("OPENAI_TEMPERATURE", 0.2)
	cfg.OpenAI.Temperature = &temperature

	switch raw := envutil.String("DEFAULT_USER_ID", ""); raw {
	case "":
	case "none", "off":
		cfg.DefaultUserID = uuid.Nil
	default:
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("Invalid DEFAULT_USER_ID, using seeded learner", "value", raw, "error", err)
		} else {
			cfg.DefaultUserID = id
		}
	}

	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set, using insecure default")
	}
	return cfg
}
