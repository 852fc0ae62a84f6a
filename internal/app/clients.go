package app

import (
	"fmt"

	"github.com/yungbote/codelearn-backend/internal/platform/logger"
	"github.com/yungbote/codelearn-backend/internal/platform/openai"
	"github.com/yungbote/codelearn-backend/internal/platform/redis"
)

type Clients struct {
	Cache  redis.Cache
	OpenAI openai.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	cache := redis.NewNopCache()
	if cfg.Redis.Addr != "" {
		c, err := redis.NewCache(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis cache: %w", err)
		}
		cache = c
	}

	// Openai
	var ai openai.Client
	if cfg.OpenAI.APIKey != "" {
		c, err := openai.NewClient(log, cfg.OpenAI)
		if err != nil {
			_ = cache.Close()
			return Clients{}, fmt.Errorf("init openai client: %w", err)
		}
		ai = c
	} else {
		log.Warn("OPENAI_API_KEY not set; code translation will fail")
	}

	return Clients{Cache: cache, OpenAI: ai}, nil
}

func (c Clients) Close() {
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
