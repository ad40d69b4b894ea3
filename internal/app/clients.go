package app

import (
	"fmt"

	"github.com/platziflix/catalog-backend/internal/clients/redis"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

type Clients struct {
	StatsCache redis.RatingStatsCache
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	cache, err := redis.NewRatingStatsCache(cfg.Redis, log)
	if err != nil {
		return Clients{}, fmt.Errorf("init rating stats cache: %w", err)
	}
	return Clients{StatsCache: cache}, nil
}

func (c Clients) Close() error {
	if c.StatsCache == nil {
		return nil
	}
	return c.StatsCache.Close()
}
