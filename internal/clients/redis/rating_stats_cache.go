package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

const (
	DefaultKeyPrefix = "platziflix"
	DefaultStatsTTL  = 5 * time.Minute
)

// RatingStatsCache holds computed rating stats per course. A miss is (zero, false, nil).
type RatingStatsCache interface {
	Get(ctx context.Context, courseID uint) (catalog.RatingStats, bool, error)
	Set(ctx context.Context, courseID uint, stats catalog.RatingStats) error
	Invalidate(ctx context.Context, courseID uint) error
	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// Enabled reports whether a redis address is configured.
func (c Config) Enabled() bool { return strings.TrimSpace(c.Addr) != "" }

type ratingStatsCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRatingStatsCache connects to redis, or returns the no-op cache when no address is set.
func NewRatingStatsCache(cfg Config, log *logger.Logger) (RatingStatsCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if !cfg.Enabled() {
		log.Info("REDIS_ADDR not set; rating stats cache disabled")
		return NewNoopRatingStatsCache(), nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        strings.TrimSpace(cfg.Addr),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return newRatingStatsCache(rdb, cfg, log), nil
}

func newRatingStatsCache(rdb *goredis.Client, cfg Config, log *logger.Logger) *ratingStatsCache {
	prefix := strings.TrimSpace(cfg.KeyPrefix)
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &ratingStatsCache{
		log:    log.With("service", "RedisRatingStatsCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

// RatingStatsKey is the redis key for one course's stats.
func RatingStatsKey(prefix string, courseID uint) string {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return fmt.Sprintf("%s:rating_stats:%d", prefix, courseID)
}

func (c *ratingStatsCache) Get(ctx context.Context, courseID uint) (catalog.RatingStats, bool, error) {
	if c == nil || c.rdb == nil {
		return catalog.RatingStats{}, false, fmt.Errorf("redis stats cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, RatingStatsKey(c.prefix, courseID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return catalog.RatingStats{}, false, nil
	}
	if err != nil {
		return catalog.RatingStats{}, false, err
	}
	var stats catalog.RatingStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.log.Warn("bad cached rating stats payload", "course_id", courseID, "error", err)
		return catalog.RatingStats{}, false, nil
	}
	if stats.RatingDistribution == nil {
		stats.RatingDistribution = make(map[int]int64, catalog.MaxRating)
	}
	for v := catalog.MinRating; v <= catalog.MaxRating; v++ {
		if _, ok := stats.RatingDistribution[v]; !ok {
			stats.RatingDistribution[v] = 0
		}
	}
	return stats, true, nil
}

func (c *ratingStatsCache) Set(ctx context.Context, courseID uint, stats catalog.RatingStats) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis stats cache not initialized")
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, RatingStatsKey(c.prefix, courseID), raw, c.ttl).Err()
}

func (c *ratingStatsCache) Invalidate(ctx context.Context, courseID uint) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis stats cache not initialized")
	}
	return c.rdb.Del(ctx, RatingStatsKey(c.prefix, courseID)).Err()
}

func (c *ratingStatsCache) Ping(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis stats cache not initialized")
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *ratingStatsCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

type noopRatingStatsCache struct{}

// NewNoopRatingStatsCache never stores anything; every Get is a miss.
func NewNoopRatingStatsCache() RatingStatsCache { return noopRatingStatsCache{} }

func (noopRatingStatsCache) Get(context.Context, uint) (catalog.RatingStats, bool, error) {
	return catalog.RatingStats{}, false, nil
}
func (noopRatingStatsCache) Set(context.Context, uint, catalog.RatingStats) error { return nil }
func (noopRatingStatsCache) Invalidate(context.Context, uint) error             { return nil }
func (noopRatingStatsCache) Ping(context.Context) error                         { return nil }
func (noopRatingStatsCache) Close() error                                       { return nil }
