package observability

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

// Metrics holds process-wide counters, exposed in Prometheus text format.
type Metrics struct {
	apiRequests  *CounterVec
	apiLatency   *HistogramVec
	apiInflight  *GaugeVec
	ratingWrites *CounterVec
	statsCache   *CounterVec
	dbPool       *GaugeVec
	cacheUp      *GaugeVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Current returns the metrics registry, or nil when metrics are disabled. All methods are nil-safe.
func Current() *Metrics {
	return instance
}

func Init(enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
	})
	return instance
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("platziflix_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"platziflix_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight:  NewGaugeVec("platziflix_api_inflight_requests", "In-flight API requests.", nil),
		ratingWrites: NewCounterVec("platziflix_rating_writes_total", "Rating writes by operation/result.", []string{"op", "result"}),
		statsCache:   NewCounterVec("platziflix_rating_stats_cache_total", "Rating stats cache lookups by result.", []string{"result"}),
		dbPool:       NewGaugeVec("platziflix_db_pool", "database/sql pool stats.", []string{"stat"}),
		cacheUp:      NewGaugeVec("platziflix_cache_up", "1 when the stats cache answered the last ping.", nil),
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightAdd(delta float64) {
	if m == nil {
		return
	}
	m.apiInflight.Add(delta)
}

func (m *Metrics) IncRatingWrite(op, result string) {
	if m == nil {
		return
	}
	m.ratingWrites.Inc(op, result)
}

func (m *Metrics) IncStatsCache(result string) {
	if m == nil {
		return
	}
	m.statsCache.Inc(result)
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, f := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight, m.ratingWrites, m.statsCache, m.dbPool, m.cacheUp,
	} {
		if err := f.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

// Pinger is satisfied by the stats cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StartCollectors samples the db pool and cache health every interval until ctx ends.
func (m *Metrics) StartCollectors(ctx context.Context, log *logger.Logger, db *gorm.DB, cache Pinger, interval time.Duration) {
	if m == nil {
		return
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.collect(ctx, log, db, cache)
			}
		}
	}()
}

func (m *Metrics) collect(ctx context.Context, log *logger.Logger, db *gorm.DB, cache Pinger) {
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			stats := sqlDB.Stats()
			m.dbPool.Set(float64(stats.OpenConnections), "open")
			m.dbPool.Set(float64(stats.InUse), "in_use")
			m.dbPool.Set(float64(stats.Idle), "idle")
			m.dbPool.Set(float64(stats.WaitCount), "wait_count")
		}
	}
	if cache != nil {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := cache.Ping(pctx); err != nil {
			m.cacheUp.Set(0)
			if log != nil {
				log.Warn("metrics: cache ping failed", "error", err)
			}
			return
		}
		m.cacheUp.Set(1)
	}
}
