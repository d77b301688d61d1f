package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/config"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

const (
	metricsKeyPrefix     = "inventory:metrics"
	dashboardKey         = metricsKeyPrefix + ":dashboard"
	profitKey            = metricsKeyPrefix + ":profit"
	metricsScanBatchSize = 100
)

// MetricsCache holds the computed dashboard and profit reports between
// writes. Any stock or catalog change must call InvalidateAll.
type MetricsCache interface {
	GetDashboard(ctx context.Context) (*domain.DashboardMetrics, bool, error)
	SetDashboard(ctx context.Context, m *domain.DashboardMetrics) error
	GetProfit(ctx context.Context) (*domain.ProfitAnalysis, bool, error)
	SetProfit(ctx context.Context, p *domain.ProfitAnalysis) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

type redisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopMetricsCache struct{}

// NewMetricsCache returns a redis backed cache, or a no-op cache when
// caching is disabled.
func NewMetricsCache(ctx context.Context, cfg config.CacheConfig) (MetricsCache, error) {
	if !cfg.Enabled {
		return &noopMetricsCache{}, nil
	}

	client, ttl, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &redisMetricsCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopMetricsCache() MetricsCache {
	return &noopMetricsCache{}
}

func (c *redisMetricsCache) GetDashboard(ctx context.Context) (*domain.DashboardMetrics, bool, error) {
	var m domain.DashboardMetrics
	ok, err := getJSON(ctx, c.client, dashboardKey, &m)
	if err != nil || !ok {
		return nil, false, err
	}
	return &m, true, nil
}

func (c *redisMetricsCache) SetDashboard(ctx context.Context, m *domain.DashboardMetrics) error {
	return setJSON(ctx, c.client, dashboardKey, m, c.ttl)
}

func (c *redisMetricsCache) GetProfit(ctx context.Context) (*domain.ProfitAnalysis, bool, error) {
	var p domain.ProfitAnalysis
	ok, err := getJSON(ctx, c.client, profitKey, &p)
	if err != nil || !ok {
		return nil, false, err
	}
	return &p, true, nil
}

func (c *redisMetricsCache) SetProfit(ctx context.Context, p *domain.ProfitAnalysis) error {
	return setJSON(ctx, c.client, profitKey, p, c.ttl)
}

func (c *redisMetricsCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, metricsKeyPrefix, metricsScanBatchSize)
}

func (c *redisMetricsCache) Close() error {
	return c.client.Close()
}

func (n *noopMetricsCache) GetDashboard(ctx context.Context) (*domain.DashboardMetrics, bool, error) {
	return nil, false, nil
}

func (n *noopMetricsCache) SetDashboard(ctx context.Context, m *domain.DashboardMetrics) error {
	return nil
}

func (n *noopMetricsCache) GetProfit(ctx context.Context) (*domain.ProfitAnalysis, bool, error) {
	return nil, false, nil
}

func (n *noopMetricsCache) SetProfit(ctx context.Context, p *domain.ProfitAnalysis) error {
	return nil
}

func (n *noopMetricsCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func (n *noopMetricsCache) Close() error {
	return nil
}
