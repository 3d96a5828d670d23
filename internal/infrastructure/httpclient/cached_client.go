package httpclient

import (
	"context"
	"time"

	"wallet_risk_analyzer/internal/app/port"
	"wallet_risk_analyzer/internal/domain/entity"
	"wallet_risk_analyzer/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// cachedClient serves repeated lookups of the same wallet from memory.
// Cached reports are shared and must be treated as read-only.
type cachedClient struct {
	next   port.ReportClient
	cache  *cache.Cache
	logger *zap.Logger
}

// NewCachedReportClient wraps next with a TTL cache keyed by wallet address.
// A non-positive ttl returns next unchanged.
func NewCachedReportClient(next port.ReportClient, ttl, cleanupInterval time.Duration, logger *zap.Logger) port.ReportClient {
	if ttl <= 0 {
		return next
	}
	if cleanupInterval <= 0 {
		cleanupInterval = ttl
	}
	return &cachedClient{
		next:   next,
		cache:  cache.New(ttl, cleanupInterval),
		logger: logger.Named("CachedReportClient"),
	}
}

// FetchReport implements port.ReportClient. Failures are never cached.
func (c *cachedClient) FetchReport(ctx context.Context, address entity.WalletAddress) (*entity.RiskReport, error) {
	key := address.String()
	if cached, found := c.cache.Get(key); found {
		if report, ok := cached.(*entity.RiskReport); ok {
			metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeCached).Inc()
			c.logger.Debug("Serving wallet analysis from cache", zap.String("address", key))
			return report, nil
		}
	}

	report, err := c.next.FetchReport(ctx, address)
	if err != nil {
		return nil, err
	}
	if report != nil {
		c.cache.SetDefault(key, report)
	}
	return report, nil
}
