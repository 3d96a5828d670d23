package httpclient

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"wallet_risk_analyzer/internal/domain/entity"
	"wallet_risk_analyzer/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type countingClient struct {
	calls atomic.Int32
	err   error
}

func (c *countingClient) FetchReport(_ context.Context, address entity.WalletAddress) (*entity.RiskReport, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &entity.RiskReport{WalletAddress: address}, nil
}

func TestCachedReportClient_ServesRepeatsFromCache(t *testing.T) {
	next := &countingClient{}
	client := NewCachedReportClient(next, time.Minute, time.Minute, zap.NewNop())

	first, err := client.FetchReport(context.Background(), testAddress)
	require.NoError(t, err)
	second, err := client.FetchReport(context.Background(), testAddress)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), next.calls.Load())

	_, err = client.FetchReport(context.Background(), entity.WalletAddress(entity.DemoAddress))
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestCachedReportClient_DoesNotCacheFailures(t *testing.T) {
	next := &countingClient{err: entity.NewRequestFailedError(testAddress, errors.New("boom"))}
	client := NewCachedReportClient(next, time.Minute, 0, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := client.FetchReport(context.Background(), testAddress)
		assert.ErrorIs(t, err, entity.ErrRequestFailed)
	}
	assert.Equal(t, int32(3), next.calls.Load())
}

func TestCachedReportClient_Expires(t *testing.T) {
	next := &countingClient{}
	client := NewCachedReportClient(next, 20*time.Millisecond, time.Hour, zap.NewNop())

	_, _ = client.FetchReport(context.Background(), testAddress)
	time.Sleep(40 * time.Millisecond)
	_, _ = client.FetchReport(context.Background(), testAddress)

	assert.Equal(t, int32(2), next.calls.Load())
}

func TestCachedReportClient_ZeroTTLDisables(t *testing.T) {
	next := &countingClient{}
	client := NewCachedReportClient(next, 0, 0, zap.NewNop())
	assert.Same(t, next, client)
}

func TestCachedReportClient_CountsHitsOnlyAsCached(t *testing.T) {
	success := metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeSuccess)
	cached := metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeCached)
	successBefore, cachedBefore := testutil.ToFloat64(success), testutil.ToFloat64(cached)

	live := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(sampleReport)
	})
	client := NewCachedReportClient(live, time.Minute, time.Minute, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := client.FetchReport(context.Background(), testAddress)
		require.NoError(t, err)
	}

	assert.Equal(t, successBefore+1, testutil.ToFloat64(success))
	assert.Equal(t, cachedBefore+2, testutil.ToFloat64(cached))
}
