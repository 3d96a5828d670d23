package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"wallet_risk_analyzer/internal/domain/entity"
	"wallet_risk_analyzer/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchAnalyzer_KeepsOrderAndRecordsFailures(t *testing.T) {
	failing := mustAddress(addrB)
	client := &fakeClient{fn: func(_ context.Context, address entity.WalletAddress) (*entity.RiskReport, error) {
		if address == failing {
			return nil, entity.NewRequestFailedError(address, errors.New("status 502"))
		}
		return reportFor(address, 45), nil
	}}
	wallets := []entity.Wallet{
		{Address: mustAddress(addrA), Line: 1},
		{Address: failing, Line: 2},
		{Address: mustAddress(entity.DemoAddress), Line: 3},
	}

	results, err := NewBatchAnalyzer(client, logger.NewNopLogger(), 2, 0).AnalyzeAll(context.Background(), wallets)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, w := range wallets {
		assert.Equal(t, w.Address, results[i].Address)
	}

	assert.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Metrics)
	assert.Equal(t, entity.BandHigh, results[0].Metrics.Classification.Band)

	assert.ErrorIs(t, results[1].Err, entity.ErrRequestFailed)
	assert.Nil(t, results[1].Report)
	assert.Nil(t, results[1].Metrics)

	assert.NoError(t, results[2].Err)
	assert.NotNil(t, results[2].Report)
}

func TestBatchAnalyzer_RespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	client := &fakeClient{fn: func(_ context.Context, address entity.WalletAddress) (*entity.RiskReport, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return reportFor(address, 0), nil
	}}

	wallets := make([]entity.Wallet, 12)
	for i := range wallets {
		wallets[i] = entity.Wallet{Address: mustAddress(addrA), Line: i + 1}
	}

	results, err := NewBatchAnalyzer(client, logger.NewNopLogger(), 3, time.Second).AnalyzeAll(context.Background(), wallets)
	require.NoError(t, err)
	assert.Len(t, results, 12)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Len(t, client.Calls(), 12)
}

func TestBatchAnalyzer_CancelledContext(t *testing.T) {
	client := okClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewBatchAnalyzer(client, logger.NewNopLogger(), 0, 0).AnalyzeAll(ctx, []entity.Wallet{{Address: mustAddress(addrA)}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, entity.ErrRequestFailed)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.Empty(t, client.Calls())
}

func TestBatchAnalyzer_RequestTimeout(t *testing.T) {
	client := &fakeClient{fn: func(ctx context.Context, address entity.WalletAddress) (*entity.RiskReport, error) {
		<-ctx.Done()
		return nil, entity.NewRequestFailedError(address, ctx.Err())
	}}

	results, err := NewBatchAnalyzer(client, logger.NewNopLogger(), 2, 20*time.Millisecond).
		AnalyzeAll(context.Background(), []entity.Wallet{{Address: mustAddress(addrA)}, {Address: mustAddress(addrB)}})
	require.NoError(t, err)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.DeadlineExceeded)
	}
}

func TestBatchAnalyzer_Empty(t *testing.T) {
	results, err := NewBatchAnalyzer(okClient(), logger.NewNopLogger(), 4, 0).AnalyzeAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
