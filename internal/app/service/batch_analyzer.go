package service

import (
	"context"
	"fmt"
	"time"

	"wallet_risk_analyzer/internal/app/port"
	"wallet_risk_analyzer/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of analyzing one wallet of a batch.
type BatchResult struct {
	Address entity.WalletAddress
	Report  *entity.RiskReport
	Metrics *entity.DerivedMetrics
	Err     error
}

// BatchAnalyzer analyzes a list of wallets concurrently.
type BatchAnalyzer struct {
	client         port.ReportClient
	logger         port.Logger
	maxConcurrent  int
	requestTimeout time.Duration
}

// NewBatchAnalyzer creates a BatchAnalyzer running at most maxConcurrent
// requests, each bounded by requestTimeout. Zero means unbounded.
func NewBatchAnalyzer(client port.ReportClient, logger port.Logger, maxConcurrent int, requestTimeout time.Duration) *BatchAnalyzer {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &BatchAnalyzer{
		client:         client,
		logger:         logger,
		maxConcurrent:  maxConcurrent,
		requestTimeout: requestTimeout,
	}
}

// AnalyzeAll fetches a report for every wallet. Per-wallet failures are
// recorded in the result and do not stop the batch. Results keep input order.
func (b *BatchAnalyzer) AnalyzeAll(ctx context.Context, wallets []entity.Wallet) ([]BatchResult, error) {
	results := make([]BatchResult, len(wallets))
	if len(wallets) == 0 {
		return results, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(b.maxConcurrent)

	for i, wallet := range wallets {
		results[i].Address = wallet.Address
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				results[i].Err = entity.NewRequestFailedError(wallet.Address, err)
				return nil
			}
			reqCtx, cancel := egCtx, context.CancelFunc(func() {})
			if b.requestTimeout > 0 {
				reqCtx, cancel = context.WithTimeout(egCtx, b.requestTimeout)
			}
			defer cancel()

			report, err := b.client.FetchReport(reqCtx, wallet.Address)
			if err != nil {
				b.logger.Warn("Batch analysis failed for wallet", "address", wallet.Address, "error", err)
				results[i].Err = err
				return nil
			}
			results[i].Report = report
			results[i].Metrics = BuildDerivedMetrics(report)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return results, fmt.Errorf("batch analysis: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	b.logger.Info("Batch analysis finished", "wallets", len(wallets), "failed", failed)
	return results, nil
}
