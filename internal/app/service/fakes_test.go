package service

import (
	"context"
	"sync"
	"time"

	"wallet_risk_analyzer/internal/domain/entity"
)

var fixedNow = time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakeClient answers FetchReport through fn and records every call.
type fakeClient struct {
	mu    sync.Mutex
	calls []entity.WalletAddress
	fn    func(ctx context.Context, address entity.WalletAddress) (*entity.RiskReport, error)
}

func (f *fakeClient) FetchReport(ctx context.Context, address entity.WalletAddress) (*entity.RiskReport, error) {
	f.mu.Lock()
	f.calls = append(f.calls, address)
	f.mu.Unlock()
	return f.fn(ctx, address)
}

func (f *fakeClient) Calls() []entity.WalletAddress {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.WalletAddress(nil), f.calls...)
}

func reportFor(address entity.WalletAddress, score int) *entity.RiskReport {
	return &entity.RiskReport{
		WalletAddress: address,
		RiskAnalysis: entity.RiskAnalysis{
			RiskScore: score,
			RiskLevel: entity.RiskLevelFor(score),
		},
		TokenDistribution: []entity.TokenHolding{
			{Name: "ETH", Symbol: "ETH", Percentage: 70, ValueUSD: 700},
			{Name: "USDC", Symbol: "USDC", Percentage: 30, ValueUSD: 300},
		},
		WalletMetadata: entity.WalletMetadata{
			ComponentScores: map[string]float64{
				entity.FactorWalletAge:         0.5,
				entity.FactorTransactionCount:  0.25,
				entity.FactorTokenDiversity:    1,
				entity.FactorScamInteractions:  0,
				entity.FactorFlashLoanUsage:    0.75,
				entity.FactorContractApprovals: 0.1,
				entity.FactorBlacklistMatch:    0.3,
			},
		},
	}
}

func mustAddress(raw string) entity.WalletAddress {
	addr, err := entity.ParseWalletAddress(raw)
	if err != nil {
		panic(err)
	}
	return addr
}
