package service

import (
	"math/rand/v2"
	"sync"
	"time"

	"wallet_risk_analyzer/internal/app/port"
	"wallet_risk_analyzer/internal/domain/entity"
)

// Canned warnings; a synthesized report carries a prefix of this list.
var demoWarnings = []string{"Low transaction activity", "New wallet warning"}

var demoDataSources = []string{"Etherscan", "Alchemy", "CryptoScamDB"}

// Fixed so the radar chart keeps a recognizable shape.
var demoComponentScores = map[string]float64{
	entity.FactorWalletAge:         0.8,
	entity.FactorTransactionCount:  0.7,
	entity.FactorTokenDiversity:    0.9,
	entity.FactorScamInteractions:  1.0,
	entity.FactorFlashLoanUsage:    1.0,
	entity.FactorContractApprovals: 0.6,
	entity.FactorBlacklistMatch:    1.0,
}

var demoTokenDistribution = []entity.TokenHolding{
	{Name: "ETH", Symbol: "ETH", Percentage: 40, ValueUSD: 8000},
	{Name: "USDC", Symbol: "USDC", Percentage: 30, ValueUSD: 6000},
	{Name: "USDT", Symbol: "USDT", Percentage: 20, ValueUSD: 4000},
	{Name: "WBTC", Symbol: "WBTC", Percentage: 10, ValueUSD: 2000},
}

// MockReportSynthesizer produces structurally complete demo reports with
// random field values. It is not a model of real risk.
type MockReportSynthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewMockReportSynthesizer creates a synthesizer drawing from src. A nil src
// seeds from the clock, a nil now uses time.Now.
func NewMockReportSynthesizer(src rand.Source, now func() time.Time) port.ReportSynthesizer {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1|1)
	}
	if now == nil {
		now = time.Now
	}
	return &MockReportSynthesizer{rng: rand.New(src), now: now}
}

// NewSeededSynthesizer returns a reproducible synthesizer; seed 0 falls back to the clock.
func NewSeededSynthesizer(seed uint64, now func() time.Time) port.ReportSynthesizer {
	if seed == 0 {
		return NewMockReportSynthesizer(nil, now)
	}
	return NewMockReportSynthesizer(rand.NewPCG(seed, seed), now)
}

// Synthesize implements port.ReportSynthesizer. It never fails.
func (s *MockReportSynthesizer) Synthesize(address entity.WalletAddress) *entity.RiskReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()

	score := s.rng.IntN(entity.MaxRiskScore + 1)
	ageDays := s.rng.IntN(1000) + 1
	analysis := entity.RiskAnalysis{
		RiskScore:              score,
		RiskLevel:              entity.RiskLevelFor(score),
		WalletAgeDays:          ageDays,
		TotalTransactions:      s.rng.IntN(5000) + 10,
		TokenDiversity:         s.rng.IntN(20) + 1,
		SuspiciousInteractions: s.rng.IntN(3),
		ContractApprovals:      s.rng.IntN(5),
		BalanceNative:          roundTo(s.rng.Float64()*100, 4),
		Warnings:               append([]string{}, demoWarnings[:s.rng.IntN(len(demoWarnings)+1)]...),
	}

	first := now.Add(-time.Duration(ageDays) * 24 * time.Hour)
	sinceFirst := now.Sub(first)
	last := first.Add(time.Duration(s.rng.Int64N(int64(sinceFirst) + 1)))
	summary := entity.TxSummary{
		FirstTransaction:  entity.NewTimestamp(first),
		LastTransaction:   entity.NewTimestamp(last),
		TotalVolumeNative: roundTo(s.rng.Float64()*1000, 3),
		AverageTxPerDay:   roundTo(s.rng.Float64()*10, 2),
	}

	today := entity.NewDate(now).Day()
	timeline := make([]entity.TimelineEntry, entity.TimelineDays)
	for i := range timeline {
		day := today.AddDate(0, 0, i-(entity.TimelineDays-1))
		timeline[i] = entity.TimelineEntry{
			Date:         entity.NewDate(day),
			TxCount:      s.rng.IntN(10),
			VolumeNative: roundTo(s.rng.Float64()*50, 3),
		}
	}

	scores := make(map[string]float64, len(demoComponentScores))
	for k, v := range demoComponentScores {
		scores[k] = v
	}

	return &entity.RiskReport{
		WalletAddress:     address,
		RiskAnalysis:      analysis,
		TxSummary:         summary,
		TokenDistribution: append([]entity.TokenHolding(nil), demoTokenDistribution...),
		ActivityTimeline:  timeline,
		WalletMetadata: entity.WalletMetadata{
			AnalysisTimestamp: entity.NewTimestamp(now),
			DataSources:       append([]string(nil), demoDataSources...),
			ComponentScores:   scores,
		},
	}
}
