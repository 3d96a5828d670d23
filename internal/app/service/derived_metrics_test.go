package service

import (
	"math/rand/v2"
	"testing"

	"wallet_risk_analyzer/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRadarSeries_OrderAndValues(t *testing.T) {
	report := reportFor(mustAddress(entity.DemoAddress), 50)

	points := BuildRadarSeries(report)
	require.Len(t, points, 6)

	want := []entity.RadarPoint{
		{Subject: "Wallet Age", Value: 50, FullMark: 100},
		{Subject: "Tx Count", Value: 25, FullMark: 100},
		{Subject: "Token Diversity", Value: 100, FullMark: 100},
		{Subject: "Scam Free", Value: 0, FullMark: 100},
		{Subject: "Flash Loans", Value: 75, FullMark: 100},
		{Subject: "Approvals", Value: 10, FullMark: 100},
	}
	for i, w := range want {
		assert.Equal(t, w.Subject, points[i].Subject)
		assert.InDelta(t, w.Value, points[i].Value, 1e-9, w.Subject)
		assert.Equal(t, w.FullMark, points[i].FullMark)
	}

	for _, p := range points {
		assert.NotEqual(t, "Blacklist", p.Subject)
	}
}

func TestBuildRadarSeries_NilReport(t *testing.T) {
	points := BuildRadarSeries(nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
	assert.Nil(t, BuildDerivedMetrics(nil))
}

func TestBuildRadarSeries_ValuesWithinFullMark(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		scores := make(map[string]float64, len(entity.AllFactors))
		for _, f := range entity.AllFactors {
			scores[f] = rng.Float64()
		}
		report := &entity.RiskReport{WalletMetadata: entity.WalletMetadata{ComponentScores: scores}}

		points := BuildRadarSeries(report)
		require.Len(t, points, 6)
		for _, p := range points {
			assert.GreaterOrEqual(t, p.Value, 0.0)
			assert.LessOrEqual(t, p.Value, 100.0)
		}
	}
}

func TestSummarizeTimeline(t *testing.T) {
	timeline := []entity.TimelineEntry{
		{Date: entity.NewDate(fixedNow.AddDate(0, 0, -2)), TxCount: 0, VolumeNative: 0},
		{Date: entity.NewDate(fixedNow.AddDate(0, 0, -1)), TxCount: 4, VolumeNative: 1.25},
		{Date: entity.NewDate(fixedNow), TxCount: 4, VolumeNative: 2.5},
	}

	got := SummarizeTimeline(timeline)
	assert.Equal(t, 3, got.Days)
	assert.Equal(t, 2, got.ActiveDays)
	assert.Equal(t, 8, got.TotalTxCount)
	assert.InDelta(t, 3.75, got.TotalVolume, 1e-9)
	assert.InDelta(t, 2.67, got.AverageTxPerDay, 1e-9)
	assert.Equal(t, "2026-10-15", got.BusiestDay, "ties keep the earliest day")
	assert.Equal(t, 4, got.BusiestDayTx)

	empty := SummarizeTimeline(nil)
	assert.Zero(t, empty.Days)
	assert.Zero(t, empty.AverageTxPerDay)
	assert.Empty(t, empty.BusiestDay)
}

func TestSummarizeTokens(t *testing.T) {
	got := SummarizeTokens(demoTokenDistribution)
	assert.Equal(t, 4, got.Tokens)
	assert.InDelta(t, 20000.0, got.TotalValueUSD, 1e-9)
	assert.InDelta(t, 100.0, got.PercentageTotal, 1e-9)
	assert.Equal(t, "ETH", got.LargestSymbol)
	assert.InDelta(t, 40.0, got.LargestShare, 1e-9)
}

func TestBuildDerivedMetrics_Classification(t *testing.T) {
	metrics := BuildDerivedMetrics(reportFor(mustAddress(entity.DemoAddress), 61))
	require.NotNil(t, metrics)
	assert.Equal(t, entity.BandMedium, metrics.Classification.Band)
	assert.Len(t, metrics.Radar, 6)
	assert.Equal(t, "ETH", metrics.Tokens.LargestSymbol)
}
