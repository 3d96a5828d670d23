package service

import (
	"math"

	"wallet_risk_analyzer/internal/domain/entity"
)

const radarFullMark = 100

type radarAxis struct {
	subject string
	factor  string
}

// Display order of the radar chart. blacklist_match is not shown.
var radarAxes = []radarAxis{
	{"Wallet Age", entity.FactorWalletAge},
	{"Tx Count", entity.FactorTransactionCount},
	{"Token Diversity", entity.FactorTokenDiversity},
	{"Scam Free", entity.FactorScamInteractions},
	{"Flash Loans", entity.FactorFlashLoanUsage},
	{"Approvals", entity.FactorContractApprovals},
}

// BuildRadarSeries converts component scores into the six radar axes.
// A nil report yields an empty series.
func BuildRadarSeries(report *entity.RiskReport) []entity.RadarPoint {
	if report == nil {
		return []entity.RadarPoint{}
	}
	scores := report.WalletMetadata.ComponentScores
	points := make([]entity.RadarPoint, 0, len(radarAxes))
	for _, axis := range radarAxes {
		points = append(points, entity.RadarPoint{
			Subject:  axis.subject,
			Value:    scores[axis.factor] * radarFullMark,
			FullMark: radarFullMark,
		})
	}
	return points
}

// SummarizeTimeline aggregates the activity timeline. The busiest day is the
// earliest day with the highest transaction count.
func SummarizeTimeline(timeline []entity.TimelineEntry) entity.TimelineSummary {
	summary := entity.TimelineSummary{Days: len(timeline)}
	for _, day := range timeline {
		summary.TotalTxCount += day.TxCount
		summary.TotalVolume += day.VolumeNative
		if day.TxCount > 0 {
			summary.ActiveDays++
		}
		if day.TxCount > summary.BusiestDayTx {
			summary.BusiestDayTx = day.TxCount
			summary.BusiestDay = day.Date.Raw
		}
	}
	summary.TotalVolume = roundTo(summary.TotalVolume, 3)
	if summary.Days > 0 {
		summary.AverageTxPerDay = roundTo(float64(summary.TotalTxCount)/float64(summary.Days), 2)
	}
	return summary
}

// SummarizeTokens aggregates the token distribution.
func SummarizeTokens(holdings []entity.TokenHolding) entity.TokenSummary {
	summary := entity.TokenSummary{Tokens: len(holdings)}
	for _, h := range holdings {
		summary.TotalValueUSD += h.ValueUSD
		summary.PercentageTotal += h.Percentage
		if summary.LargestSymbol == "" || h.Percentage > summary.LargestShare {
			summary.LargestSymbol = h.Symbol
			summary.LargestShare = h.Percentage
		}
	}
	summary.TotalValueUSD = roundTo(summary.TotalValueUSD, 2)
	summary.PercentageTotal = roundTo(summary.PercentageTotal, 2)
	return summary
}

// BuildDerivedMetrics computes every presentation metric for a report.
func BuildDerivedMetrics(report *entity.RiskReport) *entity.DerivedMetrics {
	if report == nil {
		return nil
	}
	return &entity.DerivedMetrics{
		Classification: entity.Classify(report.RiskAnalysis.RiskScore),
		Radar:          BuildRadarSeries(report),
		Timeline:       SummarizeTimeline(report.ActivityTimeline),
		Tokens:         SummarizeTokens(report.TokenDistribution),
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
