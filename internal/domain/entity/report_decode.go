package entity

import (
	"errors"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// ErrMalformedReport is returned when a report body is not valid JSON.
var ErrMalformedReport = errors.New("report body is not valid JSON")

// Counters larger than this are treated as garbage rather than truncated.
const maxWireInt = 1 << 53

// UnmarshalJSON decodes a report without enforcing field types. Any valid
// JSON is accepted: a value of the wrong type decodes to its zero value,
// numeric strings are read as numbers and scalars where text is expected
// keep their literal form.
func (r *RiskReport) UnmarshalJSON(data []byte) error {
	if !json.Valid(data) {
		return ErrMalformedReport
	}
	root := json.Get(data)
	if root.ValueType() == jsoniter.NilValue {
		return nil
	}
	*r = RiskReport{
		WalletAddress:     WalletAddress(anyString(root.Get("wallet_address"))),
		RiskAnalysis:      riskAnalysisFromAny(root.Get("risk_analysis")),
		TxSummary:         txSummaryFromAny(root.Get("tx_summary")),
		TokenDistribution: tokenHoldingsFromAny(root.Get("token_distribution")),
		ActivityTimeline:  timelineFromAny(root.Get("activity_timeline")),
		WalletMetadata:    walletMetadataFromAny(root.Get("wallet_metadata")),
	}
	return nil
}

func riskAnalysisFromAny(v jsoniter.Any) RiskAnalysis {
	return RiskAnalysis{
		RiskScore:              anyInt(v.Get("risk_score")),
		RiskLevel:              anyString(v.Get("risk_level")),
		WalletAgeDays:          anyInt(v.Get("wallet_age_days")),
		TotalTransactions:      anyInt(v.Get("total_transactions")),
		TokenDiversity:         anyInt(v.Get("token_diversity")),
		SuspiciousInteractions: anyInt(v.Get("suspicious_interactions")),
		ContractApprovals:      anyInt(v.Get("contract_approvals")),
		BalanceNative:          anyFloat(v.Get("balance_eth")),
		Warnings:               anyStrings(v.Get("warnings")),
	}
}

func txSummaryFromAny(v jsoniter.Any) TxSummary {
	return TxSummary{
		FirstTransaction:  timestampFromAny(v.Get("first_transaction")),
		LastTransaction:   timestampFromAny(v.Get("last_transaction")),
		TotalVolumeNative: anyFloat(v.Get("total_volume_eth")),
		AverageTxPerDay:   anyFloat(v.Get("average_tx_per_day")),
	}
}

func tokenHoldingsFromAny(v jsoniter.Any) []TokenHolding {
	if v.ValueType() != jsoniter.ArrayValue {
		return nil
	}
	n := v.Size()
	holdings := make([]TokenHolding, 0, n)
	for i := 0; i < n; i++ {
		h := v.Get(i)
		holdings = append(holdings, TokenHolding{
			Name:       anyString(h.Get("name")),
			Symbol:     anyString(h.Get("symbol")),
			Percentage: anyFloat(h.Get("percentage")),
			ValueUSD:   anyFloat(h.Get("value_usd")),
		})
	}
	return holdings
}

func timelineFromAny(v jsoniter.Any) []TimelineEntry {
	if v.ValueType() != jsoniter.ArrayValue {
		return nil
	}
	n := v.Size()
	entries := make([]TimelineEntry, 0, n)
	for i := 0; i < n; i++ {
		e := v.Get(i)
		entries = append(entries, TimelineEntry{
			Date:         Date{timestampFromAny(e.Get("date"))},
			TxCount:      anyInt(e.Get("tx_count")),
			VolumeNative: anyFloat(e.Get("volume_eth")),
		})
	}
	return entries
}

func walletMetadataFromAny(v jsoniter.Any) WalletMetadata {
	meta := WalletMetadata{
		AnalysisTimestamp: timestampFromAny(v.Get("analysis_timestamp")),
		DataSources:       anyStrings(v.Get("data_sources")),
	}
	if scores := v.Get("component_scores"); scores.ValueType() == jsoniter.ObjectValue {
		keys := scores.Keys()
		meta.ComponentScores = make(map[string]float64, len(keys))
		for _, k := range keys {
			meta.ComponentScores[k] = anyFloat(scores.Get(k))
		}
	}
	return meta
}

func anyFloat(v jsoniter.Any) float64 {
	var f float64
	switch v.ValueType() {
	case jsoniter.NumberValue:
		f = v.ToFloat64()
	case jsoniter.StringValue:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.ToString()), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func anyInt(v jsoniter.Any) int {
	f := math.Round(anyFloat(v))
	if f > maxWireInt || f < -maxWireInt {
		return 0
	}
	return int(f)
}

func anyString(v jsoniter.Any) string {
	switch v.ValueType() {
	case jsoniter.StringValue:
		return v.ToString()
	case jsoniter.NumberValue, jsoniter.BoolValue:
		return strings.Clone(v.ToString())
	default:
		return ""
	}
}

func anyStrings(v jsoniter.Any) []string {
	if v.ValueType() != jsoniter.ArrayValue {
		return nil
	}
	n := v.Size()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, anyString(v.Get(i)))
	}
	return out
}
