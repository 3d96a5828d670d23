package entity

// Component score factor names as transmitted in wallet_metadata.component_scores.
const (
	FactorWalletAge         = "wallet_age"
	FactorTransactionCount  = "transaction_count"
	FactorTokenDiversity    = "token_diversity"
	FactorScamInteractions  = "scam_interactions"
	FactorFlashLoanUsage    = "flash_loan_usage"
	FactorContractApprovals = "contract_approvals"
	FactorBlacklistMatch    = "blacklist_match"
)

// AllFactors lists the fixed set of component score factors.
var AllFactors = []string{
	FactorWalletAge,
	FactorTransactionCount,
	FactorTokenDiversity,
	FactorScamInteractions,
	FactorFlashLoanUsage,
	FactorContractApprovals,
	FactorBlacklistMatch,
}

// TimelineDays is the length of the activity timeline.
const TimelineDays = 30

// RiskReport is the analysis service (or demo) response. It is created once
// and never mutated afterwards.
type RiskReport struct {
	WalletAddress     WalletAddress   `json:"wallet_address"`
	RiskAnalysis      RiskAnalysis    `json:"risk_analysis"`
	TxSummary         TxSummary       `json:"tx_summary"`
	TokenDistribution []TokenHolding  `json:"token_distribution"`
	ActivityTimeline  []TimelineEntry `json:"activity_timeline"`
	WalletMetadata    WalletMetadata  `json:"wallet_metadata"`
}

// RiskAnalysis holds the headline score and counters.
type RiskAnalysis struct {
	RiskScore              int      `json:"risk_score"`
	RiskLevel              string   `json:"risk_level"`
	WalletAgeDays          int      `json:"wallet_age_days"`
	TotalTransactions      int      `json:"total_transactions"`
	TokenDiversity         int      `json:"token_diversity"`
	SuspiciousInteractions int      `json:"suspicious_interactions"`
	ContractApprovals      int      `json:"contract_approvals"`
	BalanceNative          float64  `json:"balance_eth"`
	Warnings               []string `json:"warnings"`
}

// TxSummary describes the wallet's transaction history bounds.
type TxSummary struct {
	FirstTransaction  Timestamp `json:"first_transaction"`
	LastTransaction   Timestamp `json:"last_transaction"`
	TotalVolumeNative float64   `json:"total_volume_eth"`
	AverageTxPerDay   float64   `json:"average_tx_per_day"`
}

// TokenHolding is one slice of the token distribution. Percentages are display-only.
type TokenHolding struct {
	Name       string  `json:"name"`
	Symbol     string  `json:"symbol"`
	Percentage float64 `json:"percentage"`
	ValueUSD   float64 `json:"value_usd"`
}

// TimelineEntry is the activity of a single day.
type TimelineEntry struct {
	Date         Date    `json:"date"`
	TxCount      int     `json:"tx_count"`
	VolumeNative float64 `json:"volume_eth"`
}

// WalletMetadata describes how the report was produced.
type WalletMetadata struct {
	AnalysisTimestamp Timestamp          `json:"analysis_timestamp"`
	DataSources       []string           `json:"data_sources"`
	ComponentScores   map[string]float64 `json:"component_scores"`
}

// RadarPoint is one axis of the radar chart.
type RadarPoint struct {
	Subject  string  `json:"subject"`
	Value    float64 `json:"value"`
	FullMark float64 `json:"full_mark"`
}

// TimelineSummary aggregates the activity timeline.
type TimelineSummary struct {
	Days            int     `json:"days"`
	ActiveDays      int     `json:"active_days"`
	TotalTxCount    int     `json:"total_tx_count"`
	TotalVolume     float64 `json:"total_volume_eth"`
	AverageTxPerDay float64 `json:"average_tx_per_day"`
	BusiestDay      string  `json:"busiest_day,omitempty"`
	BusiestDayTx    int     `json:"busiest_day_tx_count"`
}

// TokenSummary aggregates the token distribution.
type TokenSummary struct {
	Tokens          int     `json:"tokens"`
	TotalValueUSD   float64 `json:"total_value_usd"`
	PercentageTotal float64 `json:"percentage_total"`
	LargestSymbol   string  `json:"largest_symbol,omitempty"`
	LargestShare    float64 `json:"largest_share"`
}

// DerivedMetrics is everything the presentation layer computes from a report.
type DerivedMetrics struct {
	Classification Classification  `json:"classification"`
	Radar          []RadarPoint    `json:"radar"`
	Timeline       TimelineSummary `json:"timeline"`
	Tokens         TokenSummary    `json:"tokens"`
}
