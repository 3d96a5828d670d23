package port

import (
	"context"

	"wallet_risk_analyzer/internal/domain/entity"
)

// ReportClient obtains a risk report from the analysis service.
type ReportClient interface {
	// FetchReport submits an already validated address. Any failure is an
	// *entity.AnalysisError of kind request_failed; no partial report is returned.
	FetchReport(ctx context.Context, address entity.WalletAddress) (*entity.RiskReport, error)
}

// ReportSynthesizer produces demonstration reports without a backend.
type ReportSynthesizer interface {
	Synthesize(address entity.WalletAddress) *entity.RiskReport
}
