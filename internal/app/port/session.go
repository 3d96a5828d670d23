package port

import (
	"context"

	"wallet_risk_analyzer/internal/domain/entity"
)

// AnalysisSession sequences validation, report acquisition and metric derivation
// for one user. Every method returns the snapshot after the transition.
type AnalysisSession interface {
	Submit(ctx context.Context, input string) entity.SessionSnapshot
	SubmitDemo(input string) entity.SessionSnapshot
	Edit(input string) entity.SessionSnapshot
	Snapshot() entity.SessionSnapshot
	Close()
}
