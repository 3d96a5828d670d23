package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"wallet_risk_analyzer/internal/app/port"
	"wallet_risk_analyzer/internal/domain/entity"
	"wallet_risk_analyzer/internal/pkg/metrics"
)

const (
	sourceLive = "live"
	sourceDemo = "demo"
)

// TransitionObserver is notified of every state change while the session lock
// is held; it must not call back into the session.
type TransitionObserver func(from, to entity.SessionState)

// SessionOption configures an analysis session.
type SessionOption func(*analysisSession)

// WithRequestTimeout bounds each live analysis request. Zero means unbounded.
func WithRequestTimeout(d time.Duration) SessionOption {
	return func(s *analysisSession) {
		s.requestTimeout = d
	}
}

// WithTransitionObserver registers fn for state changes.
func WithTransitionObserver(fn TransitionObserver) SessionOption {
	return func(s *analysisSession) {
		s.observer = fn
	}
}

// analysisSession implements port.AnalysisSession. At most one request is
// current; each submit bumps the generation and cancels the previous request,
// and results carrying an older generation are dropped.
type analysisSession struct {
	client         port.ReportClient
	synthesizer    port.ReportSynthesizer
	logger         port.Logger
	requestTimeout time.Duration
	observer       TransitionObserver

	mu         sync.Mutex
	snap       entity.SessionSnapshot
	generation uint64
	cancel     context.CancelFunc
}

// NewAnalysisSession creates a session in the idle state.
func NewAnalysisSession(
	client port.ReportClient,
	synthesizer port.ReportSynthesizer,
	logger port.Logger,
	opts ...SessionOption,
) port.AnalysisSession {
	s := &analysisSession{
		client:      client,
		synthesizer: synthesizer,
		logger:      logger,
		snap:        entity.SessionSnapshot{State: entity.StateIdle},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates input and, when valid, fetches a live report.
func (s *analysisSession) Submit(ctx context.Context, input string) entity.SessionSnapshot {
	s.mu.Lock()
	gen := s.supersedeLocked()
	s.snap = entity.SessionSnapshot{State: s.snap.State, Input: input, Address: input, Generation: gen}
	s.transitionLocked(entity.StateValidating)

	address, err := entity.ParseWalletAddress(input)
	if err != nil {
		s.snap.Error = entity.MessageInvalidAddress
		s.transitionLocked(entity.StateInputError)
		snap := s.snap
		s.mu.Unlock()
		s.logger.Debug("Rejected wallet address", "input", input)
		return snap
	}

	s.snap.Checksum = address.Checksum()
	reqCtx, cancel := s.requestContext(ctx)
	s.cancel = cancel
	s.transitionLocked(entity.StateLoading)
	s.mu.Unlock()

	s.logger.Debug("Requesting wallet analysis", "address", address, "generation", gen)
	report, err := s.client.FetchReport(reqCtx, address)
	if err == nil && report == nil {
		err = entity.NewRequestFailedError(address, errors.New("empty report"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cancel()

	if gen != s.generation {
		metrics.StaleResults.Inc()
		s.logger.Debug("Discarding superseded analysis result",
			"address", address, "generation", gen, "current_generation", s.generation,
			"error", entity.NewStaleResponseError(address))
		return s.snap
	}
	s.cancel = nil

	if err != nil {
		s.logger.Warn("Wallet analysis failed", "address", address, "error", err)
		s.snap.Error = entity.MessageRequestFailed
		s.transitionLocked(entity.StateRequestError)
		return s.snap
	}

	s.readyLocked(report, sourceLive)
	return s.snap
}

// SubmitDemo shows a synthesized report without contacting the analysis
// service. Invalid input is replaced by entity.DemoAddress.
func (s *analysisSession) SubmitDemo(input string) entity.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.supersedeLocked()
	raw := input
	if !entity.IsValidAddress(raw) {
		raw = entity.DemoAddress
	}
	address, _ := entity.ParseWalletAddress(raw)

	s.snap = entity.SessionSnapshot{
		State:      s.snap.State,
		Input:      raw,
		Address:    raw,
		Checksum:   address.Checksum(),
		Demo:       true,
		Generation: gen,
	}
	s.readyLocked(s.synthesizer.Synthesize(address), sourceDemo)
	return s.snap
}

// Edit records a change of the address input. An input error is cleared;
// the submitted address and anything derived from it are kept.
func (s *analysisSession) Edit(input string) entity.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Input = input
	if s.snap.State == entity.StateInputError {
		s.snap.Error = ""
		s.transitionLocked(entity.StateIdle)
	}
	return s.snap
}

// Snapshot returns a copy of the current state.
func (s *analysisSession) Snapshot() entity.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Close cancels the in-flight request; its result will be discarded.
func (s *analysisSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
}

func (s *analysisSession) supersedeLocked() uint64 {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	return s.generation
}

func (s *analysisSession) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.requestTimeout > 0 {
		return context.WithTimeout(ctx, s.requestTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *analysisSession) readyLocked(report *entity.RiskReport, source string) {
	derived := BuildDerivedMetrics(report)
	s.snap.Report = report
	s.snap.Metrics = derived
	s.snap.Error = ""
	s.transitionLocked(entity.StateReady)

	metrics.RiskBands.WithLabelValues(string(derived.Classification.Band), source).Inc()
	s.logger.Info("Wallet analysis ready",
		"address", report.WalletAddress,
		"risk_score", report.RiskAnalysis.RiskScore,
		"band", derived.Classification.Band,
		"source", source)
}

func (s *analysisSession) transitionLocked(to entity.SessionState) {
	from := s.snap.State
	s.snap.State = to
	metrics.SessionTransitions.WithLabelValues(string(from), string(to)).Inc()
	if s.observer != nil {
		s.observer(from, to)
	}
}
