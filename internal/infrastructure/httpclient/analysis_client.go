package httpclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wallet_risk_analyzer/internal/app/port"
	"wallet_risk_analyzer/internal/domain/entity"
	"wallet_risk_analyzer/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	analyzePath = "/analyze"

	// Bounds a request whose context carries no deadline.
	defaultIOTimeout = 60 * time.Second
)

type analyzeRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// ClientOption configures an analysis client.
type ClientOption func(*analysisClient)

// WithHTTPClient replaces the underlying fasthttp client.
func WithHTTPClient(client *fasthttp.Client) ClientOption {
	return func(c *analysisClient) {
		c.client = client
	}
}

// WithRateLimit throttles outbound requests. A non-positive rps disables it.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *analysisClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// analysisClient implements port.ReportClient against the remote analysis service.
type analysisClient struct {
	client  *fasthttp.Client
	baseURL string
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewAnalysisClient creates a client for the analysis service at baseURL.
// An empty baseURL is accepted; every request then fails with
// entity.ErrEndpointNotConfigured.
func NewAnalysisClient(baseURL string, logger *zap.Logger, opts ...ClientOption) port.ReportClient {
	c := &analysisClient{
		client: &fasthttp.Client{
			ReadTimeout:  defaultIOTimeout,
			WriteTimeout: defaultIOTimeout,
		},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		logger:  logger.Named("AnalysisClient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fetchResult struct {
	status int
	body   []byte
	err    error
}

// FetchReport implements port.ReportClient. The request is bounded by ctx and,
// without a deadline, by the client's I/O timeouts.
func (c *analysisClient) FetchReport(ctx context.Context, address entity.WalletAddress) (*entity.RiskReport, error) {
	report, err := c.fetch(ctx, address)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailed
	}
	metrics.AnalysisRequests.WithLabelValues(outcome).Inc()
	return report, err
}

func (c *analysisClient) fetch(ctx context.Context, address entity.WalletAddress) (*entity.RiskReport, error) {
	if c.baseURL == "" {
		c.logger.Error("Analysis endpoint is not configured")
		return nil, entity.NewRequestFailedError(address, entity.ErrEndpointNotConfigured)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, entity.NewRequestFailedError(address, fmt.Errorf("rate limiter: %w", err))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, entity.NewRequestFailedError(address, err)
	}

	payload, err := json.Marshal(analyzeRequest{WalletAddress: address.String()})
	if err != nil {
		return nil, entity.NewRequestFailedError(address, fmt.Errorf("failed to encode request: %w", err))
	}

	requestURL := c.baseURL + analyzePath
	c.logger.Debug("Requesting wallet analysis", zap.String("url", requestURL), zap.Stringer("address", address))

	start := time.Now()
	done := make(chan fetchResult, 1)
	go func() {
		done <- c.do(ctx, requestURL, payload)
	}()

	var res fetchResult
	select {
	case <-ctx.Done():
		metrics.AnalysisRequestDuration.Observe(time.Since(start).Seconds())
		c.logger.Debug("Analysis request abandoned", zap.Stringer("address", address), zap.Error(ctx.Err()))
		return nil, entity.NewRequestFailedError(address, ctx.Err())
	case res = <-done:
	}
	metrics.AnalysisRequestDuration.Observe(time.Since(start).Seconds())

	if res.err != nil {
		c.logger.Error("Failed to execute request to analysis service", zap.String("url", requestURL), zap.Error(res.err))
		return nil, entity.NewRequestFailedError(address, fmt.Errorf("failed to execute request to %s: %w", requestURL, res.err))
	}

	if res.status < 200 || res.status > 299 {
		c.logger.Error("Analysis service request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", res.status),
			zap.ByteString("responseBody", res.body),
		)
		return nil, entity.NewRequestFailedError(address, fmt.Errorf("analysis service returned status %d", res.status))
	}

	// Only unparseable JSON fails here; mistyped fields decode to zero values.
	var report *entity.RiskReport
	if err := json.Unmarshal(res.body, &report); err != nil {
		c.logger.Error("Failed to unmarshal analysis response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", res.body),
			zap.Error(err),
		)
		return nil, entity.NewRequestFailedError(address, fmt.Errorf("failed to unmarshal analysis response: %w", err))
	}
	if report == nil {
		return nil, entity.NewRequestFailedError(address, errors.New("analysis service returned an empty report"))
	}

	c.logger.Debug("Received wallet analysis",
		zap.Stringer("address", address),
		zap.Int("riskScore", report.RiskAnalysis.RiskScore))
	return report, nil
}

// do runs one request on its own pooled request/response pair and copies the
// body out before releasing them.
func (c *analysisClient) do(ctx context.Context, requestURL string, payload []byte) fetchResult {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		return fetchResult{err: err}
	}
	return fetchResult{
		status: resp.StatusCode(),
		body:   append([]byte(nil), resp.Body()...),
	}
}
