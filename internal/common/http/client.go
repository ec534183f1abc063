// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "loanos-client/internal/common/errors"
	"loanos-client/internal/common/logger"
	"loanos-client/internal/common/metrics"
	"loanos-client/internal/common/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	HeaderRequestID = "X-Request-ID"

	maxBodyBytes = 4 << 20
)

// TokenSource supplies the bearer token for authenticated requests.
type TokenSource interface {
	Token() (string, bool)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	obs        *observability.Observability
	logger     logger.Logger
}

type Option func(*Client)

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithObservability(obs *observability.Observability) Option {
	return func(c *Client) { c.obs = obs }
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.logger = log }
}

// WithHTTPClient replaces the underlying client. Its Timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		obs:     observability.Noop(),
		logger:  logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Request is one call against the loan service.
type Request struct {
	// Endpoint labels metrics and spans.
	Endpoint string
	Method   string
	Path     string
	Query    url.Values
	// Body is encoded as JSON when non-nil.
	Body interface{}
	Auth bool
}

type Response struct {
	Status    int
	Body      []byte
	RequestID string
}

// Send performs req. Transport failures become NETWORK_ERROR and non-2xx
// responses become REQUEST_FAILED carrying the server's detail message.
// Nothing is retried.
func (c *Client) Send(ctx context.Context, req Request) (resp *Response, err error) {
	requestID := uuid.NewString()

	ctx, span := c.obs.StartSpan(ctx, req.Method+" "+req.Endpoint,
		attribute.String("http.method", req.Method),
		attribute.String("http.route", req.Path),
		attribute.String("loanos.request_id", requestID),
	)
	defer func() { observability.EndSpan(span, err) }()

	httpReq, err := c.newRequest(ctx, req, requestID)
	if err != nil {
		return nil, err
	}

	gauge := metrics.APIRequestsInFlight.WithLabelValues(req.Endpoint)
	gauge.Inc()
	defer gauge.Dec()

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	metrics.APIRequestDuration.WithLabelValues(req.Endpoint, req.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(req.Endpoint, req.Method, "error").Inc()
		c.logger.Warn("request failed", map[string]interface{}{
			"endpoint":  req.Endpoint,
			"requestId": requestID,
			"error":     err.Error(),
		})
		return nil, apperrors.NewNetworkError(req.Path, err)
	}
	defer httpResp.Body.Close()

	status := strconv.Itoa(httpResp.StatusCode)
	metrics.APIRequestsTotal.WithLabelValues(req.Endpoint, req.Method, status).Inc()
	span.SetAttributes(attribute.Int("http.status_code", httpResp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.NewNetworkError(req.Path, err)
	}

	c.logger.Debug("request completed", map[string]interface{}{
		"endpoint":  req.Endpoint,
		"status":    httpResp.StatusCode,
		"requestId": requestID,
		"duration":  time.Since(start).String(),
	})

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, apperrors.NewRequestFailedError(&apperrors.RequestError{
			Method: req.Method,
			Path:   req.Path,
			Status: httpResp.StatusCode,
			Detail: ExtractDetail(body),
		})
	}

	return &Response{Status: httpResp.StatusCode, Body: body, RequestID: requestID}, nil
}

func (c *Client) newRequest(ctx context.Context, req Request, requestID string) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("cannot encode request body: %v", err))
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, apperrors.NewNetworkError(req.Path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderRequestID, requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Auth && c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return httpReq, nil
}

// ExtractDetail returns the "detail" member of an error body when it is a
// string. Validation errors that carry a structured detail yield "".
func ExtractDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}
