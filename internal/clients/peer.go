package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/metrics"
	"auction-services/internal/patterns"

	"github.com/go-resty/resty/v2"
)

// envelope mirrors utils.JSONResponse / utils.JSONError
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

var errServerFailure = errors.New("peer returned a server error")

// peer is one downstream service: a resty client plus its own breaker.
type peer struct {
	service string
	target  string
	timeout time.Duration
	client  *resty.Client
	breaker *patterns.CircuitBreakerWrapper
}

func newPeer(service, target, baseURL string, timeout time.Duration) *peer {
	if timeout <= 0 {
		timeout = patterns.DefaultTimeout
	}
	return &peer{
		service: service,
		target:  target,
		timeout: timeout,
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("Content-Type", "application/json"),
		breaker: patterns.NewCircuitBreaker(target, service),
	}
}

// call performs method path with body and decodes the envelope data into out.
// Transport failures, 5xx responses and an open breaker return ErrDownstreamUnavailable.
// 4xx responses are rejections and do not count against the breaker.
func (p *peer) call(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := patterns.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.breaker.Execute(func() (any, error) {
		req := p.client.R().SetContext(ctx)
		if body != nil {
			req.SetBody(body)
		}
		resp, httpErr := req.Execute(method, path)
		if httpErr != nil {
			return nil, fmt.Errorf("HTTP error: %w", httpErr)
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status %d: %s", errServerFailure, resp.StatusCode(), resp.String())
		}
		return resp, nil
	})
	if err != nil {
		metrics.DownstreamCalls.WithLabelValues(p.service, p.target, metrics.OutcomeUnavailable).Inc()
		return fmt.Errorf("%s %s %s: %v: %w", p.target, method, path, patterns.FormatError(p.target, err), auctionerrors.ErrDownstreamUnavailable)
	}

	resp := res.(*resty.Response)
	var env envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)

	if resp.IsError() {
		metrics.DownstreamCalls.WithLabelValues(p.service, p.target, metrics.OutcomeRejected).Inc()
		return rejection(p.target, resp.StatusCode(), env, decodeErr)
	}

	metrics.DownstreamCalls.WithLabelValues(p.service, p.target, metrics.OutcomeSuccess).Inc()
	if decodeErr != nil {
		return fmt.Errorf("%s %s %s: malformed response: %v: %w", p.target, method, path, decodeErr, auctionerrors.ErrDownstreamUnavailable)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s %s: decode data: %v: %w", p.target, method, path, err, auctionerrors.ErrDownstreamUnavailable)
	}
	return nil
}

// rejection rebuilds the peer's error kind from the envelope code, falling back to the status.
func rejection(target string, status int, env envelope, decodeErr error) error {
	var kind error
	if decodeErr == nil {
		kind = auctionerrors.FromCode(env.Code)
	}
	if kind == nil {
		switch status {
		case http.StatusNotFound:
			kind = auctionerrors.ErrNotFound
		case http.StatusConflict:
			kind = auctionerrors.ErrStalePrice
		default:
			kind = auctionerrors.ErrValidation
		}
	}

	detail := env.Error
	if detail == "" {
		detail = env.Message
	}
	if detail == "" {
		detail = http.StatusText(status)
	}
	return fmt.Errorf("%s rejected request (%d): %s: %w", target, status, detail, kind)
}
