package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/vacstats/internal/client/models"
	"github.com/dmitrijs2005/vacstats/internal/client/session"
	"github.com/dmitrijs2005/vacstats/internal/logging"
)

const maxResponseBody = 1 << 20 // 1 MiB, stats payloads are tiny

var _ Client = (*RESTClient)(nil)

// RESTClient implements Client over plain HTTP/JSON.
type RESTClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	reqInterceptors  []RequestInterceptor
	respInterceptors []ResponseInterceptor

	mu             sync.RWMutex
	onUnauthorized func()
}

// NewRESTClient builds a client with the standard pipeline: request id,
// bearer token from the session store, debug tracing, and error
// normalization.
func NewRESTClient(baseURL string, timeout time.Duration, store session.Store, log logging.Logger) *RESTClient {
	c := &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
	c.reqInterceptors = []RequestInterceptor{
		RequestID(),
		BearerToken(store, log),
		TraceRequest(log),
	}
	c.respInterceptors = []ResponseInterceptor{
		Normalize(),
		TraceResponse(log),
	}
	return c
}

// SetUnauthorizedHook registers the callback fired whenever any call comes
// back 401. The session manager registers itself here so the transport
// layer stays out of navigation policy.
func (c *RESTClient) SetUnauthorizedHook(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *RESTClient) fireUnauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// do runs one call through the full pipeline and decodes the JSON response
// into out when out is non-nil.
func (c *RESTClient) do(ctx context.Context, method, path string, payload any, out any) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	for _, ri := range c.reqInterceptors {
		ri(req)
	}

	resp, doErr := c.http.Do(req)

	var body []byte
	if resp != nil {
		body, _ = io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		resp.Body.Close()
	}

	callErr := doErr
	for _, ri := range c.respInterceptors {
		callErr = ri(req, resp, body, callErr)
	}

	if KindOf(callErr) == KindUnauthorized {
		c.fireUnauthorized()
	}
	if callErr != nil {
		return callErr
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *RESTClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

type healthResponse struct {
	Status string `json:"status"`
}

func (c *RESTClient) Health(ctx context.Context) error {
	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "healthy" {
		return ErrUnavailable
	}
	return nil
}

func (c *RESTClient) SummaryStats(ctx context.Context) (*models.SummaryStats, error) {
	var resp models.SummaryStats
	if err := c.do(ctx, http.MethodGet, "/stats/summary", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) VacationStats(ctx context.Context) (*models.VacationStats, error) {
	var resp models.VacationStats
	if err := c.do(ctx, http.MethodGet, "/stats/vacations", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) TotalUsers(ctx context.Context) (int, error) {
	var resp models.TotalUsers
	if err := c.do(ctx, http.MethodGet, "/users/total", nil, &resp); err != nil {
		return 0, err
	}
	return resp.TotalUsers, nil
}

func (c *RESTClient) TotalLikes(ctx context.Context) (int, error) {
	var resp models.TotalLikes
	if err := c.do(ctx, http.MethodGet, "/likes/total", nil, &resp); err != nil {
		return 0, err
	}
	return resp.TotalLikes, nil
}

func (c *RESTClient) LikesDistribution(ctx context.Context) ([]models.DestinationLikes, error) {
	var resp []models.DestinationLikes
	if err := c.do(ctx, http.MethodGet, "/likes/distribution", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
