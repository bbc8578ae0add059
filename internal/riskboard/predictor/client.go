// Package predictor is the HTTP adapter for the external scoring service.
package predictor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/autopeer-io/riskboard/internal/riskboard/core"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorBody caps how much of a failed response is kept in a StatusError.
const maxErrorBody = 512

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client talks to the scoring service. It sends no authentication and
// applies no retry.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ core.Predictor = (*Client)(nil)

// NewClient returns a client for the service at baseURL. A zero timeout
// means requests are only bounded by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP returns a client that sends requests through hc.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  hc,
	}
}

// ListModels fetches GET /models.
func (c *Client) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	var models []model.ModelInfo
	if err := c.get(ctx, "/models", "", &models); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return models, nil
}

// ListVehicles fetches GET /vehicles?model_name=<name>&limit=<limit>.
func (c *Client) ListVehicles(ctx context.Context, modelName string, limit int) ([]model.VehicleSummary, error) {
	query := "model_name=" + escape(modelName) + "&limit=" + strconv.Itoa(limit)

	var vehicles []model.VehicleSummary
	if err := c.get(ctx, "/vehicles", query, &vehicles); err != nil {
		return nil, fmt.Errorf("list vehicles for model %q: %w", modelName, err)
	}
	return vehicles, nil
}

// GetVehicleDetail fetches GET /vehicles/{id}?model_name=<name>.
func (c *Client) GetVehicleDetail(ctx context.Context, id int64, modelName string) (*model.VehicleDetail, error) {
	query := "model_name=" + escape(modelName)
	path := "/vehicles/" + url.PathEscape(strconv.FormatInt(id, 10))

	var detail model.VehicleDetail
	if err := c.get(ctx, path, query, &detail); err != nil {
		return nil, fmt.Errorf("get vehicle %d for model %q: %w", id, modelName, err)
	}
	return &detail, nil
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) error {
	var body map[string]any
	if err := c.get(ctx, "/health", "", &body); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	return nil
}

// escape percent-encodes a query value the way browsers encode URI
// components, with spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (c *Client) get(ctx context.Context, path, rawQuery string, out any) error {
	target := c.baseURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: http.MethodGet,
			URL:    target,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
