// Package users is the HTTP client for the remote identity service.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/iho/gotransfers/internal/domain"
	"github.com/iho/gotransfers/internal/infrastructure/metrics"
)

const metricsTarget = "users"

// Client talks to the identity service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
	}
}

func (c *Client) observe(start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.GatewayRequests.WithLabelValues(metricsTarget, outcome).Inc()
	c.metrics.GatewayDuration.WithLabelValues(metricsTarget).Observe(time.Since(start).Seconds())
}

type userPayload struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
	Active      bool   `json:"active"`
	Deleted     bool   `json:"deleted"`
}

func (p userPayload) toDomain() *domain.User {
	return &domain.User{
		ID:          p.ID,
		PhoneNumber: p.PhoneNumber,
		Active:      p.Active,
		Deleted:     p.Deleted,
	}
}

// GetUserByID fetches a user record by client id.
func (c *Client) GetUserByID(ctx context.Context, clientID string) (*domain.User, error) {
	return c.get(ctx, c.baseURL+"/users/"+clientID)
}

// GetUserByPhone fetches a user record by phone number.
func (c *Client) GetUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	return c.get(ctx, c.baseURL+"/users/phone/"+phoneNumber)
}

func (c *Client) get(ctx context.Context, url string) (user *domain.User, err error) {
	start := time.Now()
	defer func() { c.observe(start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRemoteFailure, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRemoteFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrUserNotFound
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: identity service returned %d", domain.ErrRemoteFailure, resp.StatusCode)
	}

	var payload userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %s", domain.ErrRemoteFailure, err)
	}
	return payload.toDomain(), nil
}
