// Package accounts is the HTTP client for the remote account ledger service.
package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/domain"
	"github.com/iho/gotransfers/internal/infrastructure/metrics"
)

// Wire values the ledger accepts in the typePayments field.
const (
	typeReplenishment = "REPLENISHMENT"
	typeDebiting      = "DEBITING"
)

const metricsTarget = "accounts"

// Client talks to the account ledger over HTTP. Balance mutations are
// retried on transport errors and 5xx responses with a constant delay;
// reads are not retried.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	retryDelay  time.Duration
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, maxAttempts int, retryDelay time.Duration, m *metrics.Metrics, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		metrics:     m,
		logger:      logger,
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

type accountPayload struct {
	AccountNumber string          `json:"accountNumber"`
	ClientID      string          `json:"clientId"`
	Cur           string          `json:"cur"`
	Balance       decimal.Decimal `json:"balance"`
	Main          bool            `json:"main"`
	Closed        bool            `json:"closed"`
}

type accountListPayload struct {
	AccountList []accountPayload `json:"accountList"`
}

type balancePayload struct {
	Balance decimal.Decimal `json:"balance"`
}

type updateBalancePayload struct {
	TypePayments string          `json:"typePayments"`
	Amount       decimal.Decimal `json:"amount"`
}

func (p accountPayload) toDomain() domain.AccountSnapshot {
	return domain.AccountSnapshot{
		AccountNumber: p.AccountNumber,
		ClientID:      p.ClientID,
		Currency:      p.Cur,
		Balance:       p.Balance,
		Main:          p.Main,
		Closed:        p.Closed,
	}
}

// GetAccount fetches a single account snapshot by account number.
func (c *Client) GetAccount(ctx context.Context, accountNumber string) (*domain.AccountSnapshot, error) {
	var payload accountPayload
	url := c.baseURL + "/accounts/account/" + accountNumber
	if err := c.getJSON(ctx, url, &payload, domain.ErrAccountNotFound); err != nil {
		return nil, err
	}
	snapshot := payload.toDomain()
	return &snapshot, nil
}

// GetAccountsByClient fetches every account held by a client.
func (c *Client) GetAccountsByClient(ctx context.Context, clientID string) ([]domain.AccountSnapshot, error) {
	var payload accountListPayload
	url := c.baseURL + "/accounts/" + clientID
	if err := c.getJSON(ctx, url, &payload, domain.ErrUserNotFound); err != nil {
		return nil, err
	}
	snapshots := make([]domain.AccountSnapshot, 0, len(payload.AccountList))
	for _, acc := range payload.AccountList {
		snapshots = append(snapshots, acc.toDomain())
	}
	return snapshots, nil
}

// GetBalance fetches the current balance of an account.
func (c *Client) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	var payload balancePayload
	url := c.baseURL + "/accounts/balance/" + accountNumber
	if err := c.getJSON(ctx, url, &payload, domain.ErrAccountNotFound); err != nil {
		return decimal.Zero, err
	}
	return payload.Balance, nil
}

// UpdateBalance applies a single debit or credit to an account. The PUT is
// retried up to maxAttempts times on transport errors and 5xx responses;
// 4xx responses are terminal.
func (c *Client) UpdateBalance(ctx context.Context, accountNumber string, change domain.BalanceChange) error {
	payload := updateBalancePayload{
		TypePayments: paymentType(change.Kind),
		Amount:       change.Amount,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal balance update: %w", err)
	}

	url := c.baseURL + "/accounts/balance/" + accountNumber

	attempt := 0
	operation := func() error {
		attempt++
		err := c.putOnce(ctx, url, body)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		c.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Str("account_number", accountNumber).
			Msg("balance update failed, retrying")
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.maxAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("update balance %s: %w", accountNumber, err)
	}
	return nil
}

func (c *Client) putOnce(ctx context.Context, url string, body []byte) (err error) {
	start := time.Now()
	defer func() { c.observe(start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrRemoteFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrRemoteFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return domain.ErrInsufficientFunds
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrAccountNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: ledger returned %d", domain.ErrRemoteFailure, resp.StatusCode)
	default:
		return fmt.Errorf("%w: ledger returned %d", domain.ErrRemoteFailure, resp.StatusCode)
	}
}

func (c *Client) getJSON(ctx context.Context, url string, out any, notFound error) (err error) {
	start := time.Now()
	defer func() { c.observe(start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrRemoteFailure, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrRemoteFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	case resp.StatusCode >= 300:
		return fmt.Errorf("%w: ledger returned %d", domain.ErrRemoteFailure, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %s", domain.ErrRemoteFailure, err)
	}
	return nil
}

func paymentType(kind domain.OperationKind) string {
	if kind == domain.OperationDebit {
		return typeDebiting
	}
	return typeReplenishment
}

// isRetryable reports whether a balance mutation error is worth another
// attempt. 4xx outcomes carry business meaning and must not be repeated.
func isRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, domain.ErrInsufficientFunds), errors.Is(err, domain.ErrAccountNotFound):
		return false
	}
	return true
}
