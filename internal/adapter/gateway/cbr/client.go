// Package cbr fetches daily exchange rates from a central-bank style XML
// feed. Each rate is quoted against the reference currency and looked up by
// ISO numeric code.
package cbr

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/domain"
	"github.com/iho/gotransfers/internal/infrastructure/metrics"
)

const metricsTarget = "rates"

// Client implements usecase.RateSource against the XML feed.
type Client struct {
	feedURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewClient(feedURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		feedURL:    feedURL,
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

type valCurs struct {
	XMLName xml.Name `xml:"ValCurs"`
	Valutes []valute `xml:"Valute"`
}

type valute struct {
	NumCode string `xml:"NumCode"`
	Value   string `xml:"Value"`
}

// Rate returns the current rate of the given currency against the reference
// currency. An unknown code maps to ErrRateUnavailable.
func (c *Client) Rate(ctx context.Context, currencyCode string) (rate decimal.Decimal, err error) {
	start := time.Now()
	defer func() { c.observe(start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: rate feed returned %d", domain.ErrRateUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, err)
	}

	return parseRate(body, currencyCode)
}

// parseRate finds the Valute entry with a matching NumCode. The feed writes
// decimal values with a comma separator and declares a legacy charset, so
// the decoder reads the bytes as-is instead of rejecting the declaration.
func parseRate(feed []byte, currencyCode string) (decimal.Decimal, error) {
	dec := xml.NewDecoder(bytes.NewReader(feed))
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var doc valCurs
	if err := dec.Decode(&doc); err != nil {
		return decimal.Zero, fmt.Errorf("%w: parse feed: %s", domain.ErrRateUnavailable, err)
	}

	for _, v := range doc.Valutes {
		if v.NumCode != currencyCode {
			continue
		}
		rate, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v.Value), ",", "."))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: bad rate value %q", domain.ErrRateUnavailable, v.Value)
		}
		return rate, nil
	}

	return decimal.Zero, fmt.Errorf("%w: currency %s not in feed", domain.ErrRateUnavailable, currencyCode)
}
