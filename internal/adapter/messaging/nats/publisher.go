// Package nats delivers transfer events to the history consumer over a NATS
// subject.
package nats

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/iho/gotransfers/internal/domain"
)

// Publisher wraps a NATS connection for event publication. Each send carries
// a fresh delivery id so the consumer can tell a redelivery of the same
// transfer from a duplicate.
type Publisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// envelope is the wire format around a TransferEvent.
type envelope struct {
	DeliveryID string                `json:"deliveryId"`
	SentAt     time.Time             `json:"sentAt"`
	Event      *domain.TransferEvent `json:"event"`
}

// Connect dials the NATS server and returns a Publisher on the given
// subject.
func Connect(url, subject string, logger zerolog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("gotransfers"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return &Publisher{conn: conn, subject: subject, logger: logger}, nil
}

// Publish sends one transfer event. A flush confirms the server received
// the message before the call returns.
func (p *Publisher) Publish(ctx context.Context, event *domain.TransferEvent) error {
	env := envelope{
		DeliveryID: ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		SentAt:     time.Now().UTC(),
		Event:      event,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush event: %w", err)
	}

	p.logger.Debug().
		Str("delivery_id", env.DeliveryID).
		Str("transfer_id", event.TransferID).
		Msg("transfer event published")
	return nil
}

// IsConnected reports whether the connection is currently established.
// Reconnects are handled by the client, so a false here usually means the
// server has been unreachable for a while.
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
		p.conn.Close()
	}
}
