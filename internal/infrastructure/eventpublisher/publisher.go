// Package eventpublisher wraps a bus publisher with the delivery policy for
// transfer events: a short retry burst, then exactly one deferred
// redelivery attempt.
package eventpublisher

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/iho/gotransfers/internal/domain"
	"github.com/iho/gotransfers/internal/infrastructure/metrics"
	"github.com/iho/gotransfers/internal/infrastructure/scheduler"
	"github.com/iho/gotransfers/internal/usecase"
)

// RetryingPublisher retries immediate delivery with a constant delay. When
// the burst is exhausted it schedules a single redelivery after deferDelay
// and reports the failure to the caller. The deferred attempt is not
// retried again; if it also fails the event is dropped with a log entry.
// Deferred deliveries are in-memory only and do not survive a restart.
type RetryingPublisher struct {
	next        usecase.EventPublisher
	sched       scheduler.Scheduler
	maxAttempts int
	retryDelay  time.Duration
	deferDelay  time.Duration
	sendTimeout time.Duration
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

func NewRetryingPublisher(
	next usecase.EventPublisher,
	sched scheduler.Scheduler,
	maxAttempts int,
	retryDelay time.Duration,
	deferDelay time.Duration,
	sendTimeout time.Duration,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *RetryingPublisher {
	return &RetryingPublisher{
		next:        next,
		sched:       sched,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		deferDelay:  deferDelay,
		sendTimeout: sendTimeout,
		metrics:     m,
		logger:      logger,
	}
}

// Publish attempts immediate delivery. On exhaustion it schedules the
// one-shot redelivery and returns the last error.
func (p *RetryingPublisher) Publish(ctx context.Context, event *domain.TransferEvent) error {
	attempt := 0
	operation := func() error {
		attempt++
		if p.metrics != nil {
			p.metrics.PublishAttempts.Inc()
		}
		err := p.next.Publish(ctx, event)
		if err != nil {
			if p.metrics != nil {
				p.metrics.PublishFailures.Inc()
			}
			p.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Str("transfer_id", event.TransferID).
				Msg("event publish failed")
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.retryDelay), uint64(p.maxAttempts-1)),
		ctx,
	)
	err := backoff.Retry(operation, policy)
	if err == nil {
		return nil
	}

	p.logger.Warn().
		Str("transfer_id", event.TransferID).
		Dur("defer_delay", p.deferDelay).
		Msg("publish retries exhausted, deferring one redelivery")

	if p.metrics != nil {
		p.metrics.PublishDeferrals.Inc()
	}

	p.sched.AfterFunc(p.deferDelay, func() {
		// the request context is long gone by now
		ctx, cancel := context.WithTimeout(context.Background(), p.sendTimeout)
		defer cancel()

		if p.metrics != nil {
			p.metrics.PublishAttempts.Inc()
		}
		if err := p.next.Publish(ctx, event); err != nil {
			if p.metrics != nil {
				p.metrics.PublishFailures.Inc()
			}
			p.logger.Error().
				Err(err).
				Str("transfer_id", event.TransferID).
				Msg("deferred redelivery failed, giving up on event")
			return
		}
		p.logger.Info().
			Str("transfer_id", event.TransferID).
			Msg("deferred redelivery succeeded")
	})

	return err
}
