package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sender delivers rendered emails. email.Service satisfies it.
type Sender interface {
	SendComplaintAssigned(ctx context.Context, toEmail, handlerName, customerName, inquiryType string) error
	SendComplaintStatusChanged(ctx context.Context, toEmail, creatorName, inquiryType, status, department, resolution string) error
}

type Dispatcher struct {
	queue       Queue
	sender      Sender
	logger      zerolog.Logger
	maxAttempts int
	retryDelay  time.Duration
}

func NewDispatcher(queue Queue, sender Sender, logger zerolog.Logger, maxAttempts int, retryDelay time.Duration) *Dispatcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Dispatcher{
		queue:       queue,
		sender:      sender,
		logger:      logger.With().Str("component", "outbox").Logger(),
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

// idlePoll caps how long Run waits when every queued message is still backing
// off, so fresh messages published meanwhile are not held up for long.
const idlePoll = time.Second

// Run consumes messages until ctx is cancelled. Messages whose NotBefore is in
// the future go back to the tail of the queue so the ones behind them are not
// blocked by a retry backoff.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info().Int("max_attempts", d.maxAttempts).Msg("dispatcher started")
	defer d.logger.Info().Msg("dispatcher stopped")

	deferred := make(map[uuid.UUID]struct{})
	for {
		msg, err := d.queue.Receive(ctx)
		if ctx.Err() != nil {
			if err == nil {
				d.requeue(ctx, msg)
			}
			return
		}
		if errors.Is(err, ErrNoMessage) {
			continue
		}
		if err != nil {
			d.logger.Error().Err(err).Msg("failed to receive message")
			if !sleep(ctx, d.retryDelay) {
				return
			}
			continue
		}

		wait := time.Until(msg.NotBefore)
		if wait <= 0 {
			clear(deferred)
			d.Handle(ctx, msg)
			continue
		}

		// Seeing a deferred message twice means the queue went round without
		// anything being due.
		if _, seen := deferred[msg.ID]; seen {
			clear(deferred)
			if !sleep(ctx, min(wait, idlePoll)) {
				d.requeue(ctx, msg)
				return
			}
		}
		deferred[msg.ID] = struct{}{}
		d.requeue(ctx, msg)
	}
}

// Handle delivers one message, requeueing it on failure until its attempts
// are used up.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) {
	log := d.logger.With().
		Str("message_id", msg.ID.String()).
		Str("kind", string(msg.Kind)).
		Str("complaint_id", msg.ComplaintID.String()).
		Int("attempt", msg.Attempt+1).
		Logger()

	err := d.deliver(ctx, msg)
	if err == nil {
		messagesTotal.WithLabelValues(string(msg.Kind), "sent").Inc()
		log.Debug().Msg("message delivered")
		return
	}

	msg.Attempt++
	if msg.Attempt >= d.maxAttempts {
		messagesTotal.WithLabelValues(string(msg.Kind), "dropped").Inc()
		log.Error().Err(err).Msg("message dropped after final attempt")
		return
	}

	messagesTotal.WithLabelValues(string(msg.Kind), "retried").Inc()
	log.Warn().Err(err).Dur("retry_in", d.retryDelay).Msg("delivery failed, will retry")

	msg.NotBefore = time.Now().UTC().Add(d.retryDelay)
	d.requeue(ctx, msg)
}

func (d *Dispatcher) requeue(ctx context.Context, msg Message) {
	// Publish on a detached context so a shutdown does not lose the message.
	if err := d.queue.Publish(context.WithoutCancel(ctx), msg); err != nil {
		messagesTotal.WithLabelValues(string(msg.Kind), "dropped").Inc()
		d.logger.Error().Err(err).
			Str("message_id", msg.ID.String()).
			Str("kind", string(msg.Kind)).
			Msg("failed to requeue message")
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return nil
	}

	switch msg.Kind {
	case KindComplaintAssigned:
		return d.sender.SendComplaintAssigned(ctx, msg.To, msg.RecipientName, msg.CustomerName, msg.InquiryType)
	case KindComplaintStatus:
		return d.sender.SendComplaintStatusChanged(ctx, msg.To, msg.RecipientName, msg.InquiryType, msg.Status, msg.Department, msg.Resolution)
	default:
		return fmt.Errorf("unknown message kind %q", msg.Kind)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
