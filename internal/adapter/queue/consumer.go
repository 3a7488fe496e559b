package queue

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/simaogato/wizardfund-backend/internal/config"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/observability/metrics"
)

const consumerTag = "wizardfund-snapshots"

// Consumer ingests snapshot events from a durable queue into the read model
type Consumer struct {
	cfg     *config.QueueConfig
	applier SnapshotApplier
}

// NewConsumer creates a new Consumer instance
func NewConsumer(cfg *config.QueueConfig, applier SnapshotApplier) *Consumer {
	return &Consumer{cfg: cfg, applier: applier}
}

// Run connects to the broker and consumes until ctx is done
// It returns an error when the connection cannot be set up or the broker closes the delivery channel
func (c *Consumer) Run(ctx context.Context) error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := c.declare(ch); err != nil {
		return err
	}

	deliveries, err := ch.ConsumeWithContext(ctx, c.cfg.QueueName, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", c.cfg.QueueName, err)
	}

	log.Ctx(ctx).Info().
		Str("queue", c.cfg.QueueName).
		Str("exchange", c.cfg.Exchange).
		Msg("snapshot consumer started")

	return c.consume(ctx, deliveries)
}

func (c *Consumer) declare(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(c.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", c.cfg.Exchange, err)
	}
	if _, err := ch.QueueDeclare(c.cfg.QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", c.cfg.QueueName, err)
	}
	if err := ch.QueueBind(c.cfg.QueueName, c.cfg.RoutingKey, c.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", c.cfg.QueueName, err)
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}
	return nil
}

// consume handles deliveries one at a time until ctx is done or the channel closes
func (c *Consumer) consume(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			log.Ctx(ctx).Info().Msg("snapshot consumer stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("delivery channel closed by broker")
			}
			c.handle(ctx, d)
		}
	}
}

// handle applies one delivery and settles it
// Malformed events are dropped; storage failures are requeued
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	logger := log.Ctx(ctx).With().Str("message_id", d.MessageId).Logger()

	event, err := DecodeEvent(d.Body)
	if err != nil {
		logger.Warn().Err(err).Msg("dropping malformed snapshot event")
		metrics.RecordSnapshotEvent("unknown", true)
		if err := d.Nack(false, false); err != nil {
			logger.Error().Err(err).Msg("failed to nack event")
		}
		return
	}

	logger = logger.With().Str("event_id", event.ID).Str("kind", string(event.Kind)).Logger()

	if err := event.Apply(ctx, c.applier); err != nil {
		metrics.RecordSnapshotEvent(string(event.Kind), true)
		requeue := !errors.Is(err, domain.ErrInvalidInput)
		logger.Error().Err(err).Bool("requeue", requeue).Msg("failed to apply snapshot event")
		if err := d.Nack(false, requeue); err != nil {
			logger.Error().Err(err).Msg("failed to nack event")
		}
		return
	}

	metrics.RecordSnapshotEvent(string(event.Kind), false)
	if err := d.Ack(false); err != nil {
		logger.Error().Err(err).Msg("failed to ack event")
		return
	}
	logger.Debug().Msg("snapshot event applied")
}
