package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

type channel interface {
	exchangeDeclarer
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends cart lifecycle events. It implements cart.Events.
type Publisher struct {
	ch       channel
	seqRepo  SequenceRepository
	producer string
	now      func() time.Time
}

var _ cart.Events = (*Publisher)(nil)

type PublisherOptions struct {
	Producer string
}

func NewPublisher(conn *amqp.Connection, seqRepo SequenceRepository, opts PublisherOptions) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return newPublisher(ch, seqRepo, opts)
}

func newPublisher(ch channel, seqRepo SequenceRepository, opts PublisherOptions) (*Publisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	producer := opts.Producer
	if producer == "" {
		producer = defaultProducer
	}

	return &Publisher{
		ch:       ch,
		seqRepo:  seqRepo,
		producer: producer,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// CartCreated publishes a StorefrontCartCreated event partitioned by cart id.
// The session key never leaves the service.
func (p *Publisher) CartCreated(ctx context.Context, _ string, c *cart.Cart) error {
	if c == nil {
		return nil
	}
	timestamp := p.now()

	payload := CartCreatedPayload{
		CartID:        c.ID,
		TotalQuantity: c.TotalQuantity,
		TotalAmount:   c.Total.Amount.String(),
		CurrencyCode:  c.Total.CurrencyCode,
		Lines:         make([]CartLine, 0, len(c.Lines)),
		Timestamp:     timestamp,
	}
	for _, l := range c.Lines {
		payload.Lines = append(payload.Lines, CartLine{
			LineID:    l.ID,
			VariantID: l.Merchandise.ID,
			Quantity:  l.Quantity,
			Price:     l.Merchandise.Price.Amount.String(),
		})
	}

	env, err := p.envelope(ctx, EventTypeCartCreated, cartCreatedSchema, c.ID, payload, timestamp)
	if err != nil {
		return err
	}
	return p.publish(ctx, CartCreatedRoutingKey, env)
}

func (p *Publisher) CartDiscarded(ctx context.Context, _ string, cartID string, cause error) error {
	timestamp := p.now()

	payload := CartDiscardedPayload{
		CartID:    cartID,
		Rejected:  cart.IsRejection(cause),
		Timestamp: timestamp,
	}
	if cause != nil {
		payload.Reason = cause.Error()
	}

	env, err := p.envelope(ctx, EventTypeCartDiscarded, cartDiscardedSchema, cartID, payload, timestamp)
	if err != nil {
		return err
	}
	return p.publish(ctx, CartDiscardedRoutingKey, env)
}

func (p *Publisher) envelope(ctx context.Context, name, schema, partitionKey string, payload any, occurredAt time.Time) (EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("marshal %s payload: %w", name, err)
	}

	env := EventEnvelope{
		EventName:     name,
		EventVersion:  envelopeVersion,
		EventID:       uuid.NewString(),
		CorrelationID: middleware.GetCorrelationID(ctx),
		Producer:      p.producer,
		PartitionKey:  partitionKey,
		OccurredAt:    occurredAt,
		Schema:        schema,
		Payload:       raw,
	}
	if err := env.Validate(name, envelopeVersion); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid %s envelope: %w", name, err)
	}

	if p.seqRepo != nil {
		env.Sequence, err = p.seqRepo.NextSequence(ctx, partitionKey)
		if err != nil {
			return EventEnvelope{}, fmt.Errorf("reserve sequence: %w", err)
		}
	}
	return env, nil
}

func (p *Publisher) publish(ctx context.Context, routingKey string, env EventEnvelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", env.EventName, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     env.EventID,
			CorrelationId: env.CorrelationID,
			Timestamp:     env.OccurredAt,
			Type:          env.EventName,
			Body:          body,
		},
	)
}
