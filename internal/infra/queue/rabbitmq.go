package mq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/quokkabay/quokkabay/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tableCarrier adapts amqp.Table to TextMapCarrier for OpenTelemetry propagation
type tableCarrier struct {
	table amqp.Table
}

func (c tableCarrier) Get(key string) string {
	if val, ok := c.table[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
		return fmt.Sprintf("%v", val)
	}
	return ""
}

func (c tableCarrier) Set(key, value string) {
	c.table[key] = value
}

func (c tableCarrier) Keys() []string {
	keys := make([]string, 0, len(c.table))
	for k := range c.table {
		keys = append(keys, k)
	}
	return keys
}

// publishChannel is the part of *amqp.Channel the publisher uses.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	ch       publishChannel
	exchange string
	tracer   trace.Tracer
	log      *zap.Logger
}

// Dial opens the broker connection described by cfg.RabbitMQ.
func Dial(cfg *config.Config) (*amqp.Connection, error) {
	if cfg.RabbitMQ.EnableTLS {
		return amqp.DialTLS(cfg.RabbitMQ.URL, nil)
	}
	return amqp.Dial(cfg.RabbitMQ.URL)
}

// NewPublisher opens a channel and declares the durable topic exchange events go to.
func NewPublisher(conn *amqp.Connection, log *zap.Logger, cfg *config.Config) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(cfg.RabbitMQ.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.RabbitMQ.Exchange, err)
	}
	return newPublisher(ch, cfg.RabbitMQ.Exchange, cfg.App.Name, log), nil
}

func newPublisher(ch publishChannel, exchange, appName string, log *zap.Logger) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, tracer: otel.Tracer(appName), log: log}
}

func (p *Publisher) Close() error { return p.ch.Close() }

// Publish sends ev to the events exchange with its type as routing key.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	return p.PublishJSON(ctx, p.exchange, ev.Type, ev)
}

func (p *Publisher) PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error {
	b, err := sonic.Marshal(body)
	if err != nil {
		return err
	}

	ctx, span := p.tracer.Start(ctx, "rabbitmq.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", exchangeName),
			attribute.String("messaging.destination_kind", "exchange"),
			attribute.String("messaging.rabbitmq.routing_key", routingKey),
		))
	defer span.End()

	headers := make(amqp.Table)
	otel.GetTextMapPropagator().Inject(ctx, tableCarrier{table: headers})

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         routingKey,
		Body:         b,
		Headers:      headers,
	}

	if err := p.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, publishing); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(attribute.Int("messaging.message.body.size", len(b)))
	return nil
}

var errMalformedEvent = errors.New("malformed event")

type Consumer struct {
	ch     *amqp.Channel
	q      amqp.Queue
	tracer trace.Tracer
	log    *zap.Logger
}

// NewConsumer declares queueName, binds it to the events exchange for bindingKey
// (e.g. "#" or "favorite.*") and sets the prefetch window.
func NewConsumer(conn *amqp.Connection, queueName, bindingKey string, prefetch int, log *zap.Logger, cfg *config.Config) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if prefetch <= 0 {
		prefetch = 10
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(cfg.RabbitMQ.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, err
	}

	// An empty name asks the broker for an exclusive, auto-deleted queue.
	durable := queueName != ""
	q, err := ch.QueueDeclare(queueName, durable, !durable, !durable, false, nil)
	if err != nil {
		return nil, err
	}
	if err := ch.QueueBind(q.Name, bindingKey, cfg.RabbitMQ.Exchange, false, nil); err != nil {
		return nil, err
	}
	return &Consumer{ch: ch, q: q, tracer: otel.Tracer(cfg.App.Name), log: log}, nil
}

func (c *Consumer) Close() error { return c.ch.Close() }

// Handle runs handler for every delivery until ctx ends. Deliveries the handler fails are
// nacked and requeued; undecodable ones are dropped.
func (c *Consumer) Handle(ctx context.Context, handler func(context.Context, Event) error) error {
	msgs, err := c.ch.Consume(c.q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	propagator := otel.GetTextMapPropagator()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-msgs:
			if !ok {
				return errors.New("consumer channel closed")
			}

			msgCtx := ctx
			if m.Headers != nil {
				msgCtx = propagator.Extract(ctx, tableCarrier{table: m.Headers})
			}
			if err := c.deliver(msgCtx, m.Body, handler); err != nil {
				// undecodable bodies would fail forever
				_ = m.Nack(false, !errors.Is(err, errMalformedEvent))
				c.log.Error("consume error", zap.String("routing_key", m.RoutingKey), zap.Error(err))
				continue
			}
			_ = m.Ack(false)
		}
	}
}

func (c *Consumer) deliver(ctx context.Context, body []byte, handler func(context.Context, Event) error) error {
	ctx, span := c.tracer.Start(ctx, "rabbitmq.consume",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", c.q.Name),
			attribute.String("messaging.destination_kind", "queue"),
			attribute.String("messaging.operation", "receive"),
			attribute.Int("messaging.message.body.size", len(body)),
		))
	defer span.End()

	var ev Event
	if err := sonic.Unmarshal(body, &ev); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %v", errMalformedEvent, err)
	}
	if err := handler(ctx, ev); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
