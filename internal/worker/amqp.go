package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/careerforward/career-quest/internal/config"
)

// Handler processes one message body.
type Handler interface {
	Handle(ctx context.Context, body []byte) error
}

// channel is the subset of *amqp.Channel used by consumers and the publisher.
type channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Connection opens AMQP channels.
type Connection interface {
	Channel() (channel, error)
}

type amqpConnection struct {
	conn *amqp.Connection
}

func (c amqpConnection) Channel() (channel, error) {
	return c.conn.Channel()
}

// Dial connects to RabbitMQ.
func Dial(url string) (Connection, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	return amqpConnection{conn: conn}, conn.Close, nil
}

// AMQPPublisher publishes updates to a topic exchange with routing key user.<id>.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       channel
	exchange string
}

// NewPublisher opens a channel and declares the updates exchange.
func NewPublisher(conn Connection, exchange string) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publish channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

// RoutingKey is the key updates for a user are published under.
func RoutingKey(userID string) string {
	return "user." + userID
}

// Publish sends update as JSON.
func (p *AMQPPublisher) Publish(_ context.Context, update Update) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Publish(p.exchange, RoutingKey(update.UserID), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    update.Timestamp,
		Body:         body,
	})
}

// Close closes the publish channel.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}

// Pool runs several queue consumers, each on its own channel.
type Pool struct {
	conn      Connection
	handler   Handler
	queue     string
	consumers int
	prefetch  int
	logger    *zap.Logger
}

// NewPool creates a consumer pool from the RabbitMQ configuration.
func NewPool(conn Connection, handler Handler, cfg config.RabbitMQConfig, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	consumers := max(cfg.Consumers, 1)
	return &Pool{
		conn:      conn,
		handler:   handler,
		queue:     cfg.Queue,
		consumers: consumers,
		prefetch:  max(cfg.Prefetch, consumers),
		logger:    logger,
	}
}

// Run consumes until ctx is cancelled, returning nil, or until any consumer fails.
func (p *Pool) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range p.consumers {
		id := i + 1
		g.Go(func() error {
			return p.consume(gctx, id)
		})
	}
	err := g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (p *Pool) consume(ctx context.Context, id int) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("consumer %d: failed to open channel: %w", id, err)
	}
	defer ch.Close()

	if err := ch.Qos(p.prefetch, 0, false); err != nil {
		return fmt.Errorf("consumer %d: failed to set qos: %w", id, err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("consumer %d: failed to declare queue %s: %w", id, p.queue, err)
	}
	msgs, err := ch.Consume(p.queue, fmt.Sprintf("career-quest-worker-%d", id), false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consumer %d: failed to consume %s: %w", id, p.queue, err)
	}

	p.logger.Info("consumer started", zap.Int("consumer", id), zap.String("queue", p.queue))
	return p.loop(ctx, id, msgs)
}

func (p *Pool) loop(ctx context.Context, id int, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("consumer %d: delivery channel closed", id)
			}
			p.deliver(ctx, id, d)
		}
	}
}

// deliver acks on success and nacks without requeue on failure.
func (p *Pool) deliver(ctx context.Context, id int, d amqp.Delivery) {
	if err := p.handler.Handle(ctx, d.Body); err != nil {
		p.logger.Error("dropping message",
			zap.Int("consumer", id),
			zap.Uint64("delivery_tag", d.DeliveryTag),
			zap.Error(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			p.logger.Warn("nack failed", zap.Int("consumer", id), zap.Error(nackErr))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		p.logger.Warn("ack failed", zap.Int("consumer", id), zap.Error(err))
	}
}
