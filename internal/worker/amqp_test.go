package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforward/career-quest/internal/config"
)

type fakeAcker struct {
	mu     sync.Mutex
	acked  []uint64
	nacked []uint64
}

func (a *fakeAcker) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *fakeAcker) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if requeue {
		return errors.New("unexpected requeue")
	}
	a.nacked = append(a.nacked, tag)
	return nil
}

func (a *fakeAcker) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcker) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.acked), len(a.nacked)
}

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	mu         sync.Mutex
	prefetch   int
	queue      string
	durable    bool
	exchange   string
	kind       string
	deliveries chan amqp.Delivery
	published  []published
	closed     bool
}

func (c *fakeChannel) Qos(prefetchCount, _ int, _ bool) error {
	c.prefetch = prefetchCount
	return nil
}

func (c *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	c.queue, c.durable = name, durable
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	c.exchange, c.kind = name, kind
	return nil
}

func (c *fakeChannel) Consume(_, _ string, autoAck, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	if autoAck {
		return nil, errors.New("auto-ack not expected")
	}
	return c.deliveries, nil
}

func (c *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

type fakeConn struct {
	mu       sync.Mutex
	channels []*fakeChannel
	shared   chan amqp.Delivery
}

func (c *fakeConn) Channel() (channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := &fakeChannel{deliveries: c.shared}
	c.channels = append(c.channels, ch)
	return ch, nil
}

type handlerFunc func(ctx context.Context, body []byte) error

func (f handlerFunc) Handle(ctx context.Context, body []byte) error { return f(ctx, body) }

func TestPool_AcksAndNacks(t *testing.T) {
	conn := &fakeConn{shared: make(chan amqp.Delivery)}
	acker := &fakeAcker{}
	handler := handlerFunc(func(_ context.Context, body []byte) error {
		if string(body) == "bad" {
			return errors.New("boom")
		}
		return nil
	})

	pool := NewPool(conn, handler, config.RabbitMQConfig{Queue: "score_requests", Consumers: 3, Prefetch: 1}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pool.Run(ctx) }()

	bodies := []string{"ok", "bad", "ok", "ok", "bad"}
	for i, b := range bodies {
		conn.shared <- amqp.Delivery{Acknowledger: acker, DeliveryTag: uint64(i + 1), Body: []byte(b)}
	}

	require.Eventually(t, func() bool {
		acked, nacked := acker.counts()
		return acked == 3 && nacked == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("pool did not stop")
	}

	conn.mu.Lock()
	defer conn.mu.Unlock()
	require.Len(t, conn.channels, 3)
	for _, ch := range conn.channels {
		assert.Equal(t, 3, ch.prefetch, "prefetch is raised to the consumer count")
		assert.Equal(t, "score_requests", ch.queue)
		assert.True(t, ch.durable)
		assert.True(t, ch.closed)
	}
}

func TestPool_ClosedDeliveryChannelIsAnError(t *testing.T) {
	conn := &fakeConn{shared: make(chan amqp.Delivery)}
	close(conn.shared)
	pool := NewPool(conn, handlerFunc(func(context.Context, []byte) error { return nil }),
		config.RabbitMQConfig{Queue: "q", Consumers: 1}, nil)

	err := pool.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery channel closed")
}

func TestAMQPPublisher(t *testing.T) {
	conn := &fakeConn{}
	pub, err := NewPublisher(conn, "score_updates")
	require.NoError(t, err)

	ch := conn.channels[0]
	assert.Equal(t, "score_updates", ch.exchange)
	assert.Equal(t, amqp.ExchangeTopic, ch.kind)

	total := 71
	require.NoError(t, pub.Publish(context.Background(), Update{
		UserID:     "6f1c",
		Status:     StatusCompleted,
		TotalScore: &total,
		Timestamp:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "score_updates", msg.exchange)
	assert.Equal(t, "user.6f1c", msg.key)
	assert.Equal(t, "application/json", msg.msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.msg.DeliveryMode)

	var got Update
	require.NoError(t, json.Unmarshal(msg.msg.Body, &got))
	assert.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.TotalScore)
	assert.Equal(t, 71, *got.TotalScore)

	require.NoError(t, pub.Close())
	assert.True(t, ch.closed)
}
