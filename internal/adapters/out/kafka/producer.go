// Package kafka publishes order events to a Kafka topic so that other
// services can follow order lifecycles.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"moving/internal/core/ports"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"

	"github.com/IBM/sarama"
)

// DefaultEnqueueTimeout bounds how long Notify waits for the producer to
// accept a message.
const DefaultEnqueueTimeout = 50 * time.Millisecond

var (
	ErrProducerBusy   = errors.New("kafka producer did not accept the event in time")
	ErrProducerClosed = errors.New("kafka producer is closed")
)

// OrderEvent is the record written to the topic.
type OrderEvent struct {
	EventType string         `json:"event_type"`
	OrderID   int64          `json:"order_id"`
	Payload   map[string]any `json:"payload,omitempty"`
	EventTime time.Time      `json:"event_time"`
}

type Stats struct {
	Delivered int64
	Failed    int64
}

// Producer hands events to a sarama.AsyncProducer and never waits for
// broker acknowledgements. Delivery results are drained and logged in
// the background.
type Producer struct {
	producer       sarama.AsyncProducer
	topic          string
	enqueueTimeout time.Duration
	log            logger.ILogger

	mu     sync.RWMutex
	closed bool
	done   sync.WaitGroup

	delivered atomic.Int64
	failed    atomic.Int64
}

// NewAsyncProducer dials brokers with acks from all in-sync replicas.
// timeout caps dialing, socket reads and writes, and the broker-side
// produce wait.
func NewAsyncProducer(brokers []string, timeout time.Duration) (sarama.AsyncProducer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("kafka brokers")
	}
	if timeout <= 0 {
		return nil, errs.NewValueIsInvalidError("kafka timeout")
	}

	config := sarama.NewConfig()
	config.Net.DialTimeout = timeout
	config.Net.ReadTimeout = timeout
	config.Net.WriteTimeout = timeout
	config.Metadata.Timeout = timeout
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = timeout
	config.Producer.Retry.Max = 3
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Version = sarama.V2_6_0_0

	return sarama.NewAsyncProducer(brokers, config)
}

// NewProducer starts draining the producer's Successes and Errors
// channels. Both must be enabled in the producer's config.
func NewProducer(producer sarama.AsyncProducer, topic string, log logger.ILogger) *Producer {
	p := &Producer{
		producer:       producer,
		topic:          topic,
		enqueueTimeout: DefaultEnqueueTimeout,
		log:            log.With(logger.String("component", "kafka_producer")),
	}

	p.done.Add(2)
	go p.drainSuccesses()
	go p.drainErrors()
	return p
}

func (p *Producer) drainSuccesses() {
	defer p.done.Done()
	for msg := range p.producer.Successes() {
		p.delivered.Add(1)
		p.log.Debug("event published",
			logger.String("topic", msg.Topic),
			logger.Int("partition", int(msg.Partition)),
			logger.Int64("offset", msg.Offset),
		)
	}
}

func (p *Producer) drainErrors() {
	defer p.done.Done()
	for perr := range p.producer.Errors() {
		p.failed.Add(1)
		fields := []logger.Field{logger.String("topic", p.topic), logger.Error(perr.Err)}
		if perr.Msg != nil && perr.Msg.Key != nil {
			if key, err := perr.Msg.Key.Encode(); err == nil {
				fields = append(fields, logger.String("order_id", string(key)))
			}
		}
		p.log.Warning("event not published", fields...)
	}
}

// Notify implements ports.Notifier. Only order-scoped events are published,
// keyed by order id so that one order's events stay in one partition.
// A producer that cannot take the message within the enqueue timeout
// drops it and reports ErrProducerBusy.
func (p *Producer) Notify(ctx context.Context, event ports.Event) error {
	if !event.IsOrderScoped() {
		return nil
	}

	data, err := json.Marshal(OrderEvent{
		EventType: event.Name,
		OrderID:   event.OrderID,
		Payload:   event.Payload,
		EventTime: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.OrderID, 10)),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Name)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}

	timer := time.NewTimer(p.enqueueTimeout)
	defer timer.Stop()

	select {
	case p.producer.Input() <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		p.failed.Add(1)
		p.log.Warning("event dropped",
			logger.String("topic", p.topic),
			logger.Int64("order_id", event.OrderID),
			logger.String("event", event.Name),
		)
		return ErrProducerBusy
	}
}

func (p *Producer) Stats() Stats {
	return Stats{Delivered: p.delivered.Load(), Failed: p.failed.Load()}
}

// Close flushes buffered messages and waits until every delivery result
// has been logged.
func (p *Producer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.producer.AsyncClose()
	p.done.Wait()
	return nil
}
