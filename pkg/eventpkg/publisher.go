// Package eventpkg publishes application events to a message broker.
package eventpkg

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/segmentio/kafka-go"
)

// Supported brokers.
const (
	BrokerNone  = "none"
	BrokerNATS  = "nats"
	BrokerKafka = "kafka"
)

// ErrNoKafkaBrokers indicates that the kafka publisher has no brokers to write to.
var ErrNoKafkaBrokers = errors.New("no kafka brokers configured")

// Publisher sends keyed messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
	Close() error
}

// Config selects and configures the broker.
type Config struct {
	Broker       string
	Topic        string
	NATSURL      string
	KafkaBrokers []string
}

// New returns the publisher for the configured broker.
func New(c Config) (Publisher, error) {
	switch c.Broker {
	case "", BrokerNone:
		return NopPublisher{}, nil
	case BrokerNATS:
		nc, err := nats.Connect(c.NATSURL)
		if err != nil {
			return nil, fmt.Errorf("connect to nats: %w", err)
		}

		return NewNATSPublisher(nc, c.Topic), nil
	case BrokerKafka:
		if len(c.KafkaBrokers) == 0 {
			return nil, ErrNoKafkaBrokers
		}

		w := &kafka.Writer{
			Addr:                   kafka.TCP(c.KafkaBrokers...),
			Topic:                  c.Topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}

		return NewKafkaPublisher(w), nil
	}

	return nil, fmt.Errorf("unsupported events broker %q", c.Broker)
}

// NopPublisher drops every message.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, string, []byte) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }

// NATSPublisher publishes messages to a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher returns NATSPublisher writing to the given subject.
func NewNATSPublisher(nc *nats.Conn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: nc, subject: subject}
}

// Publish sends the payload with the key in the Key header.
func (p *NATSPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := nats.NewMsg(p.subject)
	msg.Header.Set("Key", key)
	msg.Data = payload

	return p.conn.PublishMsg(msg)
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	defer p.conn.Close()
	return p.conn.Flush()
}

// KafkaPublisher publishes messages to a kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns KafkaPublisher using the given writer.
func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish writes a single keyed message.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// Close flushes pending writes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
