package stream

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// ProducerHeader names the service that published a record.
const ProducerHeader = "producer"

// MessageWriter is the subset of *kafka.Writer used by Producer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter creates a writer that routes each message to its own topic.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// Producer publishes records tagged with the name of the publishing service.
type Producer struct {
	writer  MessageWriter
	service string
}

// NewProducer creates a Producer.
func NewProducer(writer MessageWriter, service string) *Producer {
	return &Producer{writer: writer, service: service}
}

// Publish writes value to topic and waits for the brokers to acknowledge it.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	msg := kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: ProducerHeader, Value: []byte(p.service)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
