package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/allisson/recommendations/internal/metrics"
)

// MessageReader is the subset of *kafka.Reader used by Consumer.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ReaderConfig configures a consumer group reader.
type ReaderConfig struct {
	Brokers []string
	GroupID string
	Topics  []string
}

// NewReader creates a consumer group reader subscribed to every topic. Offsets are
// committed synchronously by the Consumer, never in the background.
func NewReader(cfg ReaderConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		GroupTopics:    cfg.Topics,
		StartOffset:    kafka.LastOffset,
		CommitInterval: 0,
		MinBytes:       1,
		MaxBytes:       10e6,
	})
}

// Consumer dispatches records to the handlers of a Registry.
type Consumer struct {
	reader        MessageReader
	registry      *Registry
	retryInterval time.Duration
	metrics       metrics.BusinessMetrics
	logger        *slog.Logger
}

// NewConsumer creates a Consumer. retryInterval is the pause before a failed record is
// handled again.
func NewConsumer(
	reader MessageReader,
	registry *Registry,
	retryInterval time.Duration,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *Consumer {
	return &Consumer{
		reader:        reader,
		registry:      registry,
		retryInterval: retryInterval,
		metrics:       businessMetrics,
		logger:        logger,
	}
}

// Run consumes until ctx is cancelled or the reader is closed, returning nil in both
// cases. It returns ErrUnknownTopic when a record arrives on an unregistered topic.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("started consuming", slog.Any("topics", c.registry.Topics()))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				c.logger.Info("stopped consuming")
				return nil
			}
			c.logger.Error("failed to fetch message", slog.Any("error", err))
			if !c.wait(ctx) {
				return nil
			}
			continue
		}

		record := recordFromMessage(msg)
		handler, err := c.registry.Handler(record.Topic)
		if err != nil {
			c.logger.Error("record on unregistered topic", record.LogAttrs()...)
			return err
		}

		if !c.handle(ctx, handler, record) {
			return nil
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("failed to commit offset",
				append(record.LogAttrs(), slog.Any("error", err))...)
		}
	}
}

// handle runs handler until it succeeds. It returns false when ctx is cancelled first.
func (c *Consumer) handle(ctx context.Context, handler Handler, record Record) bool {
	for attempt := 1; ; attempt++ {
		c.logger.Info("handling record", append(record.LogAttrs(), slog.Int("attempt", attempt))...)

		start := time.Now()
		err := c.safeHandle(ctx, handler, record)
		metrics.Track(ctx, c.metrics, metrics.DomainStream, "record_handle", start, err)
		if err == nil {
			return true
		}

		c.logger.Error("failed to handle record",
			append(record.LogAttrs(),
				slog.Int("attempt", attempt),
				slog.Duration("retry_in", c.retryInterval),
				slog.Any("error", err))...)

		if !c.wait(ctx) {
			return false
		}
	}
}

// safeHandle converts a handler panic into an error so the record is retried.
func (c *Consumer) safeHandle(ctx context.Context, handler Handler, record Record) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("handler panicked: %v", p)
		}
	}()
	return handler(ctx, record)
}

// wait sleeps for the retry interval and reports whether ctx is still live.
func (c *Consumer) wait(ctx context.Context) bool {
	timer := time.NewTimer(c.retryInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
