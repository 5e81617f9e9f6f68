package app

import (
	"fmt"

	"github.com/segmentio/kafka-go"

	recommendationConsumer "github.com/allisson/recommendations/internal/recommendation/consumer"
	"github.com/allisson/recommendations/internal/stream"
)

// StreamConsumer returns the consumer of every ingested topic.
// It fails when a consumed topic has no registered handler.
func (c *Container) StreamConsumer() (*stream.Consumer, error) {
	var err error
	c.streamConsumerInit.Do(func() {
		c.streamConsumer, err = c.initStreamConsumer()
		if err != nil {
			c.initErrors["streamConsumer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["streamConsumer"]; exists {
		return nil, storedErr
	}
	return c.streamConsumer, nil
}

// Producer returns the stream producer.
func (c *Container) Producer() *stream.Producer {
	c.producerInit.Do(func() {
		c.kafkaWriter = stream.NewWriter(c.config.KafkaBrokers())
		c.producer = stream.NewProducer(c.kafkaWriter, fmt.Sprintf("%s-%s", c.config.AppTitle, c.config.Environment))
	})
	return c.producer
}

// KafkaClient returns the admin client used by readiness checks.
func (c *Container) KafkaClient() *kafka.Client {
	c.kafkaClientInit.Do(func() {
		c.kafkaClient = stream.NewClient(c.config.KafkaBrokers())
	})
	return c.kafkaClient
}

// initStreamConsumer builds the topic registry, validates it and creates the consumer.
func (c *Container) initStreamConsumer() (*stream.Consumer, error) {
	ingestionUseCase, err := c.IngestionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get ingestion use case for stream consumer: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for stream consumer: %w", err)
	}

	registry := stream.NewRegistry()
	handlers := recommendationConsumer.NewHandlers(ingestionUseCase, c.Logger())
	if err := handlers.Register(registry, recommendationConsumer.Topics{
		Recommendations: c.config.KafkaTopicRecommendations,
		PlatformStatus:  c.config.KafkaTopicPlatformStatus,
		GoalsUpdated:    c.config.KafkaTopicGoalsUpdated,
	}); err != nil {
		return nil, fmt.Errorf("failed to register stream handlers: %w", err)
	}
	if err := registry.Validate(c.config.ConsumedTopics()...); err != nil {
		return nil, err
	}

	c.kafkaReader = stream.NewReader(stream.ReaderConfig{
		Brokers: c.config.KafkaBrokers(),
		GroupID: c.config.KafkaConsumerGroupID,
		Topics:  registry.Topics(),
	})

	return stream.NewConsumer(
		c.kafkaReader,
		registry,
		c.config.ConsumerRetryInterval,
		businessMetrics,
		c.Logger(),
	), nil
}
