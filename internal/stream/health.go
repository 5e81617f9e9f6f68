package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrNoBrokers is returned when the cluster metadata lists no broker.
var ErrNoBrokers = errors.New("kafka metadata lists no brokers")

// MetadataFetcher is the subset of *kafka.Client used by BrokerCheck.
type MetadataFetcher interface {
	Metadata(ctx context.Context, req *kafka.MetadataRequest) (*kafka.MetadataResponse, error)
}

// NewClient creates an admin client for brokers.
func NewClient(brokers []string) *kafka.Client {
	return &kafka.Client{
		Addr:    kafka.TCP(brokers...),
		Timeout: 5 * time.Second,
	}
}

// BrokerCheck returns a readiness check that lists the cluster topics. It fails when the
// brokers cannot be reached or report no broker.
func BrokerCheck(client MetadataFetcher) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		resp, err := client.Metadata(ctx, &kafka.MetadataRequest{})
		if err != nil {
			return fmt.Errorf("failed to fetch kafka metadata: %w", err)
		}
		if len(resp.Brokers) == 0 {
			return ErrNoBrokers
		}
		return nil
	}
}
