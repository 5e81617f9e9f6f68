package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	producer := NewProducer(writer, "recommendations")

	err := producer.Publish(context.Background(), "url-schema", []byte("key"), []byte(`{"service":"recommendations"}`))

	require.NoError(t, err)
	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "url-schema", msg.Topic)
	assert.Equal(t, []byte("key"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, ProducerHeader, msg.Headers[0].Key)
	assert.Equal(t, []byte("recommendations"), msg.Headers[0].Value)

	require.NoError(t, producer.Close())
	assert.True(t, writer.closed)
}

func TestProducer_PublishError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("leader not available")}
	producer := NewProducer(writer, "recommendations")

	err := producer.Publish(context.Background(), "url-schema", nil, []byte(`{}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "url-schema")
}

func TestNewWriterAndReader(t *testing.T) {
	writer := NewWriter([]string{"localhost:9092"})
	assert.Equal(t, "localhost:9092", writer.Addr.String())
	assert.NoError(t, writer.Close())

	reader := NewReader(ReaderConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "recommendations",
		Topics:  []string{"notifications", "platform-status"},
	})
	assert.Equal(t, "recommendations", reader.Config().GroupID)
	assert.Equal(t, []string{"notifications", "platform-status"}, reader.Config().GroupTopics)
	assert.NoError(t, reader.Close())
}
