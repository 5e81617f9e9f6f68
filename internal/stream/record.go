// Package stream consumes and publishes records on Kafka topics.
//
// A Consumer reads one record at a time from a consumer group, dispatches it to the
// handler registered for its topic and commits the offset only after the handler
// succeeded. A failing record is retried until it succeeds, so the group never moves
// past an unprocessed record.
package stream

import (
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Record is a message read from a topic.
type Record struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Time      time.Time
}

// LogAttrs identifies the record in log entries.
func (r Record) LogAttrs() []any {
	return []any{
		slog.String("topic", r.Topic),
		slog.Int("partition", r.Partition),
		slog.Int64("offset", r.Offset),
	}
}

func recordFromMessage(msg kafka.Message) Record {
	headers := make(map[string]string, len(msg.Headers))
	for _, header := range msg.Headers {
		headers[header.Key] = string(header.Value)
	}
	return Record{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Time:      msg.Time,
	}
}
