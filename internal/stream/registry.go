package stream

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTopic indicates a record arrived on a topic without a handler. It is a
// configuration error and stops the consumer.
var ErrUnknownTopic = errors.New("no handler registered for topic")

// Handler processes one record. Returning an error leaves the offset uncommitted and the
// record is handled again.
type Handler func(ctx context.Context, record Record) error

// Registry maps topics to their handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds handler to topic. A topic can only be registered once.
func (r *Registry) Register(topic string, handler Handler) error {
	if topic == "" {
		return errors.New("topic cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler for topic %q cannot be nil", topic)
	}
	if _, exists := r.handlers[topic]; exists {
		return fmt.Errorf("topic %q is already registered", topic)
	}
	r.handlers[topic] = handler
	return nil
}

// Handler returns the handler bound to topic.
func (r *Registry) Handler(topic string) (Handler, error) {
	handler, ok := r.handlers[topic]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	return handler, nil
}

// Topics returns the registered topics in lexical order.
func (r *Registry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Validate fails when any of the required topics has no handler.
func (r *Registry) Validate(required ...string) error {
	var missing []string
	for _, topic := range required {
		if _, ok := r.handlers[topic]; !ok {
			missing = append(missing, topic)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrUnknownTopic, missing)
	}
	return nil
}
