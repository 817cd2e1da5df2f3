package realtime

import (
	"context"
	"fmt"

	"campus-storefront/changefeed"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaSource reads change events from one topic written by the feed relay.
type KafkaSource struct {
	Reader MessageReader
}

func NewKafkaSource(reader MessageReader) *KafkaSource {
	return &KafkaSource{Reader: reader}
}

func (s *KafkaSource) Read(ctx context.Context) (changefeed.Event, error) {
	message, err := s.Reader.ReadMessage(ctx)
	if err != nil {
		return changefeed.Event{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	evt, err := changefeed.Decode(message.Value)
	if err != nil {
		return changefeed.Event{}, fmt.Errorf("topic %s offset %d: %w", message.Topic, message.Offset, err)
	}
	return evt, nil
}

func (s *KafkaSource) Close() error {
	return s.Reader.Close()
}
