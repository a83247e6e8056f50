package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"wide-toebox-be/pkg/events"
)

// IngestionTopic carries every event the pipeline emits.
const IngestionTopic = "ingestion.events"

type busEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Bus is an in-process pub/sub for ingestion events. Consumers (the NATS
// forwarder, progress reporting) subscribe without coupling to the
// pipeline itself.
type Bus struct {
	pubSub *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, watermill.NopLogger{}),
	}
}

func (b *Bus) Publish(event events.Event) error {
	payload, err := json.Marshal(busEnvelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}
	return b.pubSub.Publish(IngestionTopic, message.NewMessage(watermill.NewUUID(), payload))
}

// Subscribe delivers decoded events to the handler until ctx is done.
// Runs in the caller's goroutine.
func (b *Bus) Subscribe(ctx context.Context, handler func(ctx context.Context, event events.Event)) error {
	messages, err := b.pubSub.Subscribe(ctx, IngestionTopic)
	if err != nil {
		return err
	}

	for msg := range messages {
		var envelope busEnvelope
		if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
			msg.Nack()
			continue
		}
		handler(ctx, events.BaseEvent{
			Type:       envelope.Type,
			Data:       envelope.Data,
			OccurredAt: envelope.OccurredAt,
		})
		msg.Ack()
	}
	return nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
