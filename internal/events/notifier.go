package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/pkg/broker"
	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/stream"
)

// Notifier tells the world a collection changed: the local hub gets the event
// immediately, kafka carries it to other instances. Both legs are best-effort;
// a failed notification never fails the write it describes.
type Notifier interface {
	Notify(ctx context.Context, collection, action, entityID string)
}

type notifier struct {
	hub        *stream.Hub
	producer   *broker.KafkaProducer
	instanceID string
	logger     logger.ZapLogger
}

func NewNotifier(hub *stream.Hub, producer *broker.KafkaProducer, instanceID string, log logger.ZapLogger) Notifier {
	return &notifier{hub: hub, producer: producer, instanceID: instanceID, logger: log}
}

func (n *notifier) Notify(ctx context.Context, collection, action, entityID string) {
	evt := stream.Event{
		Collection: collection,
		Action:     action,
		EntityID:   entityID,
		At:         time.Now(),
	}

	n.hub.Publish(evt)

	if n.producer == nil {
		return
	}

	payload, err := json.Marshal(wireEvent{Event: evt, Origin: n.instanceID})
	if err != nil {
		n.logger.Error("failed to marshal collection event", zap.Error(err))
		return
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.producer.Publish(pubCtx, []byte(collection), payload); err != nil {
			n.logger.Error("failed to publish collection event",
				zap.String("collection", collection),
				zap.String("entity_id", entityID),
				zap.Error(err),
			)
		}
	}()
}

// NopNotifier is used in tests and when kafka is not configured.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, collection, action, entityID string) {}
