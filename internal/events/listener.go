package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/pkg/broker"
	"github.com/rasoihq/kitchen-service/pkg/cache"
	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/stream"
)

// Listener consumes collection events from kafka so that every instance
// invalidates its derived-view caches and feeds its local subscribers, not
// just the instance that performed the write.
type Listener struct {
	consumer   *broker.KafkaConsumer
	hub        *stream.Hub
	cache      *cache.RedisClient
	instanceID string
	logger     logger.ZapLogger
}

func NewListener(consumer *broker.KafkaConsumer, hub *stream.Hub, redis *cache.RedisClient, instanceID string, log logger.ZapLogger) *Listener {
	return &Listener{
		consumer:   consumer,
		hub:        hub,
		cache:      redis,
		instanceID: instanceID,
		logger:     log,
	}
}

func (l *Listener) Start(ctx context.Context) {
	l.logger.Info("starting collection event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping collection event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type wireEvent struct {
	stream.Event
	Origin string `json:"origin"`
}

func (l *Listener) processMessage(ctx context.Context, value []byte) {
	var evt wireEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		l.logger.Error("failed to unmarshal collection event", zap.Error(err))
		return
	}

	l.invalidateCaches(ctx, evt.Collection)

	// The writing instance already fed its own hub.
	if evt.Origin == l.instanceID {
		return
	}
	l.hub.Publish(evt.Event)
}

// invalidateCaches drops derived views that read from the changed collection.
func (l *Listener) invalidateCaches(ctx context.Context, collection string) {
	if l.cache == nil {
		return
	}

	var patterns []string
	switch collection {
	case CollectionInventory:
		patterns = []string{"forecast:*", "inventory:list:*"}
	case CollectionRecipes:
		patterns = []string{"forecast:*", "recipes:list:*"}
	case CollectionPlans:
		patterns = []string{"forecast:*"}
	default:
		return
	}

	for _, pattern := range patterns {
		keys, err := l.cache.Client.Keys(ctx, pattern).Result()
		if err != nil {
			l.logger.Error("failed to list cache keys", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		if len(keys) > 0 {
			if err := l.cache.Client.Del(ctx, keys...).Err(); err != nil {
				l.logger.Error("failed to invalidate cache keys", zap.Error(err))
			}
		}
	}
}
