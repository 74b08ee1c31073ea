package ws

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PresenceStore persists online/offline transitions.
type PresenceStore interface {
	SetActive(ctx context.Context, id uint, active bool, lastSeen time.Time) error
}

// Tracker consumes registry events and keeps the durable presence state in
// sync. Writes are fire-and-forget: a failed write is logged and the
// registry's in-memory answer stays authoritative for fan-out.
type Tracker struct {
	events <-chan Event
	store  PresenceStore
	redis  *redis.Client
	logger *zap.Logger
}

func NewTracker(events <-chan Event, store PresenceStore, redisClient *redis.Client, logger *zap.Logger) *Tracker {
	return &Tracker{
		events: events,
		store:  store,
		redis:  redisClient,
		logger: logger,
	}
}

// Run processes events until the context is cancelled.
func (t *Tracker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-t.events:
			t.apply(ctx, ev)
		}
	}
}

func (t *Tracker) apply(ctx context.Context, ev Event) {
	online := ev.Type != EventOffline

	if err := t.store.SetActive(ctx, ev.UserID, online, ev.At); err != nil {
		t.logger.Warn("failed to persist presence transition",
			zap.Uint("userId", ev.UserID),
			zap.String("event", string(ev.Type)),
			zap.Error(err))
	}

	if t.redis == nil {
		return
	}

	key := fmt.Sprintf("presence:%d", ev.UserID)
	var err error
	if online {
		err = t.redis.Set(ctx, key, "ONLINE", 0).Err()
	} else {
		err = t.redis.Del(ctx, key).Err()
	}
	if err != nil {
		t.logger.Warn("failed to update presence cache",
			zap.Uint("userId", ev.UserID),
			zap.Error(err))
	}
}
