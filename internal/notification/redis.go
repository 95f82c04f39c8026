package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"loan-origination-backend/internal/domain/application"
)

const publishTimeout = 2 * time.Second

// RedisNotifier publishes StatusChanged events to a redis channel. Downstream
// consumers (mail, SMS, back-office feeds) subscribe out of process.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel}
}

func (n *RedisNotifier) NotifyStatusChange(ctx context.Context, a *application.Application) error {
	evt := StatusChanged{
		EventID:           uuid.New().String(),
		ApplicationNumber: a.ApplicationNumber,
		CustomerID:        a.CustomerID,
		Status:            a.Status,
		StatusLabel:       application.StatusLabel(a.Status),
		OccurredAt:        time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return n.rdb.Publish(ctx, n.channel, payload).Err()
}
