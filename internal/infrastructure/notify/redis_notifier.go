package notify

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockflow-api/internal/application/fulfillment"
)

// ChannelFulfillmentCreated canal Pub/Sub donde se publican los registros nuevos.
const ChannelFulfillmentCreated = "fulfillment.created"

var _ fulfillment.Notifier = (*RedisNotifier)(nil)

// RedisNotifier publica avisos de cumplimiento en Redis Pub/Sub.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier crea el cliente. No conecta hasta el primer uso; usar Ping para verificar.
func NewRedisNotifier(addr, password string, db int) *RedisNotifier {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisNotifier{client: client, channel: ChannelFulfillmentCreated}
}

func (n *RedisNotifier) Ping(ctx context.Context) error {
	return n.client.Ping(ctx).Err()
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

// FulfillmentCreated publica el aviso como JSON.
func (n *RedisNotifier) FulfillmentCreated(ctx context.Context, notice fulfillment.Notice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return err
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publicar %s: %w", n.channel, err)
	}
	return nil
}
