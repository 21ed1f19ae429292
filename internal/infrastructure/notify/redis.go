// Package notify implements the realtime change-notification boundary on
// Redis pub/sub. Notifications are fire-and-forget hints: consumers
// re-fetch on every message and must survive lost or duplicated ones.
package notify

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/franchisedesk/ledger-api/internal/application/billing"
	"github.com/franchisedesk/ledger-api/pkg/config"
	"github.com/franchisedesk/ledger-api/pkg/logger"
)

var _ billing.ChangeNotifier = (*RedisNotifier)(nil)
var _ billing.ChangeSubscriber = (*RedisNotifier)(nil)

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisNotifier publishes and subscribes to per-table, per-franchise
// change channels.
type RedisNotifier struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisNotifier builds the notifier.
func NewRedisNotifier(client *redis.Client, log *logger.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, log: log}
}

func channelName(table, franchiseID string) string {
	return "ledger:" + table + ":" + franchiseID
}

// Publish fires a change notification. Failures are logged, never fatal:
// subscribers fall back to their own periodic re-fetch.
func (n *RedisNotifier) Publish(ctx context.Context, table, franchiseID string) error {
	err := n.client.Publish(ctx, channelName(table, franchiseID), "changed").Err()
	if err != nil {
		n.log.Warn().Err(err).
			Str("table", table).
			Str("franchise_id", franchiseID).
			Msg("publish change notification")
	}
	return err
}

// Subscribe delivers notifications for one table+franchise channel until
// ctx is cancelled. onChange must be an idempotent refresh: duplicate
// messages trigger duplicate (harmless) re-fetches.
func (n *RedisNotifier) Subscribe(ctx context.Context, table, franchiseID string, onChange func()) error {
	sub := n.client.Subscribe(ctx, channelName(table, franchiseID))
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			onChange()
		}
	}
}
