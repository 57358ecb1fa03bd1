package session

import (
	"context"
	"fmt"
	"time"

	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/freshfold/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewPendingOrderStore creates a pending-order store based on the configured
// session backend. The redis backend is required for multi-instance
// deployments; memory keeps staged bookings local to one process.
func NewPendingOrderStore(cfg *config.Config, logger *zap.Logger) (booking.PendingOrderStore, error) {
	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis for session store: %w", err)
		}

		logger.Info("using Redis pending-order store",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Duration("ttl", cfg.Session.PendingOrderTTL),
		)
		return NewRedisPendingOrderStore(client, cfg.Session.PendingOrderTTL), nil

	case "memory":
		logger.Info("using in-memory pending-order store",
			zap.Duration("ttl", cfg.Session.PendingOrderTTL),
		)
		return NewInMemoryPendingOrderStore(cfg.Session.PendingOrderTTL), nil

	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
