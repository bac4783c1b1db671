package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
)

// Publisher pushes serialized lead events onto a Redis channel for the
// auction consumer. Delivery semantics above it (retries, at-least-once)
// live in the outbox dispatcher.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload []byte) error
	Close() error
}

type publisher struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewPublisher(log *logger.Logger, addr, channel string) (Publisher, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = "lead-events"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &publisher{
		log:     log.With("service", "RedisPublisher"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (p *publisher) Publish(ctx context.Context, eventType string, payload []byte) error {
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

func (p *publisher) Close() error {
	return p.rdb.Close()
}
