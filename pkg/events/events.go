package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"casino-server/pkg/playable"
)

// DefaultChannel is the Redis channel settlements are published on
const DefaultChannel = "casino:rounds"

// RoundSettled is published after every settled round
type RoundSettled struct {
	RoundID  int64            `json:"roundId,string"`
	PlayerID string           `json:"playerId"`
	Game     string           `json:"game"`
	Bet      int              `json:"bet"`
	Payout   int              `json:"payout"`
	Outcome  playable.Outcome `json:"outcome"`
	Balance  int              `json:"balance"`
}

// Publisher broadcasts settlement events
type Publisher interface {
	Publish(ctx context.Context, e RoundSettled) error
	Close() error
}

// Nop discards every event
type Nop struct{}

// Publish does nothing
func (Nop) Publish(context.Context, RoundSettled) error { return nil }

// Close does nothing
func (Nop) Close() error { return nil }

// Redis publishes events on a Redis channel
type Redis struct {
	rdb     *redis.Client
	channel string
}

// NewRedis connects to addr and verifies the connection
func NewRedis(ctx context.Context, addr, channel string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return NewRedisWithClient(rdb, channel), nil
}

// NewRedisWithClient wraps an existing client
func NewRedisWithClient(rdb *redis.Client, channel string) *Redis {
	if channel == "" {
		channel = DefaultChannel
	}

	return &Redis{rdb: rdb, channel: channel}
}

// Publish sends the event as JSON
func (r *Redis) Publish(ctx context.Context, e RoundSettled) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	return r.rdb.Publish(ctx, r.channel, payload).Err()
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Connect returns a Redis publisher when addr is set, otherwise Nop
// A Redis that cannot be reached is logged and replaced with Nop
func Connect(ctx context.Context, addr, channel string) Publisher {
	if addr == "" {
		return Nop{}
	}

	r, err := NewRedis(ctx, addr, channel)
	if err != nil {
		logrus.WithError(err).WithField("addr", addr).Warn("redis unavailable, events disabled")
		return Nop{}
	}

	logrus.WithFields(logrus.Fields{"addr": addr, "channel": r.channel}).Info("publishing round events")
	return r
}
