package diagnostics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisSink publishes every event to a per-game pub/sub channel, the way
// the teacher's redis.Client keyed live game state per game ID. Unlike
// the teacher's client, this is write-only: the robot never reads
// authoritative state back out of Redis, it only broadcasts its own
// diagnostics for a dashboard or log-shipper to subscribe to.
type RedisSink struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisSink connects to redisURL and returns a Sink that publishes to
// "robotbrain:diagnostics:<gameID>".
func NewRedisSink(redisURL string, log zerolog.Logger) (*RedisSink, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("diagnostics: redis ping: %w", err)
	}
	return &RedisSink{rdb: rdb, log: log}, nil
}

func channelFor(gameID string) string { return "robotbrain:diagnostics:" + gameID }

// Record publishes e as JSON. A publish failure is logged, not returned,
// since diagnostics must never be load-bearing for gameplay.
func (s *RedisSink) Record(ctx context.Context, e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		s.log.Warn().Err(err).Msg("diagnostics: failed to marshal event")
		return
	}
	if err := s.rdb.Publish(ctx, channelFor(e.GameID), payload).Err(); err != nil {
		s.log.Warn().Err(err).Msg("diagnostics: failed to publish event")
	}
}

// Close closes the underlying Redis connection.
func (s *RedisSink) Close() error { return s.rdb.Close() }
