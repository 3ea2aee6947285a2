package insights

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSource reads tips from two keys: a list "<prefix>:keys" holding the match order
// and a hash "<prefix>:text" holding key → tip. Keys listed without a hash entry are skipped.
type RedisSource struct {
	redis  *redis.Client
	prefix string
}

func NewRedisSource(client *redis.Client, prefix string) *RedisSource {
	return &RedisSource{redis: client, prefix: prefix}
}

func (s *RedisSource) Load(ctx context.Context) (TipTable, error) {
	keys, err := s.redis.LRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis tip order: %w", err)
	}
	if len(keys) == 0 {
		return TipTable{}, nil
	}

	vals, err := s.redis.HMGet(ctx, s.textKey(), keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis tip text: %w", err)
	}

	table := make(TipTable, 0, len(keys))
	for i, key := range keys {
		text, ok := vals[i].(string)
		if !ok {
			continue
		}
		table = append(table, Tip{Key: key, Text: text})
	}
	return table, nil
}

// Store replaces the tip table in Redis, preserving the given order.
func (s *RedisSource) Store(ctx context.Context, table TipTable) error {
	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, s.orderKey(), s.textKey())
	if len(table) > 0 {
		order := make([]interface{}, len(table))
		fields := make([]interface{}, 0, len(table)*2)
		for i, tip := range table {
			order[i] = tip.Key
			fields = append(fields, tip.Key, tip.Text)
		}
		pipe.RPush(ctx, s.orderKey(), order...)
		pipe.HSet(ctx, s.textKey(), fields...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisSource) orderKey() string {
	return s.prefix + ":keys"
}

func (s *RedisSource) textKey() string {
	return s.prefix + ":text"
}
