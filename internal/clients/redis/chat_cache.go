package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

// ChatCache keeps the recent community chat window in a redis list so the
// hot read path skips postgres. Postgres stays the source of truth; cache
// errors degrade to DB reads, never to request failures.
type ChatCache interface {
	Recent(ctx context.Context, limit int) ([]*types.ChatMessage, error)
	Push(ctx context.Context, msg *types.ChatMessage) error
	Close() error
}

type chatCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	key    string
	window int64
}

func NewChatCache(log *logger.Logger, window int) (ChatCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	key := strings.TrimSpace(os.Getenv("REDIS_CHAT_KEY"))
	if key == "" {
		key = "chat:recent"
	}
	if window <= 0 {
		window = 100
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

	return &chatCache{
		log:    log.With("service", "RedisChatCache"),
		rdb:    rdb,
		key:    key,
		window: int64(window),
	}, nil
}

// Recent returns up to limit cached messages oldest first. An empty cache
// returns nil so the caller falls back to the database.
func (c *chatCache) Recent(ctx context.Context, limit int) ([]*types.ChatMessage, error) {
	if c == nil || c.rdb == nil {
		return nil, fmt.Errorf("chat cache not initialized")
	}
	if limit <= 0 || int64(limit) > c.window {
		limit = int(c.window)
	}

	raw, err := c.rdb.LRange(ctx, c.key, int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	out := make([]*types.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg types.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			// A malformed entry poisons the window; drop the key and
			// let the next read repopulate from postgres.
			c.log.Warn("dropping corrupt chat cache window", "error", err)
			_ = c.rdb.Del(ctx, c.key).Err()
			return nil, nil
		}
		out = append(out, &msg)
	}
	return out, nil
}

func (c *chatCache) Push(ctx context.Context, msg *types.ChatMessage) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("chat cache not initialized")
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	pipe := c.rdb.TxPipeline()
	pipe.RPush(ctx, c.key, raw)
	pipe.LTrim(ctx, c.key, -c.window, -1)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *chatCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
