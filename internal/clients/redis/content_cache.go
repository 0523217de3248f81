package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/types"
)

// ContentCache is a read-through cache in front of the generated_content
// table. Postgres stays authoritative; a cold or down Redis only costs a
// database read.
type ContentCache interface {
	GetContent(ctx context.Context, lessonID uint, style string) (*types.GeneratedContent, error)
	SetContent(ctx context.Context, content *types.GeneratedContent) error
	Close() error
}

type contentCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewContentCache(log *logger.Logger) (ContentCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := 15 * time.Minute
	if v := strings.TrimSpace(os.Getenv("REDIS_CONTENT_TTL_SECONDS")); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil && d > 0 {
			ttl = d
		}
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

	return &contentCache{
		log: log.With("client", "RedisContentCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func contentKey(lessonID uint, style string) string {
	return fmt.Sprintf("content:%d:%s", lessonID, style)
}

func (c *contentCache) GetContent(ctx context.Context, lessonID uint, style string) (*types.GeneratedContent, error) {
	raw, err := c.rdb.Get(ctx, contentKey(lessonID, style)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var row types.GeneratedContent
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("redis content decode: %w", err)
	}
	return &row, nil
}

func (c *contentCache) SetContent(ctx context.Context, content *types.GeneratedContent) error {
	if content == nil {
		return nil
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, contentKey(content.LessonID, content.Style), raw, c.ttl).Err()
}

func (c *contentCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
