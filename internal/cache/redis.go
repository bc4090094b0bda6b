package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/amity-dating/amity/internal/config"
	"github.com/redis/go-redis/v9"
)

// Captcha challenges are short-lived by design.
const captchaTTL = 5 * time.Minute

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func keyForCaptcha(id int64) string {
	return fmt.Sprintf("captcha:%d", id)
}

// CreateCaptcha stores the expected text under a fresh id with a TTL and
// returns the id.
func (c *RedisCache) CreateCaptcha(ctx context.Context, text string) (int64, error) {
	id, err := c.Client.Incr(ctx, "captcha:seq").Result()
	if err != nil {
		return 0, err
	}
	if err := c.Client.Set(ctx, keyForCaptcha(id), text, captchaTTL).Err(); err != nil {
		return 0, err
	}
	return id, nil
}

// ConsumeCaptcha fetches and deletes a challenge in one round trip.
// GETDEL is atomic on the server, so two concurrent logins racing on the same
// challenge id can never both observe the text.
func (c *RedisCache) ConsumeCaptcha(ctx context.Context, id int64) (string, bool, error) {
	text, err := c.Client.GetDel(ctx, keyForCaptcha(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func keyForProfileViews(userID uint64) string {
	return fmt.Sprintf("profile:views:%d", userID)
}

// IncrProfileViews bumps the view counter for a profile.
func (c *RedisCache) IncrProfileViews(ctx context.Context, userID uint64) (int64, error) {
	return c.Client.Incr(ctx, keyForProfileViews(userID)).Result()
}

// GetProfileViews reads the view counter; a missing key counts as zero.
func (c *RedisCache) GetProfileViews(ctx context.Context, userID uint64) (int64, error) {
	val, err := c.Client.Get(ctx, keyForProfileViews(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
