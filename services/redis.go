package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	appContext.DefaultService
	redis *redis.Client
}

const REDIS_SVC = "redis_svc"

// Resume positions are kept hot for a month; a learner coming back later
// simply starts the content from zero.
const resumePositionTTL = 30 * 24 * time.Hour

const progressCacheTTL = 10 * time.Minute

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	svc.initRedisClient()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	if svc.redis != nil {
		ctx := context.Background()
		_, err := svc.redis.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}
	return nil
}

func (svc *RedisService) initRedisClient() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	svc.redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
}

func (svc *RedisService) GetClient() *redis.Client {
	return svc.redis
}

func (svc *RedisService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	var data []byte
	var err error

	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		data, err = json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}
	}

	return svc.redis.Set(ctx, key, data, expiration).Err()
}

func (svc *RedisService) Get(ctx context.Context, key string) (string, error) {
	if svc.redis == nil {
		return "", fmt.Errorf("redis client not initialized")
	}

	result, err := svc.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return result, err
}

func (svc *RedisService) GetJSON(ctx context.Context, key string, dest interface{}) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	result, err := svc.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(result), dest)
}

func (svc *RedisService) Delete(ctx context.Context, keys ...string) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return svc.redis.Del(ctx, keys...).Err()
}

func (svc *RedisService) Exists(ctx context.Context, key string) (bool, error) {
	if svc.redis == nil {
		return false, fmt.Errorf("redis client not initialized")
	}

	result, err := svc.redis.Exists(ctx, key).Result()
	return result > 0, err
}

func (svc *RedisService) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return svc.redis.Expire(ctx, key, expiration).Err()
}

func (svc *RedisService) TTL(ctx context.Context, key string) (time.Duration, error) {
	if svc.redis == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	return svc.redis.TTL(ctx, key).Result()
}

func (svc *RedisService) Increment(ctx context.Context, key string) (int64, error) {
	if svc.redis == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	return svc.redis.Incr(ctx, key).Result()
}

func (svc *RedisService) IncrementBy(ctx context.Context, key string, value int64) (int64, error) {
	if svc.redis == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	return svc.redis.IncrBy(ctx, key, value).Result()
}

// Playback resume positions

func resumePositionKey(userID, contentID string) string {
	return fmt.Sprintf("playback:pos:%s:%s", userID, contentID)
}

// SetResumePosition remembers where a learner left off inside one piece of
// time-based content.
func (svc *RedisService) SetResumePosition(ctx context.Context, userID, contentID string, seconds float64) error {
	return svc.Set(ctx, resumePositionKey(userID, contentID), strconv.FormatFloat(seconds, 'f', 2, 64), resumePositionTTL)
}

// GetResumePosition returns the stored playback offset, zero when none exists.
func (svc *RedisService) GetResumePosition(ctx context.Context, userID, contentID string) (float64, error) {
	raw, err := svc.Get(ctx, resumePositionKey(userID, contentID))
	if err != nil || raw == "" {
		return 0, err
	}
	return strconv.ParseFloat(raw, 64)
}

func (svc *RedisService) ClearResumePosition(ctx context.Context, userID, contentID string) error {
	return svc.Delete(ctx, resumePositionKey(userID, contentID))
}

// Progress snapshot cache

func progressCacheKey(userID, sessionID string) string {
	return fmt.Sprintf("progress:%s:%s", userID, sessionID)
}

func (svc *RedisService) CacheProgress(ctx context.Context, userID, sessionID string, snapshot interface{}) error {
	return svc.Set(ctx, progressCacheKey(userID, sessionID), snapshot, progressCacheTTL)
}

func (svc *RedisService) GetCachedProgress(ctx context.Context, userID, sessionID string, dest interface{}) error {
	return svc.GetJSON(ctx, progressCacheKey(userID, sessionID), dest)
}

func (svc *RedisService) InvalidateProgress(ctx context.Context, userID, sessionID string) error {
	return svc.Delete(ctx, progressCacheKey(userID, sessionID))
}
