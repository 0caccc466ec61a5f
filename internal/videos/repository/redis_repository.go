package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/contextly-dev/contextly/internal/videos"
)

const statusTTL = 24 * time.Hour

type videoRedisRepo struct {
	redisClient  *redis.Client
	statusPrefix string
}

func NewVideoRedisRepo(redisClient *redis.Client, statusPrefix string) videos.RedisRepository {
	if statusPrefix == "" {
		statusPrefix = "video:status:"
	}
	return &videoRedisRepo{
		redisClient:  redisClient,
		statusPrefix: statusPrefix,
	}
}

func (v *videoRedisRepo) SetStatus(ctx context.Context, videoID string, status string) error {
	if err := v.redisClient.Set(ctx, v.statusPrefix+videoID, status, statusTTL).Err(); err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	return nil
}

func (v *videoRedisRepo) GetStatus(ctx context.Context, videoID string) (string, error) {
	status, err := v.redisClient.Get(ctx, v.statusPrefix+videoID).Result()
	if err != nil {
		return "", fmt.Errorf("failed to get status: %w", err)
	}
	return status, nil
}

func (v *videoRedisRepo) DeleteStatus(ctx context.Context, videoID string) error {
	if err := v.redisClient.Del(ctx, v.statusPrefix+videoID).Err(); err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}
	return nil
}
