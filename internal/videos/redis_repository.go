package videos

import "context"

type RedisRepository interface {
	SetStatus(ctx context.Context, videoID string, status string) error
	GetStatus(ctx context.Context, videoID string) (string, error)
	DeleteStatus(ctx context.Context, videoID string) error
}
