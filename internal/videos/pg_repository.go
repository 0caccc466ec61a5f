package videos

import (
	"context"

	"github.com/google/uuid"

	"github.com/contextly-dev/contextly/internal/models"
	"github.com/contextly-dev/contextly/pkg/utils"
)

type Repository interface {
	CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error)
	GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error)
	GetVideoByURL(ctx context.Context, userID uuid.UUID, url string) (*models.Video, error)
	GetVideos(ctx context.Context, userID uuid.UUID, pagination *utils.Pagination) (*models.VideoList, error)
	UpdateVideo(ctx context.Context, video *models.Video) error
	UpdateStatus(ctx context.Context, videoID uuid.UUID, status string) error
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error
}
