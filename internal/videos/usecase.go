package videos

import (
	"context"

	"github.com/google/uuid"

	"github.com/contextly-dev/contextly/internal/models"
	"github.com/contextly-dev/contextly/pkg/utils"
)

type UseCase interface {
	SubmitDownload(ctx context.Context, input *models.DownloadInput) (*models.Video, error)
	GetVideo(ctx context.Context, videoID uuid.UUID) (*models.Video, error)
	GetStatus(ctx context.Context, videoID uuid.UUID) (string, error)
	ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error)
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error
}
