package pipeline

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/contextly-dev/contextly/internal/models"
)

// Store is the slice of the video repository the pipeline mutates. Every
// write is an immediate persist so pollers observe monotonic progress.
type Store interface {
	GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error)
	UpdateVideo(ctx context.Context, video *models.Video) error
	UpdateStatus(ctx context.Context, videoID uuid.UUID, status string) error
}

// StatusCache mirrors the latest status label for cheap polling. Writes are
// best effort; the postgres record stays authoritative.
type StatusCache interface {
	SetStatus(ctx context.Context, videoID string, status string) error
}

// On-disk artifact layout per job, keyed by the job id:
//
//	{root}/{id}/img/{id}.{ext}
//	{root}/{id}/video/{id}.mp4
//	{root}/{id}/audio/{0..N-1}.mp3
//
// The layout is served verbatim by the static file route, so it is a stable
// contract rather than an implementation detail.

func JobDir(root string, videoID uuid.UUID) string {
	return filepath.Join(root, videoID.String())
}

func ImgDir(root string, videoID uuid.UUID) string {
	return filepath.Join(JobDir(root, videoID), "img")
}

func VideoPath(root string, videoID uuid.UUID) string {
	return filepath.Join(JobDir(root, videoID), "video", videoID.String()+".mp4")
}

func AudioDir(root string, videoID uuid.UUID) string {
	return filepath.Join(JobDir(root, videoID), "audio")
}
