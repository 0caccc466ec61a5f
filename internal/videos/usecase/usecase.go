package usecase

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/internal/models"
	"github.com/contextly-dev/contextly/internal/videos"
	"github.com/contextly-dev/contextly/pkg/logger"
	"github.com/contextly-dev/contextly/pkg/utils"
)

type videoUC struct {
	cfg        *config.Config
	videoRepo  videos.Repository
	redisRepo  videos.RedisRepository
	dispatcher videos.Dispatcher
	logger     logger.Logger
}

func NewVideoUseCase(
	cfg *config.Config,
	videoRepo videos.Repository,
	redisRepo videos.RedisRepository,
	dispatcher videos.Dispatcher,
	log logger.Logger,
) videos.UseCase {
	return &videoUC{
		cfg:        cfg,
		videoRepo:  videoRepo,
		redisRepo:  redisRepo,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// SubmitDownload creates the job record and schedules the pipeline. The
// request returns immediately; progress is observed by polling the record.
// A URL already submitted by the same owner is rejected before a record is
// created, which is what guarantees one orchestrator run per job id.
func (v *videoUC) SubmitDownload(ctx context.Context, input *models.DownloadInput) (*models.Video, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		v.logger.Errorf("SubmitDownload - GetUserFromCtx: %v", err)
		return nil, err
	}
	if err = utils.ValidateStruct(ctx, input); err != nil {
		v.logger.Errorf("SubmitDownload - ValidateStruct: %v", err)
		return nil, errors.Wrap(err, "invalid input")
	}

	existing, err := v.videoRepo.GetVideoByURL(ctx, user.UserID, input.URL)
	if err != nil && !errors.Is(err, sql.ErrNoRows) && !errors.Is(errors.Cause(err), sql.ErrNoRows) {
		v.logger.Errorf("SubmitDownload - GetVideoByURL: %v", err)
		return nil, errors.Wrap(err, "failed to check existing video")
	}
	if existing != nil {
		v.logger.Infof("video already exists: %s", existing.VideoID)
		return existing, videos.ErrAlreadyExists
	}

	video, err := v.videoRepo.CreateVideo(ctx, &models.Video{
		UserID: user.UserID,
		URL:    input.URL,
	})
	if err != nil {
		v.logger.Errorf("SubmitDownload - CreateVideo: %v", err)
		return nil, errors.Wrap(err, "failed to create video")
	}

	if err = v.dispatcher.Submit(video.VideoID); err != nil {
		// Roll the record back so a retry is not treated as a duplicate.
		if delErr := v.videoRepo.DeleteVideo(ctx, video.VideoID); delErr != nil {
			v.logger.Errorf("SubmitDownload - rollback: %v", delErr)
		}
		v.logger.Errorf("SubmitDownload - Submit: %v", err)
		return nil, errors.Wrap(err, "failed to schedule job")
	}

	v.logger.Infof("loading %s as job %s", video.URL, video.VideoID)
	return video, nil
}

func (v *videoUC) GetVideo(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	video, err := v.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch video")
	}
	if video.UserID != user.UserID {
		v.logger.Warnf("user %s is not authorized to access video %s", user.UserID, videoID)
		return nil, errors.New("unauthorized access to video")
	}
	return video, nil
}

// GetStatus prefers the redis mirror over the postgres record; the mirror is
// refreshed on every stage transition and download tick.
func (v *videoUC) GetStatus(ctx context.Context, videoID uuid.UUID) (string, error) {
	video, err := v.GetVideo(ctx, videoID)
	if err != nil {
		return "", err
	}
	if status, err := v.redisRepo.GetStatus(ctx, videoID.String()); err == nil && status != "" {
		return status, nil
	}
	return video.Status, nil
}

func (v *videoUC) ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if pagination == nil {
		pagination = &utils.Pagination{Page: 1, Size: 10}
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Size < 1 || pagination.Size > 100 {
		pagination.Size = 10
	}
	videoList, err := v.videoRepo.GetVideos(ctx, user.UserID, pagination)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch videos")
	}
	return videoList, nil
}

// DeleteVideo removes the record, the status mirror and the whole on-disk
// artifact tree for the job.
func (v *videoUC) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	video, err := v.GetVideo(ctx, videoID)
	if err != nil {
		return err
	}
	if err = v.videoRepo.DeleteVideo(ctx, video.VideoID); err != nil {
		return errors.Wrap(err, "failed to delete video")
	}
	if err = v.redisRepo.DeleteStatus(ctx, video.VideoID.String()); err != nil {
		v.logger.Warnf("DeleteVideo - DeleteStatus: %v", err)
	}
	if err = os.RemoveAll(filepath.Join(v.cfg.Jobs.Root, video.VideoID.String())); err != nil {
		v.logger.Warnf("DeleteVideo - RemoveAll: %v", err)
	}
	return nil
}
