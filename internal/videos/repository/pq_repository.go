package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/contextly-dev/contextly/internal/models"
	"github.com/contextly-dev/contextly/internal/videos"
	"github.com/contextly-dev/contextly/pkg/utils"
)

type videoRepo struct {
	db *sqlx.DB
}

func NewVideoRepo(db *sqlx.DB) videos.Repository {
	return &videoRepo{
		db: db,
	}
}

func (v *videoRepo) CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	created := &models.Video{}
	if err := v.db.QueryRowxContext(
		ctx,
		createVideoQuery,
		video.UserID,
		video.URL,
		models.StatusCreate,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return created, nil
}

func (v *videoRepo) GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	video := &models.Video{}
	if err := v.db.QueryRowxContext(
		ctx,
		getVideoByIDQuery,
		videoID,
	).StructScan(video); err != nil {
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}
	return video, nil
}

func (v *videoRepo) GetVideoByURL(ctx context.Context, userID uuid.UUID, url string) (*models.Video, error) {
	video := &models.Video{}
	if err := v.db.QueryRowxContext(
		ctx,
		getVideoByURLQuery,
		userID,
		url,
	).StructScan(video); err != nil {
		return nil, fmt.Errorf("failed to get video by url: %w", err)
	}
	return video, nil
}

func (v *videoRepo) GetVideos(ctx context.Context, userID uuid.UUID, query *utils.Pagination) (*models.VideoList, error) {
	var totalCount int
	if err := v.db.GetContext(
		ctx,
		&totalCount,
		getTotalVideosByUserIDQuery,
		userID,
	); err != nil {
		return nil, fmt.Errorf("failed to get total videos count: %w", err)
	}
	if totalCount == 0 {
		return &models.VideoList{
			Videos:     make([]*models.Video, 0),
			TotalCount: 0,
			Page:       query.GetPage(),
			PageSize:   query.GetSize(),
			HasMore:    false,
		}, nil
	}
	rows, err := v.db.QueryxContext(
		ctx,
		getVideosByUserIDQuery,
		userID,
		query.GetOffset(),
		query.GetLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos by user id: %w", err)
	}
	defer rows.Close()
	var videoList = make([]*models.Video, 0, query.GetSize())
	for rows.Next() {
		var video models.Video
		if err = rows.StructScan(&video); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videoList = append(videoList, &video)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan videos: %w", err)
	}
	return &models.VideoList{
		Videos:     videoList,
		TotalCount: totalCount,
		Page:       query.GetPage(),
		PageSize:   query.GetSize(),
		HasMore:    utils.GetHasMore(query.GetPage(), totalCount, query.GetSize()),
	}, nil
}

func (v *videoRepo) UpdateVideo(ctx context.Context, video *models.Video) error {
	res, err := v.db.ExecContext(
		ctx,
		updateVideoQuery,
		video.Title,
		video.Description,
		video.Transcript,
		video.Status,
		video.AudioChunks,
		video.ErrorMessage,
		video.VideoID,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return fmt.Errorf("no video found to update")
	}
	return nil
}

func (v *videoRepo) UpdateStatus(ctx context.Context, videoID uuid.UUID, status string) error {
	if _, err := v.db.ExecContext(
		ctx,
		updateStatusQuery,
		status,
		videoID,
	); err != nil {
		return fmt.Errorf("failed to update video status: %w", err)
	}
	return nil
}

func (v *videoRepo) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	res, err := v.db.ExecContext(
		ctx,
		deleteVideoQuery,
		videoID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return fmt.Errorf("no video found to delete")
	}
	return nil
}
