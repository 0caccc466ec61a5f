package usecase

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/internal/jobs"
	"github.com/contextly-dev/contextly/internal/models"
	"github.com/contextly-dev/contextly/internal/videos"
	"github.com/contextly-dev/contextly/pkg/utils"
)

type nopLogger struct{}

func (nopLogger) InitLogger() {}
func (nopLogger) Debug(args ...interface{}) {}
func (nopLogger) Debugf(template string, args ...interface{}) {}
func (nopLogger) Info(args ...interface{}) {}
func (nopLogger) Infof(template string, args ...interface{}) {}
func (nopLogger) Warn(args ...interface{}) {}
func (nopLogger) Warnf(template string, args ...interface{}) {}
func (nopLogger) Error(args ...interface{}) {}
func (nopLogger) Errorf(template string, args ...interface{}) {}
func (nopLogger) Fatal(args ...interface{}) {}
func (nopLogger) Fatalf(template string, args ...interface{}) {}

type fakeVideoRepo struct {
	byID    map[uuid.UUID]*models.Video
	byURL   map[string]*models.Video
	deleted []uuid.UUID
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		byID:  make(map[uuid.UUID]*models.Video),
		byURL: make(map[string]*models.Video),
	}
}

func (r *fakeVideoRepo) CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	video.VideoID = uuid.New()
	video.Status = models.StatusCreate
	r.byID[video.VideoID] = video
	r.byURL[video.URL] = video
	return video, nil
}

func (r *fakeVideoRepo) GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	video, ok := r.byID[videoID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return video, nil
}

func (r *fakeVideoRepo) GetVideoByURL(ctx context.Context, userID uuid.UUID, url string) (*models.Video, error) {
	video, ok := r.byURL[url]
	if !ok || video.UserID != userID {
		return nil, sql.ErrNoRows
	}
	return video, nil
}

func (r *fakeVideoRepo) GetVideos(ctx context.Context, userID uuid.UUID, pagination *utils.Pagination) (*models.VideoList, error) {
	list := &models.VideoList{Page: pagination.Page, PageSize: pagination.Size}
	for _, video := range r.byID {
		if video.UserID == userID {
			list.Videos = append(list.Videos, video)
		}
	}
	list.TotalCount = len(list.Videos)
	return list, nil
}

func (r *fakeVideoRepo) UpdateVideo(ctx context.Context, video *models.Video) error {
	r.byID[video.VideoID] = video
	return nil
}

func (r *fakeVideoRepo) UpdateStatus(ctx context.Context, videoID uuid.UUID, status string) error {
	if video, ok := r.byID[videoID]; ok {
		video.Status = status
	}
	return nil
}

func (r *fakeVideoRepo) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	if video, ok := r.byID[videoID]; ok {
		delete(r.byURL, video.URL)
	}
	delete(r.byID, videoID)
	r.deleted = append(r.deleted, videoID)
	return nil
}

type fakeRedisRepo struct {
	statuses map[string]string
}

func newFakeRedisRepo() *fakeRedisRepo {
	return &fakeRedisRepo{statuses: make(map[string]string)}
}

func (r *fakeRedisRepo) SetStatus(ctx context.Context, videoID string, status string) error {
	r.statuses[videoID] = status
	return nil
}

func (r *fakeRedisRepo) GetStatus(ctx context.Context, videoID string) (string, error) {
	status, ok := r.statuses[videoID]
	if !ok {
		return "", errors.New("not cached")
	}
	return status, nil
}

func (r *fakeRedisRepo) DeleteStatus(ctx context.Context, videoID string) error {
	delete(r.statuses, videoID)
	return nil
}

type fakeDispatcher struct {
	submitted []uuid.UUID
	err       error
}

func (d *fakeDispatcher) Submit(videoID uuid.UUID) error {
	if d.err != nil {
		return d.err
	}
	d.submitted = append(d.submitted, videoID)
	return nil
}

func userContext(user *models.User) context.Context {
	return context.WithValue(context.Background(), utils.UserCtxKey{}, user)
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{Jobs: config.JobsConfig{Root: t.TempDir()}}
}

func TestSubmitDownload(t *testing.T) {
	repo := newFakeVideoRepo()
	dispatcher := &fakeDispatcher{}
	uc := NewVideoUseCase(testConfig(t), repo, newFakeRedisRepo(), dispatcher, nopLogger{})

	user := &models.User{UserID: uuid.New()}
	video, err := uc.SubmitDownload(userContext(user), &models.DownloadInput{URL: "https://example.com/talk"})
	if err != nil {
		t.Fatalf("SubmitDownload: %v", err)
	}
	if video.Status != models.StatusCreate {
		t.Errorf("status = %q, want create", video.Status)
	}
	if len(dispatcher.submitted) != 1 || dispatcher.submitted[0] != video.VideoID {
		t.Errorf("job not scheduled: %v", dispatcher.submitted)
	}
}

func TestSubmitDownloadRejectsDuplicateURL(t *testing.T) {
	repo := newFakeVideoRepo()
	dispatcher := &fakeDispatcher{}
	uc := NewVideoUseCase(testConfig(t), repo, newFakeRedisRepo(), dispatcher, nopLogger{})

	user := &models.User{UserID: uuid.New()}
	ctx := userContext(user)
	first, err := uc.SubmitDownload(ctx, &models.DownloadInput{URL: "https://example.com/talk"})
	if err != nil {
		t.Fatalf("first SubmitDownload: %v", err)
	}

	again, err := uc.SubmitDownload(ctx, &models.DownloadInput{URL: "https://example.com/talk"})
	if !errors.Is(err, videos.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if again == nil || again.VideoID != first.VideoID {
		t.Errorf("duplicate submission must return the existing record")
	}
	if len(dispatcher.submitted) != 1 {
		t.Errorf("duplicate must not schedule a second job")
	}
}

func TestSubmitDownloadRollsBackOnFullQueue(t *testing.T) {
	repo := newFakeVideoRepo()
	dispatcher := &fakeDispatcher{err: jobs.ErrQueueFull}
	uc := NewVideoUseCase(testConfig(t), repo, newFakeRedisRepo(), dispatcher, nopLogger{})

	user := &models.User{UserID: uuid.New()}
	if _, err := uc.SubmitDownload(userContext(user), &models.DownloadInput{URL: "https://example.com/talk"}); err == nil {
		t.Fatal("expected scheduling error")
	}
	if len(repo.deleted) != 1 {
		t.Errorf("record must be rolled back when scheduling fails")
	}
	if len(repo.byID) != 0 {
		t.Errorf("no record should remain after rollback")
	}
}

func TestSubmitDownloadInvalidURL(t *testing.T) {
	uc := NewVideoUseCase(testConfig(t), newFakeVideoRepo(), newFakeRedisRepo(), &fakeDispatcher{}, nopLogger{})
	user := &models.User{UserID: uuid.New()}
	if _, err := uc.SubmitDownload(userContext(user), &models.DownloadInput{URL: "not a url"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGetVideoOwnership(t *testing.T) {
	repo := newFakeVideoRepo()
	uc := NewVideoUseCase(testConfig(t), repo, newFakeRedisRepo(), &fakeDispatcher{}, nopLogger{})

	owner := &models.User{UserID: uuid.New()}
	video, err := uc.SubmitDownload(userContext(owner), &models.DownloadInput{URL: "https://example.com/talk"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err = uc.GetVideo(userContext(owner), video.VideoID); err != nil {
		t.Errorf("owner access: %v", err)
	}

	stranger := &models.User{UserID: uuid.New()}
	if _, err = uc.GetVideo(userContext(stranger), video.VideoID); err == nil {
		t.Error("expected unauthorized error for non-owner")
	}
}

func TestGetStatusPrefersRedisMirror(t *testing.T) {
	repo := newFakeVideoRepo()
	redisRepo := newFakeRedisRepo()
	uc := NewVideoUseCase(testConfig(t), repo, redisRepo, &fakeDispatcher{}, nopLogger{})

	user := &models.User{UserID: uuid.New()}
	ctx := userContext(user)
	video, err := uc.SubmitDownload(ctx, &models.DownloadInput{URL: "https://example.com/talk"})
	if err != nil {
		t.Fatal(err)
	}

	// No mirror entry yet: the persisted record answers.
	status, err := uc.GetStatus(ctx, video.VideoID)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status != models.StatusCreate {
		t.Errorf("status = %q, want create", status)
	}

	redisRepo.statuses[video.VideoID.String()] = "downloading-60%"
	status, err = uc.GetStatus(ctx, video.VideoID)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status != "downloading-60%" {
		t.Errorf("status = %q, want the mirrored tick", status)
	}
}

func TestDeleteVideoRemovesMirror(t *testing.T) {
	repo := newFakeVideoRepo()
	redisRepo := newFakeRedisRepo()
	uc := NewVideoUseCase(testConfig(t), repo, redisRepo, &fakeDispatcher{}, nopLogger{})

	user := &models.User{UserID: uuid.New()}
	ctx := userContext(user)
	video, err := uc.SubmitDownload(ctx, &models.DownloadInput{URL: "https://example.com/talk"})
	if err != nil {
		t.Fatal(err)
	}
	redisRepo.statuses[video.VideoID.String()] = models.StatusDone

	if err = uc.DeleteVideo(ctx, video.VideoID); err != nil {
		t.Fatalf("DeleteVideo: %v", err)
	}
	if _, ok := redisRepo.statuses[video.VideoID.String()]; ok {
		t.Error("status mirror must be removed with the record")
	}
	if _, err = repo.GetVideoByID(ctx, video.VideoID); err == nil {
		t.Error("record must be gone")
	}
}
