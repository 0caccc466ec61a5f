package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/contextly-dev/contextly/internal/models"
)

// nopLogger satisfies logger.Logger for tests without emitting output.
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

// fakeExecutor records every invocation and delegates to the configured
// callbacks.
type fakeExecutor struct {
	mu       sync.Mutex
	calls    [][]string
	run      func(name string, args []string) (string, error)
	runInput func(input, name string, args []string) (string, error)
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()
	if f.run != nil {
		return f.run(name, args)
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteWithInput(ctx context.Context, input string, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()
	if f.runInput != nil {
		return f.runInput(input, name, args)
	}
	return "", nil
}

func (f *fakeExecutor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeStore is an in-memory Store that records the sequence of persisted
// statuses.
type fakeStore struct {
	mu        sync.Mutex
	videos    map[uuid.UUID]*models.Video
	statusLog []string
	updateErr error
}

func newFakeStore(videos ...*models.Video) *fakeStore {
	s := &fakeStore{videos: make(map[uuid.UUID]*models.Video)}
	for _, v := range videos {
		s.videos[v.VideoID] = v
	}
	return s
}

// Reads and writes copy the record, matching database semantics: a snapshot
// held by a caller does not observe later writes.
func (s *fakeStore) GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	video, ok := s.videos[videoID]
	if !ok {
		return nil, fmt.Errorf("video %s not found", videoID)
	}
	snapshot := *video
	return &snapshot, nil
}

func (s *fakeStore) UpdateVideo(ctx context.Context, video *models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	record := *video
	s.videos[record.VideoID] = &record
	return nil
}

func (s *fakeStore) UpdateStatus(ctx context.Context, videoID uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if video, ok := s.videos[videoID]; ok {
		video.Status = status
	}
	s.statusLog = append(s.statusLog, status)
	return nil
}

func (s *fakeStore) statuses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.statusLog...)
}

type fakeCache struct {
	mu       sync.Mutex
	statuses map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{statuses: make(map[string]string)}
}

func (c *fakeCache) SetStatus(ctx context.Context, videoID string, status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses[videoID] = status
	return nil
}
