package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/contextly-dev/contextly/internal/config"
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

type recordingRunner struct {
	ran     chan uuid.UUID
	panicOn uuid.UUID
}

func (r *recordingRunner) Run(ctx context.Context, videoID uuid.UUID) {
	r.ran <- videoID
	if videoID == r.panicOn {
		panic("pipeline blew up")
	}
}

func dispatcherConfig(queueSize, workers int) *config.Config {
	return &config.Config{
		Worker: config.WorkerConfig{WorkerCount: workers},
		Jobs:   config.JobsConfig{QueueSize: queueSize},
	}
}

func TestSubmitQueueFull(t *testing.T) {
	d := NewDispatcher(dispatcherConfig(1, 1), &recordingRunner{ran: make(chan uuid.UUID, 8)}, nopLogger{})
	// No workers started, so the buffered slot is the whole capacity.
	if err := d.Submit(uuid.New()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := d.Submit(uuid.New()); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestDispatcherRunsSubmittedJobs(t *testing.T) {
	runner := &recordingRunner{ran: make(chan uuid.UUID, 8)}
	d := NewDispatcher(dispatcherConfig(4, 2), runner, nopLogger{})
	d.Start(context.Background())

	id := uuid.New()
	if err := d.Submit(id); err != nil {
		t.Fatalf("submit: %v", err)
	}

	select {
	case got := <-runner.ran:
		if got != id {
			t.Errorf("ran %s, want %s", got, id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
	d.Stop()
}

func TestDispatcherSurvivesPanickingJob(t *testing.T) {
	bad := uuid.New()
	good := uuid.New()
	runner := &recordingRunner{ran: make(chan uuid.UUID, 8), panicOn: bad}
	d := NewDispatcher(dispatcherConfig(4, 1), runner, nopLogger{})
	d.Start(context.Background())

	if err := d.Submit(bad); err != nil {
		t.Fatalf("submit bad: %v", err)
	}
	if err := d.Submit(good); err != nil {
		t.Fatalf("submit good: %v", err)
	}

	seen := map[uuid.UUID]bool{}
	for i := 0; i < 2; i++ {
		select {
		case id := <-runner.ran:
			seen[id] = true
		case <-time.After(2 * time.Second):
			t.Fatal("worker died after panic")
		}
	}
	if !seen[bad] || !seen[good] {
		t.Errorf("expected both jobs to run, got %v", seen)
	}
	d.Stop()
}

func TestStopDrainsQueue(t *testing.T) {
	runner := &recordingRunner{ran: make(chan uuid.UUID, 8)}
	d := NewDispatcher(dispatcherConfig(4, 1), runner, nopLogger{})
	d.Start(context.Background())

	for i := 0; i < 3; i++ {
		if err := d.Submit(uuid.New()); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	d.Stop()

	if got := len(runner.ran); got != 3 {
		t.Errorf("ran %d jobs before Stop returned, want 3", got)
	}
}
