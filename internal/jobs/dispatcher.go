package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/pkg/logger"
	"github.com/contextly-dev/contextly/pkg/utils"
)

// ErrQueueFull is returned by Submit when the bounded job queue is saturated.
var ErrQueueFull = errors.New("job queue is full")

const cpuCheckInterval = 5 * time.Second

// Runner executes the pipeline for one job record.
type Runner interface {
	Run(ctx context.Context, videoID uuid.UUID)
}

// Dispatcher is the bounded in-process pool behind fire-and-forget job
// submission. A fixed number of workers drain a buffered queue; each job runs
// inside a recover boundary so one panicking pipeline cannot take down its
// siblings or the process.
type Dispatcher struct {
	cfg    *config.Config
	runner Runner
	logger logger.Logger
	queue  chan uuid.UUID
	wg     sync.WaitGroup
}

func NewDispatcher(cfg *config.Config, runner Runner, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		runner: runner,
		logger: log,
		queue:  make(chan uuid.UUID, cfg.Jobs.QueueSize),
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Infof("starting %d pipeline workers", d.cfg.Worker.WorkerCount)
	for i := 0; i < d.cfg.Worker.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Submit enqueues a job without blocking the caller.
func (d *Dispatcher) Submit(videoID uuid.UUID) error {
	select {
	case d.queue <- videoID:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (d *Dispatcher) Stop() {
	close(d.queue)
	d.wg.Wait()
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case videoID, ok := <-d.queue:
			if !ok {
				return
			}
			d.waitForCapacity(ctx)
			d.runJob(ctx, videoID)
		}
	}
}

// waitForCapacity gates heavy work behind the configured CPU ceiling. A
// ceiling of zero disables the check.
func (d *Dispatcher) waitForCapacity(ctx context.Context) {
	if d.cfg.Worker.MaxCPUUsage <= 0 {
		return
	}
	for {
		canAcceptJob, usage := utils.CheckCPUUsage(d.cfg.Worker.MaxCPUUsage)
		if canAcceptJob {
			return
		}
		d.logger.Infof("CPU usage is high: %.1f, delaying job", usage)
		select {
		case <-ctx.Done():
			return
		case <-time.After(cpuCheckInterval):
		}
	}
}

func (d *Dispatcher) runJob(ctx context.Context, videoID uuid.UUID) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorf("job %s panicked: %v", videoID, r)
		}
	}()
	d.runner.Run(ctx, videoID)
}
