package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/internal/models"
	"github.com/contextly-dev/contextly/pkg/executor"
	"github.com/contextly-dev/contextly/pkg/logger"
)

// Stage seams. The real implementations live in this package; the
// orchestrator only depends on the behavior so one job's stages can be
// swapped out in tests.
type mediaFetcher interface {
	Fetch(ctx context.Context, video *models.Video) error
}

type audioSplitter interface {
	Split(ctx context.Context, videoPath, outDir string) ([]string, error)
}

type speechTranscriber interface {
	Transcribe(ctx context.Context, chunkPaths []string) (string, error)
}

type textSummarizer interface {
	Load(ctx context.Context) error
	Summarize(ctx context.Context, text string) (string, error)
}

// Orchestrator drives the full pipeline for one job record:
// fetch -> split -> transcribe -> summarize -> done. Every stage transition
// is persisted before the next stage begins. Fetch, split and transcribe
// failures end the job in the failed state; a summarization failure is
// swallowed and the job still finishes without a description.
type Orchestrator struct {
	cfg    *config.Config
	store  Store
	cache  StatusCache
	logger logger.Logger

	newFetcher     func(r *ProgressReporter) mediaFetcher
	splitter       audioSplitter
	newTranscriber func() (speechTranscriber, error)
	summarizer     textSummarizer
}

func NewOrchestrator(cfg *config.Config, store Store, cache StatusCache, modelStore ModelStore, exec executor.Executor, log logger.Logger) *Orchestrator {
	probe := NewMediaProbe(cfg, exec)
	return &Orchestrator{
		cfg:    cfg,
		store:  store,
		cache:  cache,
		logger: log,
		newFetcher: func(r *ProgressReporter) mediaFetcher {
			return NewMediaFetcher(cfg, r, exec, log)
		},
		splitter: NewAudioSplitter(cfg, probe, exec, log),
		newTranscriber: func() (speechTranscriber, error) {
			return NewTranscriber(cfg, exec, log)
		},
		summarizer: NewSummarizer(cfg, modelStore, exec, log),
	}
}

// Run executes the pipeline for videoID. It is launched fire-and-forget by
// the jobs dispatcher; the submitting request has long since returned, so
// failures surface only through the persisted record.
func (o *Orchestrator) Run(ctx context.Context, videoID uuid.UUID) {
	video, err := o.store.GetVideoByID(ctx, videoID)
	if err != nil {
		o.logger.Errorf("job %s: record not found: %v", videoID, err)
		return
	}
	o.logger.Infof("job %s: loading %s", videoID, video.URL)

	reporter := NewProgressReporter(o.store, o.cache, o.logger)
	reporter.Start(ctx)
	err = o.newFetcher(reporter).Fetch(ctx, video)
	reporter.Stop()
	if err != nil {
		o.fail(ctx, video, err)
		return
	}

	// Reload: the reporter updated title/status while the fetch ran.
	if video, err = o.store.GetVideoByID(ctx, videoID); err != nil {
		o.logger.Errorf("job %s: reload failed: %v", videoID, err)
		return
	}

	o.setStatus(ctx, video, models.StatusTranscribe)
	chunks, err := o.splitter.Split(ctx, VideoPath(o.cfg.Jobs.Root, videoID), AudioDir(o.cfg.Jobs.Root, videoID))
	if err != nil {
		o.fail(ctx, video, err)
		return
	}
	video.AudioChunks = len(chunks)
	if err = o.store.UpdateVideo(ctx, video); err != nil {
		o.logger.Errorf("job %s: persist chunk count: %v", videoID, err)
		return
	}

	transcriber, err := o.newTranscriber()
	if err != nil {
		o.fail(ctx, video, err)
		return
	}
	transcript, err := transcriber.Transcribe(ctx, chunks)
	if err != nil {
		o.fail(ctx, video, err)
		return
	}
	video.Transcript = transcript
	if err = o.store.UpdateVideo(ctx, video); err != nil {
		o.logger.Errorf("job %s: persist transcript: %v", videoID, err)
		return
	}

	o.setStatus(ctx, video, models.StatusSummarize)
	if summary, err := o.summarize(ctx, transcript); err != nil {
		// Non-fatal: the job completes without a description.
		o.logger.Errorf("job %s: summarize: %v", videoID, err)
	} else {
		video.Description = summary
		if err = o.store.UpdateVideo(ctx, video); err != nil {
			o.logger.Errorf("job %s: persist description: %v", videoID, err)
		}
	}

	o.setStatus(ctx, video, models.StatusDone)
	o.logger.Infof("job %s: done", videoID)
}

func (o *Orchestrator) summarize(ctx context.Context, text string) (string, error) {
	if err := o.summarizer.Load(ctx); err != nil {
		return "", err
	}
	return o.summarizer.Summarize(ctx, text)
}

func (o *Orchestrator) setStatus(ctx context.Context, video *models.Video, status string) {
	video.Status = status
	if err := o.store.UpdateStatus(ctx, video.VideoID, status); err != nil {
		o.logger.Errorf("job %s: persist status %s: %v", video.VideoID, status, err)
	}
	if err := o.cache.SetStatus(ctx, video.VideoID.String(), status); err != nil {
		o.logger.Warnf("job %s: cache status %s: %v", video.VideoID, status, err)
	}
}

func (o *Orchestrator) fail(ctx context.Context, video *models.Video, cause error) {
	o.logger.Errorf("job %s: %v", video.VideoID, cause)
	// Reload so a stale snapshot cannot wipe fields the reporter persisted
	// mid-fetch (title, downloading ticks).
	if fresh, err := o.store.GetVideoByID(ctx, video.VideoID); err == nil {
		video = fresh
	}
	video.Status = models.StatusFailed
	video.ErrorMessage = cause.Error()
	if err := o.store.UpdateVideo(ctx, video); err != nil {
		o.logger.Errorf("job %s: persist failed state: %v", video.VideoID, err)
	}
	if err := o.cache.SetStatus(ctx, video.VideoID.String(), models.StatusFailed); err != nil {
		o.logger.Warnf("job %s: cache failed state: %v", video.VideoID, err)
	}
}
