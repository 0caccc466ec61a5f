package pipeline

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/contextly-dev/contextly/internal/models"
	"github.com/contextly-dev/contextly/pkg/logger"
)

// ProgressEvent is one status tick emitted by the download engine mid-fetch.
// Ephemeral; consumed once by the ProgressReporter.
type ProgressEvent struct {
	Status          string
	Filename        string
	DownloadedBytes int64
	TotalBytes      int64
	Title           string
}

// jobIDPattern recovers the job id embedded in the engine's output filename.
// The engine's progress callback carries no caller context, so the output
// path template is the integration contract: it always contains the job uuid.
var jobIDPattern = regexp.MustCompile(`[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`)

// parseJobID is the single seam for filename-embedded identity. Replace this
// if the download engine ever grows a real context-passing callback API.
func parseJobID(filename string) (uuid.UUID, error) {
	match := jobIDPattern.FindString(filename)
	if match == "" {
		return uuid.Nil, fmt.Errorf("no job id in filename %q", filename)
	}
	return uuid.Parse(match)
}

// ProgressReporter bridges progress events from the fetcher's stdout-scanner
// goroutine back into the pipeline side, persisting the downloading status
// ticks. Malformed events are logged and dropped; a broken tick must never
// abort the download.
type ProgressReporter struct {
	store  Store
	cache  StatusCache
	logger logger.Logger
	events chan ProgressEvent
	done   chan struct{}
}

func NewProgressReporter(store Store, cache StatusCache, log logger.Logger) *ProgressReporter {
	return &ProgressReporter{
		store:  store,
		cache:  cache,
		logger: log,
		events: make(chan ProgressEvent, 16),
		done:   make(chan struct{}),
	}
}

// Start consumes events until the channel is closed by Stop.
func (r *ProgressReporter) Start(ctx context.Context) {
	go func() {
		defer close(r.done)
		for event := range r.events {
			r.handle(ctx, event)
		}
	}()
}

// Report hands an event over from the download engine's execution context.
func (r *ProgressReporter) Report(event ProgressEvent) {
	r.events <- event
}

// Stop closes the event stream and waits until every queued tick has been
// persisted.
func (r *ProgressReporter) Stop() {
	close(r.events)
	<-r.done
}

func (r *ProgressReporter) handle(ctx context.Context, event ProgressEvent) {
	videoID, err := parseJobID(event.Filename)
	if err != nil {
		r.logger.Warnf("progress event dropped: %v", err)
		return
	}
	video, err := r.store.GetVideoByID(ctx, videoID)
	if err != nil {
		r.logger.Warnf("progress event dropped: job %s: %v", videoID, err)
		return
	}

	if event.Title != "" && video.Title == "" {
		video.Title = event.Title
	}
	if event.Status == "downloading" {
		percent := 0
		if event.TotalBytes > 0 {
			percent = int(float64(event.DownloadedBytes) / float64(event.TotalBytes) * 100)
		}
		video.Status = models.DownloadingStatus(percent)
	} else {
		video.Status = event.Status
	}

	if err = r.store.UpdateVideo(ctx, video); err != nil {
		r.logger.Warnf("progress update failed: job %s: %v", videoID, err)
		return
	}
	if err = r.cache.SetStatus(ctx, videoID.String(), video.Status); err != nil {
		r.logger.Warnf("status cache update failed: job %s: %v", videoID, err)
	}
}
