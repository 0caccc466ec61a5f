package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/internal/models"
	"github.com/contextly-dev/contextly/pkg/executor"
	"github.com/contextly-dev/contextly/pkg/logger"
)

const (
	defaultFormat = "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b"

	// One line per tick on stdout; fields split on "|". NA is printed for
	// values yt-dlp does not know yet. The filename must come from the
	// progress hook dict: the info dict only carries it underscore-prefixed,
	// which the template renders as NA.
	progressTemplate = "download:%(progress.status)s|%(progress.filename)s|%(progress.downloaded_bytes)s|%(progress.total_bytes)s|%(info.title)s"
	progressPrefix   = "download:"
)

// MediaFetcher drives yt-dlp: a thumbnail-only fetch followed by the full
// media fetch with progress ticks wired to the ProgressReporter.
type MediaFetcher struct {
	ytdlpPath string
	format    string
	jobsRoot  string
	reporter  *ProgressReporter
	exec      executor.Executor
	logger    logger.Logger
}

func NewMediaFetcher(cfg *config.Config, reporter *ProgressReporter, exec executor.Executor, log logger.Logger) *MediaFetcher {
	ytdlpPath := cfg.Fetcher.YtdlpPath
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	format := cfg.Fetcher.Format
	if format == "" {
		format = defaultFormat
	}
	return &MediaFetcher{
		ytdlpPath: ytdlpPath,
		format:    format,
		jobsRoot:  cfg.Jobs.Root,
		reporter:  reporter,
		exec:      exec,
		logger:    log,
	}
}

// Fetch retrieves the thumbnail and the main asset for one job. A thumbnail
// failure is logged and skipped; a main-asset failure aborts the job. The
// main fetch is shielded from outside cancellation once started, so a signal
// aimed elsewhere cannot truncate an in-progress download.
func (f *MediaFetcher) Fetch(ctx context.Context, video *models.Video) error {
	if err := f.fetchThumbnail(ctx, video); err != nil {
		f.logger.Warnf("thumbnail fetch failed for job %s: %v", video.VideoID, err)
	}
	if err := f.fetchVideo(context.WithoutCancel(ctx), video); err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return nil
}

func (f *MediaFetcher) fetchThumbnail(ctx context.Context, video *models.Video) error {
	outTemplate := ImgDir(f.jobsRoot, video.VideoID) + "/" + video.VideoID.String() + ".%(ext)s"
	_, err := f.exec.Execute(ctx, f.ytdlpPath,
		"--quiet",
		"--skip-download",
		"--write-thumbnail",
		"-o", outTemplate,
		video.URL,
	)
	return err
}

func (f *MediaFetcher) fetchVideo(ctx context.Context, video *models.Video) error {
	jobDir := JobDir(f.jobsRoot, video.VideoID)
	outTemplate := jobDir + "/video/" + video.VideoID.String() + ".%(ext)s"

	cmd := exec.CommandContext(ctx, f.ytdlpPath,
		"--newline",
		"--no-colors",
		"-f", f.format,
		"--merge-output-format", "mp4",
		"--progress-template", progressTemplate,
		"-o", outTemplate,
		video.URL,
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err = cmd.Start(); err != nil {
		return err
	}

	// yt-dlp emits ticks on its own schedule; the scanner goroutine is the
	// foreign execution context the reporter bridges back from.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			if event, ok := parseProgressLine(scanner.Text()); ok {
				f.reporter.Report(event)
			}
		}
	}()

	wg.Wait()
	if err = cmd.Wait(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return fmt.Errorf("yt-dlp failed: %v, stderr: %s", err, stderrStr)
		}
		return fmt.Errorf("yt-dlp failed: %v", err)
	}
	return nil
}

func parseProgressLine(line string) (ProgressEvent, bool) {
	if !strings.HasPrefix(line, progressPrefix) {
		return ProgressEvent{}, false
	}
	parts := strings.SplitN(strings.TrimPrefix(line, progressPrefix), "|", 5)
	if len(parts) != 5 {
		return ProgressEvent{}, false
	}
	return ProgressEvent{
		Status:          parts[0],
		Filename:        parts[1],
		DownloadedBytes: parseBytes(parts[2]),
		TotalBytes:      parseBytes(parts[3]),
		Title:           parts[4],
	}, true
}

func parseBytes(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
