package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/pkg/executor"
)

// MediaProbe reports the total duration of a media file via ffprobe.
type MediaProbe struct {
	ffprobePath string
	exec        executor.Executor
}

func NewMediaProbe(cfg *config.Config, exec executor.Executor) *MediaProbe {
	ffprobePath := cfg.FFmpeg.FFprobePath
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &MediaProbe{
		ffprobePath: ffprobePath,
		exec:        exec,
	}
}

func (p *MediaProbe) Duration(ctx context.Context, path string) (float64, error) {
	out, err := p.exec.Execute(ctx, p.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProbe, err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unexpected ffprobe output %q", ErrProbe, strings.TrimSpace(out))
	}
	return duration, nil
}
