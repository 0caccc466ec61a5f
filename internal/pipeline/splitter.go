package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/pkg/executor"
	"github.com/contextly-dev/contextly/pkg/logger"
)

const maxParallelExtracts = 4

// AudioSplitter partitions a video's audio track into fixed-duration mp3
// chunks, extracted concurrently. All chunks must succeed; there is no
// partial-success path.
type AudioSplitter struct {
	chunkDuration int
	ffmpegPath    string
	probe         *MediaProbe
	exec          executor.Executor
	logger        logger.Logger
}

func NewAudioSplitter(cfg *config.Config, probe *MediaProbe, exec executor.Executor, log logger.Logger) *AudioSplitter {
	ffmpegPath := cfg.FFmpeg.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &AudioSplitter{
		chunkDuration: cfg.Jobs.ChunkDuration,
		ffmpegPath:    ffmpegPath,
		probe:         probe,
		exec:          exec,
		logger:        log,
	}
}

// Split extracts ceil(duration/chunkDuration) chunks of the source's audio
// into outDir/{0..n-1}.mp3 and returns the paths in index order. The output
// directory must not already exist; the splitter never overwrites.
func (s *AudioSplitter) Split(ctx context.Context, videoPath, outDir string) ([]string, error) {
	if err := os.Mkdir(outDir, 0o755); err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrOutputExists, outDir)
		}
		return nil, fmt.Errorf("%w: %v", ErrChunkExtraction, err)
	}

	duration, err := s.probe.Duration(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	numChunks := int(math.Ceil(duration / float64(s.chunkDuration)))

	paths := make([]string, numChunks)
	sem := make(chan struct{}, maxParallelExtracts)
	errChan := make(chan error, 1)
	var wg sync.WaitGroup

	for i := 0; i < numChunks; i++ {
		sem <- struct{}{}
		wg.Add(1)

		go func(idx int) {
			defer func() {
				<-sem
				wg.Done()
			}()

			outputPath := filepath.Join(outDir, fmt.Sprintf("%d.mp3", idx))
			if err := s.extractChunk(ctx, videoPath, idx*s.chunkDuration, outputPath); err != nil {
				select {
				case errChan <- fmt.Errorf("%w: chunk %d: %v", ErrChunkExtraction, idx, err):
				default:
				}
				return
			}
			paths[idx] = outputPath
			s.logger.Debugf("saved audio chunk %s", outputPath)
		}(i)
	}

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *AudioSplitter) extractChunk(ctx context.Context, videoPath string, startTime int, outputPath string) error {
	_, err := s.exec.Execute(ctx, s.ffmpegPath,
		"-ss", strconv.Itoa(startTime),
		"-t", strconv.Itoa(s.chunkDuration),
		"-i", videoPath,
		"-vn",
		"-q:a", "0",
		"-f", "mp3",
		"-y", outputPath,
	)
	return err
}
