package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/pkg/executor"
	"github.com/contextly-dev/contextly/pkg/logger"
)

// Transcriber converts ordered audio chunks into a single transcript using
// the whisper CLI. The model file is validated once per instance; recognition
// itself runs once per chunk, strictly in the supplied order.
type Transcriber struct {
	binaryPath string
	modelPath  string
	language   string
	exec       executor.Executor
	logger     logger.Logger
}

func NewTranscriber(cfg *config.Config, exec executor.Executor, log logger.Logger) (*Transcriber, error) {
	if _, err := os.Stat(cfg.Whisper.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: model: %v", ErrTranscription, err)
	}
	language := cfg.Whisper.Language
	if language == "" {
		language = "auto"
	}
	return &Transcriber{
		binaryPath: cfg.Whisper.BinaryPath,
		modelPath:  cfg.Whisper.ModelPath,
		language:   language,
		exec:       exec,
		logger:     log,
	}, nil
}

// Transcribe returns the concatenation of each chunk's recognized text, in
// input order. Any single chunk failure fails the whole call; there is no
// partial transcript.
func (t *Transcriber) Transcribe(ctx context.Context, chunkPaths []string) (string, error) {
	var result strings.Builder
	for _, chunkPath := range chunkPaths {
		out, err := t.exec.Execute(ctx, t.binaryPath,
			"-m", t.modelPath,
			"-l", t.language,
			"-nt",
			"--no-prints",
			"-f", chunkPath,
		)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrTranscription, chunkPath, err)
		}
		result.WriteString(strings.TrimSuffix(out, "\n"))
		t.logger.Debugf("transcribed chunk %s", chunkPath)
	}
	return result.String(), nil
}
