package pipeline

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/pkg/executor"
	"github.com/contextly-dev/contextly/pkg/logger"
)

const (
	defaultMaxChunkChars     = 700
	defaultMaxNewTokens      = 55
	defaultNoRepeatNgramSize = 4
)

// ModelStore fetches the summarization model artifacts into a local directory.
type ModelStore interface {
	FetchModel(ctx context.Context, destDir string) error
}

// Summarizer produces a condensed description of a transcript. The model is
// acquired lazily: a populated local cache directory is reused, otherwise the
// artifacts are downloaded once and kept for future runs. Input text is
// word-wrapped into segments that fit the model's input ceiling; each segment
// is summarized independently and the summaries joined with single spaces.
type Summarizer struct {
	binaryPath        string
	modelDir          string
	maxChunkChars     int
	maxNewTokens      int
	noRepeatNgramSize int
	store             ModelStore
	exec              executor.Executor
	logger            logger.Logger

	mu     sync.Mutex
	loaded bool
}

func NewSummarizer(cfg *config.Config, store ModelStore, exec executor.Executor, log logger.Logger) *Summarizer {
	s := &Summarizer{
		binaryPath:        cfg.Summarizer.BinaryPath,
		modelDir:          cfg.Summarizer.ModelDir,
		maxChunkChars:     cfg.Summarizer.MaxChunkChars,
		maxNewTokens:      cfg.Summarizer.MaxNewTokens,
		noRepeatNgramSize: cfg.Summarizer.NoRepeatNgramSize,
		store:             store,
		exec:              exec,
		logger:            log,
	}
	if s.maxChunkChars <= 0 {
		s.maxChunkChars = defaultMaxChunkChars
	}
	if s.maxNewTokens <= 0 {
		s.maxNewTokens = defaultMaxNewTokens
	}
	if s.noRepeatNgramSize <= 0 {
		s.noRepeatNgramSize = defaultNoRepeatNgramSize
	}
	return s
}

// Load is idempotent. The local model directory is a deliberate cross-process
// cache: it avoids re-downloading several hundred MB of artifacts per run.
func (s *Summarizer) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}
	if _, err := os.Stat(s.modelDir); err == nil {
		s.logger.Infof("using cached summarization model at %s", s.modelDir)
		s.loaded = true
		return nil
	}
	s.logger.Infof("downloading summarization model to %s", s.modelDir)
	if err := s.store.FetchModel(ctx, s.modelDir); err != nil {
		return fmt.Errorf("%w: %v", ErrSummarization, err)
	}
	s.loaded = true
	return nil
}

// Summarize reduces text to a short description. Segment boundaries do not
// respect sentences; this is an accepted lossy approximation.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	segments := wrapText(text, s.maxChunkChars)
	summaries := make([]string, 0, len(segments))
	for _, segment := range segments {
		out, err := s.exec.ExecuteWithInput(ctx, segment, s.binaryPath,
			"--model", s.modelDir,
			"--max-new-tokens", strconv.Itoa(s.maxNewTokens),
			"--no-repeat-ngram-size", strconv.Itoa(s.noRepeatNgramSize),
		)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrSummarization, err)
		}
		summaries = append(summaries, strings.TrimSpace(out))
	}
	return strings.Join(summaries, " "), nil
}

// wrapText splits text into word-wrapped segments of at most width
// characters. Words longer than width are broken at the width so no segment
// can exceed the model's input ceiling.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var segments []string
	current := ""
	for _, word := range words {
		for len(word) > width {
			if current != "" {
				segments = append(segments, current)
				current = ""
			}
			segments = append(segments, word[:width])
			word = word[width:]
		}
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			segments = append(segments, current)
			current = word
		}
	}
	if current != "" {
		segments = append(segments, current)
	}
	return segments
}
