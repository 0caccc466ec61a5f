package pipeline

import "errors"

// Stage failure taxonomy. Fetch, chunk extraction and transcription failures
// abort the job; summarization failures are swallowed by the orchestrator and
// the job still reaches the done state.
var (
	ErrProbe           = errors.New("media probe failed")
	ErrOutputExists    = errors.New("audio output directory already exists")
	ErrChunkExtraction = errors.New("audio chunk extraction failed")
	ErrFetch           = errors.New("media fetch failed")
	ErrTranscription   = errors.New("transcription failed")
	ErrSummarization   = errors.New("summarization failed")
)
