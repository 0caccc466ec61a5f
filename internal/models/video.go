package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Pipeline status labels, written to the record at each stage transition.
// Pollers rely on this vocabulary; the downloading phase additionally writes
// repeated "downloading-{percent}%" ticks (see DownloadingStatus).
const (
	StatusCreate     = "create"
	StatusFinished   = "finished"
	StatusTranscribe = "transcribe"
	StatusSummarize  = "summarize"
	StatusDone       = "done"
	StatusFailed     = "failed"
)

func DownloadingStatus(percent int) string {
	return fmt.Sprintf("downloading-%d%%", percent)
}

// Video is the persisted job record for one submitted URL. The VideoID also
// names the on-disk artifact directory {jobs.root}/{video_id}/.
type Video struct {
	VideoID      uuid.UUID `json:"video_id" db:"video_id" validate:"omitempty"`
	UserID       uuid.UUID `json:"user_id" db:"user_id" validate:"omitempty"`
	URL          string    `json:"url" db:"url" validate:"required,url,lte=2048"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Transcript   string    `json:"transcript" db:"transcript"`
	Status       string    `json:"status" db:"status"`
	AudioChunks  int       `json:"audio_chunks" db:"audio_chunks"`
	ErrorMessage string    `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type VideoList struct {
	Videos     []*Video `json:"videos"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	HasMore    bool     `json:"has_more"`
}

type DownloadInput struct {
	URL string `json:"url" validate:"required,url,lte=2048"`
}
