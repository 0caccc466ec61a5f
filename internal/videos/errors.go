package videos

import (
	"errors"

	"github.com/google/uuid"
)

// ErrAlreadyExists short-circuits duplicate submissions of the same URL by
// the same owner before any pipeline work starts.
var ErrAlreadyExists = errors.New("video already exists")

// Dispatcher schedules a created job for background processing.
type Dispatcher interface {
	Submit(videoID uuid.UUID) error
}
