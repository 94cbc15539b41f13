package services

import "errors"

// ErrGenerationInProgress is returned when a video is requested while one is
// already generating for the card.
var ErrGenerationInProgress = errors.New("video generation already in progress")

// UploadError wraps a blob storage failure.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "failed to upload media: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error { return e.Err }
