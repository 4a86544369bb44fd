package errs

import "errors"

var (
	ErrCameraNotFound = errors.New("camera not found")

	ErrCaptureUnavailable = errors.New("capture source is not available")
	ErrUploadFailed       = errors.New("failed to upload video")

	ErrWriteToDB        = errors.New("failed to write to database")
	ErrStoreUnavailable = errors.New("database is unavailable")
)
