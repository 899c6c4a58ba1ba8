package entity

import "errors"

var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Job errors
	ErrJobNotFound    = errors.New("job not found")
	ErrEmptyPrompt    = errors.New("prompt is required")
	ErrNoBoundingBox  = errors.New("draw-to-edit annotation has no finalized bounding box")
	ErrJobNotFinished = errors.New("job is still running")

	// Credits errors
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrUserNotFound        = errors.New("user not found")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
