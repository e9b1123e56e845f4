package extract

import "errors"

// Sentinel errors for the extraction pipeline. Stage functions wrap these
// with context; callers discriminate with errors.Is.
var (
	// ErrInvalidImage reports a missing, empty, or undecodable input image.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidParameter reports a configuration value that violates a
	// documented precondition. Raised before any detection work begins.
	ErrInvalidParameter = errors.New("invalid parameter")
)
