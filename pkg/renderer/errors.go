package renderer

import "errors"

var (
	ErrInvalidDimensions = errors.New("renderer: image dimensions must be positive")
	ErrInvalidDepth      = errors.New("renderer: max depth must not be negative")
	ErrNilScene          = errors.New("renderer: no scene defined")
	ErrInterrupted       = errors.New("renderer: interrupted while rendering")
)
