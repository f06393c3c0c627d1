package core

import "errors"

var (
	ErrZeroLengthVector   = errors.New("core: zero length vector")
	ErrDegenerateGeometry = errors.New("core: degenerate geometry")
)
