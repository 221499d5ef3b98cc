package coach

import "errors"

var (
	// ErrTimeout indicates a remote call lost its timeout race.
	ErrTimeout = errors.New("remote call timed out")
	// ErrEmptyInput indicates there was no text to process.
	ErrEmptyInput = errors.New("empty input text")
)
