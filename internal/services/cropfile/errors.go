package cropfile

import "errors"

// Failure kinds for one file crop operation. Callers branch on these
// with errors.Is; the CLI maps them to exit messages.
var (
	ErrSourceNotFound = errors.New("source image not found")
	ErrDecode         = errors.New("image decode failed")
	ErrDestUnwritable = errors.New("destination not writable")
	ErrEncode         = errors.New("image encode failed")
)
