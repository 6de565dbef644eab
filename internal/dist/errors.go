package dist

import "errors"

var (
	ErrMissingSource = errors.New("missing packaging source")
	ErrCopy          = errors.New("copy failed")
)
