package toolchain

import "errors"

var ErrMissingEnv = errors.New("missing environment variables")
