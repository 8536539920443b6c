package engine

import "errors"

var ErrUnknownScript = errors.New("unknown script")
