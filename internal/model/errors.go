package model

import "errors"

// errUnknownFailure backs Failure(nil).
var errUnknownFailure = errors.New("unknown failure")
