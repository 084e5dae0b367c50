package reactivenav

import "github.com/pkg/errors"

var (
	errNavError      = errors.New("reactivenav: cannot navigate while in NavError; call ResetNavError first")
	errNotNavigating = errors.New("reactivenav: suspend() requires the Navigating state")
	errNotSuspended  = errors.New("reactivenav: resume() requires the Suspended state")
	errNotInError    = errors.New("reactivenav: reset_nav_error() requires the NavError state")
)
