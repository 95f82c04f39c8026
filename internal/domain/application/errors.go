package application

import "errors"

var (
	ErrNotFound            = errors.New("application not found")
	ErrInvalidTransition   = errors.New("illegal status transition")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotEditable         = errors.New("application is not editable in its current status")
	ErrConcurrencyConflict = errors.New("application was modified concurrently")
)
