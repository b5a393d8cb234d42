package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNoPriorState          = errors.New("no prior game state")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
