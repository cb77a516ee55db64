package diagnosis

import "errors"

var (
	ErrInvalidScore        = errors.New("answer value must be between 1 and 7")
	ErrUnknownQuestion     = errors.New("unknown question id")
	ErrSessionNotFound     = errors.New("diagnosis session not found")
	ErrSessionCompleted    = errors.New("diagnosis session already completed")
	ErrInsufficientAnswers = errors.New("no answers recorded for this session")
	ErrNoActiveSession     = errors.New("no active diagnosis session")
	ErrForbidden           = errors.New("session belongs to another user")
)
