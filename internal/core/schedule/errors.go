package schedule

import "github.com/pkg/errors"

var (
	ErrInvalidInterval = errors.New("schedule: interval must be positive")
	ErrStopped         = errors.New("schedule: clock stopped")
)
