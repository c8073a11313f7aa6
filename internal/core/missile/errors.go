package missile

import "github.com/pkg/errors"

var (
	ErrInvalidSpeed    = errors.New("missile: speed must be positive")
	ErrInvalidArc      = errors.New("missile: arc must not be negative")
	ErrInvalidInterval = errors.New("missile: update interval must be positive")
	ErrInvalidRange    = errors.New("missile: collision range must be positive")
	ErrNilTarget       = errors.New("missile: target entity is nil")
	ErrTargetDead      = errors.New("missile: target entity is dead")
	ErrDestroyed       = errors.New("missile: projectile already destroyed")
	ErrSystemClosed    = errors.New("missile: system shut down")
	ErrUnknownPreset   = errors.New("missile: unknown preset")
)
