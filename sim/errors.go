package sim

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid simulation config")
	ErrInvalidEnemyCount = errors.New("enemy count must be positive")
	ErrNotInitialized    = errors.New("simulation not initialized")
	ErrUnknownBehavior   = errors.New("unknown behavior")
)
