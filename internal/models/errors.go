package models

import "errors"

// Custom errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidID       = errors.New("invalid ID format")
	ErrNoScenarios     = errors.New("comparison has no computed scenarios")
	ErrUnknownScenario = errors.New("unknown scenario type")

	ErrInvalidComparison = errors.New("invalid comparison")
)
