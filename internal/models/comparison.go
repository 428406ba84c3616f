package models

import (
	"strings"
	"time"
)

// ComparisonData is what the user configured: a profile plus one or more scenarios.
// The ID is opaque and assigned outside the engine.
type ComparisonData struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty" validate:"max=255"`
	UserProfile UserProfile `json:"userProfile" yaml:"userProfile"`
	Scenarios   Scenarios   `json:"scenarios" yaml:"scenarios"`
	CreatedAt   time.Time   `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Validate performs basic validation on the comparison
func (c *ComparisonData) Validate() error {
	if len(c.Scenarios.Configured()) == 0 {
		return ErrNoScenarios
	}
	return nil
}

// ValidateID rejects identifiers that cannot be used as store keys.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, " \t\n") {
		return ErrInvalidID
	}
	return nil
}
