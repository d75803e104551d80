package models

import "time"

// ValidationResult is the outcome of pre-flight validation of an input bag
// against a workflow definition. Errors preserve catalog declaration order.
type ValidationResult struct {
	Valid             bool          `json:"valid"`
	Errors            []string      `json:"errors,omitempty"`
	EstimatedDuration time.Duration `json:"estimated_duration"`
}
