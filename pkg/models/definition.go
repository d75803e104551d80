// Package models defines the core domain models for zero-trust workflow orchestration.
package models

import "time"

// InputType tags the expected JSON shape of a declared workflow input.
type InputType string

const (
	InputTypeString  InputType = "string"
	InputTypeNumber  InputType = "number"
	InputTypeBoolean InputType = "boolean"
	InputTypeObject  InputType = "object"
	InputTypeArray   InputType = "array"
)

// InputSpec declares a single named input of a workflow definition.
type InputSpec struct {
	Name        string    `json:"name"        validate:"required"`
	Type        InputType `json:"type"        validate:"required"`
	Required    bool      `json:"required"`
	Description string    `json:"description,omitempty"`
}

// WorkflowDefinition describes one orchestratable workflow type. Definitions
// are immutable after catalog construction; executions never mutate them.
type WorkflowDefinition struct {
	ID                string        `json:"id"                 validate:"required"`
	Name              string        `json:"name"               validate:"required,min=3"`
	Description       string        `json:"description"`
	EstimatedDuration time.Duration `json:"estimated_duration"`
	Inputs            []InputSpec   `json:"inputs"`
	Active            bool          `json:"active"`
}

// RequiredInputs returns the declared inputs that must be present in the
// input bag before an execution may be dispatched.
func (d WorkflowDefinition) RequiredInputs() []InputSpec {
	required := make([]InputSpec, 0, len(d.Inputs))

	for _, input := range d.Inputs {
		if input.Required {
			required = append(required, input)
		}
	}

	return required
}

// InputSchema renders the declared inputs as a JSON schema document suitable
// for gojsonschema validation of an input bag.
func (d WorkflowDefinition) InputSchema() map[string]any {
	properties := make(map[string]any, len(d.Inputs))
	required := make([]string, 0, len(d.Inputs))

	for _, input := range d.Inputs {
		property := map[string]any{"type": string(input.Type)}
		if input.Description != "" {
			property["description"] = input.Description
		}

		properties[input.Name] = property

		if input.Required {
			required = append(required, input.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}
