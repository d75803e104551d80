package orchestrator

import (
	"fmt"
	"strings"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// Validate checks an input bag against a workflow definition. It is pure: no
// execution context is created, no downstream call is made, and identical
// arguments always yield identical error lists. Missing required inputs are
// reported in catalog declaration order, followed by type mismatches.
func Validate(definition models.WorkflowDefinition, inputs map[string]any) models.ValidationResult {
	result := models.ValidationResult{
		Valid:             true,
		EstimatedDuration: definition.EstimatedDuration,
	}

	if !definition.Active {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("workflow '%s' is not active", definition.ID))

		return result
	}

	for _, input := range definition.RequiredInputs() {
		if _, ok := inputs[input.Name]; !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("required input '%s' is missing", input.Name))
		}
	}

	result.Errors = append(result.Errors, schemaErrors(definition, inputs)...)
	result.Valid = len(result.Errors) == 0

	return result
}

// schemaErrors type-checks the present inputs against the definition's
// declared input schema. Presence is checked separately, so the schema's
// required list is dropped to avoid duplicate reports.
func schemaErrors(definition models.WorkflowDefinition, inputs map[string]any) []string {
	schema := definition.InputSchema()
	delete(schema, "required")

	validation, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(inputs))
	if err != nil {
		return []string{fmt.Sprintf("input schema validation failed: %v", err)}
	}

	errors := make([]string, 0, len(validation.Errors()))
	for _, schemaErr := range validation.Errors() {
		errors = append(errors, strings.TrimSpace(schemaErr.String()))
	}

	return errors
}
