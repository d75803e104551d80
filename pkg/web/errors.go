package web

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/orchestrator"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/saga"
	"github.com/moogar0880/problems"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleExecutorError maps executor errors that produced no execution
// context. Pipeline failures do not land here: those return a terminal
// execution and are rendered truthfully with 200.
func handleExecutorError(c fiber.Ctx, err error) error {
	switch {
	case saga.IsValidationError(err):
		// Name every rejected input, not just the first.
		var invalid *orchestrator.InvalidInputError
		if errors.As(err, &invalid) {
			problem := problems.NewStatusProblem(400).
				WithInstance(c.Path()).
				WithType("validation_error").
				WithDetail(strings.Join(invalid.Result.Errors, "; "))

			return c.Status(fiber.StatusBadRequest).JSON(problem)
		}

		// Unknown workflow ids land here too: the submission itself is
		// invalid, so they get 400, never 404. 404 is reserved for
		// execution lookups.
		return badRequest(c, err.Error())

	default:
		return internalError(c, err)
	}
}
