// Package main provides the orchestrator API server.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/clients"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/orchestrator"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/pipeline"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/web"
)

type API struct {
	logger    *slog.Logger
	executor  *orchestrator.Executor
	store     contextstore.ContextStore
	pipelines *pipeline.Registry
	clients   *clients.Set
	validate  *validator.Validate
	app       *fiber.App
}

func NewAPI(
	logger *slog.Logger,
	executor *orchestrator.Executor,
	store contextstore.ContextStore,
	pipelines *pipeline.Registry,
	clientSet *clients.Set,
) *API {
	return &API{
		logger:    logger,
		executor:  executor,
		store:     store,
		pipelines: pipelines,
		clients:   clientSet,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	reporter := orchestrator.NewReporter(a.store, a.pipelines)
	triggers := orchestrator.NewTriggerService(orchestrator.NewTriggerMapper(), a.executor, a.logger)
	onboarding := orchestrator.NewOnboardingService(a.executor, a.store, a.logger)

	handlers := web.NewAPIHandlers(a.executor, reporter, triggers, onboarding, a.store, a.pipelines, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("SkyLink Orchestrator")
	})

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/:workflowId/execute", handlers.ExecuteWorkflow)
	w.Post("/:workflowId/validate", handlers.ValidateWorkflow)

	e := app.Group("/executions")
	e.Get("/:executionId/status", handlers.GetExecutionStatus)
	e.Get("/:executionId/progress", handlers.GetExecutionProgress)

	app.Post("/triggers/event", handlers.TriggerEvent)

	o := app.Group("/onboarding")
	o.Post("/run", handlers.RunOnboarding)
	o.Get("/status/:id", handlers.GetOnboardingStatus)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	a.app = a.App()

	return a.app.Listen(":" + strconv.Itoa(port))
}

func (a *API) Shutdown() error {
	if a.app == nil {
		return nil
	}

	return a.app.Shutdown()
}
