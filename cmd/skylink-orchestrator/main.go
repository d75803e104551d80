package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/clients"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/cmd"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/log"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/orchestrator"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/otelhelper"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/pipeline"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/scheduler"
	cli "github.com/urfave/cli/v3"
)

const (
	defaultPort = 9090
	serviceName = "skylink-orchestrator"
)

func main() {
	command := &cli.Command{
		Name:                  serviceName,
		Usage:                 "Zero-trust workflow orchestration service",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "context-store-url",
				Usage:   "Context store URL (redis://, postgres://, or empty for in-memory)",
				Sources: cli.EnvVars("CONTEXT_STORE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (kafka, gochannel)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS"),
			},
			&cli.StringFlag{
				Name:    "kafka-brokers",
				Usage:   "Comma-separated Kafka broker addresses",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.StringFlag{
				Name:    "analytics-schedule",
				Usage:   "Cron expression for the scheduled analytics workflow",
				Value:   scheduler.DefaultSchedule,
				Sources: cli.EnvVars("ANALYTICS_SCHEDULE"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Enable OpenTelemetry tracing",
				Sources: cli.EnvVars("ENABLE_TRACING"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "signature-service-url",
				Usage:   "Signature validation service base URL",
				Value:   "http://localhost:8081",
				Sources: cli.EnvVars("SIGNATURE_SERVICE_URL"),
			},
			&cli.StringFlag{
				Name:    "ledger-service-url",
				Usage:   "Ledger service base URL",
				Value:   "http://localhost:8082",
				Sources: cli.EnvVars("LEDGER_SERVICE_URL"),
			},
			&cli.StringFlag{
				Name:    "payment-service-url",
				Usage:   "Payment gateway service base URL",
				Value:   "http://localhost:8083",
				Sources: cli.EnvVars("PAYMENT_SERVICE_URL"),
			},
			&cli.StringFlag{
				Name:    "marketplace-service-url",
				Usage:   "Marketplace service base URL",
				Value:   "http://localhost:8084",
				Sources: cli.EnvVars("MARKETPLACE_SERVICE_URL"),
			},
			&cli.StringFlag{
				Name:    "user-service-url",
				Usage:   "User profile service base URL",
				Value:   "http://localhost:8085",
				Sources: cli.EnvVars("USER_SERVICE_URL"),
			},
			&cli.StringFlag{
				Name:    "multisig-service-url",
				Usage:   "Multisig infrastructure service base URL",
				Value:   "http://localhost:8086",
				Sources: cli.EnvVars("MULTISIG_SERVICE_URL"),
			},
			&cli.StringFlag{
				Name:    "notification-service-url",
				Usage:   "Notification service base URL",
				Value:   "http://localhost:8087",
				Sources: cli.EnvVars("NOTIFICATION_SERVICE_URL"),
			},
			&cli.StringFlag{
				Name:    "identity-service-url",
				Usage:   "Identity service base URL",
				Value:   "http://localhost:8088",
				Sources: cli.EnvVars("IDENTITY_SERVICE_URL"),
			},
			&cli.StringFlag{
				Name:    "treasury-service-url",
				Usage:   "Treasury service base URL",
				Value:   "http://localhost:8089",
				Sources: cli.EnvVars("TREASURY_SERVICE_URL"),
			},
		},
		Action: run,
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}

func run(ctx context.Context, command *cli.Command) error {
	log.Setup(command.String("log-level"))
	logger := log.WithModule("orchestrator")

	logger.InfoContext(ctx, "Initializing orchestrator")

	store, err := cmd.NewContextStore(ctx, logger, command.String("context-store-url"))
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := store.Close(ctx); closeErr != nil {
			logger.ErrorContext(ctx, "Failed to close context store", "error", closeErr)
		}
	}()

	eventBus, err := cmd.NewEventBus(command.String("event-bus"), command.String("kafka-brokers"), serviceName, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := eventBus.Close(); closeErr != nil {
			logger.ErrorContext(ctx, "Failed to close event bus", "error", closeErr)
		}
	}()

	clientSet := clients.NewSet(logger, clients.Config{
		SignatureServiceURL:    command.String("signature-service-url"),
		LedgerServiceURL:       command.String("ledger-service-url"),
		PaymentServiceURL:      command.String("payment-service-url"),
		MarketplaceServiceURL:  command.String("marketplace-service-url"),
		UserServiceURL:         command.String("user-service-url"),
		MultisigServiceURL:     command.String("multisig-service-url"),
		NotificationServiceURL: command.String("notification-service-url"),
		IdentityServiceURL:     command.String("identity-service-url"),
		TreasuryServiceURL:     command.String("treasury-service-url"),
	})

	registry := pipeline.NewDefaultRegistry(pipeline.CollaboratorsFromSet(clientSet), logger)
	publisher := orchestrator.NewPublisher(eventBus, clientSet.Notification, logger)
	executor := orchestrator.NewExecutor(catalog.Default(), store, registry, publisher, logger)

	if command.Bool("tracing") {
		tracer, tracerErr := otelhelper.NewTracer(ctx, serviceName)
		if tracerErr != nil {
			return tracerErr
		}

		executor.WithTracer(tracer)
	}

	analytics, err := scheduler.NewAnalyticsScheduler(executor, command.String("analytics-schedule"), logger)
	if err != nil {
		return err
	}

	if err := analytics.Start(ctx); err != nil {
		return err
	}

	defer func() {
		if stopErr := analytics.Stop(ctx); stopErr != nil {
			logger.ErrorContext(ctx, "Failed to stop analytics scheduler", "error", stopErr)
		}
	}()

	api := NewAPI(logger, executor, store, registry, clientSet)

	errCh := make(chan error, 1)

	go func() {
		errCh <- api.Start(command.Int("port"))
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-signals:
		logger.InfoContext(ctx, "Shutting down", "signal", sig.String())

		return api.Shutdown()
	}
}
