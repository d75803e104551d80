package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/channels/gochannel"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/channels/kafka"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/eventbus"
)

// NewEventBus creates the lifecycle event bus for the given provider. The
// gochannel provider keeps events in process for single-node deployments.
func NewEventBus(provider, brokers, serviceName string, logger *slog.Logger) (eventbus.EventBus, error) {
	switch provider {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(watermill.NewSlogLogger(logger), brokers, serviceName)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka pub/sub: %w", err)
		}

		return eventbus.NewWatermillEventBus(pub, sub), nil

	case "gochannel", "":
		pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create gochannel pub/sub: %w", err)
		}

		return eventbus.NewWatermillEventBus(pub, sub), nil

	default:
		return nil, fmt.Errorf("unsupported event bus provider: %s", provider)
	}
}
