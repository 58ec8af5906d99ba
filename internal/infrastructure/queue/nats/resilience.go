package nats

import (
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/legal-case-intel/internal/infrastructure/resilience"
)

var classifyNATSError = resilience.TransientClassifier(isTransientNATSError)

func isTransientNATSError(err error) bool {
	return errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, nats.ErrConnectionReconnecting) ||
		errors.Is(err, nats.ErrDisconnected)
}
