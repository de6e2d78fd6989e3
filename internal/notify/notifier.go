package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/addition-london/donations-gateway/internal/application"
	"github.com/addition-london/donations-gateway/internal/core/domain"
)

// DonationMessage is the notification payload published after a successful
// donation: the processor's result plus the request headers the subscriber
// needs for attribution.
type DonationMessage struct {
	Transaction *application.SaleResult `json:"transaction"`
	Headers     map[string][]string     `json:"headers,omitempty"`
}

// Notifier publishes donation notifications to each tenant's topic. It is
// strictly best-effort: the HTTP response never waits for it and every
// failure is logged and swallowed, because notification delivery is not on
// the critical path of the donation.
type Notifier struct {
	clients domain.ClientDirectory
	topics  application.TopicResolver
	timeout time.Duration
	logger  *slog.Logger
}

func NewNotifier(clients domain.ClientDirectory, topics application.TopicResolver, timeout time.Duration, logger *slog.Logger) *Notifier {
	return &Notifier{
		clients: clients,
		topics:  topics,
		timeout: timeout,
		logger:  logger,
	}
}

// PublishDonation resolves the tenant's topic and publishes the message.
// It runs on a detached context with its own timeout: the request context is
// dead by the time this executes.
func (n *Notifier) PublishDonation(clientID string, msg DonationMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	client, ok := n.clients.Lookup(clientID)
	if !ok {
		n.logger.Error("notification skipped", "error", domain.NewUnknownClientError(clientID))
		return
	}
	if client.TopicName == "" {
		n.logger.Debug("notification skipped", "reason", domain.NewNoTopicError(clientID).Message)
		return
	}

	topic, err := n.topics.Resolve(ctx, client.TopicName)
	if err != nil {
		n.logger.Error("failed to resolve notification topic",
			"topic", client.TopicName,
			"client_id", clientID,
			"error", err,
		)
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		n.logger.Error("failed to marshal notification message", "error", err)
		return
	}

	messageIDs, err := topic.Publish(ctx, data)
	if err != nil {
		n.logger.Error("error occurred while queuing background task",
			"topic", topic.Name(),
			"error", err,
		)
		return
	}

	if len(messageIDs) > 0 {
		n.logger.Info("notification published",
			"topic", topic.Name(),
			"message_id", messageIDs[0],
		)
	}
}
