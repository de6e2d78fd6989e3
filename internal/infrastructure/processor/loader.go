package processor

import (
	"log/slog"

	"github.com/addition-london/donations-gateway/internal/application"
	"github.com/addition-london/donations-gateway/internal/config"
	"github.com/addition-london/donations-gateway/internal/core/domain"
)

// Loader builds per-tenant gateway clients from the client directory. It
// deliberately constructs a fresh client on every call instead of caching:
// a rotated credential is picked up on the next request and no state leaks
// between requests.
type Loader struct {
	cfg     config.ProcessorConfig
	clients domain.ClientDirectory
	logger  *slog.Logger
}

func NewLoader(cfg config.ProcessorConfig, clients domain.ClientDirectory, logger *slog.Logger) *Loader {
	return &Loader{
		cfg:     cfg,
		clients: clients,
		logger:  logger,
	}
}

func (l *Loader) Load(clientID string) (application.PaymentGateway, error) {
	l.logger.Info("loading gateway configuration", "client_id", clientID)

	client, ok := l.clients.Lookup(clientID)
	if !ok {
		return nil, domain.NewUnknownClientError(clientID)
	}

	return NewClient(l.cfg, client), nil
}
