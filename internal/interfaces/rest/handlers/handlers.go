package handlers

import (
	"log/slog"
	"net/http"

	"github.com/addition-london/donations-gateway/internal/application"
	"github.com/addition-london/donations-gateway/internal/core/domain"
	"github.com/addition-london/donations-gateway/internal/notify"
)

// DonationNotifier is the fire-and-forget notification hook invoked after a
// successful sale. Callers run it on its own goroutine; it must not block the
// response.
type DonationNotifier interface {
	PublishDonation(clientID string, msg notify.DonationMessage)
}

type Handlers struct {
	loader    application.GatewayLoader
	clients   domain.ClientDirectory
	validator *domain.Validator
	notifier  DonationNotifier
	logger    *slog.Logger
}

func NewHandlers(
	loader application.GatewayLoader,
	clients domain.ClientDirectory,
	validator *domain.Validator,
	notifier DonationNotifier,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		loader:    loader,
		clients:   clients,
		validator: validator,
		notifier:  notifier,
		logger:    logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /getToken", h.HandleGetToken)
	mux.HandleFunc("POST /postDonation", h.HandlePostDonation)

	// Browser donation forms preflight both routes.
	mux.HandleFunc("OPTIONS /getToken", h.handlePreflight)
	mux.HandleFunc("OPTIONS /postDonation", h.handlePreflight)
}

func (h *Handlers) handlePreflight(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}
