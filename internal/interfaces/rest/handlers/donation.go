package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/addition-london/donations-gateway/internal/application"
	"github.com/addition-london/donations-gateway/internal/core/domain"
	"github.com/addition-london/donations-gateway/internal/notify"
)

const gatewayRejectedMessage = "Payment gateway rejected this transaction"

// HandlePostDonation validates the donation, submits it to the processor for
// settlement and, on success, queues a best-effort notification without
// waiting for it.
func (h *Handlers) HandlePostDonation(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	var req domain.DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondText(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Reject obviously bad requests before the processor does, reporting
	// every violated rule at once.
	if msg := h.validator.ValidateDonation(&req); msg != "" {
		respondText(w, http.StatusBadRequest, "Invalid params in the request body: "+msg)
		return
	}

	gateway, err := h.loader.Load(req.ClientID)
	if err != nil {
		h.logger.Error("failed to load gateway", "client_id", req.ClientID, "error", err)
		respondText(w, http.StatusInternalServerError, gatewayRejectedMessage)
		return
	}

	client, _ := h.clients.Lookup(req.ClientID)

	result, err := gateway.Sale(r.Context(), application.SaleRequest{
		Amount:  req.Amount.String(),
		OrderID: req.OrderID,
		Customer: application.Customer{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Company:   client.DisplayName,
		},
		PaymentMethodNonce:  req.Nonce,
		SubmitForSettlement: true,
	})
	if err != nil {
		// Processor error detail is not echoed to the caller.
		h.logger.Error("sale request failed", "client_id", req.ClientID, "error", err)
		respondText(w, http.StatusInternalServerError, gatewayRejectedMessage)
		return
	}

	if !result.Success {
		h.logger.Warn("transaction declined",
			"client_id", req.ClientID,
			"message", result.Message,
		)
		respondText(w, http.StatusBadRequest, result.Message)
		return
	}

	transactionID := ""
	if result.Transaction != nil {
		transactionID = result.Transaction.ID
	}
	h.logger.Info("transaction created",
		"client_id", req.ClientID,
		"transaction_id", transactionID,
	)

	go h.notifier.PublishDonation(req.ClientID, notify.DonationMessage{
		Transaction: result,
		Headers:     r.Header,
	})

	respondText(w, http.StatusOK, "OK")
}
