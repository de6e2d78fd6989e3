package handlers

import "net/http"

// HandleGetToken mints a client-side authorization token for the payment
// form. The clientId query parameter selects whose processor credentials are
// used.
func (h *Handlers) HandleGetToken(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	if !h.validator.IsValidClient(clientID) {
		respondText(w, http.StatusBadRequest, "Please provide a clientId param in the query string")
		return
	}

	gateway, err := h.loader.Load(clientID)
	if err != nil {
		h.logger.Error("failed to load gateway", "client_id", clientID, "error", err)
		respondText(w, http.StatusBadRequest, err.Error())
		return
	}

	setCORSHeaders(w)

	token, err := gateway.GenerateClientToken(r.Context())
	if err != nil {
		h.logger.Error("client token generation failed", "client_id", clientID, "error", err)
		// Token requests echo the gateway error; donation requests do not.
		respondText(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, token)
}
