package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/addition-london/donations-gateway/internal/application"
	"github.com/addition-london/donations-gateway/internal/core/domain"
	"github.com/addition-london/donations-gateway/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "stroke-association"

// Mock collaborators
type mockGateway struct {
	generateFn func(ctx context.Context) (*application.ClientToken, error)
	saleFn     func(ctx context.Context, req application.SaleRequest) (*application.SaleResult, error)
}

func (m *mockGateway) GenerateClientToken(ctx context.Context) (*application.ClientToken, error) {
	return m.generateFn(ctx)
}

func (m *mockGateway) Sale(ctx context.Context, req application.SaleRequest) (*application.SaleResult, error) {
	return m.saleFn(ctx, req)
}

type mockLoader struct {
	gateway application.PaymentGateway
}

func (m *mockLoader) Load(clientID string) (application.PaymentGateway, error) {
	if m.gateway == nil {
		return nil, domain.NewUnknownClientError(clientID)
	}
	return m.gateway, nil
}

type mockNotifier struct {
	published chan notify.DonationMessage
}

func (m *mockNotifier) PublishDonation(clientID string, msg notify.DonationMessage) {
	m.published <- msg
}

func newTestHandlers(gateway application.PaymentGateway) (*Handlers, *mockNotifier) {
	clients := domain.ClientDirectory{
		testClientID: {
			MerchantID:  "merchant-1",
			PublicKey:   "pub-1",
			PrivateKey:  "priv-1",
			DisplayName: "Stroke Association",
			TopicName:   "donations-stroke-association",
		},
	}
	notifier := &mockNotifier{published: make(chan notify.DonationMessage, 1)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewHandlers(
		&mockLoader{gateway: gateway},
		clients,
		domain.NewValidator(clients, 1, 1000000),
		notifier,
		logger,
	)
	return h, notifier
}

func donationBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"clientId":             testClientID,
		"payment_method_nonce": "fake-valid-nonce",
		"amount":               3,
		"orderId":              "order-1",
		"firstname":            "Louise",
		"lastname":             "Ryan",
		"email":                "louise.ryan@addition.london",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestHandleGetToken_MissingClientID(t *testing.T) {
	h, _ := newTestHandlers(nil)

	req := httptest.NewRequest(http.MethodGet, "/getToken", nil)
	rr := httptest.NewRecorder()

	h.HandleGetToken(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please provide a clientId param in the query string", rr.Body.String())
}

func TestHandleGetToken_GatewayError(t *testing.T) {
	h, _ := newTestHandlers(&mockGateway{
		generateFn: func(ctx context.Context) (*application.ClientToken, error) {
			return nil, errors.New("oh dear")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/getToken?clientId="+testClientID, nil)
	rr := httptest.NewRecorder()

	h.HandleGetToken(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "oh dear")
}

func TestHandleGetToken_Success(t *testing.T) {
	h, _ := newTestHandlers(&mockGateway{
		generateFn: func(ctx context.Context) (*application.ClientToken, error) {
			return &application.ClientToken{Token: "tok-123"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/getToken?clientId="+testClientID, nil)
	rr := httptest.NewRecorder()

	h.HandleGetToken(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", rr.Header().Get("Access-Control-Allow-Methods"))

	var token application.ClientToken
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &token))
	assert.Equal(t, "tok-123", token.Token)
}

func TestHandlePostDonation_ValidationFailures(t *testing.T) {
	h, _ := newTestHandlers(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"clientId": "unknown",
		"amount":   "icknum",
		"email":    "jobloggs-jobloggs.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/postDonation", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	h.HandlePostDonation(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid params in the request body: ")
	assert.Contains(t, rr.Body.String(), "Please provide a clientId. ")
	assert.Contains(t, rr.Body.String(), "Invalid amount - please provide an amount greater than 1. ")
	assert.Contains(t, rr.Body.String(), "Nonce field cannot be empty. ")
	assert.Contains(t, rr.Body.String(), "Please ensure you provide a valid email address. ")
}

func TestHandlePostDonation_TransportError(t *testing.T) {
	h, _ := newTestHandlers(&mockGateway{
		saleFn: func(ctx context.Context, req application.SaleRequest) (*application.SaleResult, error) {
			return nil, errors.New("connection refused")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/postDonation", donationBody(t))
	rr := httptest.NewRecorder()

	h.HandlePostDonation(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Payment gateway rejected this transaction", rr.Body.String())
}

func TestHandlePostDonation_Declined(t *testing.T) {
	h, _ := newTestHandlers(&mockGateway{
		saleFn: func(ctx context.Context, req application.SaleRequest) (*application.SaleResult, error) {
			return &application.SaleResult{Success: false, Message: "Insufficient Funds"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/postDonation", donationBody(t))
	rr := httptest.NewRecorder()

	h.HandlePostDonation(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Insufficient Funds", rr.Body.String())
}

func TestHandlePostDonation_Success(t *testing.T) {
	var gotSale application.SaleRequest
	h, notifier := newTestHandlers(&mockGateway{
		saleFn: func(ctx context.Context, req application.SaleRequest) (*application.SaleResult, error) {
			gotSale = req
			return &application.SaleResult{
				Success:     true,
				Transaction: &application.Transaction{ID: "fauxId"},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/postDonation", donationBody(t))
	rr := httptest.NewRecorder()

	h.HandlePostDonation(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	assert.True(t, gotSale.SubmitForSettlement)
	assert.Equal(t, "3", gotSale.Amount)
	// Company comes from the configured display name, not the raw clientId.
	assert.Equal(t, "Stroke Association", gotSale.Customer.Company)

	select {
	case msg := <-notifier.published:
		require.NotNil(t, msg.Transaction)
		assert.Equal(t, "fauxId", msg.Transaction.Transaction.ID)
	case <-time.After(time.Second):
		t.Fatal("expected a donation notification to be published")
	}
}

func TestPreflight(t *testing.T) {
	h, _ := newTestHandlers(nil)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	for _, path := range []string{"/getToken", "/postDonation"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		rr := httptest.NewRecorder()

		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code, path)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Equal(t, "GET, POST", rr.Header().Get("Access-Control-Allow-Methods"), path)
	}
}

func TestHandlePostDonation_MalformedBody(t *testing.T) {
	h, _ := newTestHandlers(nil)

	req := httptest.NewRequest(http.MethodPost, "/postDonation", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()

	h.HandlePostDonation(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
