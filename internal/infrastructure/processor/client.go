package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/addition-london/donations-gateway/internal/application"
	"github.com/addition-london/donations-gateway/internal/config"
	"github.com/addition-london/donations-gateway/internal/core/domain"
	"github.com/google/uuid"
)

// HTTPClient talks to the payment processor's REST API for a single merchant
// account. Credentials go out as basic auth on every call.
type HTTPClient struct {
	baseURL     string
	environment string
	merchantID  string
	publicKey   string
	privateKey  string
	httpClient  *http.Client
}

func NewClient(cfg config.ProcessorConfig, client domain.ClientConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:     cfg.BaseURL,
		environment: cfg.Environment,
		merchantID:  client.MerchantID,
		publicKey:   client.PublicKey,
		privateKey:  client.PrivateKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

type clientTokenRequest struct {
	// Version pins the token format expected by the client-side form.
	Version int `json:"version"`
}

func (c *HTTPClient) GenerateClientToken(ctx context.Context) (*application.ClientToken, error) {
	url := fmt.Sprintf("%s/%s/merchants/%s/client_token", c.baseURL, c.environment, c.merchantID)
	return sendRequest[clientTokenRequest, application.ClientToken](c, ctx, http.MethodPost, url, &clientTokenRequest{Version: 2}, "")
}

func (c *HTTPClient) Sale(ctx context.Context, req application.SaleRequest) (*application.SaleResult, error) {
	url := fmt.Sprintf("%s/%s/merchants/%s/transactions", c.baseURL, c.environment, c.merchantID)
	return sendRequest[application.SaleRequest, application.SaleResult](c, ctx, http.MethodPost, url, &req, uuid.NewString())
}

func sendRequest[Req any, Resp any](c *HTTPClient, ctx context.Context, method, url string, reqBody *Req, idempotencyKey string) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.SetBasicAuth(c.publicKey, c.privateKey)

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var procErrResp ProcessorErrorResponse
		if err := json.Unmarshal(body, &procErrResp); err != nil {
			return nil, fmt.Errorf("processor returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, &ProcessorError{
			Code:       procErrResp.Err,
			Message:    procErrResp.Message,
			StatusCode: resp.StatusCode,
		}
	}

	var procResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&procResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &procResp, nil
}
