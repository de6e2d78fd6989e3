package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/addition-london/donations-gateway/internal/application"
	"github.com/addition-london/donations-gateway/internal/config"
)

// Client talks to the topic service's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.PubSubConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

// Resolve returns a handle to the named topic, creating it first. Always
// attempting creation costs a little latency but avoids a separate existence
// check round trip: in steady state the broker answers with a conflict and
// the existing topic is used as-is. Any failure other than the conflict is
// returned to the caller unretried.
func (c *Client) Resolve(ctx context.Context, topicName string) (application.Topic, error) {
	if err := c.createTopic(ctx, topicName); err != nil {
		if psErr, ok := IsPubSubError(err); ok && psErr.IsConflict() {
			return &topicHandle{name: topicName, client: c}, nil
		}
		return nil, err
	}
	return &topicHandle{name: topicName, client: c}, nil
}

func (c *Client) createTopic(ctx context.Context, topicName string) error {
	url := fmt.Sprintf("%s/topics/%s", c.baseURL, topicName)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readError(resp)
	}

	return nil
}

// topicHandle is a per-request handle; it is not cached across requests.
type topicHandle struct {
	name   string
	client *Client
}

func (t *topicHandle) Name() string {
	return t.name
}

type publishRequest struct {
	Messages []pubsubMessage `json:"messages"`
}

type pubsubMessage struct {
	Data string `json:"data"`
}

type publishResponse struct {
	MessageIDs []string `json:"message_ids"`
}

// Publish sends one message to the topic and returns the broker-assigned ids.
func (t *topicHandle) Publish(ctx context.Context, data []byte) ([]string, error) {
	url := fmt.Sprintf("%s/topics/%s:publish", t.client.baseURL, t.name)

	body, err := json.Marshal(publishRequest{
		Messages: []pubsubMessage{
			{Data: base64.StdEncoding.EncodeToString(data)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error marshalling json: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readError(resp)
	}

	var pubResp publishResponse
	if err := json.NewDecoder(resp.Body).Decode(&pubResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return pubResp.MessageIDs, nil
}

func readError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var psErrResp PubSubErrorResponse
	if err := json.Unmarshal(body, &psErrResp); err != nil {
		return &PubSubError{
			Message:    string(body),
			StatusCode: resp.StatusCode,
		}
	}
	return &PubSubError{
		Code:       psErrResp.Err,
		Message:    psErrResp.Message,
		StatusCode: resp.StatusCode,
	}
}
