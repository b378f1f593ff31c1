// Package moralis implements the push-source subscription manager: stream
// creation and teardown against the Moralis Streams API, plus webhook
// signature verification.
package moralis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blockpulse/whale-sentry/internal/adapter"
	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/logger"
	"github.com/blockpulse/whale-sentry/internal/normalizer"
)

// Streams defines the subscription lifecycle interface
//
//go:generate mockgen -source=client.go -destination=../../mocks/streams.go -package=mocks -mock_names=Streams=MockStreams
type Streams interface {
	// CreateSubscription creates a stream delivering transfer events for the
	// address to the callback URL and returns the stream id. Fails with
	// domain.ErrMissingCallbackURL when no callback URL is configured.
	CreateSubscription(ctx context.Context, address string, callbackURL string) (string, error)

	// DeleteSubscription tears down a stream
	DeleteSubscription(ctx context.Context, streamID string) error
}

// Config holds streams API configuration
type Config struct {
	BaseURL string
	APIKey  string
	ChainID string
}

type client struct {
	config Config
	http   adapter.HTTPClient
}

// NewClient creates a new streams API client
func NewClient(cfg Config, httpClient adapter.HTTPClient) Streams {
	return &client{config: cfg, http: httpClient}
}

// createStreamRequest is the stream creation payload
type createStreamRequest struct {
	WebhookURL          string   `json:"webhookUrl"`
	Description         string   `json:"description"`
	Tag                 string   `json:"tag"`
	ChainIDs            []string `json:"chainIds"`
	Topic0              []string `json:"topic0"`
	IncludeContractLogs bool     `json:"includeContractLogs"`
}

// createStreamResponse is the stream creation response
type createStreamResponse struct {
	ID string `json:"id"`
}

func (c *client) headers() map[string]string {
	return map[string]string{"X-API-Key": c.config.APIKey}
}

// CreateSubscription creates a stream for the address and attaches the address to it
func (c *client) CreateSubscription(ctx context.Context, address string, callbackURL string) (string, error) {
	if callbackURL == "" {
		return "", domain.ErrMissingCallbackURL
	}

	address = domain.NormalizeAddress(address)

	reqBody, err := json.Marshal(createStreamRequest{
		WebhookURL:          callbackURL,
		Description:         fmt.Sprintf("whale-sentry transfers to %s", address),
		Tag:                 uuid.NewString(),
		ChainIDs:            []string{c.config.ChainID},
		Topic0:              []string{normalizer.TransferTopic()},
		IncludeContractLogs: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal stream request: %w", err)
	}

	respBody, err := c.http.Put(ctx, c.config.BaseURL+"/streams/evm", c.headers(), bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create stream: %w", err)
	}

	var resp createStreamResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to decode stream response: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("stream response carries no id")
	}

	attachBody, err := json.Marshal(map[string][]string{"address": {address}})
	if err != nil {
		return "", fmt.Errorf("failed to marshal address attachment: %w", err)
	}

	attachURL := fmt.Sprintf("%s/streams/evm/%s/address", c.config.BaseURL, resp.ID)
	if _, err := c.http.Post(ctx, attachURL, c.headers(), bytes.NewReader(attachBody)); err != nil {
		// Best-effort cleanup of the half-created stream
		if delErr := c.DeleteSubscription(ctx, resp.ID); delErr != nil {
			logger.Warn("failed to clean up half-created stream",
				zap.String("stream_id", resp.ID), zap.Error(delErr))
		}
		return "", fmt.Errorf("failed to attach address to stream: %w", err)
	}

	return resp.ID, nil
}

// DeleteSubscription tears down a stream
func (c *client) DeleteSubscription(ctx context.Context, streamID string) error {
	url := fmt.Sprintf("%s/streams/evm/%s", c.config.BaseURL, streamID)
	if _, err := c.http.Delete(ctx, url, c.headers()); err != nil {
		return fmt.Errorf("failed to delete stream: %w", err)
	}
	return nil
}
