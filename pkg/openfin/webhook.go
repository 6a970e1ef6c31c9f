package openfin

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// WebhookEvent enumerates the notifications a webhook can subscribe to.
type WebhookEvent string

const (
	WebhookEventItemCreated WebhookEvent = "item/created"
	WebhookEventItemUpdated WebhookEvent = "item/updated"
	WebhookEventItemError   WebhookEvent = "item/error"
	WebhookEventAll         WebhookEvent = "all"
)

// Valid reports whether the event is one the API accepts.
func (e WebhookEvent) Valid() bool {
	switch e {
	case WebhookEventItemCreated, WebhookEventItemUpdated, WebhookEventItemError, WebhookEventAll:
		return true
	}
	return false
}

// Webhook is a caller-registered callback target. Its full lifecycle is owned
// by the caller.
type Webhook struct {
	ID        string       `json:"id"`
	URL       string       `json:"url"`
	Event     WebhookEvent `json:"event"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// WebhookRequest creates or updates a webhook.
type WebhookRequest struct {
	URL   string       `json:"url"`
	Event WebhookEvent `json:"event"`
}

// FetchWebhooks lists all registered webhooks.
func (c *Client) FetchWebhooks(ctx context.Context) (*PageResults[Webhook], error) {
	var page PageResults[Webhook]
	if err := c.do(ctx, http.MethodGet, "/webhooks", nil, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch webhooks: %w", err)
	}
	return &page, nil
}

// FetchWebhook retrieves a single webhook by id.
func (c *Client) FetchWebhook(ctx context.Context, id string) (*Webhook, error) {
	var wh Webhook
	if err := c.do(ctx, http.MethodGet, buildPath("/webhooks/{id}", id), nil, nil, &wh); err != nil {
		return nil, fmt.Errorf("failed to fetch webhook %s: %w", id, err)
	}
	return &wh, nil
}

// CreateWebhook registers a callback URL for an event. Field-level rejections
// surface as *ValidationError.
func (c *Client) CreateWebhook(ctx context.Context, req WebhookRequest) (*Webhook, error) {
	var wh Webhook
	if err := c.do(ctx, http.MethodPost, "/webhooks", nil, req, &wh); err != nil {
		return nil, classifyValidation(err)
	}
	return &wh, nil
}

// UpdateWebhook changes the URL or event of an existing webhook. Field-level
// rejections surface as *ValidationError.
func (c *Client) UpdateWebhook(ctx context.Context, id string, req WebhookRequest) (*Webhook, error) {
	var wh Webhook
	if err := c.do(ctx, http.MethodPatch, buildPath("/webhooks/{id}", id), nil, req, &wh); err != nil {
		return nil, classifyValidation(err)
	}
	return &wh, nil
}

// DeleteWebhook removes a webhook.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, buildPath("/webhooks/{id}", id), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete webhook %s: %w", id, err)
	}
	return nil
}
