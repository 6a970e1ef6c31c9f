package openfin

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ItemStatus is the lifecycle state of a connection attempt. The server owns
// all transitions; the client only observes them by re-fetching.
type ItemStatus string

const (
	ItemStatusCreating         ItemStatus = "CREATING"
	ItemStatusUpdating         ItemStatus = "UPDATING"
	ItemStatusWaitingUserInput ItemStatus = "WAITING_USER_INPUT"
	ItemStatusUpdated          ItemStatus = "UPDATED"
	ItemStatusLoginError       ItemStatus = "LOGIN_ERROR"
	ItemStatusOutdated         ItemStatus = "OUTDATED"
	ItemStatusError            ItemStatus = "ERROR"
)

// Finished reports whether the status is terminal: the server makes no
// further progress on its own from here.
func (s ItemStatus) Finished() bool {
	switch s {
	case ItemStatusUpdated, ItemStatusLoginError, ItemStatusOutdated, ItemStatusError:
		return true
	}
	return false
}

// ExecutionErrorCode enumerates why a connection attempt did not succeed.
type ExecutionErrorCode string

const (
	ExecutionErrorInvalidCredentials       ExecutionErrorCode = "INVALID_CREDENTIALS"
	ExecutionErrorInvalidCredentialsMFA    ExecutionErrorCode = "INVALID_CREDENTIALS_MFA"
	ExecutionErrorAccountLocked            ExecutionErrorCode = "ACCOUNT_LOCKED"
	ExecutionErrorSiteNotAvailable         ExecutionErrorCode = "SITE_NOT_AVAILABLE"
	ExecutionErrorUserAuthorizationPending ExecutionErrorCode = "USER_AUTHORIZATION_PENDING"
	ExecutionErrorUserInputTimeout         ExecutionErrorCode = "USER_INPUT_TIMEOUT"
	ExecutionErrorUnexpected               ExecutionErrorCode = "UNEXPECTED_ERROR"
)

// ExecutionError is failure detail attached to an Item. It is data on the
// item, not an error returned by the client: a failed login is a normal
// terminal outcome.
type ExecutionError struct {
	Code            ExecutionErrorCode `json:"code"`
	Message         string             `json:"message"`
	ProviderMessage string             `json:"providerMessage,omitempty"`
	Attributes      map[string]string  `json:"attributes,omitempty"`
}

// Item is one connection session against a connector.
type Item struct {
	ID             string          `json:"id"`
	Connector      *Connector      `json:"connector,omitempty"`
	Status         ItemStatus      `json:"status"`
	ExecutionError *ExecutionError `json:"error,omitempty"`
	WebhookURL     string          `json:"webhookUrl,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	LastUpdatedAt  *time.Time      `json:"lastUpdatedAt,omitempty"`
}

// Finished reports whether the item reached a terminal status.
func (i *Item) Finished() bool {
	return i.Status.Finished()
}

// ItemRequest creates a new connection attempt.
type ItemRequest struct {
	ConnectorID int               `json:"connectorId"`
	Parameters  map[string]string `json:"parameters"`
	WebhookURL  string            `json:"webhookUrl,omitempty"`
}

// ItemUpdateRequest re-submits credentials for an existing item.
type ItemUpdateRequest struct {
	ID         string            `json:"id"`
	Parameters map[string]string `json:"parameters,omitempty"`
	WebhookURL string            `json:"webhookUrl,omitempty"`
}

// CreateItem starts a connection attempt. Field-level rejections surface as
// *ValidationError.
func (c *Client) CreateItem(ctx context.Context, req ItemRequest) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/items", nil, req, &item); err != nil {
		return nil, classifyValidation(err)
	}
	return &item, nil
}

// FetchItem retrieves the current state of an item.
func (c *Client) FetchItem(ctx context.Context, id string) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, buildPath("/items/{id}", id), nil, nil, &item); err != nil {
		return nil, fmt.Errorf("failed to fetch item %s: %w", id, err)
	}
	return &item, nil
}

// UpdateItem re-submits credentials (or a new webhook URL) for an item.
// Field-level rejections surface as *ValidationError.
func (c *Client) UpdateItem(ctx context.Context, req ItemUpdateRequest) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPatch, "/items", nil, req, &item); err != nil {
		return nil, classifyValidation(err)
	}
	return &item, nil
}

// DeleteItem removes an item and everything reachable through it.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, buildPath("/items/{id}", id), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return nil
}

// ExecuteAndWait creates an item and polls it until the connection attempt
// finishes, sleeping the configured poll interval between fetches. The final
// item is returned whatever terminal state it reached; inspect Status and
// ExecutionError. Cancel ctx or set a deadline to bound the wait, otherwise
// an institution-side hang polls forever.
func (c *Client) ExecuteAndWait(ctx context.Context, req ItemRequest) (*Item, error) {
	item, err := c.CreateItem(ctx, req)
	if err != nil {
		return nil, err
	}

	for !item.Finished() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		item, err = c.FetchItem(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to poll item: %w", err)
		}
	}

	return item, nil
}
