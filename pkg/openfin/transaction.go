package openfin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Transaction belongs to exactly one account.
type Transaction struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"accountId"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	Balance      float64   `json:"balance,omitempty"`
	CurrencyCode string    `json:"currencyCode"`
	Date         time.Time `json:"date"`
	Category     string    `json:"category,omitempty"`
	ProviderCode string    `json:"providerCode,omitempty"`
	Status       string    `json:"status,omitempty"`
}

// TransactionOptions filters and pages FetchTransactions. Zero-valued fields
// are omitted from the query.
type TransactionOptions struct {
	From     string // YYYY-MM-DD
	To       string // YYYY-MM-DD
	Page     int
	PageSize int
}

func (o *TransactionOptions) values(accountID string) url.Values {
	v := url.Values{}
	v.Set("accountId", accountID)
	if o == nil {
		return v
	}

	setParam(v, "from", o.From)
	setParam(v, "to", o.To)
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(o.PageSize))
	}

	return v
}

// FetchTransactions lists the transactions of an account.
func (c *Client) FetchTransactions(ctx context.Context, accountID string, opts *TransactionOptions) (*PageResults[Transaction], error) {
	var page PageResults[Transaction]
	if err := c.do(ctx, http.MethodGet, "/transactions", opts.values(accountID), nil, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for account %s: %w", accountID, err)
	}
	return &page, nil
}

// FetchTransaction retrieves a single transaction by id.
func (c *Client) FetchTransaction(ctx context.Context, id string) (*Transaction, error) {
	var txn Transaction
	if err := c.do(ctx, http.MethodGet, buildPath("/transactions/{id}", id), nil, nil, &txn); err != nil {
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", id, err)
	}
	return &txn, nil
}
