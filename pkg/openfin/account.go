package openfin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// AccountType splits accounts into bank and credit card products. The two
// carry mutually exclusive data payloads.
type AccountType string

const (
	AccountTypeBank   AccountType = "BANK"
	AccountTypeCredit AccountType = "CREDIT"
)

// Account belongs to exactly one item. Exactly one of BankData and CreditData
// is set, matching Type.
type Account struct {
	ID            string        `json:"id"`
	ItemID        string        `json:"itemId"`
	Type          AccountType   `json:"type"`
	Subtype       string        `json:"subtype"`
	Name          string        `json:"name"`
	MarketingName string        `json:"marketingName,omitempty"`
	Number        string        `json:"number"`
	Balance       float64       `json:"balance"`
	CurrencyCode  string        `json:"currencyCode"`
	TaxNumber     string        `json:"taxNumber,omitempty"`
	Owner         string        `json:"owner,omitempty"`
	BankData      *BankData     `json:"bankData,omitempty"`
	CreditData    *CreditData   `json:"creditData,omitempty"`
	Transactions  []Transaction `json:"transactions,omitempty"`
}

// BankData is the BANK-specific payload.
type BankData struct {
	TransferNumber               string  `json:"transferNumber"`
	ClosingBalance               float64 `json:"closingBalance"`
	AutomaticallyInvestedBalance float64 `json:"automaticallyInvestedBalance"`
}

// CreditData is the CREDIT-specific payload.
type CreditData struct {
	Brand                  string   `json:"brand"`
	Level                  string   `json:"level"`
	Status                 string   `json:"status"`
	CreditLimit            float64  `json:"creditLimit"`
	AvailableCreditLimit   float64  `json:"availableCreditLimit"`
	BalanceDueDate         string   `json:"balanceDueDate"`
	BalanceCloseDate       string   `json:"balanceCloseDate"`
	MinimumPayment         float64  `json:"minimumPayment"`
	BalanceForeignCurrency *float64 `json:"balanceForeignCurrency,omitempty"`
}

// FetchAccounts lists the accounts of an item, optionally filtered by type.
// A nil accountType omits the filter from the query entirely.
func (c *Client) FetchAccounts(ctx context.Context, itemID string, accountType *AccountType) (*PageResults[Account], error) {
	v := url.Values{}
	v.Set("itemId", itemID)
	if accountType != nil {
		setParam(v, "type", string(*accountType))
	}

	var page PageResults[Account]
	if err := c.do(ctx, http.MethodGet, "/accounts", v, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for item %s: %w", itemID, err)
	}
	return &page, nil
}

// FetchAccount retrieves a single account by id.
func (c *Client) FetchAccount(ctx context.Context, id string) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodGet, buildPath("/accounts/{id}", id), nil, nil, &account); err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", id, err)
	}
	return &account, nil
}
