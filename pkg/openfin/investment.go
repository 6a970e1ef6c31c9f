package openfin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// InvestmentType enumerates investment kinds.
type InvestmentType string

const (
	InvestmentTypeCOE         InvestmentType = "COE"
	InvestmentTypeEquity      InvestmentType = "EQUITY"
	InvestmentTypeETF         InvestmentType = "ETF"
	InvestmentTypeFixedIncome InvestmentType = "FIXED_INCOME"
	InvestmentTypeMutualFund  InvestmentType = "MUTUAL_FUND"
	InvestmentTypeSecurity    InvestmentType = "SECURITY"
	InvestmentTypeOther       InvestmentType = "OTHER"
)

// Investment belongs to exactly one item.
type Investment struct {
	ID           string         `json:"id"`
	ItemID       string         `json:"itemId"`
	Type         InvestmentType `json:"type"`
	Name         string         `json:"name"`
	Number       string         `json:"number,omitempty"`
	Balance      float64        `json:"balance"`
	CurrencyCode string         `json:"currencyCode"`
	AnnualRate   float64        `json:"annualRate,omitempty"`
	Date         *time.Time     `json:"date,omitempty"`
	Value        float64        `json:"value,omitempty"`
	Quantity     float64        `json:"quantity,omitempty"`
	Amount       float64        `json:"amount,omitempty"`
}

// FetchInvestments lists the investments of an item, optionally filtered by
// type. A nil investmentType omits the filter from the query entirely.
func (c *Client) FetchInvestments(ctx context.Context, itemID string, investmentType *InvestmentType) (*PageResults[Investment], error) {
	v := url.Values{}
	v.Set("itemId", itemID)
	if investmentType != nil {
		setParam(v, "type", string(*investmentType))
	}

	var page PageResults[Investment]
	if err := c.do(ctx, http.MethodGet, "/investments", v, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch investments for item %s: %w", itemID, err)
	}
	return &page, nil
}

// FetchInvestment retrieves a single investment by id.
func (c *Client) FetchInvestment(ctx context.Context, id string) (*Investment, error) {
	var inv Investment
	if err := c.do(ctx, http.MethodGet, buildPath("/investments/{id}", id), nil, nil, &inv); err != nil {
		return nil, fmt.Errorf("failed to fetch investment %s: %w", id, err)
	}
	return &inv, nil
}
