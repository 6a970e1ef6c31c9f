package openfin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Connector describes an institution the API can connect to. Connectors are
// read-only: the set is owned by the service.
type Connector struct {
	ID             int                   `json:"id"`
	Name           string                `json:"name"`
	InstitutionURL string                `json:"institutionUrl"`
	ImageURL       string                `json:"imageUrl"`
	PrimaryColor   string                `json:"primaryColor"`
	Type           string                `json:"type"`
	Country        string                `json:"country"`
	HasMFA         bool                  `json:"hasMFA"`
	Credentials    []ConnectorCredential `json:"credentials"`
}

// ConnectorCredential describes one field the institution requires to log in.
type ConnectorCredential struct {
	Label    string `json:"label"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	MFA      bool   `json:"mfa"`
	Optional bool   `json:"optional"`
}

// ConnectorOptions filters FetchConnectors. Zero-valued fields are omitted
// from the query entirely.
type ConnectorOptions struct {
	Name      string
	Countries []string
	Types     []string
	Sandbox   bool
}

func (o *ConnectorOptions) values() url.Values {
	v := url.Values{}
	if o == nil {
		return v
	}

	setParam(v, "name", o.Name)
	if len(o.Countries) > 0 {
		v.Set("countries", strings.Join(o.Countries, ","))
	}
	if len(o.Types) > 0 {
		v.Set("types", strings.Join(o.Types, ","))
	}
	if o.Sandbox {
		v.Set("sandbox", "true")
	}

	return v
}

// FetchConnectors lists connectors matching opts. A nil opts lists everything.
func (c *Client) FetchConnectors(ctx context.Context, opts *ConnectorOptions) (*PageResults[Connector], error) {
	var page PageResults[Connector]
	if err := c.do(ctx, http.MethodGet, "/connectors", opts.values(), nil, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch connectors: %w", err)
	}
	return &page, nil
}

// FetchConnector retrieves a single connector by id.
func (c *Client) FetchConnector(ctx context.Context, id int) (*Connector, error) {
	var conn Connector
	if err := c.do(ctx, http.MethodGet, buildPath("/connectors/{id}", strconv.Itoa(id)), nil, nil, &conn); err != nil {
		return nil, fmt.Errorf("failed to fetch connector %d: %w", id, err)
	}
	return &conn, nil
}
