package openfin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestConnectorOptionsValues(t *testing.T) {
	var opts *ConnectorOptions
	if got := opts.values().Encode(); got != "" {
		t.Fatalf("expected empty query for nil options, got %q", got)
	}

	v := (&ConnectorOptions{
		Name:      "lune",
		Countries: []string{"BR", "US"},
		Sandbox:   true,
	}).values()

	if got := v.Get("name"); got != "lune" {
		t.Fatalf("expected name=lune, got %q", got)
	}
	if got := v.Get("countries"); got != "BR,US" {
		t.Fatalf("expected countries joined, got %q", got)
	}
	if got := v.Get("sandbox"); got != "true" {
		t.Fatalf("expected sandbox=true, got %q", got)
	}
	if v.Has("types") {
		t.Fatal("expected absent types filter to be omitted")
	}
}

func TestFetchConnectorsReturnsEnvelope(t *testing.T) {
	var query string

	cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		fmt.Fprint(w, `{"results":[{"id":7,"name":"Lune Bank","country":"BR","hasMFA":true}],"total":1,"page":1,"totalPages":1}`)
	})

	page, err := cli.FetchConnectors(context.Background(), nil)
	if err != nil {
		t.Fatalf("FetchConnectors: %v", err)
	}

	if query != "" {
		t.Fatalf("expected no query for nil options, got %q", query)
	}
	if len(page.Results) != 1 || page.Results[0].ID != 7 || !page.Results[0].HasMFA {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestTransactionOptionsValues(t *testing.T) {
	v := (*TransactionOptions)(nil).values("acc-1")
	if got := v.Encode(); got != "accountId=acc-1" {
		t.Fatalf("expected only accountId, got %q", got)
	}

	v = (&TransactionOptions{From: "2026-01-01", PageSize: 50}).values("acc-1")
	encoded := v.Encode()
	if !strings.Contains(encoded, "from=2026-01-01") || !strings.Contains(encoded, "pageSize=50") {
		t.Fatalf("expected from and pageSize, got %q", encoded)
	}
	if v.Has("to") || v.Has("page") {
		t.Fatalf("expected absent filters to be omitted, got %q", encoded)
	}
}
