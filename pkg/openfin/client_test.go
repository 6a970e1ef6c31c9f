package openfin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// newTestServer returns a server that answers /auth with a static token and
// delegates everything else to handler, plus a client pointed at it.
func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"accessToken":"test-token"}`)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return New("client-id", "client-secret", WithBaseURL(srv.URL), WithPollInterval(time.Millisecond))
}

func TestAccessTokenCachedAcrossCalls(t *testing.T) {
	var authCalls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth" {
			atomic.AddInt32(&authCalls, 1)
			fmt.Fprint(w, `{"accessToken":"tok"}`)
			return
		}
		fmt.Fprint(w, `{"results":[],"total":0,"page":1,"totalPages":1}`)
	}))
	defer srv.Close()

	cli := New("id", "secret", WithBaseURL(srv.URL))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := cli.FetchWebhooks(ctx); err != nil {
			t.Fatalf("FetchWebhooks: %v", err)
		}
	}

	if got := atomic.LoadInt32(&authCalls); got != 1 {
		t.Fatalf("expected 1 auth call, got %d", got)
	}
}

func TestReauthenticateOnceOnUnauthorized(t *testing.T) {
	var authCalls, dataCalls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth" {
			n := atomic.AddInt32(&authCalls, 1)
			fmt.Fprintf(w, `{"accessToken":"tok-%d"}`, n)
			return
		}

		if atomic.AddInt32(&dataCalls, 1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"code":"UNAUTHORIZED","message":"token expired"}`)
			return
		}

		if got := r.Header.Get("Authorization"); got != "Bearer tok-2" {
			t.Errorf("expected retried request to carry the fresh token, got %q", got)
		}
		fmt.Fprint(w, `{"id":"cat-1","description":"Food"}`)
	}))
	defer srv.Close()

	cli := New("id", "secret", WithBaseURL(srv.URL))

	cat, err := cli.FetchCategory(context.Background(), "cat-1")
	if err != nil {
		t.Fatalf("FetchCategory: %v", err)
	}
	if cat.Description != "Food" {
		t.Fatalf("expected description 'Food', got %q", cat.Description)
	}
	if got := atomic.LoadInt32(&authCalls); got != 2 {
		t.Fatalf("expected 2 auth calls, got %d", got)
	}
	if got := atomic.LoadInt32(&dataCalls); got != 2 {
		t.Fatalf("expected 2 data calls, got %d", got)
	}
}

func TestRequestHeaders(t *testing.T) {
	cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("expected X-Request-Id header to be set")
		}
		fmt.Fprint(w, `{"id":"cat-1","description":"Food"}`)
	})

	if _, err := cli.FetchCategory(context.Background(), "cat-1"); err != nil {
		t.Fatalf("FetchCategory: %v", err)
	}
}

func TestBuildPathSubstitutesExactlyOnce(t *testing.T) {
	got := buildPath("/items/{id}", "item-1")
	if got != "/items/item-1" {
		t.Fatalf("expected '/items/item-1', got %q", got)
	}

	// An id containing the placeholder token must be escaped, not expanded.
	got = buildPath("/items/{id}", "a{id}b")
	if got != "/items/a%7Bid%7Db" {
		t.Fatalf("expected escaped placeholder, got %q", got)
	}

	got = buildPath("/items/{id}", "a/b")
	if got != "/items/a%2Fb" {
		t.Fatalf("expected escaped slash, got %q", got)
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "bad gateway")
	})

	_, err := cli.FetchCategory(context.Background(), "cat-1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "bad gateway" {
		t.Fatalf("expected raw body as message, got %q", apiErr.Message)
	}
}

func TestDeleteDiscardsResponseBody(t *testing.T) {
	cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := cli.DeleteItem(context.Background(), "item-1"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
}
