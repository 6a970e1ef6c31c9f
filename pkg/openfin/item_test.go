package openfin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestExecuteAndWaitPollsUntilFinished(t *testing.T) {
	var fetchCalls int32

	cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/items":
			fmt.Fprint(w, `{"id":"item-1","status":"UPDATING"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/items/item-1":
			if atomic.AddInt32(&fetchCalls, 1) < 2 {
				fmt.Fprint(w, `{"id":"item-1","status":"UPDATING"}`)
			} else {
				fmt.Fprint(w, `{"id":"item-1","status":"UPDATED"}`)
			}
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	})

	item, err := cli.ExecuteAndWait(context.Background(), ItemRequest{ConnectorID: 1})
	if err != nil {
		t.Fatalf("ExecuteAndWait: %v", err)
	}

	if item.Status != ItemStatusUpdated {
		t.Fatalf("expected UPDATED, got %s", item.Status)
	}
	if got := atomic.LoadInt32(&fetchCalls); got != 2 {
		t.Fatalf("expected 2 poll fetches, got %d", got)
	}
}

func TestExecuteAndWaitReturnsTerminalFailureAsValue(t *testing.T) {
	var fetchCalls int32

	cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/items":
			fmt.Fprint(w, `{"id":"item-1","status":"UPDATING"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/items/item-1":
			atomic.AddInt32(&fetchCalls, 1)
			fmt.Fprint(w, `{"id":"item-1","status":"LOGIN_ERROR","error":{"code":"INVALID_CREDENTIALS","message":"wrong password"}}`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	})

	item, err := cli.ExecuteAndWait(context.Background(), ItemRequest{ConnectorID: 1})
	if err != nil {
		t.Fatalf("a failed connection attempt must not be an error, got %v", err)
	}

	if item.Status != ItemStatusLoginError {
		t.Fatalf("expected LOGIN_ERROR, got %s", item.Status)
	}
	if item.ExecutionError == nil || item.ExecutionError.Code != ExecutionErrorInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS execution error, got %+v", item.ExecutionError)
	}
	if got := atomic.LoadInt32(&fetchCalls); got != 1 {
		t.Fatalf("expected to stop after the first poll, got %d fetches", got)
	}
}

func TestExecuteAndWaitHonorsContextCancellation(t *testing.T) {
	cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Never reaches a terminal status.
		fmt.Fprint(w, `{"id":"item-1","status":"UPDATING"}`)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := cli.ExecuteAndWait(ctx, ItemRequest{ConnectorID: 1})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}

func TestCreateItemValidationError(t *testing.T) {
	cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":"VALIDATION_ERROR","message":"invalid parameters","errors":[{"parameter":"connectorId","message":"must be a known connector","code":"unknown"}]}`)
	})

	_, err := cli.CreateItem(context.Background(), ItemRequest{ConnectorID: 999})

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if valErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", valErr.StatusCode)
	}
	if len(valErr.Details) != 1 || valErr.Details[0].Parameter != "connectorId" {
		t.Fatalf("expected the field list from the response, got %+v", valErr.Details)
	}
}

func TestCreateItemPlainAPIErrorWithoutDetails(t *testing.T) {
	cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":"BAD_REQUEST","message":"something else"}`)
	})

	_, err := cli.CreateItem(context.Background(), ItemRequest{ConnectorID: 1})

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		t.Fatalf("expected no validation error without an errors array, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Code != "BAD_REQUEST" {
		t.Fatalf("expected code BAD_REQUEST, got %q", apiErr.Code)
	}
}

func TestUpdateItemSendsPatchWithID(t *testing.T) {
	cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/items" {
			t.Errorf("expected PATCH /items, got %s %s", r.Method, r.URL.Path)
		}

		var req ItemUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if req.ID != "item-1" {
			t.Errorf("expected item id in body, got %q", req.ID)
		}

		fmt.Fprint(w, `{"id":"item-1","status":"UPDATING"}`)
	})

	if _, err := cli.UpdateItem(context.Background(), ItemUpdateRequest{ID: "item-1"}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
}
