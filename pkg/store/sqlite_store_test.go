package store

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/lunebank/openfin-go/pkg/openfin"
)

func newTestSnapshots() []ItemSnapshot {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	return []ItemSnapshot{
		{
			Name: "personal",
			Item: openfin.Item{
				ID:        "item-1",
				Status:    openfin.ItemStatusUpdated,
				CreatedAt: created,
				UpdatedAt: created,
			},
			Accounts: []AccountSnapshot{
				{
					Account: openfin.Account{
						ID:      "acc-1",
						ItemID:  "item-1",
						Type:    openfin.AccountTypeBank,
						Name:    "Checking",
						Balance: 120.5,
						BankData: &openfin.BankData{
							TransferNumber: "0001/1234-5",
							ClosingBalance: 120.5,
						},
					},
					Transactions: map[string]openfin.Transaction{
						"txn-1": {
							ID:          "txn-1",
							AccountID:   "acc-1",
							Description: "Coffee Shop",
							Amount:      -4.5,
							Date:        created,
						},
						"txn-2": {
							ID:          "txn-2",
							AccountID:   "acc-1",
							Description: "Grocery Store",
							Amount:      -100,
							Date:        created.Add(24 * time.Hour),
						},
					},
				},
			},
			Investments: []openfin.Investment{
				{
					ID:      "inv-1",
					ItemID:  "item-1",
					Type:    openfin.InvestmentTypeEquity,
					Name:    "AAPL",
					Balance: 500,
				},
			},
		},
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	want := newTestSnapshots()

	if err := store.DumpItems(want); err != nil {
		t.Fatalf("DumpItems: %v", err)
	}

	got, err := store.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}

	assertSnapshotsEqual(t, want, got)
}

func TestSQLiteStoreDumpReplacesExistingData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	if err := store.DumpItems(newTestSnapshots()); err != nil {
		t.Fatalf("first DumpItems: %v", err)
	}

	want := newTestSnapshots()
	want[0].Accounts[0].Transactions["txn-3"] = openfin.Transaction{
		ID:        "txn-3",
		AccountID: "acc-1",
		Amount:    -1,
		Date:      time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
	}

	if err := store.DumpItems(want); err != nil {
		t.Fatalf("second DumpItems: %v", err)
	}

	got, err := store.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}

	if len(got) != 1 || len(got[0].Accounts[0].Transactions) != 3 {
		t.Fatalf("expected 3 transactions after re-dump, got %+v", got)
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	store := NewJSONStore(path)

	want := newTestSnapshots()
	if err := store.DumpItems(want); err != nil {
		t.Fatalf("DumpItems: %v", err)
	}

	got, err := store.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}

	assertSnapshotsEqual(t, want, got)
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))

	got, err := store.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty snapshots, got %+v", got)
	}
}

func TestNewStoreUnknownBackend(t *testing.T) {
	if _, err := NewStoreWithBackend("etcd", ""); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

// assertSnapshotsEqual compares via the JSON encoding, which normalizes time
// representations and map ordering.
func assertSnapshotsEqual(t *testing.T, want, got []ItemSnapshot) {
	t.Helper()

	wantJSON, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal want: %v", err)
	}
	gotJSON, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}

	if !bytes.Equal(wantJSON, gotJSON) {
		t.Fatalf("snapshots differ:\nwant: %s\ngot:  %s", wantJSON, gotJSON)
	}
}
