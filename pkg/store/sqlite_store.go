package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/lunebank/openfin-go/pkg/openfin"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
    id      TEXT PRIMARY KEY,
    item_id TEXT NOT NULL REFERENCES items(id),
    data    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id         TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES accounts(id),
    data       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS investments (
    id      TEXT PRIMARY KEY,
    item_id TEXT NOT NULL REFERENCES items(id),
    data    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accounts_item ON accounts(item_id);
CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id);
CREATE INDEX IF NOT EXISTS idx_investments_item ON investments(item_id);
`

// SQLiteStore implements Store using a SQLite database. Rows hold the JSON
// encoding of the SDK types; ownership lives in the foreign keys.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadItems() ([]ItemSnapshot, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	itemRows, err := tx.Query("SELECT name, data FROM items ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer itemRows.Close()

	snapshots := []ItemSnapshot{}
	for itemRows.Next() {
		var snap ItemSnapshot
		var data string
		if err := itemRows.Scan(&snap.Name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &snap.Item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("item rows error: %w", err)
	}

	for i := range snapshots {
		if err := s.loadItemData(tx, &snapshots[i]); err != nil {
			return nil, fmt.Errorf("failed to load data for item %s: %w", snapshots[i].Item.ID, err)
		}
	}

	return snapshots, nil
}

func (s *SQLiteStore) loadItemData(tx *sql.Tx, snap *ItemSnapshot) error {
	accountRows, err := tx.Query("SELECT id, data FROM accounts WHERE item_id = ? ORDER BY id", snap.Item.ID)
	if err != nil {
		return fmt.Errorf("failed to query accounts: %w", err)
	}
	defer accountRows.Close()

	snap.Accounts = []AccountSnapshot{}
	var accountIDs []string
	for accountRows.Next() {
		var id, data string
		if err := accountRows.Scan(&id, &data); err != nil {
			return fmt.Errorf("failed to scan account: %w", err)
		}

		var account AccountSnapshot
		if err := json.Unmarshal([]byte(data), &account.Account); err != nil {
			return fmt.Errorf("failed to unmarshal account: %w", err)
		}
		account.Transactions = map[string]openfin.Transaction{}
		snap.Accounts = append(snap.Accounts, account)
		accountIDs = append(accountIDs, id)
	}
	if err := accountRows.Err(); err != nil {
		return fmt.Errorf("account rows error: %w", err)
	}

	for i, id := range accountIDs {
		txnRows, err := tx.Query("SELECT data FROM transactions WHERE account_id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to query transactions: %w", err)
		}

		for txnRows.Next() {
			var data string
			if err := txnRows.Scan(&data); err != nil {
				txnRows.Close()
				return fmt.Errorf("failed to scan transaction: %w", err)
			}

			var txn openfin.Transaction
			if err := json.Unmarshal([]byte(data), &txn); err != nil {
				txnRows.Close()
				return fmt.Errorf("failed to unmarshal transaction: %w", err)
			}
			snap.Accounts[i].Transactions[txn.ID] = txn
		}
		if err := txnRows.Err(); err != nil {
			txnRows.Close()
			return fmt.Errorf("transaction rows error: %w", err)
		}
		txnRows.Close()
	}

	invRows, err := tx.Query("SELECT data FROM investments WHERE item_id = ? ORDER BY id", snap.Item.ID)
	if err != nil {
		return fmt.Errorf("failed to query investments: %w", err)
	}
	defer invRows.Close()

	snap.Investments = []openfin.Investment{}
	for invRows.Next() {
		var data string
		if err := invRows.Scan(&data); err != nil {
			return fmt.Errorf("failed to scan investment: %w", err)
		}

		var inv openfin.Investment
		if err := json.Unmarshal([]byte(data), &inv); err != nil {
			return fmt.Errorf("failed to unmarshal investment: %w", err)
		}
		snap.Investments = append(snap.Investments, inv)
	}
	if err := invRows.Err(); err != nil {
		return fmt.Errorf("investment rows error: %w", err)
	}

	return nil
}

// DumpItems replaces the stored snapshots wholesale inside one transaction.
func (s *SQLiteStore) DumpItems(items []ItemSnapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first to satisfy the foreign keys.
	for _, table := range []string{"transactions", "investments", "accounts", "items"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, snap := range items {
		data, err := json.Marshal(snap.Item)
		if err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}
		if _, err := tx.Exec("INSERT INTO items (id, name, data) VALUES (?, ?, ?)", snap.Item.ID, snap.Name, string(data)); err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for _, account := range snap.Accounts {
			data, err := json.Marshal(account.Account)
			if err != nil {
				return fmt.Errorf("failed to marshal account: %w", err)
			}
			if _, err := tx.Exec("INSERT INTO accounts (id, item_id, data) VALUES (?, ?, ?)", account.Account.ID, snap.Item.ID, string(data)); err != nil {
				return fmt.Errorf("failed to insert account: %w", err)
			}

			for id, txn := range account.Transactions {
				data, err := json.Marshal(txn)
				if err != nil {
					return fmt.Errorf("failed to marshal transaction: %w", err)
				}
				if _, err := tx.Exec("INSERT INTO transactions (id, account_id, data) VALUES (?, ?, ?)", id, account.Account.ID, string(data)); err != nil {
					return fmt.Errorf("failed to insert transaction: %w", err)
				}
			}
		}

		for _, inv := range snap.Investments {
			data, err := json.Marshal(inv)
			if err != nil {
				return fmt.Errorf("failed to marshal investment: %w", err)
			}
			if _, err := tx.Exec("INSERT INTO investments (id, item_id, data) VALUES (?, ?, ?)", inv.ID, snap.Item.ID, string(data)); err != nil {
				return fmt.Errorf("failed to insert investment: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
