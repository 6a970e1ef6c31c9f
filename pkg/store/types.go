// Package store persists locally synced snapshots of items, accounts,
// transactions and investments. The SDK itself never caches; this is the
// CLI's copy of what the last sync saw.
package store

import "github.com/lunebank/openfin-go/pkg/openfin"

// ItemSnapshot is everything synced for one tracked item.
type ItemSnapshot struct {
	Name        string               `json:"name"`
	Item        openfin.Item         `json:"item"`
	Accounts    []AccountSnapshot    `json:"accounts"`
	Investments []openfin.Investment `json:"investments"`
}

// AccountSnapshot holds an account and its transactions keyed by id, so
// repeated syncs upsert instead of duplicating.
type AccountSnapshot struct {
	Account      openfin.Account                `json:"account"`
	Transactions map[string]openfin.Transaction `json:"transactions"`
}

// Account returns the snapshot for the given account id.
func (s ItemSnapshot) Account(id string) (AccountSnapshot, bool) {
	for _, account := range s.Accounts {
		if account.Account.ID == id {
			return account, true
		}
	}

	return AccountSnapshot{}, false
}

// SetAccount adds or replaces an account snapshot by account id.
func (s ItemSnapshot) SetAccount(account AccountSnapshot) ItemSnapshot {
	for i := range s.Accounts {
		if s.Accounts[i].Account.ID == account.Account.ID {
			s.Accounts[i] = account
			return s
		}
	}

	s.Accounts = append(s.Accounts, account)
	return s
}

// GetItem returns the snapshot for the given item id.
func GetItem(snapshots []ItemSnapshot, id string) (ItemSnapshot, bool) {
	for _, snap := range snapshots {
		if snap.Item.ID == id {
			return snap, true
		}
	}

	return ItemSnapshot{}, false
}

// SetItem adds or replaces an item snapshot by item id.
func SetItem(snapshots []ItemSnapshot, snap ItemSnapshot) []ItemSnapshot {
	for i := range snapshots {
		if snapshots[i].Item.ID == snap.Item.ID {
			snapshots[i] = snap
			return snapshots
		}
	}

	return append(snapshots, snap)
}
