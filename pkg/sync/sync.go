// Package sync pulls the current accounts, transactions and investments of
// every tracked item through the API client and persists them as snapshots.
package sync

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lunebank/openfin-go/pkg/config"
	"github.com/lunebank/openfin-go/pkg/openfin"
	"github.com/lunebank/openfin-go/pkg/store"
)

// transactionPageSize keeps transaction pages large enough that most accounts
// sync in one request.
const transactionPageSize = 200

// Sync refreshes the snapshot of every tracked item and saves the result.
func Sync(ctx context.Context, cli *openfin.Client, st store.Store, items []config.ItemRef) error {
	snapshots, err := st.LoadItems()
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}

	for _, ref := range items {
		snap, err := syncItem(ctx, cli, snapshots, ref)
		if err != nil {
			return fmt.Errorf("failed to sync item %s: %w", ref.Name, err)
		}

		snapshots = store.SetItem(snapshots, snap)
	}

	if err := st.DumpItems(snapshots); err != nil {
		return fmt.Errorf("failed to dump snapshots: %w", err)
	}

	return nil
}

func syncItem(ctx context.Context, cli *openfin.Client, snapshots []store.ItemSnapshot, ref config.ItemRef) (store.ItemSnapshot, error) {
	item, err := cli.FetchItem(ctx, ref.ID)
	if err != nil {
		return store.ItemSnapshot{}, fmt.Errorf("failed to fetch item: %w", err)
	}

	snap, ok := store.GetItem(snapshots, item.ID)
	if !ok {
		snap = store.ItemSnapshot{Name: ref.Name}
	}
	snap.Item = *item
	if snap.Name == "" {
		snap.Name = ref.Name
	}

	accountsPage, err := cli.FetchAccounts(ctx, item.ID, nil)
	if err != nil {
		return store.ItemSnapshot{}, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, account := range accountsPage.Results {
		accSnap, ok := snap.Account(account.ID)
		if !ok {
			accSnap = store.AccountSnapshot{Transactions: map[string]openfin.Transaction{}}
		}
		accSnap.Account = account

		count, err := syncTransactions(ctx, cli, &accSnap)
		if err != nil {
			return store.ItemSnapshot{}, fmt.Errorf("failed to sync transactions for account %s: %w", account.ID, err)
		}

		snap = snap.SetAccount(accSnap)

		logrus.WithFields(logrus.Fields{
			"item":         ref.Name,
			"account":      account.Name,
			"transactions": count,
		}).Info("synced account")
	}

	investmentsPage, err := cli.FetchInvestments(ctx, item.ID, nil)
	if err != nil {
		return store.ItemSnapshot{}, fmt.Errorf("failed to fetch investments: %w", err)
	}
	snap.Investments = investmentsPage.Results

	return snap, nil
}

// syncTransactions walks the transaction pages of one account and upserts
// them into the snapshot map. Returns how many transactions were seen.
func syncTransactions(ctx context.Context, cli *openfin.Client, snap *store.AccountSnapshot) (int, error) {
	count := 0
	page := 1

	for {
		txnPage, err := cli.FetchTransactions(ctx, snap.Account.ID, &openfin.TransactionOptions{
			Page:     page,
			PageSize: transactionPageSize,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to fetch transactions page %d: %w", page, err)
		}

		for _, txn := range txnPage.Results {
			snap.Transactions[txn.ID] = txn
			count++
		}

		if page >= txnPage.TotalPages {
			break
		}
		page++
	}

	return count, nil
}
