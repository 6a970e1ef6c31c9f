// Package export writes synced snapshots out as CSV for spreadsheets and
// downstream tooling.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/lunebank/openfin-go/pkg/openfin"
	"github.com/lunebank/openfin-go/pkg/store"
)

type row struct {
	item    string
	account string
	txn     openfin.Transaction
}

// Transactions writes every synced transaction as one CSV row, ordered by
// date then id so repeated exports are stable.
func Transactions(w io.Writer, snapshots []store.ItemSnapshot) error {
	rows := []row{}
	for _, snap := range snapshots {
		for _, account := range snap.Accounts {
			for _, txn := range account.Transactions {
				rows = append(rows, row{item: snap.Name, account: account.Account.Name, txn: txn})
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].txn.Date.Equal(rows[j].txn.Date) {
			return rows[i].txn.Date.Before(rows[j].txn.Date)
		}
		return rows[i].txn.ID < rows[j].txn.ID
	})

	cw := csv.NewWriter(w)
	header := []string{"item", "account", "transaction_id", "date", "description", "amount", "currency", "category"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.item,
			r.account,
			r.txn.ID,
			r.txn.Date.Format("2006-01-02"),
			r.txn.Description,
			fmt.Sprintf("%.2f", r.txn.Amount),
			r.txn.CurrencyCode,
			r.txn.Category,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}
