package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lunebank/openfin-go/pkg/export"
)

var exportOut string

// exportCmd writes synced transactions as CSV.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "export synced transactions as CSV",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		snapshots, err := st.LoadItems()
		if err != nil {
			return fmt.Errorf("failed to load snapshots: %w", err)
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := export.Transactions(f, snapshots); err != nil {
			return err
		}

		fmt.Printf("Exported transactions to %q.\n", exportOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "./transactions.csv", "output file path")
}
