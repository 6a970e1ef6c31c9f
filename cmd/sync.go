package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lunebank/openfin-go/pkg/sync"
)

// syncCmd refreshes the local snapshots of every tracked item.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "sync accounts, transactions and investments of tracked items",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if len(cfg.Items) == 0 {
			return fmt.Errorf("no tracked items; run connect first")
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := sync.Sync(ctx, newClient(cfg), st, cfg.Items); err != nil {
			return err
		}

		fmt.Println("Successfully synced all tracked items.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
