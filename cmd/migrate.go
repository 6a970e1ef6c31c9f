package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lunebank/openfin-go/pkg/store"
)

var (
	migrateFrom       string
	migrateTo         string
	migrateSourcePath string
	migrateDestPath   string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "migrate snapshot data between storage backends",
	Long:  `Migrate snapshot data from one storage backend to another (e.g. json to sqlite).`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigrate()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVar(&migrateFrom, "from", "json", "source backend (json or sqlite)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "sqlite", "destination backend (json or sqlite)")
	migrateCmd.Flags().StringVar(&migrateSourcePath, "source", "", "source file path (defaults based on backend)")
	migrateCmd.Flags().StringVar(&migrateDestPath, "dest", "", "destination file path (defaults based on backend)")
}

func runMigrate() error {
	if migrateFrom == migrateTo {
		return fmt.Errorf("source and destination backends are the same: %s", migrateFrom)
	}

	src, err := store.NewStoreWithBackend(migrateFrom, migrateSourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source store: %w", err)
	}
	defer src.Close()

	dst, err := store.NewStoreWithBackend(migrateTo, migrateDestPath)
	if err != nil {
		return fmt.Errorf("failed to open destination store: %w", err)
	}
	defer dst.Close()

	items, err := src.LoadItems()
	if err != nil {
		return fmt.Errorf("failed to load from source: %w", err)
	}

	if err := dst.DumpItems(items); err != nil {
		return fmt.Errorf("failed to write to destination: %w", err)
	}

	fmt.Printf("Successfully migrated %d item(s) from %s to %s.\n", len(items), migrateFrom, migrateTo)
	fmt.Println("Update your config.yaml to use the new backend:")
	fmt.Println("  storage:")
	fmt.Printf("    backend: %s\n", migrateTo)
	return nil
}
