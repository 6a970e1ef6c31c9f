package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lunebank/openfin-go/pkg/config"
	"github.com/lunebank/openfin-go/pkg/openfin"
	"github.com/lunebank/openfin-go/pkg/store"
)

var (
	cfgPath string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "openfin",
	Short: "connect bank accounts and sync their data through the open finance API",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *openfin.Client {
	opts := []openfin.Option{}
	if cfg.BaseURL != "" {
		opts = append(opts, openfin.WithBaseURL(cfg.BaseURL))
	}
	if cfg.PollIntervalMS > 0 {
		opts = append(opts, openfin.WithPollInterval(time.Duration(cfg.PollIntervalMS)*time.Millisecond))
	}
	return openfin.New(cfg.ClientID, cfg.ClientSecret, opts...)
}

func openStore(cfg *config.Config) (store.Store, error) {
	st, err := store.NewStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}
