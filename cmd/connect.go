package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lunebank/openfin-go/pkg/config"
	"github.com/lunebank/openfin-go/pkg/openfin"
)

var (
	connectConnectorID int
	connectName        string
	connectParams      []string
	connectWebhookURL  string
)

// connectCmd creates an item against a connector and waits for the
// connection attempt to finish.
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "connect an institution and wait for the attempt to finish",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runConnect()
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)

	connectCmd.Flags().IntVar(&connectConnectorID, "connector", 0, "connector id")
	connectCmd.MarkFlagRequired("connector")

	connectCmd.Flags().StringVar(&connectName, "name", "", "name to track the item under in the config")
	connectCmd.MarkFlagRequired("name")

	connectCmd.Flags().StringArrayVar(&connectParams, "param", nil, "credential parameter as key=value (repeatable)")
	connectCmd.Flags().StringVar(&connectWebhookURL, "webhook-url", "", "webhook URL to notify about this item")
}

func runConnect() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, ok := cfg.Item(connectName); ok {
		return fmt.Errorf("%s already existed", connectName)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli := newClient(cfg)

	connector, err := cli.FetchConnector(ctx, connectConnectorID)
	if err != nil {
		return fmt.Errorf("failed to fetch connector: %w", err)
	}

	params, err := parseParams(connectParams)
	if err != nil {
		return err
	}

	if err := promptMissingCredentials(connector, params); err != nil {
		return err
	}

	fmt.Printf("Connecting to %s...\n", connector.Name)

	item, err := cli.ExecuteAndWait(ctx, openfin.ItemRequest{
		ConnectorID: connector.ID,
		Parameters:  params,
		WebhookURL:  connectWebhookURL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	if item.ExecutionError != nil {
		fmt.Printf("Connection finished with status %s: %s (%s)\n", item.Status, item.ExecutionError.Message, item.ExecutionError.Code)
	} else {
		fmt.Printf("Connection finished with status %s.\n", item.Status)
	}

	if !item.Finished() || item.Status != openfin.ItemStatusUpdated {
		return nil
	}

	if err := cfg.SetItem(config.ItemRef{Name: connectName, ID: item.ID}); err != nil {
		return fmt.Errorf("failed to track item: %w", err)
	}
	if err := config.Dump(cfgPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Item %s saved as %q.\n", item.ID, connectName)
	return nil
}

func parseParams(pairs []string) (map[string]string, error) {
	params := map[string]string{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

// promptMissingCredentials reads required credential fields the caller did
// not pass as flags from stdin.
func promptMissingCredentials(connector *openfin.Connector, params map[string]string) error {
	reader := bufio.NewReader(os.Stdin)

	for _, cred := range connector.Credentials {
		if cred.Optional {
			continue
		}
		if _, ok := params[cred.Name]; ok {
			continue
		}

		fmt.Printf("Enter %s: ", cred.Label)
		text, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", cred.Name, err)
		}
		params[cred.Name] = strings.TrimSpace(text)
	}

	return nil
}
