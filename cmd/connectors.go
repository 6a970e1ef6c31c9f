package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lunebank/openfin-go/pkg/openfin"
)

var (
	connectorName    string
	connectorCountry []string
	connectorTypes   []string
	connectorSandbox bool
)

// connectorsCmd lists connectors, or shows one when an id is given.
var connectorsCmd = &cobra.Command{
	Use:   "connectors [id]",
	Short: "list available connectors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cli := newClient(cfg)
		ctx := context.Background()

		if len(args) == 1 {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid connector id: %s", args[0])
			}

			connector, err := cli.FetchConnector(ctx, id)
			if err != nil {
				return err
			}
			printConnector(connector)
			return nil
		}

		page, err := cli.FetchConnectors(ctx, &openfin.ConnectorOptions{
			Name:      connectorName,
			Countries: connectorCountry,
			Types:     connectorTypes,
			Sandbox:   connectorSandbox,
		})
		if err != nil {
			return err
		}

		for i := range page.Results {
			printConnector(&page.Results[i])
		}
		fmt.Printf("%d connector(s), page %d/%d.\n", page.Total, page.Page, page.TotalPages)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectorsCmd)

	connectorsCmd.Flags().StringVar(&connectorName, "name", "", "filter by name")
	connectorsCmd.Flags().StringSliceVar(&connectorCountry, "country", nil, "filter by country code")
	connectorsCmd.Flags().StringSliceVar(&connectorTypes, "type", nil, "filter by connector type")
	connectorsCmd.Flags().BoolVar(&connectorSandbox, "sandbox", false, "include sandbox connectors")
}

func printConnector(c *openfin.Connector) {
	mfa := ""
	if c.HasMFA {
		mfa = " [MFA]"
	}
	fmt.Printf("%d\t%s\t%s/%s%s\n", c.ID, c.Name, c.Country, c.Type, mfa)
}
