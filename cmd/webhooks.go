package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lunebank/openfin-go/pkg/listen"
	"github.com/lunebank/openfin-go/pkg/openfin"
)

var (
	webhookURL   string
	webhookEvent string
	listenAddr   string
)

var webhooksCmd = &cobra.Command{
	Use:   "webhooks",
	Short: "manage webhook subscriptions",
}

var webhooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "list registered webhooks",
	RunE: func(_ *cobra.Command, _ []string) error {
		cli, err := clientFromConfig()
		if err != nil {
			return err
		}

		page, err := cli.FetchWebhooks(context.Background())
		if err != nil {
			return err
		}

		for _, wh := range page.Results {
			fmt.Printf("%s\t%s\t%s\n", wh.ID, wh.Event, wh.URL)
		}
		fmt.Printf("%d webhook(s).\n", page.Total)
		return nil
	},
}

var webhooksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "register a webhook",
	RunE: func(_ *cobra.Command, _ []string) error {
		event := openfin.WebhookEvent(webhookEvent)
		if !event.Valid() {
			return fmt.Errorf("invalid event %q", webhookEvent)
		}

		cli, err := clientFromConfig()
		if err != nil {
			return err
		}

		wh, err := cli.CreateWebhook(context.Background(), openfin.WebhookRequest{URL: webhookURL, Event: event})
		if err != nil {
			return err
		}

		fmt.Printf("Created webhook %s for %s.\n", wh.ID, wh.Event)
		return nil
	},
}

var webhooksUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "update a webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		event := openfin.WebhookEvent(webhookEvent)
		if !event.Valid() {
			return fmt.Errorf("invalid event %q", webhookEvent)
		}

		cli, err := clientFromConfig()
		if err != nil {
			return err
		}

		wh, err := cli.UpdateWebhook(context.Background(), args[0], openfin.WebhookRequest{URL: webhookURL, Event: event})
		if err != nil {
			return err
		}

		fmt.Printf("Updated webhook %s.\n", wh.ID)
		return nil
	},
}

var webhooksDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "delete a webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cli, err := clientFromConfig()
		if err != nil {
			return err
		}

		if err := cli.DeleteWebhook(context.Background(), args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted webhook %s.\n", args[0])
		return nil
	},
}

var webhooksListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "run a local webhook listener and print incoming events",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		srv := listen.NewServer()
		baseURL, err := srv.Start(ctx, listenAddr)
		if err != nil {
			return err
		}

		fmt.Printf("Listening for webhook events on %s/webhook (ctrl-c to stop)...\n", baseURL)

		for {
			select {
			case <-ctx.Done():
				return nil
			case event := <-srv.Events():
				fmt.Printf("%s\titem=%s\n", event.Event, event.ItemID)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(webhooksCmd)
	webhooksCmd.AddCommand(webhooksListCmd)
	webhooksCmd.AddCommand(webhooksCreateCmd)
	webhooksCmd.AddCommand(webhooksUpdateCmd)
	webhooksCmd.AddCommand(webhooksDeleteCmd)
	webhooksCmd.AddCommand(webhooksListenCmd)

	webhooksCreateCmd.Flags().StringVar(&webhookURL, "url", "", "callback URL")
	webhooksCreateCmd.MarkFlagRequired("url")
	webhooksCreateCmd.Flags().StringVar(&webhookEvent, "event", string(openfin.WebhookEventAll), "subscribed event")

	webhooksUpdateCmd.Flags().StringVar(&webhookURL, "url", "", "callback URL")
	webhooksUpdateCmd.MarkFlagRequired("url")
	webhooksUpdateCmd.Flags().StringVar(&webhookEvent, "event", string(openfin.WebhookEventAll), "subscribed event")

	webhooksListenCmd.Flags().StringVar(&listenAddr, "addr", "127.0.0.1:8321", "listen address")
}

func clientFromConfig() (*openfin.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newClient(cfg), nil
}
