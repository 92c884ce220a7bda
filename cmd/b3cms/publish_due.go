package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func publishDueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish-due",
		Short: "Publish scheduled content whose time has come, then exit",
		Long: "publish-due moves every scheduled record whose scheduledAt has passed to " +
			"published. It is meant to be run from cron when the server runs with " +
			"--publish-interval=0.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg, logger, false)
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.content.PublishDue(cmd.Context())
			if err != nil {
				return fmt.Errorf("published %d before failing: %w", n, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d\n", n)
			return nil
		},
	}
}
