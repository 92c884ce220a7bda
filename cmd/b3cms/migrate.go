package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"b3cms/internal/config"
	"b3cms/internal/database"
)

func migrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.StoreBackend != config.BackendPostgres {
				return errors.New("migrate requires STORE_BACKEND=postgres")
			}

			db, err := database.Connect(cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db); err != nil {
				return err
			}
			if seed {
				if err := database.Seed(db); err != nil {
					return err
				}
			}

			v, err := database.Version(db)
			if err != nil {
				return err
			}
			logger.Info("schema up to date", "version", v)
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "insert the default categories and welcome page into an empty database")
	return cmd
}
