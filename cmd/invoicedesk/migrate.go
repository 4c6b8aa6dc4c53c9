package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diewo77/invoicedesk/internal/db"
)

func (c *cli) migrateCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Long: `Create or upgrade the database schema. Postgres with migrations enabled
applies the embedded SQL files, other setups use AutoMigrate. Stored client
records are upgraded to the current format afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.Open(c.cfg.Database, c.log)
			if err != nil {
				return err
			}
			if sqlDB, err := conn.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := db.Migrate(conn, c.cfg.Database, c.log); err != nil {
				return err
			}
			if seed || c.cfg.Database.Seed {
				if err := db.Seed(conn, c.cfg.App.DefaultCountry); err != nil {
					return err
				}
			}
			n, err := db.UpgradeRecords(conn, c.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date, %d client record(s) upgraded\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "Create a default issuing company when none exists")
	return cmd
}
