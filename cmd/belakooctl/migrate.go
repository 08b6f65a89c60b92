package main

import (
	"fmt"

	"belakoo-backend-go/internal/db"
	"belakoo-backend-go/internal/migrations"

	"github.com/spf13/cobra"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Apply the SQL migrations embedded in the binary.

Examples:
  belakooctl migrate
  belakooctl migrate --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}
		ctx := cmd.Context()
		database, err := db.Open(ctx, cfg.DatabaseURL, 2)
		if err != nil {
			return err
		}
		defer database.Close()

		if migrateDryRun {
			pending, err := migrations.Pending(ctx, database, migrations.Files)
			if err != nil {
				return err
			}
			for _, name := range pending {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}
		if err := migrations.Apply(ctx, database, migrations.Files); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "List pending migrations without applying them")
	rootCmd.AddCommand(migrateCmd)
}
