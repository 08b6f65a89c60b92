package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"belakoo-backend-go/internal/config"
	"belakoo-backend-go/internal/db"
	"belakoo-backend-go/internal/logger"
	"belakoo-backend-go/internal/store"
	"belakoo-backend-go/internal/store/postgres"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfg config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "belakooctl",
	Short: "Belakoo content administration",
	Long: `belakooctl runs maintenance tasks against the Belakoo database:
schema migrations, admin bootstrap and lesson imports.

Configuration comes from the environment (and .env when present),
the same variables the API server reads.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg = config.LoadOptional()
		var err error
		log, err = logger.New(logger.Options{Mode: cfg.LogMode, Dir: cfg.LogDir, RetentionDays: cfg.LogRetentionDays})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

// openStore is swapped in tests.
var openStore = func(ctx context.Context) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is not set")
	}
	database, err := db.Open(ctx, cfg.DatabaseURL, 4)
	if err != nil {
		return nil, nil, err
	}
	return postgres.New(database), func() { _ = database.Close() }, nil
}

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
