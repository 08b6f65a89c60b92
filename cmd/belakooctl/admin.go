package main

import (
	"fmt"

	"belakoo-backend-go/internal/services"

	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminPassword string
	adminName     string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the admin account if it does not exist",
	Long: `Create an ADMIN user. Running it again with the same email is a no-op.

Flags fall back to ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME.

Examples:
  belakooctl create-admin --email admin@belakoo.com --password s3cret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := firstNonEmpty(adminEmail, cfg.AdminEmail)
		password := firstNonEmpty(adminPassword, cfg.AdminPassword)
		if email == "" || password == "" {
			return fmt.Errorf("email and password are required")
		}
		st, closeFn, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTLSeconds, cfg.RefreshTTLSeconds)
		users := services.NewUserService(st, tokens, log)
		user, created, err := users.EnsureAdmin(cmd.Context(), services.NewUser{
			Email:    email,
			Name:     firstNonEmpty(adminName, cfg.AdminName),
			Password: password,
		})
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", user.Email)
		}
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	rootCmd.AddCommand(createAdminCmd)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
