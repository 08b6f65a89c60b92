package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"belakoo-backend-go/internal/config"
	"belakoo-backend-go/internal/db"
	httpapi "belakoo-backend-go/internal/http"
	"belakoo-backend-go/internal/logger"
	"belakoo-backend-go/internal/migrations"
	"belakoo-backend-go/internal/notify"
	"belakoo-backend-go/internal/services"
	"belakoo-backend-go/internal/sheets"
	"belakoo-backend-go/internal/store/postgres"

	"github.com/joho/godotenv"
	gsheets "google.golang.org/api/sheets/v4"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(logger.Options{Mode: cfg.LogMode, Dir: cfg.LogDir, RetentionDays: cfg.LogRetentionDays})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Open(ctx, cfg.DatabaseURL, 0)
	if err != nil {
		log.Fatal("db", "error", err)
	}
	defer database.Close()
	if err := migrations.Apply(ctx, database, migrations.Files); err != nil {
		log.Fatal("migrations", "error", err)
	}
	st := postgres.New(database)

	hub := services.NewActivityHub()
	go hub.Run(ctx)

	server := httpapi.NewServer(st, cfg, hub, httpapi.Options{
		Notifier: newNotifier(cfg, log),
		Sheets:   sheetsService(cfg),
		Log:      log,
	})
	ensureAdmin(ctx, server, cfg, log)

	addr := ":" + cfg.Port
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	cancel()
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
	log.Info("shutdown complete")
}

func newNotifier(cfg config.Config, log *logger.Logger) notify.Notifier {
	if cfg.ExpoHost == "" && cfg.ExpoAccessToken == "" {
		return notify.LogNotifier{Log: log}
	}
	expo, err := notify.NewExpo(log, notify.ExpoConfig{Host: cfg.ExpoHost, AccessToken: cfg.ExpoAccessToken})
	if err != nil {
		log.Warn("expo push disabled", "error", err)
		return notify.LogNotifier{Log: log}
	}
	return expo
}

// sheetsService is nil without credentials, which disables spreadsheet imports.
func sheetsService(cfg config.Config) services.SheetsServiceFunc {
	if cfg.GoogleCredentials == "" {
		return nil
	}
	return func(ctx context.Context) (*gsheets.Service, error) {
		return sheets.NewService(ctx, cfg.GoogleCredentials)
	}
}

func ensureAdmin(ctx context.Context, server *httpapi.Server, cfg config.Config, log *logger.Logger) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	user, created, err := server.Users.EnsureAdmin(ctx, services.NewUser{
		Email:    cfg.AdminEmail,
		Name:     cfg.AdminName,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		log.Error("bootstrap admin", "error", err)
		return
	}
	if created {
		log.Info("bootstrap admin created", "user_id", user.ID)
	}
}
