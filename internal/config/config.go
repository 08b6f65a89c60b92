package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL       string
	JWTSecret         string
	JWTIssuer         string
	AccessTTLSeconds  int64
	RefreshTTLSeconds int64
	Port              string
	CorsOrigins       []string
	LogMode           string
	LogDir            string
	LogRetentionDays  int
	ContentDir        string
	DefaultCampusCode string
	GoogleCredentials string
	ExpoHost          string
	ExpoAccessToken   string
	AdminEmail        string
	AdminPassword     string
	AdminName         string
	SystemDiskPath    string
}

func Load() Config {
	cfg := LoadOptional()
	cfg.DatabaseURL = mustEnv("DATABASE_URL")
	cfg.JWTSecret = mustEnv("JWT_SECRET")
	return cfg
}

// LoadOptional reads everything except the required secrets, for CLI
// commands that do not need them all.
func LoadOptional() Config {
	return Config{
		DatabaseURL:       envOr("DATABASE_URL", ""),
		JWTSecret:         envOr("JWT_SECRET", ""),
		JWTIssuer:         envOr("JWT_ISSUER", "belakoo"),
		AccessTTLSeconds:  int64(envOrInt("ACCESS_TTL_SECONDS", 14400)),
		RefreshTTLSeconds: int64(envOrInt("REFRESH_TTL_SECONDS", 1209600)),
		Port:              envOr("PORT", "8080"),
		CorsOrigins:       parseCSV(envOr("CORS_ORIGINS", "")),
		LogMode:           envOr("LOG_MODE", "dev"),
		LogDir:            envOr("LOG_DIR", "storage/logs"),
		LogRetentionDays:  envOrInt("LOG_RETENTION_DAYS", 7),
		ContentDir:        envOr("CONTENT_DIR", "content"),
		DefaultCampusCode: envOr("DEFAULT_CAMPUS_CODE", "c1"),
		GoogleCredentials: googleCredentials(),
		ExpoHost:          envOr("EXPO_HOST", ""),
		ExpoAccessToken:   envOr("EXPO_ACCESS_TOKEN", ""),
		AdminEmail:        envOr("ADMIN_EMAIL", ""),
		AdminPassword:     envOr("ADMIN_PASSWORD", ""),
		AdminName:         envOr("ADMIN_NAME", "Administrator"),
		SystemDiskPath:    envOr("SYSTEM_DISK_PATH", "/"),
	}
}

// googleCredentials returns inline JSON or a file path, whichever is set.
func googleCredentials() string {
	if creds := envOr("GOOGLE_APPLICATION_CREDENTIALS_JSON", ""); creds != "" {
		return creds
	}
	return envOr("GOOGLE_APPLICATION_CREDENTIALS", "")
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
