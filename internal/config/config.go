// Package config loads portal configuration from environment variables.
package config

import "os"

type Config struct {
	Addr         string // PORTAL_ADDR (default ":8080")
	DBPath       string // PORTAL_DB (default "portal.db")
	LogLevel     string // PORTAL_LOG_LEVEL ("info" or "debug", default "info")
	SecureCookie bool   // PORTAL_SECURE_COOKIE ("true" enables the Secure flag)

	// Admin bootstrap: when both are set, the account is created or its
	// password refreshed at startup.
	AdminUser     string // PORTAL_ADMIN_USER
	AdminPassword string // PORTAL_ADMIN_PASSWORD

	TemplateDir string // PORTAL_TEMPLATE_DIR (default "web/templates")
	StaticDir   string // PORTAL_STATIC_DIR (default "web/static")
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Addr:          envOrDefault("PORTAL_ADDR", ":8080"),
		DBPath:        envOrDefault("PORTAL_DB", "portal.db"),
		LogLevel:      envOrDefault("PORTAL_LOG_LEVEL", "info"),
		SecureCookie:  os.Getenv("PORTAL_SECURE_COOKIE") == "true",
		AdminUser:     os.Getenv("PORTAL_ADMIN_USER"),
		AdminPassword: os.Getenv("PORTAL_ADMIN_PASSWORD"),
		TemplateDir:   envOrDefault("PORTAL_TEMPLATE_DIR", "web/templates"),
		StaticDir:     envOrDefault("PORTAL_STATIC_DIR", "web/static"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
