package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port    string
		BaseURL string `mapstructure:"base_url"` // public site URL used in outbound links
	}
	Database struct {
		DSN string // "memory" or file path for SQLite
	}
	Auth struct {
		JWTSecret         string `mapstructure:"jwt_secret"`
		AdminEmail        string `mapstructure:"admin_email"`
		AdminPasswordHash string `mapstructure:"admin_password_hash"` // bcrypt hash
		TokenTTLHours     int    `mapstructure:"token_ttl_hours"`
	}
	Mail struct {
		Host       string
		Port       int
		Username   string
		Password   string
		From       string
		AdminEmail string `mapstructure:"admin_email"` // internal notification address
	}
	Slack struct {
		WebhookURL string `mapstructure:"webhook_url"`
	}
	Mastodon struct {
		Instance    string
		AccessToken string `mapstructure:"access_token"`
	}
	Moderation struct {
		AutoApprove bool `mapstructure:"auto_approve"` // comments published without review
	}
	RateLimit struct {
		WindowMinutes int `mapstructure:"window_minutes"`
		MaxRequests   int `mapstructure:"max_requests"`
	} `mapstructure:"rate_limit"`
	Uploads struct {
		Dir       string
		PublicURL string `mapstructure:"public_url"`
		MaxBytes  int64  `mapstructure:"max_bytes"`
	}
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from .env, config.yaml and environment
// variables. Environment variables win for anything secret.
func LoadConfig() {
	// .env is optional; real deployments inject the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("INFO: [Config] Loaded environment from .env file.")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config") // for running from locations like tests

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("auth.token_ttl_hours", 24)
	viper.SetDefault("moderation.auto_approve", true)
	viper.SetDefault("rate_limit.window_minutes", 15)
	viper.SetDefault("rate_limit.max_requests", 3)
	viper.SetDefault("uploads.dir", "uploads")
	viper.SetDefault("uploads.public_url", "/uploads")
	viper.SetDefault("uploads.max_bytes", 5*1024*1024)
	viper.SetDefault("mail.port", 587)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	overrideFromEnv("SERVER_PORT", &AppConfig.Server.Port)
	overrideFromEnv("SITE_BASE_URL", &AppConfig.Server.BaseURL)
	overrideFromEnv("DATABASE_DSN", &AppConfig.Database.DSN)
	overrideFromEnv("JWT_SECRET", &AppConfig.Auth.JWTSecret)
	overrideFromEnv("ADMIN_EMAIL", &AppConfig.Auth.AdminEmail)
	overrideFromEnv("ADMIN_PASSWORD_HASH", &AppConfig.Auth.AdminPasswordHash)
	overrideFromEnv("SMTP_HOST", &AppConfig.Mail.Host)
	overrideFromEnv("SMTP_USERNAME", &AppConfig.Mail.Username)
	overrideFromEnv("SMTP_PASSWORD", &AppConfig.Mail.Password)
	overrideFromEnv("SMTP_FROM", &AppConfig.Mail.From)
	overrideFromEnv("CONTACT_ADMIN_EMAIL", &AppConfig.Mail.AdminEmail)
	overrideFromEnv("SLACK_WEBHOOK_URL", &AppConfig.Slack.WebhookURL)
	overrideFromEnv("MASTODON_INSTANCE", &AppConfig.Mastodon.Instance)
	overrideFromEnv("MASTODON_ACCESS_TOKEN", &AppConfig.Mastodon.AccessToken)

	if AppConfig.Auth.JWTSecret == "" {
		log.Println("WARN: [Config] JWT_SECRET is not set; admin login will be rejected until it is configured.")
	}
	if AppConfig.Mail.Host == "" {
		log.Println("WARN: [Config] SMTP is not configured; contact-form emails will be skipped.")
	}
	if AppConfig.Slack.WebhookURL == "" {
		log.Println("WARN: [Config] Slack webhook is not configured; chat notifications will be skipped.")
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}

func overrideFromEnv(name string, target *string) {
	if v := os.Getenv(name); v != "" {
		*target = v
	}
}
