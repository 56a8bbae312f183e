package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return fromEnv(os.LookupEnv)
}

func fromEnv(lookup func(string) (string, bool)) Config {
	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	getEnvDefault := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:    getEnv("DB_NAME"),
		Port:      getEnvDefault("PORT", "8080"),
		RulesFile: getEnvDefault("RULES_FILE", ""),
		Turso: TursoConfig{
			PrimaryURL: getEnvDefault("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvDefault("TURSO_AUTH_TOKEN", ""),
		},
		Admin: AdminConfig{
			Passphrase: getEnv("ADMIN_PASSPHRASE"),
			JWTSecret:  getEnv("JWT_SECRET"),
		},
		Slack: SlackConfig{
			Token:     getEnvDefault("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnvDefault("SLACK_CHANNEL_ID", ""),
		},
		PubSub: PubSubConfig{
			ProjectID: getEnvDefault("GCP_PROJECT", ""),
			Topic:     getEnvDefault("PUBSUB_TOPIC", "auction-events"),
		},
		AllowedOrigins: splitList(getEnvDefault("ALLOWED_ORIGINS", "*")),
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
