package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	RulesFile string
	Turso     TursoConfig
	Admin     AdminConfig
	Slack     SlackConfig
	PubSub    PubSubConfig
	// AllowedOrigins feeds the CORS middleware. "*" allows any origin.
	AllowedOrigins []string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type AdminConfig struct {
	// Passphrase is either plain text or a bcrypt hash.
	Passphrase string
	JWTSecret  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether Slack notifications are configured.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

type PubSubConfig struct {
	ProjectID string
	Topic     string
}

// Enabled reports whether events should be published.
func (c PubSubConfig) Enabled() bool {
	return c.ProjectID != ""
}
