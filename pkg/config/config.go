package config

import (
	"mclink/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo     repository.Config `envPrefix:"REPO_"`
	LogLevel string            `env:"LOGGER_LEVEL" envDefault:"info"`

	DiscordToken string   `env:"DISCORD_TOKEN" envDefault:""`
	GuildID      string   `env:"DISCORD_GUILD_ID" envDefault:""`
	LogChannelID string   `env:"DISCORD_LOG_CHANNEL_ID" envDefault:""`
	LinkedRoleID string   `env:"DISCORD_LINKED_ROLE_ID" envDefault:""`
	AdminUserIDs []string `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`

	// Linking rules.
	MaxAccountsPerDiscord int `env:"MAX_ACCOUNTS_PER_DISCORD" envDefault:"10"`
	CodeExpiryMinutes     int `env:"CODE_EXPIRY_MINUTES" envDefault:"30"`
	CodeLength            int `env:"CODE_LENGTH" envDefault:"4"`

	// Discord account requirements checked before a code may be redeemed.
	VerificationEnabled  bool `env:"VERIFICATION_ENABLED" envDefault:"true"`
	MinAccountAgeDays    int  `env:"MIN_ACCOUNT_AGE_DAYS" envDefault:"7"`
	MinServerJoinMinutes int  `env:"MIN_SERVER_JOIN_MINUTES" envDefault:"10"`

	// HTTP API consumed by the Minecraft server plugin.
	HTTPPort     string `env:"HTTP_PORT" envDefault:"8080"`
	JWTSecretKey string `env:"JWT_SECRET_KEY" envDefault:""`
	RateLimit    int    `env:"RATE_LIMIT" envDefault:"120"`

	GoogleCredentialsPath string `env:"GOOGLE_CREDENTIALS_PATH" envDefault:""`
	GoogleOwnerEmail      string `env:"GOOGLE_OWNER_EMAIL" envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}
