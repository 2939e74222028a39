package config

import (
	"strings"
	"time"

	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultMaxRequestBodySize = "100KB"
	defaultSessionTTL         = time.Hour
	defaultVerificationTTL    = time.Hour
	defaultPendingAccountTTL  = time.Hour
	defaultPasswordMinLength  = 7
	defaultLoginAttempts      = 5
	defaultLoginWindow        = 15 * time.Minute
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		// AllowOrigins is passed to the CORS middleware; empty allows all origins.
		AllowOrigins []string `json:"allowOrigins" yaml:"allowOrigins"`
		Timeouts     struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Migration *MigrationConfig `json:"migration" yaml:"migration"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`

	SecretKey SecretKeyConfig `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	// Email configuration for verification mail delivery
	Email *EmailConfig `json:"email" yaml:"email"`

	// RateLimit configuration for credential login throttling
	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	// PubSub configuration for domain event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configuration for order receipt codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SecretKeyConfig holds the HMAC secrets of the two token families.
type SecretKeyConfig struct {
	Session      string `json:"session" yaml:"session"`
	Verification string `json:"verification" yaml:"verification"`
}

// MigrationConfig toggles schema migration at startup.
type MigrationConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// RedisConfig defines the connection to the store holding pending registrations.
type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost        int           `json:"bcryptCost" yaml:"bcryptCost"`
	SessionTTL        time.Duration `json:"sessionTtl" yaml:"sessionTtl"`
	VerificationTTL   time.Duration `json:"verificationTtl" yaml:"verificationTtl"`
	PendingAccountTTL time.Duration `json:"pendingAccountTtl" yaml:"pendingAccountTtl"`
}

// PasswordStrengthConfig defines password strength requirements
type PasswordStrengthConfig struct {
	MinLength        int      `json:"minLength" yaml:"minLength"`
	MaxLength        int      `json:"maxLength" yaml:"maxLength"`
	RequireUppercase bool     `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool     `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool     `json:"requireNumbers" yaml:"requireNumbers"`
	RequireSpecial   bool     `json:"requireSpecial" yaml:"requireSpecial"`
	ForbiddenWords   []string `json:"forbiddenWords" yaml:"forbiddenWords"`
}

// GoogleOAuthConfig holds the server-side authorization code flow settings.
type GoogleOAuthConfig struct {
	ClientID     string   `json:"clientId" yaml:"clientId"`
	ClientSecret string   `json:"clientSecret" yaml:"clientSecret"`
	RedirectURI  string   `json:"redirectUri" yaml:"redirectUri"`
	Scopes       []string `json:"scopes" yaml:"scopes"`
}

// EmailConfig defines the outbound mail settings.
type EmailConfig struct {
	// Provider is "ses" or "log". An empty FromAddress forces "log".
	Provider            string `json:"provider" yaml:"provider"`
	AWSRegion           string `json:"awsRegion" yaml:"awsRegion"`
	FromAddress         string `json:"fromAddress" yaml:"fromAddress"`
	FromName            string `json:"fromName" yaml:"fromName"`
	VerificationBaseURL string `json:"verificationBaseUrl" yaml:"verificationBaseUrl"`
}

// RateLimitConfig defines the credential login throttle.
type RateLimitConfig struct {
	LoginAttempts int           `json:"loginAttempts" yaml:"loginAttempts"`
	LoginWindow   time.Duration `json:"loginWindow" yaml:"loginWindow"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "noop", "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

func New() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = defaultSessionTTL
	}
	if cfg.Auth.VerificationTTL <= 0 {
		cfg.Auth.VerificationTTL = defaultVerificationTTL
	}
	if cfg.Auth.PendingAccountTTL <= 0 {
		cfg.Auth.PendingAccountTTL = defaultPendingAccountTTL
	}

	if cfg.PasswordStrength == nil {
		cfg.PasswordStrength = &PasswordStrengthConfig{
			MinLength:      defaultPasswordMinLength,
			ForbiddenWords: []string{"password"},
		}
	}

	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{}
	}
	if cfg.RateLimit.LoginAttempts <= 0 {
		cfg.RateLimit.LoginAttempts = defaultLoginAttempts
	}
	if cfg.RateLimit.LoginWindow <= 0 {
		cfg.RateLimit.LoginWindow = defaultLoginWindow
	}

	if cfg.Email == nil {
		cfg.Email = &EmailConfig{Provider: "log"}
	}
	if cfg.Redis == nil {
		cfg.Redis = &RedisConfig{Addr: "localhost:6379"}
	}
	if cfg.Migration == nil {
		cfg.Migration = &MigrationConfig{}
	}
}
