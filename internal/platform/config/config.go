package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Counter backend selectors. The file backend matches the historical
// deployment; postgres and redis delegate atomicity to the backing service
// and are safe under concurrent submissions across processes.
const (
	CounterFile     = "file"
	CounterPostgres = "postgres"
	CounterRedis    = "redis"
)

// Payment initiator modes.
const (
	PaymentStatic  = "static"
	PaymentGateway = "gateway"
)

// Config is the full server configuration, loaded from the environment.
type Config struct {
	Addr       string `env:"ADHESION_ADDR" envDefault:":3000"`
	DataDir    string `env:"ADHESION_DATA_DIR" envDefault:"adherents"`
	UploadsDir string `env:"ADHESION_UPLOADS_DIR" envDefault:"uploads"`
	LogoPath   string `env:"ADHESION_LOGO" envDefault:"images/logo.png"`
	InfosPath  string `env:"ADHESION_INFOS" envDefault:"infos.json"`

	CounterBackend  string `env:"ADHESION_COUNTER" envDefault:"file"`
	CounterFilePath string `env:"ADHESION_COUNTER_FILE" envDefault:"last_number.txt"`
	DatabaseURL     string `env:"DATABASE_URL"`
	RedisURL        string `env:"REDIS_URL"`

	Mail    Mail
	Payment Payment
}

// Mail holds SMTP credentials for the operator notification. Empty user or
// password means notifications are skipped, not an error.
type Mail struct {
	Host     string `env:"EMAIL_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"EMAIL_PORT" envDefault:"587"`
	User     string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASS"`
	To       string `env:"EMAIL_TO"`
}

// Recipient is the notification address, defaulting to the sending account
// when EMAIL_TO is unset.
func (m Mail) Recipient() string {
	if m.To != "" {
		return m.To
	}
	return m.User
}

// Payment holds the payment-gateway collaborator configuration.
type Payment struct {
	Mode      string `env:"PAYMENT_MODE" envDefault:"static"`
	BaseURL   string `env:"PAYMENT_BASE_URL" envDefault:"https://paiement.ongbienetre.org"`
	SiteID    string `env:"PAYMENT_SITE_ID"`
	APIKey    string `env:"PAYMENT_API_KEY"`
	ReturnURL string `env:"PAYMENT_RETURN_URL"`
	CancelURL string `env:"PAYMENT_CANCEL_URL"`
}

// Load builds the configuration from environment variables so main stays lean.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.CounterBackend {
	case CounterFile, CounterPostgres, CounterRedis:
	default:
		return Config{}, fmt.Errorf("unknown counter backend %q", cfg.CounterBackend)
	}
	if cfg.CounterBackend == CounterPostgres && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("counter backend %q requires DATABASE_URL", cfg.CounterBackend)
	}
	if cfg.CounterBackend == CounterRedis && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("counter backend %q requires REDIS_URL", cfg.CounterBackend)
	}
	return cfg, nil
}
