package config

import (
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

// DefaultFromEmail is the sender used when EMAIL_FROM is unset and the SMTP
// user is not itself an address (the Resend relay logs in as "resend").
const DefaultFromEmail = "Casey Cooke <leads@closewithcasey.org>"

const (
	LedgerSheets   = "sheets"
	LedgerPostgres = "postgres"
	LedgerSQLite   = "sqlite"
)

type ServerConfig struct {
	Addr          string `yaml:"addr" env:"WALKAWAY_ADDR"`
	GinMode       string `yaml:"gin_mode" env:"GIN_MODE"`
	AllowedOrigin string `yaml:"allowed_origin" env:"WALKAWAY_ALLOWED_ORIGIN"`
}

type LedgerConfig struct {
	Driver             string        `yaml:"driver" env:"LEDGER_DRIVER"`
	SheetID            string        `yaml:"sheet_id" env:"GOOGLE_SHEET_ID"`
	SheetRange         string        `yaml:"sheet_range" env:"GOOGLE_SHEET_RANGE"`
	ServiceAccountJSON string        `yaml:"service_account_json" env:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	ServiceAccountFile string        `yaml:"service_account_file" env:"GOOGLE_APPLICATION_CREDENTIALS"`
	DSN                string        `yaml:"dsn" env:"LEDGER_DSN"`
	Timeout            time.Duration `yaml:"timeout" env:"LEDGER_TIMEOUT"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort     int    `yaml:"smtp_port" env:"SMTP_PORT"`
	SMTPUser     string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPassword string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
	ResendAPIKey string `yaml:"resend_api_key" env:"RESEND_API_KEY"`
	FromEmail    string `yaml:"from_email" env:"EMAIL_FROM"`
	NotifyEmail  string `yaml:"notify_email" env:"NOTIFY_EMAIL"`
	AttachPDF    bool   `yaml:"attach_pdf" env:"EMAIL_ATTACH_PDF"`
	FontPath     string `yaml:"font_path" env:"EMAIL_PDF_FONT"`
}

type SMSConfig struct {
	AccountSID string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `yaml:"from_number" env:"TWILIO_FROM_NUMBER"`
	BaseURL    string `yaml:"base_url" env:"TWILIO_BASE_URL"`
	DryRun     bool   `yaml:"dry_run" env:"SMS_DRY_RUN"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID   int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

type NotifyConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"NOTIFY_TIMEOUT"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"WALKAWAY_OTLP_ENDPOINT"`
	ServiceName  string `yaml:"service_name" env:"WALKAWAY_SERVICE_NAME"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Email     EmailConfig     `yaml:"email"`
	SMS       SMSConfig       `yaml:"sms"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Notify    NotifyConfig    `yaml:"notify"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// Load reads .env (if present), then the YAML file at path (if present), then
// applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
		if port := os.Getenv("PORT"); port != "" {
			c.Server.Addr = ":" + port
		}
	}
	if c.Server.AllowedOrigin == "" {
		c.Server.AllowedOrigin = "*"
	}

	c.Ledger.Driver = strings.ToLower(strings.TrimSpace(c.Ledger.Driver))
	if c.Ledger.Driver == "" {
		c.Ledger.Driver = LedgerSheets
	}
	if c.Ledger.SheetRange == "" {
		c.Ledger.SheetRange = "A1"
	}
	if c.Ledger.Timeout <= 0 {
		c.Ledger.Timeout = 10 * time.Second
	}

	// Resend exposes an SMTP relay keyed by the API key.
	if c.Email.SMTPHost == "" && c.Email.ResendAPIKey != "" {
		c.Email.SMTPHost = "smtp.resend.com"
		c.Email.SMTPPort = 465
		c.Email.SMTPUser = "resend"
		c.Email.SMTPPassword = c.Email.ResendAPIKey
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.FromEmail == "" {
		c.Email.FromEmail = DefaultFromEmail
		if _, err := mail.ParseAddress(c.Email.SMTPUser); err == nil {
			c.Email.FromEmail = c.Email.SMTPUser
		}
	}

	if c.Notify.Timeout <= 0 {
		c.Notify.Timeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "walkaway"
	}
}

// Validate reports a ledger configuration that cannot produce a working
// ledger. The service still starts; submissions then fail with a
// configuration error.
func (l LedgerConfig) Validate() error {
	switch l.Driver {
	case LedgerSheets:
		if strings.TrimSpace(l.SheetID) == "" {
			return errors.New("GOOGLE_SHEET_ID is not set")
		}
		if strings.TrimSpace(l.ServiceAccountJSON) == "" && strings.TrimSpace(l.ServiceAccountFile) == "" {
			return errors.New("GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_APPLICATION_CREDENTIALS is not set")
		}
	case LedgerPostgres, LedgerSQLite:
		if strings.TrimSpace(l.DSN) == "" {
			return fmt.Errorf("LEDGER_DSN is not set for driver %s", l.Driver)
		}
	default:
		return fmt.Errorf("unknown ledger driver %q", l.Driver)
	}
	return nil
}
