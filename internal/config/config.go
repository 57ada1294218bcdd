package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const defaultConfigPath = "./config/local.yaml"

type HTTPServer struct {
	Addr              string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
	MigrationsPath  string        `yaml:"MIGRATIONS_PATH" env:"PG_MIGRATIONS_PATH" env-default:"migrations"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type Stripe struct {
	Enabled       bool   `yaml:"STRIPE_ENABLED" env:"STRIPE_ENABLED" env-default:"false"`
	APIKey        string `yaml:"STRIPE_API_KEY" env:"STRIPE_API_KEY" env-default:""`
	WebhookSecret string `yaml:"STRIPE_WEBHOOK_SECRET" env:"STRIPE_WEBHOOK_SECRET" env-default:""`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"receipts@example.com"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"POS Receipts"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"12"`
}

type OTel struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"pos-platform"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Cache struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Checkout struct {
	DefaultTaxRate     string        `yaml:"default_tax_rate" env:"CHECKOUT_DEFAULT_TAX_RATE" env-default:"0.08"`
	Currency           string        `yaml:"currency" env:"CHECKOUT_CURRENCY" env-default:"usd"`
	SimulatedCardDelay time.Duration `yaml:"simulated_card_delay" env:"CHECKOUT_SIMULATED_CARD_DELAY" env-default:"1500ms"`
	WalletLockTTL      time.Duration `yaml:"wallet_lock_ttl" env:"CHECKOUT_WALLET_LOCK_TTL" env-default:"5s"`
	SessionIdleTimeout time.Duration `yaml:"session_idle_timeout" env:"CHECKOUT_SESSION_IDLE_TIMEOUT" env-default:"2h"`
}

type Tiers struct {
	Silver string `yaml:"silver" env:"TIER_SILVER_THRESHOLD" env-default:"500"`
	Gold   string `yaml:"gold" env:"TIER_GOLD_THRESHOLD" env-default:"2000"`
}

type Config struct {
	Env          string       `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Stripe       Stripe       `yaml:"stripe"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Security     Security     `yaml:"security"`
	OTel         OTel         `yaml:"otel"`
	Cache        Cache        `yaml:"cache"`
	Checkout     Checkout     `yaml:"checkout"`
	Tiers        Tiers        `yaml:"tiers"`
}

// MustLoad resolves the config path from CONFIG_PATH, then -config, then the
// default location, and exits the process on any failure.
func MustLoad() *Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the config file")
		flag.Parse()

		configPath = *flags
	}

	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	if _, err := cfg.Checkout.TaxRate(); err != nil {
		return nil, fmt.Errorf("invalid default tax rate: %w", err)
	}

	if _, _, err := cfg.Tiers.Thresholds(); err != nil {
		return nil, fmt.Errorf("invalid tier thresholds: %w", err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}

func (r *RedisConnect) Addr() string {
	return r.Host + ":" + r.Port
}

func (c *Checkout) TaxRate() (decimal.Decimal, error) {
	return decimal.NewFromString(c.DefaultTaxRate)
}

func (t *Tiers) Thresholds() (silver, gold decimal.Decimal, err error) {
	silver, err = decimal.NewFromString(t.Silver)
	if err != nil {
		return silver, gold, err
	}

	gold, err = decimal.NewFromString(t.Gold)
	if err != nil {
		return silver, gold, err
	}

	if !gold.GreaterThan(silver) {
		return silver, gold, fmt.Errorf("gold threshold %s must exceed silver threshold %s", gold, silver)
	}

	return silver, gold, nil
}
