package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Database DatabaseConfig `env:",prefix=DB_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	JWT      JWTConfig      `env:",prefix=JWT_"`
	Twilio   TwilioConfig   `env:",prefix=TWILIO_"`
	Agenda   AgendaConfig   `env:",prefix=AGENDA_"`
	Booking  BookingConfig  `env:",prefix=BOOKING_"`
	Reminder ReminderConfig `env:",prefix=REMINDER_"`
	Session  SessionConfig  `env:",prefix=SESSION_"`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	App      AppConfig      `env:",prefix=APP_"`

	// StoreDriver selects the repository backend: memory or postgres.
	StoreDriver  string `env:"STORE_DRIVER,default=memory"`
	SeedPassword string `env:"SEED_PASSWORD,default=rclinic123"`
}

type ServerConfig struct {
	Port         string `env:"PORT,default=8080"`
	Host         string `env:"HOST,default=0.0.0.0"`
	ReadTimeout  int    `env:"READ_TIMEOUT,default=30"`  // seconds
	WriteTimeout int    `env:"WRITE_TIMEOUT,default=30"` // seconds
}

type DatabaseConfig struct {
	URL      string `env:"URL"`
	MaxConns int    `env:"MAX_CONNS,default=25"`
	MinConns int    `env:"MIN_CONNS,default=5"`
}

// RedisConfig is optional; without an address the redemption lock stays
// in-process.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB,default=0"`
}

type JWTConfig struct {
	Secret      string `env:"SECRET"`
	ExpiryHours int    `env:"EXPIRY_HOURS,default=24"`
}

type TwilioConfig struct {
	AccountSID     string `env:"ACCOUNT_SID"`
	AuthToken      string `env:"AUTH_TOKEN"`
	PhoneNumber    string `env:"PHONE_NUMBER"`
	WhatsAppNumber string `env:"WHATSAPP_NUMBER"`
}

type AgendaConfig struct {
	Timezone string `env:"TIMEZONE,default=America/Guayaquil"`
}

type BookingConfig struct {
	PersistConfirmed bool `env:"PERSIST_CONFIRMED,default=false"`
}

type ReminderConfig struct {
	// Cron is a standard five-field spec; empty disables the daily job.
	Cron string `env:"CRON"`
}

type SessionConfig struct {
	Secret string `env:"SECRET,default=rclinic-session"`
	Secure bool   `env:"SECURE,default=false"`
}

type CORSConfig struct {
	AllowOrigins string `env:"ALLOW_ORIGINS,default=http://localhost:3000,https://rclinic.ec"`
}

type AppConfig struct {
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

// Load reads .env when present and then processes the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if cfg.StoreDriver != "memory" && cfg.StoreDriver != "postgres" {
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == "postgres" && cfg.Database.URL == "" {
		return nil, fmt.Errorf("DB_URL is required when STORE_DRIVER=postgres")
	}
	if _, err := cfg.Agenda.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Location resolves the agenda time zone.
func (c *AgendaConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid AGENDA_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

// Enabled reports whether Twilio credentials are configured.
func (c *TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}

func (c *CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// IsDevelopment returns true if running in development environment
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
