package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/flexprice/tuition/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Cache      CacheConfig
	Billing    BillingConfig `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required,oneof=debug info warn error"`
}

type PostgresConfig struct {
	Host                   string `validate:"required"`
	Port                   int    `validate:"required,min=1,max=65535"`
	User                   string `validate:"required"`
	Password               string
	DBName                 string `mapstructure:"dbname" validate:"required"`
	SSLMode                string `mapstructure:"sslmode" validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"min=0"`
}

type CacheConfig struct {
	Enabled bool
}

// BillingConfig holds the static defaults of the billing engine
type BillingConfig struct {
	// Currency is the ISO code used when labelling fixed discounts
	Currency string `validate:"required,len=3"`
	// PaymentDueDay is returned by the settings accessor until PAYMENT_DUE_DAY is set
	PaymentDueDay int `mapstructure:"payment_due_day" validate:"min=1,max=31"`
	// DaysUntilOverdue is returned by the settings accessor until DAYS_UNTIL_OVERDUE is set
	DaysUntilOverdue int `mapstructure:"days_until_overdue" validate:"min=0"`
	// ReportConcurrency bounds the per-student fan-out of month level reports
	ReportConcurrency int `mapstructure:"report_concurrency" validate:"min=1,max=64"`
	// ReportTimeout bounds a single report run; zero disables the deadline
	ReportTimeout time.Duration `mapstructure:"report_timeout" validate:"min=0"`
}

func NewConfig() (*Configuration, error) {
	// A missing .env is fine, the file only exists on developer machines
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tuition")

	// Set up environment variables support
	v.SetEnvPrefix("TUITION")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		// stdout carries report output
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override it even without a config file
func setDefaults(v *viper.Viper) {
	defaults := GetDefaultConfig()

	v.SetDefault("deployment.mode", defaults.Deployment.Mode)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("postgres.host", defaults.Postgres.Host)
	v.SetDefault("postgres.port", defaults.Postgres.Port)
	v.SetDefault("postgres.user", defaults.Postgres.User)
	v.SetDefault("postgres.password", defaults.Postgres.Password)
	v.SetDefault("postgres.dbname", defaults.Postgres.DBName)
	v.SetDefault("postgres.sslmode", defaults.Postgres.SSLMode)
	v.SetDefault("postgres.max_open_conns", defaults.Postgres.MaxOpenConns)
	v.SetDefault("postgres.max_idle_conns", defaults.Postgres.MaxIdleConns)
	v.SetDefault("postgres.conn_max_lifetime_minutes", defaults.Postgres.ConnMaxLifetimeMinutes)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("billing.currency", defaults.Billing.Currency)
	v.SetDefault("billing.payment_due_day", defaults.Billing.PaymentDueDay)
	v.SetDefault("billing.days_until_overdue", defaults.Billing.DaysUntilOverdue)
	v.SetDefault("billing.report_concurrency", defaults.Billing.ReportConcurrency)
	v.SetDefault("billing.report_timeout", defaults.Billing.ReportTimeout)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts, tests or other non-server applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Postgres: PostgresConfig{
			Host:                   "localhost",
			Port:                   5432,
			User:                   "tuition",
			Password:               "tuition",
			DBName:                 "tuition",
			SSLMode:                "disable",
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
		},
		Cache: CacheConfig{Enabled: true},
		Billing: BillingConfig{
			Currency:          "usd",
			PaymentDueDay:     5,
			DaysUntilOverdue:  5,
			ReportConcurrency: 8,
			ReportTimeout:     2 * time.Minute,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
