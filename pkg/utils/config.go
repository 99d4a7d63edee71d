package utils

import (
	"errors"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	PubSub    PubSubConfig
	RateLimit RateLimitConfig
	Booking   BookingConfig
	Auth      AuthConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	BaseURL         string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
}

// RedisConfig is optional; an empty Addr disables Redis-backed features.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PubSubConfig struct {
	Driver         string // redis | amqp | log
	AMQPURL        string
	PublishTimeout time.Duration
}

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

type BookingConfig struct {
	DefaultUnitPrice decimal.Decimal
}

type AuthConfig struct {
	SessionTTL    time.Duration
	VerifySecret  string
	VerifyLinkTTL time.Duration
}

type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "cinema-ticketing")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_BASE_URL", "http://localhost:8080")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PUBSUB_DRIVER", "log")
	viper.SetDefault("PUBSUB_PUBLISH_TIMEOUT", "2s")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_CAPACITY", 20)
	viper.SetDefault("RATE_LIMIT_REFILL_TOKENS", 1)
	viper.SetDefault("RATE_LIMIT_REFILL_INTERVAL", "3s")
	viper.SetDefault("RATE_LIMIT_TTL", "10m")
	viper.SetDefault("RATE_LIMIT_PREFIX", "rl")
	viper.SetDefault("BOOKING_DEFAULT_PRICE", "10.00")
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("VERIFY_LINK_TTL", "60m")
	viper.SetDefault("ADMIN_NAME", "Administrator")

	// .env is optional, real deployments pass plain environment variables
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	defaultPrice, err := decimal.NewFromString(viper.GetString("BOOKING_DEFAULT_PRICE"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Port:            viper.GetString("PORT"),
			Debug:           viper.GetBool("DEBUG"),
			LogPath:         viper.GetString("LOG_PATH"),
			BaseURL:         viper.GetString("APP_BASE_URL"),
			ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
			CORSOrigins:     viper.GetStringSlice("CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		PubSub: PubSubConfig{
			Driver:         viper.GetString("PUBSUB_DRIVER"),
			AMQPURL:        viper.GetString("AMQP_URL"),
			PublishTimeout: viper.GetDuration("PUBSUB_PUBLISH_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			Enabled:        viper.GetBool("RATE_LIMIT_ENABLED"),
			Capacity:       viper.GetInt("RATE_LIMIT_CAPACITY"),
			RefillTokens:   viper.GetInt("RATE_LIMIT_REFILL_TOKENS"),
			RefillInterval: viper.GetDuration("RATE_LIMIT_REFILL_INTERVAL"),
			TTL:            viper.GetDuration("RATE_LIMIT_TTL"),
			Prefix:         viper.GetString("RATE_LIMIT_PREFIX"),
		},
		Booking: BookingConfig{
			DefaultUnitPrice: defaultPrice,
		},
		Auth: AuthConfig{
			SessionTTL:    viper.GetDuration("SESSION_TTL"),
			VerifySecret:  viper.GetString("VERIFY_SECRET"),
			VerifyLinkTTL: viper.GetDuration("VERIFY_LINK_TTL"),
		},
		Admin: AdminConfig{
			Name:     viper.GetString("ADMIN_NAME"),
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	if config.Auth.VerifySecret == "" {
		return nil, errors.New("VERIFY_SECRET is required")
	}

	return config, nil
}
