package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Service names accepted by --service
const (
	ServiceAuction      = "auction"
	ServiceBidding      = "bidding"
	ServiceTransaction  = "transaction"
	ServiceNotification = "notification"
	ServiceItem         = "item"
	ServiceUser         = "user"
)

// Storage drivers accepted by --db-driver
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

const envPrefix = "AUCTION"

type DBConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	DSN      string
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	PriceSyncKey string
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// PeerConfig holds the base URLs of the services this one calls
type PeerConfig struct {
	AuctionURL      string
	BiddingURL      string
	ItemURL         string
	NotificationURL string
	Timeout         time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int
}

type PriceSyncConfig struct {
	MaxAttempts int
	BaseBackoff time.Duration
}

type Config struct {
	Service   string
	ServerURL string
	LogLevel  string
	SeedItems bool
	DB        DBConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	Peers     PeerConfig
	Auth      AuthConfig
	PriceSync PriceSyncConfig
}

// Load reads configuration from a .env file, the environment (AUCTION_ prefix) and args, in rising precedence.
func Load(args []string) (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("auction-services", pflag.ContinueOnError)

	// server config
	flags.String("service", "", "service to run: auction|bidding|transaction|notification|item|user")
	flags.String("server-url", "0.0.0.0:8080", "listen address")
	flags.String("log-level", "info", "")
	flags.Bool("seed-items", false, "prepopulate sample items (item service, memory storage)")

	// db config
	flags.String("db-driver", DriverMemory, "postgres|mysql|sqlite|memory")
	flags.String("db-host", "localhost", "")
	flags.Int("db-port", 5432, "")
	flags.String("db-user", "", "")
	flags.String("db-password", "", "")
	flags.String("db-database", "auction", "")
	flags.String("db-dsn", "", "full DSN, overrides the individual db settings")

	// redis config
	flags.String("redis-addr", "", "redis address for the price-sync queue; empty uses an in-process queue")
	flags.String("redis-password", "", "")
	flags.Int("redis-db", 0, "")
	flags.String("price-sync-key", "auction:price-sync", "")

	// rabbitmq config
	flags.String("rabbitmq-url", "", "empty disables event publishing")
	flags.String("events-exchange", "auction-events", "")

	// peer services
	flags.String("auction-url", "http://localhost:8001", "")
	flags.String("bidding-url", "http://localhost:8002", "")
	flags.String("item-url", "http://localhost:8003", "")
	flags.String("notification-url", "http://localhost:8004", "")
	flags.Duration("http-timeout", 3*time.Second, "timeout for calls to peer services")

	// price sync
	flags.Int("price-sync-max-attempts", 5, "")
	flags.Duration("price-sync-backoff", 500*time.Millisecond, "")

	// auth
	flags.String("jwt-secret", "", "")
	flags.Duration("jwt-ttl", time.Hour, "")
	flags.Int("bcrypt-cost", 10, "")

	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Service:   v.GetString("service"),
		ServerURL: v.GetString("server-url"),
		LogLevel:  v.GetString("log-level"),
		SeedItems: v.GetBool("seed-items"),
		DB: DBConfig{
			Driver:   v.GetString("db-driver"),
			Host:     v.GetString("db-host"),
			Port:     v.GetInt("db-port"),
			User:     v.GetString("db-user"),
			Password: v.GetString("db-password"),
			Database: v.GetString("db-database"),
			DSN:      v.GetString("db-dsn"),
		},
		Redis: RedisConfig{
			Addr:         v.GetString("redis-addr"),
			Password:     v.GetString("redis-password"),
			DB:           v.GetInt("redis-db"),
			PriceSyncKey: v.GetString("price-sync-key"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("rabbitmq-url"),
			Exchange: v.GetString("events-exchange"),
		},
		Peers: PeerConfig{
			AuctionURL:      v.GetString("auction-url"),
			BiddingURL:      v.GetString("bidding-url"),
			ItemURL:         v.GetString("item-url"),
			NotificationURL: v.GetString("notification-url"),
			Timeout:         v.GetDuration("http-timeout"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("jwt-secret"),
			JWTTTL:     v.GetDuration("jwt-ttl"),
			BcryptCost: v.GetInt("bcrypt-cost"),
		},
		PriceSync: PriceSyncConfig{
			MaxAttempts: v.GetInt("price-sync-max-attempts"),
			BaseBackoff: v.GetDuration("price-sync-backoff"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations no service can start with
func (c Config) Validate() error {
	var errs []error

	switch c.Service {
	case ServiceAuction, ServiceBidding, ServiceTransaction, ServiceNotification, ServiceItem, ServiceUser:
	default:
		errs = append(errs, fmt.Errorf("unknown service %q", c.Service))
	}

	switch c.DB.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown db driver %q", c.DB.Driver))
	}

	if c.Service == ServiceUser && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("jwt-secret is required for the user service"))
	}
	if c.Peers.Timeout <= 0 {
		errs = append(errs, errors.New("http-timeout must be positive"))
	}
	if c.PriceSync.MaxAttempts < 1 {
		errs = append(errs, errors.New("price-sync-max-attempts must be at least 1"))
	}

	return errors.Join(errs...)
}
