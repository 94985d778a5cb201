package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Store    StoreConfig
	DB       DBConfig
	HTTP     HTTPConfig
	Admin    AdminConfig
	Telegram TelegramConfig
	Events   EventsConfig

	// RestaurantID selects whose menu the customer and admin views show.
	RestaurantID string `env:"RESTAURANT_ID"`
	AutoMigrate  bool   `env:"AUTO_MIGRATE" envDefault:"false"`
}

type StoreConfig struct {
	Driver              string `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath          string `env:"SQLITE_PATH" envDefault:"flip-menu.db"`
	FirebaseProjectID   string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentials string `env:"FIREBASE_CREDENTIALS"`
	MongoURI            string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase       string `env:"MONGO_DATABASE" envDefault:"flip_menu"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Database string `env:"DB_NAME" envDefault:"flip_menu"`
}

type HTTPConfig struct {
	Addr        string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	Diagnostics bool     `env:"DIAGNOSTICS_ENABLED" envDefault:"true"`
}

type AdminConfig struct {
	PasswordHash string `env:"ADMIN_PASSWORD_HASH"` // bcrypt; generate with `flip-menu admin-password`
	JWTSecret    string `env:"JWT_SECRET"`
}

type TelegramConfig struct {
	Token       string `env:"TOKEN"`       // customer menu bot
	AdderToken  string `env:"ADDER_TOKEN"` // admin bot
	AdminChatID int64  `env:"ADMIN_CHAT_ID"`
}

type EventsConfig struct {
	RabbitURL string `env:"RABBITMQ_URL"`
	Exchange  string `env:"RABBITMQ_EXCHANGE" envDefault:"menu_events"`
}

const (
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverMemory    = "memory"
)

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.RestaurantID = strings.TrimSpace(cfg.RestaurantID)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory, DriverMongo:
	case DriverFirestore:
		if c.Store.FirebaseProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the firestore driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}
