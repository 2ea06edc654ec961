package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the settings shared by the API and web binaries.
type Config struct {
	AppPort        string `validate:"required"`
	DatabaseDriver string `validate:"oneof=postgres sqlite"`
	DatabaseDSN    string `validate:"required"`
	FrontendURL    string `validate:"required,url"`
	RabbitMQURL    string `validate:"omitempty,url"`
	LogLevel       string `validate:"oneof=debug info warn error"`
	Seed           bool
	APIURL         string `validate:"required,url"`
	WebPort        string `validate:"required"`
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:catalog.db?cache=shared")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED", false)
	v.SetDefault("API_URL", "http://localhost:8080")
	v.SetDefault("WEB_PORT", ":5173")
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		FrontendURL:    v.GetString("FRONTEND_URL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		Seed:           v.GetBool("SEED"),
		APIURL:         v.GetString("API_URL"),
		WebPort:        v.GetString("WEB_PORT"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
