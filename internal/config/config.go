package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGoogle  = "google"
	ProviderPostGIS = "postgis"
)

// Config holds every setting of the API. Values come from app.env in the config
// directory and are overridden by environment variables of the same name.
type Config struct {
	ServerAddress     string        `mapstructure:"SERVER_ADDRESS"`
	AppEnv            string        `mapstructure:"APP_ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	GeocoderProvider  string        `mapstructure:"GEOCODER_PROVIDER"`
	MapsAPIKey        string        `mapstructure:"MAPS_API_KEY"`
	DBSource          string        `mapstructure:"DB_SOURCE"`
	SupabaseURL       string        `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey   string        `mapstructure:"SUPABASE_ANON_KEY"`
	SupabaseTable     string        `mapstructure:"SUPABASE_TABLE"`
	HTTPClientTimeout time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	SessionCapacity   int           `mapstructure:"SESSION_CAPACITY"`
	RateLimitRPS      float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int           `mapstructure:"RATE_LIMIT_BURST"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":      ":8080",
	"APP_ENV":             "development",
	"LOG_LEVEL":           "info",
	"GEOCODER_PROVIDER":   ProviderGoogle,
	"MAPS_API_KEY":        "",
	"DB_SOURCE":           "",
	"SUPABASE_URL":        "",
	"SUPABASE_ANON_KEY":   "",
	"SUPABASE_TABLE":      "shipments",
	"HTTP_CLIENT_TIMEOUT": "10s",
	"SESSION_TTL":         "30m",
	"SESSION_CAPACITY":    1024,
	"RATE_LIMIT_RPS":      10,
	"RATE_LIMIT_BURST":    20,
}

// LoadConfig reads configuration from path/app.env and the environment.
// A missing app.env is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: decode: %w", err)
	}

	return config, nil
}

// Validate reports the first setting a required collaborator is missing.
func (c Config) Validate() error {
	if c.SupabaseURL == "" {
		return errors.New("config: SUPABASE_URL is required")
	}
	if c.SupabaseAnonKey == "" {
		return errors.New("config: SUPABASE_ANON_KEY is required")
	}

	switch c.GeocoderProvider {
	case ProviderGoogle:
		if c.MapsAPIKey == "" {
			return errors.New("config: MAPS_API_KEY is required for the google geocoder")
		}
	case ProviderPostGIS:
		if c.DBSource == "" {
			return errors.New("config: DB_SOURCE is required for the postgis geocoder")
		}
	default:
		return fmt.Errorf("config: unknown GEOCODER_PROVIDER %q", c.GeocoderProvider)
	}

	if c.SessionCapacity <= 0 {
		return errors.New("config: SESSION_CAPACITY must be positive")
	}

	return nil
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}
