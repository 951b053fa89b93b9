package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from
// config.yml in the working directory.
func LoadAppConfig() error {
	return LoadAppConfigFrom("config.yml")
}

// LoadAppConfigFrom loads and validates the configuration from a given path.
func LoadAppConfigFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16182
	}
	if cfg.Feed.ReadIntervalMS == 0 {
		cfg.Feed.ReadIntervalMS = 30000
	}
	if cfg.Feed.TimeoutMS == 0 {
		cfg.Feed.TimeoutMS = 10000
	}
}

// Env wins over file values. A .env file loaded by the caller (godotenv)
// lands here too.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("GTFS_STATIC_URL"); v != "" {
		cfg.GTFS.StaticURL = v
	}
	if v := os.Getenv("GTFS_AGENCY_ID"); v != "" {
		cfg.GTFS.AgencyID = v
	}
	if v := os.Getenv("TRIP_UPDATES_URL"); v != "" {
		cfg.Feed.TripUpdatesURL = v
	}
	if v := os.Getenv("OPS_OVERRIDES_FILE"); v != "" {
		cfg.Ops.OverridesFile = v
	}
}
