package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// GTFSConfig contains static schedule feed configuration
type GTFSConfig struct {
	StaticURL string `yaml:"staticURL" validate:"omitempty"`
	AgencyID  string `yaml:"agency_id" validate:"omitempty"`
}

// FeedConfig contains GTFS-Realtime trip-updates feed configuration
type FeedConfig struct {
	TripUpdatesURL string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	ReadIntervalMS int    `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// OpsConfig points at the operator overrides file (manual delays and
// cancellations entered by dispatch).
type OpsConfig struct {
	OverridesFile string `yaml:"overridesFile"`
}

// ResolverConfig contains resolution-engine switches
type ResolverConfig struct {
	// DisableRealtime forces every row back to the theoretical schedule;
	// manual delays still apply.
	DisableRealtime bool `yaml:"disableRealtime"`
	// AllowKeyFallback lets sequence-qualified override lookups fall back
	// to the unqualified key on a miss.
	AllowKeyFallback bool `yaml:"allowKeyFallback"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	GTFS     GTFSConfig     `yaml:"gtfs"`
	Feed     FeedConfig     `yaml:"feed"`
	Ops      OpsConfig      `yaml:"ops"`
	Resolver ResolverConfig `yaml:"resolver"`
}
