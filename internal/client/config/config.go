package config

import "time"

// Config holds runtime settings for the Loopin CLI.
type Config struct {
	ServerEndpointAddr  string        `env:"LOOPIN_SERVER_ADDR"`
	OnlineCheckInterval time.Duration `env:"LOOPIN_ONLINE_CHECK_INTERVAL"`
	QuietPeriod         time.Duration `env:"LOOPIN_QUIET_PERIOD"`
	LookupTimeout       time.Duration `env:"LOOPIN_LOOKUP_TIMEOUT"`
	DatabasePath        string        `env:"LOOPIN_CLIENT_DB"`
	LogLevel            string        `env:"LOOPIN_CLIENT_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.QuietPeriod = 500 * time.Millisecond
	c.LookupTimeout = 3 * time.Second
	c.DatabasePath = "loopin.db"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config from defaults, the JSON file, the
// environment and flags, later sources taking precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		panic(err)
	}
	parseFlags(cfg)
	return cfg
}
