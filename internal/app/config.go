package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	EntitiesPath string // directory of .hcl descriptor units, optional
	ListenPort   int    // entity service port; 0 disables the server
	ListOnly     bool   // print registered entities and exit

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ListenPort < 0 || cfg.ListenPort > 65535 {
		return nil, fmt.Errorf("listen port %d is out of range", cfg.ListenPort)
	}
	return &cfg, nil
}
