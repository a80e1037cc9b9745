package cli

import (
	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"HWGAME_SERVER" envDefault:"http://localhost:8080"`
	Output    string `env:"HWGAME_OUTPUT" envDefault:"text"`
	Verbose   bool
}

// DefaultConfig returns a Config with defaults, overridden by HWGAME_*
// environment variables where set
func DefaultConfig() *Config {
	c := &Config{ServerURL: "http://localhost:8080", Output: "text"}
	// Unparseable values keep the defaults; flags can still override
	_ = env.Parse(c)
	return c
}
