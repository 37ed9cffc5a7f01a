package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Host        string `env:"HOST"              envDefault:"0.0.0.0"`
	Port        int    `env:"PORT"              envDefault:"2324"`
	HostKeyPath string `env:"SSH_HOST_KEY_PATH" envDefault:"ssh_host_key"`
	LogLevel    string `env:"LOG_LEVEL"         envDefault:"info"`

	// Playback timing for the memory game.
	PreRoll      time.Duration `env:"MEMORY_PREROLL"       envDefault:"2s"`
	Highlight    time.Duration `env:"MEMORY_HIGHLIGHT"     envDefault:"500ms"`
	Gap          time.Duration `env:"MEMORY_GAP"           envDefault:"200ms"`
	FailFlash    time.Duration `env:"MEMORY_FAIL_FLASH"    envDefault:"1s"`
	RestartDelay time.Duration `env:"MEMORY_RESTART_DELAY" envDefault:"500ms"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Defaults returns the configuration used when nothing is set, taken from
// the envDefault tags above.
func Defaults() Config {
	cfg, err := ParseFrom(map[string]string{})
	if err != nil {
		panic(fmt.Sprintf("config: bad envDefault tags: %v", err))
	}
	return cfg
}

// Parse reads the process environment into a Config.
func Parse() (Config, error) {
	return ParseFrom(nil)
}

// ParseFrom reads environ instead of the process environment. A nil map
// means the process environment.
func ParseFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load is Parse preceded by loading a .env file if present. Bad values are
// reported and replaced by Defaults so the server can still come up.
func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		log.Warn("Invalid configuration, using defaults", "err", err)
		return Defaults()
	}
	return cfg
}

// Addr is the listen address for the SSH server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Level maps LogLevel onto a charmbracelet/log level, defaulting to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	for name, d := range map[string]time.Duration{
		"MEMORY_PREROLL":       c.PreRoll,
		"MEMORY_HIGHLIGHT":     c.Highlight,
		"MEMORY_GAP":           c.Gap,
		"MEMORY_FAIL_FLASH":    c.FailFlash,
		"MEMORY_RESTART_DELAY": c.RestartDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}
	return nil
}
