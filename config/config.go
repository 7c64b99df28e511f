package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// EnvPrefix is the prefix of environment variables read by Load (SERWER_PORT, ...).
const EnvPrefix = "SERWER"

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Host         string        `config:"host"`
	Port         int           `config:"port"`
	Workers      int           `config:"workers"`
	PublicDir    string        `config:"public"`
	ReadTimeout  time.Duration `config:"read.timeout"`
	WriteTimeout time.Duration `config:"write.timeout"`
	ReusePort    bool          `config:"reuse.port"`
	Env          string        `config:"env"`

	// File is an optional JSON file loaded before the environment.
	File string `config:"-"`
}

// Default returns the configuration used when nothing overrides it.
// Workers 0 means one worker per CPU.
func Default() *Config {
	return &Config{
		Host: "127.0.0.1",
		Port: 7878,
		Env:  EnvDevelopment,
	}
}

// New loads configuration from the process arguments and environment,
// exiting with status 2 on bad input.
func New() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

// Load builds a Config from defaults, then the JSON file named by -config,
// then SERWER_* environment variables, then the flags in args.
func Load(args []string) (*Config, error) {
	cfg := Default()
	if err := cfg.flagSet(os.Stderr).Parse(args); err != nil {
		return nil, err
	}

	m := NewManager()
	if cfg.File != "" {
		if err := m.LoadFromJSON(cfg.File); err != nil {
			return nil, err
		}
	}
	m.LoadFromEnv(EnvPrefix)
	if err := m.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Flags given on the command line win over the file and the environment.
	if err := cfg.flagSet(io.Discard).Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) flagSet(output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("serwer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&c.Host, "host", c.Host, "Address to bind")
	fs.IntVar(&c.Port, "port", c.Port, "HTTP server port")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Worker count (0 = one per CPU)")
	fs.StringVar(&c.PublicDir, "public", c.PublicDir, "Directory served when no route matches")
	fs.DurationVar(&c.ReadTimeout, "read-timeout", c.ReadTimeout, "Request read timeout (0 = none)")
	fs.DurationVar(&c.WriteTimeout, "write-timeout", c.WriteTimeout, "Response write timeout (0 = none)")
	fs.BoolVar(&c.ReusePort, "reuse-port", c.ReusePort, "Set SO_REUSEPORT on the listener")
	fs.StringVar(&c.Env, "env", c.Env, "Environment (development/production)")
	fs.StringVar(&c.File, "config", c.File, "JSON configuration file")
	return fs
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidConfig, c.Workers)
	case c.ReadTimeout < 0 || c.WriteTimeout < 0:
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	case c.Env != EnvDevelopment && c.Env != EnvProduction:
		return fmt.Errorf("%w: unknown env %q", ErrInvalidConfig, c.Env)
	}
	return nil
}

// IsDevelopment reports whether the development environment is selected.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}
