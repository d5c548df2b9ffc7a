// Package config loads tocview settings from flags with TOCVIEW_* environment
// fallbacks.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kk-code-lab/tocview/internal/api"
	"github.com/kk-code-lab/tocview/internal/assets"
	"github.com/spf13/pflag"
)

// ErrHelp is returned by Load when help was requested.
var ErrHelp = pflag.ErrHelp

// Config holds the resolved settings.
type Config struct {
	// Server
	Server  string
	Codec   string
	Timeout time.Duration

	// Asset extraction
	ExtractPolicy assets.Policy

	// Preferences file; empty means the default location.
	PrefsPath string

	// Logging
	LogFile   string
	LogLevel  string
	LogFormat string

	// Optional TOC to load at startup, overriding the saved one.
	TOCPath string
}

// Load parses args (without the program name). Environment values act as
// defaults and flags override them.
func Load(args []string, getenv func(string) string, usage io.Writer) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	timeout, err := time.ParseDuration(env("TOCVIEW_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("TOCVIEW_TIMEOUT: %w", err)
	}

	var policy string
	cfg := &Config{}

	fs := pflag.NewFlagSet("tocview", pflag.ContinueOnError)
	if usage != nil {
		fs.SetOutput(usage)
	}
	fs.StringVarP(&cfg.Server, "server", "s", env("TOCVIEW_SERVER", "http://localhost:8000/"), "base URL of the archive index server")
	fs.StringVar(&cfg.Codec, "codec", env("TOCVIEW_CODEC", api.CodecJSON), "request body codec (json or cbor)")
	fs.DurationVar(&cfg.Timeout, "timeout", timeout, "per-request timeout")
	fs.StringVar(&policy, "extract-policy", env("TOCVIEW_EXTRACT_POLICY", string(assets.PolicySingleFlight)), "concurrent extraction policy (single-flight or independent)")
	fs.StringVar(&cfg.PrefsPath, "prefs", env("TOCVIEW_PREFS", ""), "preferences file (default: user config dir)")
	fs.StringVar(&cfg.LogFile, "log-file", env("TOCVIEW_LOG_FILE", ""), "write logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", env("TOCVIEW_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", env("TOCVIEW_LOG_FORMAT", "json"), "log format (json or console)")
	fs.StringVarP(&cfg.TOCPath, "toc", "t", env("TOCVIEW_TOC", ""), "TOC path to load at startup")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg.ExtractPolicy, err = assets.ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("server: missing host")
	}
	if _, err := api.CodecByName(c.Codec); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
