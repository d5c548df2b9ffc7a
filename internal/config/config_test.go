package config

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/kk-code-lab/tocview/internal/assets"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, envMap(nil), io.Discard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server != "http://localhost:8000/" {
		t.Errorf("Server = %q", cfg.Server)
	}
	if cfg.Codec != "json" || cfg.Timeout != 30*time.Second {
		t.Errorf("codec/timeout = %q/%s", cfg.Codec, cfg.Timeout)
	}
	if cfg.ExtractPolicy != assets.PolicySingleFlight {
		t.Errorf("ExtractPolicy = %q", cfg.ExtractPolicy)
	}
	if cfg.LogFile != "" || cfg.TOCPath != "" {
		t.Errorf("unexpected optional values %+v", cfg)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	env := envMap(map[string]string{
		"TOCVIEW_SERVER":         "http://archive.local:9000/",
		"TOCVIEW_CODEC":          "cbor",
		"TOCVIEW_EXTRACT_POLICY": "independent",
		"TOCVIEW_TOC":            "/from/env",
	})

	cfg, err := Load([]string{"--toc", "/from/flag", "--timeout", "5s"}, env, io.Discard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server != "http://archive.local:9000/" || cfg.Codec != "cbor" {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if cfg.ExtractPolicy != assets.PolicyIndependent {
		t.Errorf("ExtractPolicy = %q", cfg.ExtractPolicy)
	}
	if cfg.TOCPath != "/from/flag" || cfg.Timeout != 5*time.Second {
		t.Errorf("flag values not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "bad scheme", args: []string{"--server", "ftp://host/"}},
		{name: "missing host", args: []string{"--server", "http:///api"}},
		{name: "bad codec", args: []string{"--codec", "xml"}},
		{name: "bad policy", args: []string{"--extract-policy", "dedupe"}},
		{name: "zero timeout", args: []string{"--timeout", "0s"}},
		{name: "bad log format", args: []string{"--log-format", "xml"}},
		{name: "bad env timeout", env: map[string]string{"TOCVIEW_TIMEOUT": "soon"}},
		{name: "positional", args: []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.args, envMap(tt.env), io.Discard); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadHelp(t *testing.T) {
	_, err := Load([]string{"--help"}, envMap(nil), io.Discard)
	if !errors.Is(err, ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
}
