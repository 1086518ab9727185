// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "TGBOT_CONFIG"

// Config is the configuration of the tgbot command-line tools.
type Config struct {
	// API configures the Bot API server and credentials.
	API APIConfig `yaml:"api"`

	// Proxy configures the outbound HTTP proxy.
	Proxy ProxyConfig `yaml:"proxy"`

	// State configures where persistent CLI state is kept.
	State StateConfig `yaml:"state"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`
}

// APIConfig configures the Bot API server.
type APIConfig struct {
	// Host is the server URL without a trailing slash.
	// Default: https://api.telegram.org
	Host string `yaml:"host"`

	// Token is the bot token. Prefer TokenFile so the token stays out
	// of the config file.
	Token string `yaml:"token"`

	// TokenFile is a file containing the bot token. Surrounding
	// whitespace is ignored.
	TokenFile string `yaml:"token_file"`

	// Timeout bounds each HTTP request, as a Go duration string.
	// Long polling timeouts must fit inside it.
	// Default: 60s
	Timeout string `yaml:"timeout"`
}

// ProxyConfig configures the outbound proxy.
type ProxyConfig struct {
	// URL is an http://, https://, socks5:// or socks5h:// proxy URL,
	// optionally with user:password@. Empty means a direct connection.
	URL string `yaml:"url"`
}

// StateConfig configures persistent state.
type StateConfig struct {
	// Dir holds the update offset file of "tgbot-call updates".
	// Default: ${HOME}/.cache/tgbot
	Dir string `yaml:"dir"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		API: APIConfig{
			Host:    "https://api.telegram.org",
			Timeout: "60s",
		},
		State: StateConfig{
			Dir: filepath.Join(homeDir, ".cache", "tgbot"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by TGBOT_CONFIG. It
// fails when the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your tgbot.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, on top of [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.State.Dir = expandVars(c.State.Dir, vars)
	vars["TGBOT_STATE"] = c.State.Dir

	c.API.Host = expandVars(c.API.Host, vars)
	c.API.Token = expandVars(c.API.Token, vars)
	c.API.TokenFile = expandVars(c.API.TokenFile, vars)
	c.Proxy.URL = expandVars(c.Proxy.URL, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.API.Host == "" {
		errs = append(errs, fmt.Errorf("api.host is required"))
	} else if parsed, err := url.Parse(c.API.Host); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		errs = append(errs, fmt.Errorf("api.host must be an http or https URL, got %q", c.API.Host))
	}

	if c.API.Token != "" && c.API.TokenFile != "" {
		errs = append(errs, fmt.Errorf("api.token and api.token_file are mutually exclusive"))
	}

	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}

	if c.Proxy.URL != "" {
		parsed, err := url.Parse(c.Proxy.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("proxy.url: %w", err))
		} else if !contains([]string{"http", "https", "socks5", "socks5h"}, parsed.Scheme) {
			errs = append(errs, fmt.Errorf("proxy.url scheme must be http, https, socks5 or socks5h, got %q", parsed.Scheme))
		}
	}

	if c.State.Dir == "" {
		errs = append(errs, fmt.Errorf("state.dir is required"))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Timeout returns api.timeout as a duration.
func (c *Config) Timeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("api.timeout: %w", err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	return timeout, nil
}

// LogLevel returns log.level as a slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return level, nil
}

// ResolveToken returns the bot token from api.token or api.token_file.
// It returns an empty string without error when neither is set, so the
// caller can prompt for it.
func (c *Config) ResolveToken() (string, error) {
	if c.API.Token != "" {
		return c.API.Token, nil
	}
	if c.API.TokenFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.API.TokenFile)
	if err != nil {
		return "", fmt.Errorf("reading api.token_file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("api.token_file %s is empty", c.API.TokenFile)
	}
	return token, nil
}

// EnsureStateDir creates the state directory if it does not exist.
func (c *Config) EnsureStateDir() error {
	if err := os.MkdirAll(c.State.Dir, 0700); err != nil {
		return fmt.Errorf("creating %s: %w", c.State.Dir, err)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
