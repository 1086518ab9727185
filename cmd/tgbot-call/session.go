// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/tgbot/lib/botapi"
	"github.com/bureau-foundation/tgbot/lib/config"
	"github.com/bureau-foundation/tgbot/lib/netutil"
	"github.com/bureau-foundation/tgbot/lib/version"
)

// commonOptions are the connection flags shared by every command.
// Each one overrides the matching config file value.
type commonOptions struct {
	configPath string
	host       string
	tokenFile  string
	proxyURL   string
	timeout    time.Duration
	logLevel   string
}

func (options *commonOptions) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&options.configPath, "config", "", "path to the tgbot.yaml config file (default: $TGBOT_CONFIG)")
	flagSet.StringVar(&options.host, "host", "", "Bot API server URL (overrides api.host)")
	flagSet.StringVar(&options.tokenFile, "token-file", "", "file containing the bot token (overrides api.token and api.token_file)")
	flagSet.StringVar(&options.proxyURL, "proxy", "", "http, https, socks5 or socks5h proxy URL (overrides proxy.url)")
	flagSet.DurationVar(&options.timeout, "timeout", 0, "HTTP request timeout (overrides api.timeout)")
	flagSet.StringVar(&options.logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
}

// session is a configured Bot API client plus what commands need
// around it.
type session struct {
	config *config.Config
	client *botapi.Client
	logger *slog.Logger
	botID  string
}

func (options *commonOptions) loadConfig() (*config.Config, error) {
	if options.configPath != "" {
		return config.LoadFile(options.configPath)
	}
	if os.Getenv(config.EnvironmentVariable) != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// open loads the configuration, applies flag overrides and creates the
// client.
func (options *commonOptions) open(stderr io.Writer) (*session, error) {
	cfg, err := options.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if options.host != "" {
		cfg.API.Host = options.host
	}
	if options.tokenFile != "" {
		cfg.API.Token = ""
		cfg.API.TokenFile = options.tokenFile
	}
	if options.proxyURL != "" {
		cfg.Proxy.URL = options.proxyURL
	}
	if options.timeout != 0 {
		cfg.API.Timeout = options.timeout.String()
	}
	if options.logLevel != "" {
		cfg.Log.Level = options.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.LogLevel()
	logger := newLogger(stderr, level)

	token, err := cfg.ResolveToken()
	if err != nil {
		return nil, err
	}
	if token == "" {
		token, err = promptToken(stderr)
		if err != nil {
			return nil, err
		}
	}

	timeout, _ := cfg.Timeout()
	httpClient, err := netutil.NewHTTPClient(cfg.Proxy.URL, timeout)
	if err != nil {
		return nil, err
	}

	client, err := botapi.NewClient(botapi.Config{
		Token:      token,
		Host:       cfg.API.Host,
		HTTPClient: httpClient,
		Logger:     logger,
		UserAgent:  version.UserAgent("tgbot-call"),
	})
	if err != nil {
		return nil, err
	}

	botID, _, _ := strings.Cut(token, ":")
	return &session{config: cfg, client: client, logger: logger, botID: botID}, nil
}

// newLogger creates the command logger: text on a terminal, JSON when
// output is piped or redirected.
func newLogger(output io.Writer, level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if isTerminal(output) {
		handler = slog.NewTextHandler(output, options)
	} else {
		handler = slog.NewJSONHandler(output, options)
	}
	return slog.New(handler)
}

func isTerminal(output io.Writer) bool {
	file, ok := output.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// promptToken reads the bot token from the terminal with echo
// disabled.
func promptToken(stderr io.Writer) (string, error) {
	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return "", errors.New("no bot token configured (set api.token_file or pass --token-file)")
	}

	fmt.Fprint(stderr, "Bot token: ")
	tokenBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(stderr)
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	token := strings.TrimSpace(string(tokenBytes))
	if token == "" {
		return "", errors.New("empty bot token")
	}
	return token, nil
}
