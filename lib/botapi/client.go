// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bureau-foundation/tgbot/lib/netutil"
)

// DefaultHost is the public Bot API server.
const DefaultHost = "https://api.telegram.org"

// Config holds configuration for creating a Client.
type Config struct {
	// Token is the bot token issued by @BotFather. Required.
	Token string

	// Host is the scheme and authority of the Bot API server, without
	// a trailing slash. Defaults to DefaultHost. Set it to use a local
	// Bot API server.
	Host string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient. Use netutil.NewHTTPClient for a proxy.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger

	// UserAgent, when set, is sent as the User-Agent header.
	UserAgent string
}

// Client sends Bot API calls. It performs exactly one HTTP request per
// call: it never retries, waits, or follows chat migrations. Callers
// decide that policy from the returned error (see IsRetryable and
// IsMigrated).
type Client struct {
	host       string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

// NewClient creates a client from the given configuration.
func NewClient(config Config) (*Client, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("botapi: token is required")
	}
	if strings.ContainsAny(config.Token, "/?#") {
		return nil, fmt.Errorf("botapi: token contains URL delimiters")
	}

	host := config.Host
	if host == "" {
		host = DefaultHost
	}
	host = strings.TrimRight(host, "/")
	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("botapi: parsing host: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("botapi: host must be an http or https URL (got %q)", host)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		host:       host,
		token:      config.Token,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  config.UserAgent,
	}, nil
}

// Host returns the configured server host.
func (client *Client) Host() string { return client.host }

// Execute sends payload and decodes the result into result, which must
// be a pointer or nil to discard the result.
//
// Errors: *FormBuildError before anything is sent; *TransportError when
// the exchange fails; *APIError when the server reports a failure;
// *SerializationError when the response is not an envelope or the
// result does not fit result.
func (client *Client) Execute(ctx context.Context, payload *Payload, result any) error {
	method := payload.MethodName()
	request, err := payload.newRequest(ctx, client.host, client.token)
	if err != nil {
		return err
	}
	client.setHeaders(request)

	client.logger.Debug("sending bot API request",
		"method", method,
		"http_method", payload.HTTPMethod(),
		"body", payload.bodyKind(),
	)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return &TransportError{Method: method, Err: client.redact(err)}
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return &TransportError{Method: method, StatusCode: response.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	envelope, err := DecodeEnvelope(body)
	if err != nil {
		// Error statuses without an envelope come from proxies and
		// load balancers, not from the Bot API.
		if response.StatusCode < 200 || response.StatusCode >= 300 {
			return &TransportError{Method: method, StatusCode: response.StatusCode, Body: truncate(string(body))}
		}
		var serializationError *SerializationError
		if errors.As(err, &serializationError) {
			serializationError.Method = method
		}
		return err
	}

	if !envelope.OK {
		client.logger.Debug("bot API request failed",
			"method", method,
			"status", response.StatusCode,
			"description", envelope.Err.Description(),
		)
		return envelope.Err
	}

	client.logger.Debug("bot API request succeeded", "method", method, "status", response.StatusCode)
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return &SerializationError{Side: SideResponse, Method: method, Err: err}
	}
	return nil
}

// Call sends payload and returns its result decoded as T.
func Call[T any](ctx context.Context, client *Client, payload *Payload) (T, error) {
	var result T
	err := client.Execute(ctx, payload, &result)
	return result, err
}

// FileURL returns the download URL of a file path obtained from
// getFile: host + "/file/bot" + token + "/" + filePath.
func (client *Client) FileURL(filePath string) string {
	return client.host + "/file/bot" + client.token + "/" + filePath
}

// DownloadFile streams the file at filePath (as returned by getFile).
// The caller must close the returned reader. A non-2xx status is
// reported as a *TransportError carrying the status and the start of
// the body.
func (client *Client) DownloadFile(ctx context.Context, filePath string) (io.ReadCloser, error) {
	if filePath == "" {
		return nil, fmt.Errorf("botapi: download: file path is empty")
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.FileURL(filePath), nil)
	if err != nil {
		return nil, fmt.Errorf("botapi: download: creating request: %w", err)
	}
	client.setHeaders(request)

	client.logger.Debug("downloading file", "path", filePath)
	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, &TransportError{Method: "download", Err: client.redact(err)}
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		body := netutil.ErrorBody(response.Body)
		response.Body.Close()
		return nil, &TransportError{Method: "download", StatusCode: response.StatusCode, Body: body}
	}
	return response.Body, nil
}

func (client *Client) setHeaders(request *http.Request) {
	if client.userAgent != "" {
		request.Header.Set("User-Agent", client.userAgent)
	}
}

// redact removes the bot token from URLs embedded in HTTP client
// errors so it does not end up in logs.
func (client *Client) redact(err error) error {
	var urlError *url.Error
	if errors.As(err, &urlError) {
		urlError.URL = strings.ReplaceAll(urlError.URL, client.token, "<token>")
	}
	return err
}

func truncate(body string) string {
	if int64(len(body)) > netutil.MaxErrorBodySize {
		return body[:netutil.MaxErrorBodySize]
	}
	return body
}
