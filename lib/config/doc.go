// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the tgbot
// command-line tools.
//
// Configuration is loaded from a single file specified by either the
// TGBOT_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search.
//
// Variable expansion is performed on string fields after loading:
// ${HOME}, ${TGBOT_STATE} and ${VAR:-default} patterns are expanded.
// No environment variable overrides a config value directly; the token
// is read from api.token or from the file named by api.token_file.
//
// Key exports:
//
//   - [Config] -- master struct with API, Proxy, State, Log
//   - [Default] -- returns a Config with defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other tgbot packages.
package config
