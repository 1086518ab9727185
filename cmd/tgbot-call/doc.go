// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Tgbot-call is a one-shot Bot API client. It sends a single method
// call, downloads a file, sends a Markdown message, or fetches pending
// updates once, so shell scripts can talk to a bot without a running
// process.
//
// Configuration comes from the YAML file named by --config or
// TGBOT_CONFIG, overridden by flags. Without either, defaults apply and
// the token must be given with --token-file or typed at the prompt.
package main
