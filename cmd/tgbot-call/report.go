// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/tgbot/lib/botapi"
)

// reportError writes err to output. Colors are used only when output
// is a terminal that supports them.
func reportError(output io.Writer, err error) {
	profile := termenv.Ascii
	if isTerminal(output) {
		profile = termenv.NewOutput(output).EnvColorProfile()
	}
	fmt.Fprint(output, formatError(err, profile))
}

// formatError renders err for humans. Bot API errors list the server's
// retry and migration hints on their own lines.
func formatError(err error, profile termenv.Profile) string {
	// SetColorProfile is required: the renderer otherwise re-detects
	// the profile from its writer.
	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	label := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	hint := renderer.NewStyle().Foreground(lipgloss.Color("11"))

	var lines []string
	var apiError *botapi.APIError
	if errors.As(err, &apiError) {
		lines = append(lines, label.Render("telegram error:")+" "+apiError.Description())
		if code, ok := apiError.ErrorCode(); ok {
			lines = append(lines, "  error code: "+strconv.Itoa(code))
		}
		if delay, ok := apiError.RetryAfter(); ok {
			lines = append(lines, "  "+hint.Render("retry after:")+" "+delay.String())
		}
		if chatID, ok := apiError.MigrateToChatID(); ok {
			lines = append(lines, "  "+hint.Render("chat migrated to:")+" "+strconv.FormatInt(chatID, 10))
		}
	} else {
		lines = append(lines, label.Render("error:")+" "+err.Error())
	}
	return strings.Join(lines, "\n") + "\n"
}
