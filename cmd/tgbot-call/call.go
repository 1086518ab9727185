// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/tgbot/lib/botapi"
)

func runCall(args []string, stdout, stderr io.Writer) error {
	var options commonOptions
	var assignments []string
	var paramsFile string
	var files []string

	flagSet := pflag.NewFlagSet("tgbot-call call", pflag.ContinueOnError)
	options.addFlags(flagSet)
	flagSet.StringArrayVarP(&assignments, "param", "p", nil, "method parameter as name=value; valid JSON is sent as is, anything else as a string")
	flagSet.StringVar(&paramsFile, "params", "", "JSON file (comments and trailing commas allowed) holding an object of method parameters")
	flagSet.StringArrayVarP(&files, "file", "f", nil, "upload a local file as name=path")
	if handled, err := parseFlags(flagSet, args, "tgbot-call call <method> [flags]", stderr); handled || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("call takes exactly one method name, got %d arguments", flagSet.NArg())
	}
	method := flagSet.Arg(0)

	params, closeFiles, err := buildParams(paramsFile, assignments, files)
	if err != nil {
		return err
	}
	defer closeFiles()

	payload, err := params.Payload(method)
	if err != nil {
		return err
	}

	session, err := options.open(stderr)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var result json.RawMessage
	if err := session.client.Execute(ctx, payload, &result); err != nil {
		return err
	}
	return writeJSON(stdout, result)
}

// buildParams assembles method parameters from a parameter file, then
// name=value assignments, then name=path uploads. Later sources
// replace earlier ones. The returned function closes opened uploads.
func buildParams(paramsFile string, assignments, files []string) (*botapi.Params, func(), error) {
	params := botapi.NewParams()
	var opened []*botapi.FileReader
	closeFiles := func() {
		for _, file := range opened {
			file.Close()
		}
	}

	if paramsFile != "" {
		data, err := os.ReadFile(paramsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("reading parameter file: %w", err)
		}
		var object map[string]json.RawMessage
		if err := json.Unmarshal(jsonc.ToJSON(data), &object); err != nil {
			return nil, nil, fmt.Errorf("parsing parameter file %s: %w", paramsFile, err)
		}
		names := make([]string, 0, len(object))
		for name := range object {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			params.SetRaw(name, object[name])
		}
	}

	for _, assignment := range assignments {
		name, value, ok := strings.Cut(assignment, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("--param %q: expected name=value", assignment)
		}
		if json.Valid([]byte(value)) {
			params.SetRaw(name, json.RawMessage(value))
		} else {
			params.SetString(name, value)
		}
	}

	for _, assignment := range files {
		name, path, ok := strings.Cut(assignment, "=")
		if !ok || name == "" || path == "" {
			closeFiles()
			return nil, nil, fmt.Errorf("--file %q: expected name=path", assignment)
		}
		file, err := botapi.OpenFile(path)
		if err != nil {
			closeFiles()
			return nil, nil, err
		}
		opened = append(opened, file)
		params.SetFile(name, file)
	}

	if err := params.Err(); err != nil {
		closeFiles()
		return nil, nil, err
	}
	return params, closeFiles, nil
}

// writeJSON writes an indented copy of data followed by a newline.
func writeJSON(output io.Writer, data json.RawMessage) error {
	var buffer bytes.Buffer
	if err := json.Indent(&buffer, data, "", "  "); err != nil {
		return fmt.Errorf("formatting result: %w", err)
	}
	buffer.WriteByte('\n')
	_, err := output.Write(buffer.Bytes())
	return err
}
