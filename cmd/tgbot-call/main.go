// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tgbot/lib/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// exitError ends the program with a status code and no further
// output. Usage errors use it after printing the usage text.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e *exitError) ExitCode() int { return e.code }

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return &exitError{code: 2}
	}

	commandArgs := args[1:]
	switch args[0] {
	case "--version", "version":
		fmt.Fprintf(stdout, "tgbot-call %s\n", version.Info())
		return nil
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	case "call":
		return runCall(commandArgs, stdout, stderr)
	case "send":
		return runSend(commandArgs, stdin, stdout, stderr)
	case "download":
		return runDownload(commandArgs, stdout, stderr)
	case "updates":
		return runUpdates(commandArgs, stdout, stderr)
	default:
		return fmt.Errorf("unknown command %q (run \"tgbot-call help\")", args[0])
	}
}

func printUsage(output io.Writer) {
	fmt.Fprintf(output, "usage: tgbot-call <command> [flags]\n")
	fmt.Fprintf(output, "\n")
	fmt.Fprintf(output, "commands:\n")
	fmt.Fprintf(output, "  call <method>        Call any Bot API method and print its result as JSON\n")
	fmt.Fprintf(output, "  send --chat <chat>   Send a plain, HTML or Markdown text message\n")
	fmt.Fprintf(output, "  download <file_id>   Download a file, optionally compressed\n")
	fmt.Fprintf(output, "  updates              Fetch pending updates once and advance the stored offset\n")
	fmt.Fprintf(output, "  version              Print version information\n")
	fmt.Fprintf(output, "\n")
	fmt.Fprintf(output, "Run \"tgbot-call <command> --help\" for the flags of a command.\n")
}

// parseFlags parses args into flagSet. A help request prints the flag
// usage to output and is reported as handled.
func parseFlags(flagSet *pflag.FlagSet, args []string, usage string, output io.Writer) (handled bool, err error) {
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, "usage: %s\n\nflags:\n", usage)
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
