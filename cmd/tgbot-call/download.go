// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"
)

// Compression names accepted by --compress.
const (
	compressionNone = "none"
	compressionZstd = "zstd"
	compressionLZ4  = "lz4"
)

func runDownload(args []string, stdout, stderr io.Writer) error {
	var options commonOptions
	var outputPath string
	var compression string

	flagSet := pflag.NewFlagSet("tgbot-call download", pflag.ContinueOnError)
	options.addFlags(flagSet)
	flagSet.StringVarP(&outputPath, "output", "o", "-", "destination file (- for stdout)")
	flagSet.StringVar(&compression, "compress", compressionNone, "compress the saved file: none, zstd or lz4")
	if handled, err := parseFlags(flagSet, args, "tgbot-call download <file_id> [flags]", stderr); handled || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("download takes exactly one file identifier, got %d arguments", flagSet.NArg())
	}
	fileID := flagSet.Arg(0)
	if err := checkCompression(compression); err != nil {
		return err
	}

	session, err := options.open(stderr)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	file, err := session.client.GetFile(ctx, fileID)
	if err != nil {
		return err
	}
	if file.FilePath == "" {
		return fmt.Errorf("server returned no file path for %s (the file may exceed the download limit)", fileID)
	}

	body, err := session.client.DownloadFile(ctx, file.FilePath)
	if err != nil {
		return err
	}
	defer body.Close()

	destination := stdout
	var outputFile *os.File
	if outputPath != "-" {
		outputFile, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		destination = outputFile
	}

	digest, size, err := copyCompressed(destination, body, compression)
	if outputFile != nil {
		if closeErr := outputFile.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(outputPath)
		}
	}
	if err != nil {
		return fmt.Errorf("downloading %s: %w", file.FilePath, err)
	}

	session.logger.Info("file downloaded",
		"file_id", fileID,
		"path", file.FilePath,
		"bytes", size,
		"blake3", hex.EncodeToString(digest),
		"compression", compression,
	)
	return nil
}

func checkCompression(name string) error {
	switch name {
	case compressionNone, compressionZstd, compressionLZ4:
		return nil
	default:
		return fmt.Errorf("unknown compression %q (want none, zstd or lz4)", name)
	}
}

// copyCompressed copies source to destination through the named
// compressor. It returns the BLAKE3 digest and size of the
// uncompressed content.
func copyCompressed(destination io.Writer, source io.Reader, compression string) ([]byte, int64, error) {
	writer, finish, err := newCompressor(destination, compression)
	if err != nil {
		return nil, 0, err
	}

	hasher := blake3.New()
	size, err := io.Copy(io.MultiWriter(writer, hasher), source)
	if err != nil {
		finish()
		return nil, size, err
	}
	if err := finish(); err != nil {
		return nil, size, fmt.Errorf("flushing %s stream: %w", compression, err)
	}
	return hasher.Sum(nil), size, nil
}

func newCompressor(destination io.Writer, compression string) (io.Writer, func() error, error) {
	switch compression {
	case compressionNone:
		return destination, func() error { return nil }, nil
	case compressionZstd:
		encoder, err := zstd.NewWriter(destination)
		if err != nil {
			return nil, nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		return encoder, encoder.Close, nil
	case compressionLZ4:
		writer := lz4.NewWriter(destination)
		return writer, writer.Close, nil
	default:
		return nil, nil, errors.New("unknown compression " + compression)
	}
}
