// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for tgbot packages.
//
// [NewCaptureServer] starts an httptest server that answers every
// request with a fixed Bot API response and hands each request it
// received to the test over a channel. [ParseMultipart] splits a
// captured multipart/form-data body into its text and file parts so
// tests can assert on field names, attach:// references and uploaded
// bytes.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that individual tests do not
// need direct time.After calls.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no tgbot-internal dependencies.
package testutil
