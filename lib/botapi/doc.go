// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package botapi is a typed client for the Telegram Bot API.
//
// A call goes through three layers. [Params] collects the method
// parameters in order and turns them into a [Payload]: a JSON body when
// every parameter is plain data, a multipart [Form] as soon as one
// parameter uploads a file. Files inside JSON metadata (media groups,
// editMessageMedia, thumbnails and covers) are sent with attach://
// indirection: the metadata names a sibling form field that carries the
// bytes. [Client.Execute] sends the payload, and [DecodeEnvelope]
// separates the {ok, result} success shape from the structured
// [APIError].
//
// Every failure has a type, inspected with errors.As:
//
//   - [*ValidationError] and [*FormBuildError]: local precondition
//     failures, returned before any network I/O
//   - [*TransportError]: the HTTP exchange failed
//   - [*APIError]: the server refused the call; CanRetry, RetryAfter
//     and MigrateToChatID carry its hints
//   - [*SerializationError]: JSON encoding of the request or decoding
//     of the response failed
//
// The client sends exactly one request per call. Retry, backoff, rate
// limiting and chat migration handling are left to the caller; see
// [IsRetryable] and [IsMigrated].
//
// Incoming updates are decoded one document at a time by [Dispatch].
// Webhook listeners and polling loops are outside this package.
package botapi
