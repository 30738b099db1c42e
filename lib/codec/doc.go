// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the shared CBOR configuration for the backend
// socket protocol.
//
// Record types (tasks, members, field errors) carry `json` tags only.
// fxamacker/cbor falls back to `json` tags when `cbor` tags are absent,
// so one tag set names the fields in snapshot files, CLI --json output,
// and socket frames alike. Protocol envelopes that never leave the
// socket use `cbor` tags.
//
// The encoder uses Core Deterministic Encoding: sorted map keys,
// smallest integer encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
package codec
