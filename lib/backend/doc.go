// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package backend is the contract with the system of record: fetch
// tasks and members, persist board moves, and create, update, or
// delete tasks.
//
// [Memory] implements the contract in process with server-side
// validation. [Server] exposes any [Backend] on a Unix socket, and
// [Client] is the matching Backend on the other end. The protocol is
// one CBOR request and one CBOR response per connection:
//
//	request:  {action: "persist_move", task_id: "7", status: "review"}
//	response: {ok: true} | {ok: false, error: "...", code: "validation", fields: {...}}
//
// Failures keep their kind across the socket: validation responses
// come back as [FieldErrors], unknown IDs wrap [ErrNotFound], anything
// else is a [*ServiceError].
package backend
