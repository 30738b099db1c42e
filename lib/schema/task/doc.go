// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package task defines the records the task board manages: tasks with
// a status, priority, and schedule, and organization members. The
// types carry JSON and CBOR field names shared by snapshot files and
// the backend socket protocol.
package task
