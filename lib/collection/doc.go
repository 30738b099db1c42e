// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package collection derives read-only views of in-memory record sets:
// search, status and priority filters, stable sorting, and pagination.
//
// The engine is generic over the record type. Each view supplies a
// [Fields] strategy naming which text fields are searchable, how to
// read status and priority, and which sort keys exist. Tasks and
// members share the same pipeline:
//
//	engine := collection.New(collection.Fields[task.Task]{...})
//	result := engine.Run(tasks, spec, collection.Window{Page: 1, PageSize: 10})
//
// Every function is pure. Inputs are never reordered or modified in
// place; callers can re-run the pipeline on each keystroke against the
// same snapshot.
package collection
