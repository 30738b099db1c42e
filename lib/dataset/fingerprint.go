// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/Galih066/lara-task/lib/codec"
	"github.com/Galih066/lara-task/lib/schema/task"
)

// Hash is a BLAKE3 digest of one record.
type Hash [32]byte

// String returns the first 12 hex digits, enough to eyeball in logs.
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:6])
}

// fingerprintKey separates record fingerprints from any other BLAKE3
// use of the same bytes.
var fingerprintKey = [32]byte{
	't', 'a', 's', 'k', 'b', 'o', 'a', 'r', 'd', '.', 'r', 'e', 'c', 'o', 'r', 'd',
}

// Fingerprint hashes the deterministic CBOR encoding of a task. Equal
// tasks always have equal fingerprints.
func Fingerprint(item task.Task) Hash {
	data, err := codec.Marshal(item)
	if err != nil {
		// Task holds only plain values; encoding cannot fail.
		panic("dataset: encoding task for fingerprint: " + err.Error())
	}
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("dataset: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// Changes lists task IDs that differ between two snapshots.
type Changes struct {
	Added   []string
	Removed []string
	Changed []string
}

// Empty reports whether the snapshots hold the same tasks.
func (changes Changes) Empty() bool {
	return len(changes.Added) == 0 && len(changes.Removed) == 0 && len(changes.Changed) == 0
}

// Diff compares two snapshots by ID and fingerprint. Added and Changed
// follow the order of next; Removed follows the order of previous.
func Diff(previous, next []task.Task) Changes {
	before := make(map[string]Hash, len(previous))
	for _, item := range previous {
		before[item.ID] = Fingerprint(item)
	}

	var changes Changes
	seen := make(map[string]bool, len(next))
	for _, item := range next {
		seen[item.ID] = true
		hash, existed := before[item.ID]
		switch {
		case !existed:
			changes.Added = append(changes.Added, item.ID)
		case hash != Fingerprint(item):
			changes.Changed = append(changes.Changed, item.ID)
		}
	}
	for _, item := range previous {
		if !seen[item.ID] {
			changes.Removed = append(changes.Removed, item.ID)
		}
	}
	return changes
}
