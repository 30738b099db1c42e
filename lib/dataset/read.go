// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/tidwall/jsonc"
)

// maxSnapshotSize caps the decompressed size of a snapshot file.
const maxSnapshotSize = 256 << 20

// zstdDecoder is shared; zstd.Decoder is safe for concurrent DecodeAll.
var zstdDecoder *zstd.Decoder

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxSnapshotSize))
	if err != nil {
		panic("dataset: zstd decoder initialization failed: " + err.Error())
	}
}

// readRecords reads path, decompresses it by suffix, and splits it
// into raw JSON records. The remaining extension picks the format:
// .jsonl and .ndjson are one record per line, .jsonc allows comments
// and trailing commas, anything else is sniffed (array, {"data": [...]}
// envelope, or JSON lines).
func readRecords(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".zst"):
		data, err = zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: zstd: %w", path, err)
		}
		name = strings.TrimSuffix(name, ".zst")
	case strings.HasSuffix(name, ".lz4"):
		data, err = io.ReadAll(io.LimitReader(lz4.NewReader(bytes.NewReader(data)), maxSnapshotSize))
		if err != nil {
			return nil, fmt.Errorf("%s: lz4: %w", path, err)
		}
		name = strings.TrimSuffix(name, ".lz4")
	}

	var records []json.RawMessage
	switch filepath.Ext(name) {
	case ".jsonl", ".ndjson":
		records, err = splitLines(data)
	case ".jsonc":
		records, err = splitDocument(jsonc.ToJSON(data))
	default:
		records, err = splitDocument(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// splitDocument accepts a JSON array, an object wrapping the array
// under "data", "tasks", or "members", or falls back to JSON lines.
func splitDocument(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("parsing array: %w", err)
		}
		return records, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			for _, key := range []string{"data", "tasks", "members"} {
				if inner, exists := envelope[key]; exists {
					return splitDocument(inner)
				}
			}
		}
	}
	return splitLines(trimmed)
}

func splitLines(data []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64<<10), 16<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		if !json.Valid(text) {
			return nil, fmt.Errorf("line %d: invalid JSON", line)
		}
		records = append(records, json.RawMessage(bytes.Clone(text)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return records, nil
}
