// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output persists and renders search results: the JSON results
// file, CSL-YAML bibliographies, and a terminal table.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/acm-search/pkg/types"
)

// ErrWrite is returned when the results file cannot be written.
var ErrWrite = errors.New("writing results")

// SaveRecord writes a single record as one JSON object, or JSON null when
// rec is nil. An empty path means types.DefaultOutputFile. Any existing file
// is replaced. It returns the absolute path written.
func SaveRecord(path string, rec *types.ResultRecord) (string, error) {
	return writeJSON(path, rec)
}

// SaveSet writes records as a JSON array. A nil slice is written as [].
func SaveSet(path string, records []types.ResultRecord) (string, error) {
	if records == nil {
		records = []types.ResultRecord{}
	}
	return writeJSON(path, records)
}

func writeJSON(path string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: marshaling: %v", ErrWrite, err)
	}
	return WriteFile(path, append(data, '\n'))
}

// WriteFile replaces the file at path with data. The bytes go to a temporary
// file in the same directory first and are renamed into place, so readers
// never observe a partially written file.
func WriteFile(path string, data []byte) (string, error) {
	if path == "" {
		path = types.DefaultOutputFile
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: resolving %s: %v", ErrWrite, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), "."+filepath.Base(abs)+".*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %s: %v", ErrWrite, abs, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWrite, abs, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWrite, abs, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWrite, abs, err)
	}
	return abs, nil
}
