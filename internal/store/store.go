// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists scraped records under the output directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// WorksDir is the subdirectory holding work records.
	WorksDir = "works"
	// AuthorsDir is the subdirectory holding author records.
	AuthorsDir = "authors"
	// IndexDir is the subdirectory holding the catalog database.
	IndexDir = "index"
)

// EnsureLayout creates the works/ and authors/ subdirectories under root.
func EnsureLayout(root string) error {
	for _, dir := range []string{
		filepath.Join(root, WorksDir),
		filepath.Join(root, AuthorsDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// WorkPath returns the record path for the nth successful work.
// Files are numbered by success index, not by remote identifier, so a run
// always produces a contiguous work_1 .. work_n sequence.
func WorkPath(root string, n int) string {
	return filepath.Join(root, WorksDir, fmt.Sprintf("work_%d.json", n))
}

// AuthorPath returns the record path for one authority identifier.
func AuthorPath(root string, id int) string {
	return filepath.Join(root, AuthorsDir, fmt.Sprintf("author_%d.json", id))
}

// WriteRecord writes v as indented JSON to path, creating or overwriting.
// The write is not atomic; a record only exists after both halves of a
// fetch succeeded, so a torn file can only come from a crashed process.
func WriteRecord(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadRecord reads an indented JSON record from path into v.
func ReadRecord(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
