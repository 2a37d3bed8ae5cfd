// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/benyehuda-harvest/pkg/types"
)

func TestEnsureLayout(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureLayout(root))

	assert.DirExists(t, filepath.Join(root, WorksDir))
	assert.DirExists(t, filepath.Join(root, AuthorsDir))

	// Idempotent on an existing layout.
	require.NoError(t, EnsureLayout(root))
}

func TestWorkPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "works", "work_1.json"), WorkPath("out", 1))
	assert.Equal(t, filepath.Join("out", "works", "work_37.json"), WorkPath("out", 37))
}

func TestAuthorPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "authors", "author_7.json"), AuthorPath("out", 7))
}

func TestWriteRecordShape(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureLayout(root))

	rec := types.Record{
		Details: types.WorkDetails{"id": 9, "metadata": map[string]any{"title": "Shirim"}},
		Content: "body text",
	}
	path := WorkPath(root, 1)
	require.NoError(t, WriteRecord(path, rec))

	// The persisted mapping has exactly the two record keys.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 2)
	assert.Contains(t, raw, "details")
	assert.Contains(t, raw, "content")

	var got types.Record
	require.NoError(t, ReadRecord(path, &got))
	assert.Equal(t, "body text", got.Content)
	assert.Equal(t, float64(9), got.Details["id"])
}

func TestWriteRecordOverwrites(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureLayout(root))
	path := WorkPath(root, 1)

	require.NoError(t, WriteRecord(path, types.Record{Content: "first"}))
	require.NoError(t, WriteRecord(path, types.Record{Content: "second"}))

	var got types.Record
	require.NoError(t, ReadRecord(path, &got))
	assert.Equal(t, "second", got.Content)
}

func TestReadRecordMissingFile(t *testing.T) {
	var got types.Record
	err := ReadRecord(filepath.Join(t.TempDir(), "nope.json"), &got)
	assert.True(t, os.IsNotExist(err))
}
