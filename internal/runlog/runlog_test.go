// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Pin timestamps so line format assertions are stable.
	now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	}
}

func TestLoggerLineFormat(t *testing.T) {
	var file, console bytes.Buffer
	log := New(&file, &console)

	log.Infof("work %d: saved", 3)
	log.Errorf("work %d: no such work", 4)

	lines := strings.Split(strings.TrimRight(file.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2026-03-14 09:26:53 - INFO - work 3: saved", lines[0])
	assert.Equal(t, "2026-03-14 09:26:53 - ERROR - work 4: no such work", lines[1])
}

func TestLoggerOrdering(t *testing.T) {
	var file bytes.Buffer
	log := New(&file, &bytes.Buffer{})

	log.Infof("first")
	log.Warningf("second")
	log.Errorf("third")

	text := file.String()
	assert.Less(t, strings.Index(text, "first"), strings.Index(text, "second"))
	assert.Less(t, strings.Index(text, "second"), strings.Index(text, "third"))
}

func TestLoggerConsoleMirror(t *testing.T) {
	var file, console bytes.Buffer
	log := New(&file, &console)

	log.Errorf("work 9: HTTP 500")

	// Both sinks carry the message; the console line carries the level tag
	// (possibly styled) but no timestamp.
	assert.Contains(t, console.String(), "work 9: HTTP 500")
	assert.Contains(t, console.String(), "ERROR")
	assert.NotContains(t, console.String(), "2026-03-14")
}

func TestOpenAppends(t *testing.T) {
	dir := t.TempDir()

	log, err := Open(dir, &bytes.Buffer{})
	require.NoError(t, err)
	log.Infof("run one")
	require.NoError(t, log.Close())

	log, err = Open(dir, &bytes.Buffer{})
	require.NoError(t, err)
	log.Infof("run two")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "run one")
	assert.Contains(t, string(data), "run two")
}

func TestOpenMissingDir(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), &bytes.Buffer{})
	assert.Error(t, err)
}
