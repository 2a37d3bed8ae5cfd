// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "benyehuda-api-key", "  bk_abc123  \n")
				return dir
			},
			want: map[string]string{
				"benyehuda-api-key": "bk_abc123",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files and dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "benyehuda-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				return dir
			},
			want: map[string]string{
				"benyehuda-api-key": "valid-key",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "benyehuda-api-key", "bk_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"benyehuda-api-key": "bk_123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet(t *testing.T) {
	secrets := map[string]string{"benyehuda-api-key": "from-file"}

	t.Run("file value", func(t *testing.T) {
		assert.Equal(t, "from-file", Get(secrets, "benyehuda-api-key", "BENYEHUDA_TEST_KEY"))
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("BENYEHUDA_TEST_KEY", "from-env")
		assert.Equal(t, "from-env", Get(secrets, "benyehuda-api-key", "BENYEHUDA_TEST_KEY"))
	})

	t.Run("missing everywhere", func(t *testing.T) {
		assert.Equal(t, "", Get(secrets, "other-key", "BENYEHUDA_TEST_KEY"))
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
