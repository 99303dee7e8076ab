package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgview/sorting"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	order, err := cfg.SortOrder()
	require.NoError(t, err)
	assert.Equal(t, sorting.Order{Key: sorting.Alphabetical}, order)
	assert.Equal(t, "keep", cfg.KeepDirName)
	assert.Zero(t, cfg.MaxImages)
	assert.True(t, cfg.Logs.Enabled)
}

func TestLoadConfigFrom(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, `
default_sort = "size-desc"
max_images = 25

[logs]
enabled = false
`)
		cfg, err := LoadConfigFrom(path)
		require.NoError(t, err)

		order, err := cfg.SortOrder()
		require.NoError(t, err)
		assert.Equal(t, sorting.Order{Key: sorting.Size, Descending: true}, order)
		assert.Equal(t, 25, cfg.MaxImages)
		assert.Equal(t, "keep", cfg.KeepDirName)
		assert.False(t, cfg.Logs.Enabled)
		assert.Equal(t, 10, cfg.Logs.MaxSizeMB)
	})

	t.Run("broken toml", func(t *testing.T) {
		_, err := LoadConfigFrom(writeConfig(t, "max_images = ["))
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			wantErr string
		}{
			{name: "sort order", content: `default_sort = "shuffle"`, wantErr: "default_sort"},
			{name: "negative max", content: `max_images = -1`, wantErr: "max_images"},
			{name: "empty keep dir", content: `keep_dir_name = ""`, wantErr: "keep_dir_name"},
			{name: "nested keep dir", content: `keep_dir_name = "a/b"`, wantErr: "keep_dir_name"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := LoadConfigFrom(writeConfig(t, tt.content))
				assert.ErrorContains(t, err, tt.wantErr)
			})
		}
	})
}

func TestSaveConfigTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	cfg := DefaultConfig()
	cfg.DefaultSort = "modified-rev"
	cfg.DestFolder = "~/kept"
	cfg.Logs.Dir = "/var/log/imgview"
	require.NoError(t, SaveConfigTo(path, cfg))

	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	// Only the config and its lock are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{ConfigFileName, LockFileName}, names)
}

func TestLogConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logs = LogsConfig{Enabled: true, Dir: "/tmp/logs", MaxSizeMB: 1, MaxFiles: 2, MaxAgeDays: 3, Compress: false}

	lc := cfg.LogConfig()
	assert.True(t, lc.LogsEnabled)
	assert.Equal(t, "/tmp/logs", lc.LogsDir)
	assert.Equal(t, 1, lc.LogMaxSize)
	assert.Equal(t, 2, lc.LogMaxFiles)
	assert.Equal(t, 3, lc.LogMaxAge)
	assert.False(t, lc.LogCompress)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultConfig().Encode(&buf))
	assert.Contains(t, buf.String(), `default_sort = "alphabetical"`)
	assert.Contains(t, buf.String(), "[logs]")
}
