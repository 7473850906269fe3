package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func clearOverrides(t *testing.T) {
	t.Helper()
	// t.Setenv restores the previous value; Unsetenv then hides it for this test only
	t.Setenv(EnvRandomImageURL, "")
	t.Setenv(EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(EnvRandomImageURL))
	require.NoError(t, os.Unsetenv(EnvLogLevel))
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	clearOverrides(t)

	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Created)
	assert.Equal(t, path, cfg.Path)
	assert.FileExists(t, path)

	want := Default()
	want.Path = path
	want.Created = true
	assert.Equal(t, want, *cfg)

	again, err := Load(path)
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, cfg.RandomImageURL, again.RandomImageURL)
}

func TestLoadReadsYAML(t *testing.T) {
	clearOverrides(t)

	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, `
random_image_url: https://images.example.com/random
request_timeout: 5s
preview_width: 800
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://images.example.com/random", cfg.RandomImageURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 800, cfg.PreviewWidth)
	assert.Equal(t, Default().PreviewHeight, cfg.PreviewHeight, "missing keys keep defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(filepath.Dir(path), LogFileName), cfg.LogPath())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearOverrides(t)

	cases := map[string]string{
		"bad url":       "random_image_url: not a url\n",
		"zero width":    "preview_width: 0\n",
		"bad log level": "log_level: chatty\n",
		"zero timeout":  "request_timeout: 0s\n",
		"broken yaml":   "preview_width: [\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			writeFile(t, path, content)

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvFileOverridesYAML(t *testing.T) {
	clearOverrides(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "log_level: info\n")
	writeFile(t, filepath.Join(dir, EnvFileName), EnvLogLevel+"=warn\n"+EnvRandomImageURL+"=https://env-file.example.com/img\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "https://env-file.example.com/img", cfg.RandomImageURL)
}

func TestProcessEnvWinsOverEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, filepath.Join(dir, EnvFileName), EnvLogLevel+"=warn\n")

	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(EnvRandomImageURL, "https://process.example.com/img")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "https://process.example.com/img", cfg.RandomImageURL)
}

func TestLoadDefaultLocationUsesHome(t *testing.T) {
	clearOverrides(t)

	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", AppName, ConfigFileName), cfg.Path)
	assert.DirExists(t, cfg.Dir())
}

func TestSaveRoundTrip(t *testing.T) {
	clearOverrides(t)

	path := filepath.Join(t.TempDir(), ConfigFileName)
	in := Default()
	in.PreviewWidth = 1280
	in.RequestTimeout = 90 * time.Second
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1280, out.PreviewWidth)
	assert.Equal(t, 90*time.Second, out.RequestTimeout)
}

func TestBuildInfo(t *testing.T) {
	assert.Contains(t, BuildInfo(), AppName)
	assert.Contains(t, BuildInfo(), Version)
}
