package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mcpchat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: http://localhost:11434/v1
  api_key: test-key
  model: llama3.2:3b
  seed: 7
server:
  name: demo
  command: python
  args: ["server.py"]
  env:
    FEED_LIMIT: "5"
detector: tagged
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/v1", cfg.Backend.BaseURL)
	assert.Equal(t, "llama3.2:3b", cfg.Backend.Model)
	assert.Equal(t, 7, cfg.Backend.Seed)
	assert.Equal(t, "demo", cfg.Server.Name)
	assert.Equal(t, []string{"server.py"}, cfg.Server.Args)
	assert.Equal(t, DetectorTagged, cfg.Detector)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  command: python
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DetectorSubstring, cfg.Detector)
	assert.Equal(t, "gpt-4-turbo", cfg.Backend.Model)
	assert.Equal(t, 42, cfg.Backend.Seed)
}

func TestLoad_InvalidDetector(t *testing.T) {
	path := writeConfig(t, `
detector: telepathy
server:
  command: python
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported detector mode")
}

func TestLoad_InvalidServerName(t *testing.T) {
	path := writeConfig(t, `
server:
  name: "bad name!"
  command: python
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "backend: [not a mapping")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestExpandSecrets(t *testing.T) {
	t.Setenv("MCPCHAT_TEST_KEY", "sk-secret")
	t.Setenv("MCPCHAT_TEST_TOKEN", "tok-123")

	cfg := &Config{
		Backend: BackendConfig{APIKey: "${MCPCHAT_TEST_KEY}"},
		Server: ServerConfig{
			Env: map[string]string{"AUTH": "Bearer ${MCPCHAT_TEST_TOKEN}"},
		},
	}
	cfg.ExpandSecrets()

	assert.Equal(t, "sk-secret", cfg.Backend.APIKey)
	assert.Equal(t, "Bearer tok-123", cfg.Server.Env["AUTH"])
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("MCPCHAT_TEST_VAR", "value")

	assert.Equal(t, "value", ExpandEnv("${MCPCHAT_TEST_VAR}"))
	assert.Equal(t, "value", ExpandEnv("$MCPCHAT_TEST_VAR"))
	assert.Equal(t, "pre-value-post", ExpandEnv("pre-${MCPCHAT_TEST_VAR}-post"))
	assert.Equal(t, "", ExpandEnv("${MCPCHAT_TEST_UNSET_VAR}"))
	assert.Equal(t, "plain", ExpandEnv("plain"))
}
