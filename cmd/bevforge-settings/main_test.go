package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aescanero/bevforge/internal/config"
)

func runCLI(t *testing.T, environ []string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr, environ)
	return stdout.String(), stderr.String(), err
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_DefaultsAsEnv(t *testing.T) {
	out, _, err := runCLI(t, nil, "--env-file", "", "--format", "env")
	require.NoError(t, err)

	assert.Equal(t, "APP_ENV=\"dev\"\nHEARTBEAT_SECONDS=5\nSECRET_KEY=\"********\"\nTEMP_DEADBAND_F=3\n", out)
}

func TestRun_ShowSecret(t *testing.T) {
	out, _, err := runCLI(t, []string{"SECRET_KEY=hunter2"}, "--env-file", "", "--format", "json", "--show-secret")
	require.NoError(t, err)

	var got config.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "hunter2", got.SecretKey)
}

func TestRun_EnvBeatsFile(t *testing.T) {
	path := writeEnvFile(t, "HEARTBEAT_SECONDS=20\nTEMP_DEADBAND_F=4\n")

	out, _, err := runCLI(t, []string{"HEARTBEAT_SECONDS=10"}, "--env-file", path, "--format", "json")
	require.NoError(t, err)

	var got config.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 10, got.HeartbeatSeconds)
	assert.Equal(t, 4, got.TempDeadbandF)
	assert.Equal(t, "dev", got.AppEnv)
}

func TestRun_ExplainYAML(t *testing.T) {
	path := writeEnvFile(t, "APP_ENV=staging\n")

	out, _, err := runCLI(t, []string{"SECRET_KEY=abc"}, "--env-file", path, "--format", "yaml", "--explain")
	require.NoError(t, err)

	var got explained
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "staging", got.Settings.AppEnv)
	assert.Equal(t, "********", got.Settings.SecretKey)
	assert.Equal(t, map[string]string{
		"APP_ENV":           "file",
		"SECRET_KEY":        "env",
		"HEARTBEAT_SECONDS": "default",
		"TEMP_DEADBAND_F":   "default",
	}, got.Sources)
}

func TestRun_ExplainText(t *testing.T) {
	out, _, err := runCLI(t, []string{"TEMP_DEADBAND_F=2"}, "--env-file", "", "--explain")
	require.NoError(t, err)

	assert.Regexp(t, `TEMP_DEADBAND_F\s+2\s+\(env\)`, out)
	assert.Regexp(t, `APP_ENV\s+dev\s+\(default\)`, out)
}

func TestRun_InvalidInteger(t *testing.T) {
	out, logs, err := runCLI(t, []string{"HEARTBEAT_SECONDS=soon"}, "--env-file", "")
	require.ErrorIs(t, err, config.ErrInvalidValue)

	assert.Empty(t, out)
	assert.Contains(t, logs, "failed to load settings")
}

func TestRun_ExplainEmptyOverride(t *testing.T) {
	path := writeEnvFile(t, "APP_ENV=staging\n")

	out, _, err := runCLI(t, []string{"APP_ENV="}, "--env-file", path, "--format", "yaml", "--explain")
	require.NoError(t, err)

	var got explained
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "", got.Settings.AppEnv)
	assert.Equal(t, "env", got.Sources["APP_ENV"])
}

func TestRun_EmptyInteger(t *testing.T) {
	_, logs, err := runCLI(t, []string{"HEARTBEAT_SECONDS="}, "--env-file", "")
	require.ErrorIs(t, err, config.ErrInvalidValue)
	assert.Contains(t, logs, "failed to load settings")
}

func TestRun_RequiredEnvFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")

	_, _, err := runCLI(t, nil, "--env-file", missing, "--require-env-file")
	require.ErrorIs(t, err, config.ErrEnvFile)

	_, _, err = runCLI(t, nil, "--env-file", missing)
	require.NoError(t, err)
}

func TestRun_PlaceholderSecretWarning(t *testing.T) {
	_, logs, err := runCLI(t, []string{"APP_ENV=prod"}, "--env-file", "")
	require.NoError(t, err)
	assert.Contains(t, logs, "placeholder secret key in use outside dev")

	_, logs, err = runCLI(t, nil, "--env-file", "")
	require.NoError(t, err)
	assert.NotContains(t, logs, "placeholder secret key")
}

func TestRun_SecretNeverLogged(t *testing.T) {
	_, logs, err := runCLI(t, []string{"SECRET_KEY=hunter2"}, "--env-file", "", "--show-secret", "--log-level", "debug")
	require.NoError(t, err)
	assert.NotContains(t, logs, "hunter2")
	assert.Contains(t, logs, "settings loaded")
}

func TestRun_Textfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bevforge.prom")

	_, _, err := runCLI(t, []string{"HEARTBEAT_SECONDS=15"}, "--env-file", "", "--textfile", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bevforge_settings_heartbeat_seconds 15")
}

func TestRun_BadFlag(t *testing.T) {
	_, logs, err := runCLI(t, nil, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, logs, "Failed to parse flags")
}
