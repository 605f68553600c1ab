package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("SWEDBANK2YNAB_LOG_FORMAT=json\n"), 0600))

	logger := logging.NewMockLogger()
	loaded, err := LoadEnv(logger)
	require.NoError(t, err)
	assert.Equal(t, EnvFile, loaded)
	assert.Equal(t, "json", os.Getenv("SWEDBANK2YNAB_LOG_FORMAT"))
	assert.True(t, logger.HasEntry("DEBUG", "Loaded environment variables"))

	config, err := InitializeConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "json", config.Log.Format)
}

func TestLoadEnv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("SWEDBANK2YNAB_LOG_LEVEL=debug\n"), 0600))
	t.Setenv("SWEDBANK2YNAB_LOG_LEVEL", "warn")

	_, err := LoadEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", os.Getenv("SWEDBANK2YNAB_LOG_LEVEL"))
}

func TestLoadEnv_NoFile(t *testing.T) {
	dir := isolate(t)
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0750))
	t.Chdir(sub)

	loaded, err := LoadEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, "", loaded)
}

func TestLoadEnv_ParentDirectory(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("SWEDBANK2YNAB_OUTPUT_CRLF=true\n"), 0600))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0750))
	t.Chdir(sub)

	loaded, err := LoadEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("..", EnvFile), loaded)
	assert.Equal(t, "true", os.Getenv("SWEDBANK2YNAB_OUTPUT_CRLF"))
}
