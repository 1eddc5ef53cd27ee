package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
)

func TestValidate_DefaultConfig(t *testing.T) {
	err := Validate(Default())
	assert.NoError(t, err)
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		MinPerShift:        1,
		MaxPerShift:        0,
		MaxDaysPerEmployee: 7,
		RandomSeed:         -3,
		WeekStart:          "2025-01-06",
		DatabaseURL:        "postgres://localhost/rota",
		Server:             ServerConfig{Addr: "127.0.0.1:9000"},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_NegativeMinPerShift(t *testing.T) {
	cfg := Default()
	cfg.MinPerShift = -1

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_ZeroMaxDays(t *testing.T) {
	cfg := Default()
	cfg.MaxDaysPerEmployee = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_MissingServerAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_WeekStartNotMonday(t *testing.T) {
	cfg := Default()
	cfg.WeekStart = "2025-01-05" // Sunday

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a Monday")
}

func TestValidate_WeekStartUnparseable(t *testing.T) {
	cfg := Default()
	cfg.WeekStart = "06/01/2025"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid weekStart")
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	t.Setenv(DatabaseURLEnv, "")
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
minPerShift: 1
maxPerShift: 3
maxDaysPerEmployee: 4
randomSeed: 7
weekStart: "2025-03-03"
databaseURL: "postgres://localhost/rota"
server:
  addr: ":9090"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.MinPerShift)
	assert.Equal(t, 3, cfg.MaxPerShift)
	assert.Equal(t, 4, cfg.MaxDaysPerEmployee)
	assert.Equal(t, int64(7), cfg.RandomSeed)
	assert.Equal(t, "postgres://localhost/rota", cfg.DatabaseURL)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	start, ok := cfg.WeekStartDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), start)
}

func TestLoadFromPath_MinimalConfigKeepsDefaults(t *testing.T) {
	t.Setenv(DatabaseURLEnv, "")
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	err := os.WriteFile(configPath, []byte("randomSeed: 11\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, scheduler.Config{
		MinPerShift:        2,
		MaxPerShift:        4,
		MaxDaysPerEmployee: 5,
		RandomSeed:         11,
	}, cfg.SchedulerConfig())
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.Server.Addr)

	_, ok := cfg.WeekStartDate()
	assert.False(t, ok)
}

func TestLoadFromPath_DatabaseURLFromEnv(t *testing.T) {
	t.Setenv(DatabaseURLEnv, "postgres://env-host/rota")
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte(`databaseURL: "postgres://file-host/rota"`), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env-host/rota", cfg.DatabaseURL)
}

func TestLoadFromPath_InvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.yaml")

	invalidConfig := `
minPerShift: 2
maxDaysPerEmployee: 0
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
minPerShift: 2
  invalid indentation
maxPerShift: 4
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_PrefersEnvFile(t *testing.T) {
	t.Setenv(DatabaseURLEnv, "")
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	chdir(t, workDir)

	require.NoError(t, os.WriteFile("shift_rota_config.yaml", []byte("randomSeed: 1\n"), 0644))
	require.NoError(t, os.WriteFile("shift_rota_config.test.yaml", []byte("randomSeed: 2\n"), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, int64(2), cfg.RandomSeed)

	cfg, err = LoadWithEnv("prod")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.RandomSeed)

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.RandomSeed)
}

func TestLoadWithEnv_FallsBackToHomeDirectory(t *testing.T) {
	t.Setenv(DatabaseURLEnv, "")
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(filepath.Join(homeDir, "shift_rota_config.yaml"), []byte("randomSeed: 5\n"), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.RandomSeed)
}

func TestLoadWithEnv_NotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	_, err := LoadWithEnv("test")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDefaultFromEnv(t *testing.T) {
	t.Setenv(DatabaseURLEnv, "")
	assert.Equal(t, Default(), DefaultFromEnv())

	t.Setenv(DatabaseURLEnv, "postgres://localhost/rota")
	cfg := DefaultFromEnv()
	assert.Equal(t, "postgres://localhost/rota", cfg.DatabaseURL)
	assert.NoError(t, Validate(cfg))
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}
