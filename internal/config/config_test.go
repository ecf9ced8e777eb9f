package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"WEEKLYHIGH_SOURCE_DIR", "WEEKLYHIGH_SOURCE_PATH", "WEEKLYHIGH_DATE_COLUMN",
		"WEEKLYHIGH_PRICE_COLUMN", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
		"CRON_WEEKLY", "SQLITE_PATH", "LOG_LEVEL", "HTTPS_PROXY",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "StockPriceCSV", cfg.Source.Dir)
	assert.Equal(t, "", cfg.Source.Path)
	assert.Equal(t, 0, cfg.DateColumn())
	assert.Equal(t, 2, cfg.PriceColumn())
	assert.Equal(t, "0 0 8 * * 1", cfg.Schedule.WeeklyCron)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
source:
  dir: data/prices
  date_column: 1
  price_column: 0
database:
  sqlite_path: data/runs.db
log:
  level: debug
  pretty: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/prices", cfg.Source.Dir)
	assert.Equal(t, 1, cfg.DateColumn())
	assert.Equal(t, 0, cfg.PriceColumn())
	assert.Equal(t, "data/runs.db", cfg.Database.SQLitePath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "source:\n  dir: from-file\n")
	t.Setenv("WEEKLYHIGH_SOURCE_DIR", "from-env")
	t.Setenv("WEEKLYHIGH_SOURCE_PATH", "prices.csv")
	t.Setenv("WEEKLYHIGH_PRICE_COLUMN", "1")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "7")
	t.Setenv("CRON_WEEKLY", "0 30 9 * * 1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Source.Dir)
	assert.Equal(t, "prices.csv", cfg.Source.Path)
	assert.Equal(t, 1, cfg.PriceColumn())
	assert.Equal(t, "0 30 9 * * 1", cfg.Schedule.WeeklyCron)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoad_BadColumnEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEEKLYHIGH_DATE_COLUMN", "first")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "source: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	same := 0
	cfg.Source.PriceColumn = &same
	assert.Error(t, cfg.Validate())

	neg := -1
	cfg.Source.PriceColumn = &neg
	assert.Error(t, cfg.Validate())

	two := 2
	cfg.Source.PriceColumn = &two
	cfg.Telegram.BotToken = "only-token"
	assert.Error(t, cfg.Validate())
}
