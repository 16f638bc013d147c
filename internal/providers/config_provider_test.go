package providers

import (
	"os"
	"path/filepath"
	"sightd/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYaml = `
webServer:
  host: 127.0.0.1
  port: 8090
store:
  filePath: /tmp/sightd/sights.json
  picturesDir: /tmp/sightd/pictures
  kinds: ["すべて", "寺社", "自然"]
backup:
  enabled: true
  dir: /tmp/sightd/backups
  interval: 15m
logger:
  level: info
  mode: 0644
  dir: /tmp/sightd/logs
cache:
  enabled: true
  size: 4
  ttl: 10s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_ReadsFile(t *testing.T) {
	path := writeConfig(t, testConfigYaml)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "SightDaemon", conf.AppName)
	assert.Equal(t, path, conf.Path)
	assert.True(t, conf.Debug)
	assert.Equal(t, 8090, conf.WebServer.Port)
	assert.Equal(t, "/tmp/sightd/sights.json", conf.Store.FilePath)
	assert.Equal(t, []string{"すべて", "寺社", "自然"}, conf.Store.Kinds)
	assert.Equal(t, 15*time.Minute, conf.Backup.Interval)
	assert.Equal(t, 10*time.Second, conf.Cache.TTL)
}

func TestNewConfigProvider_Defaults(t *testing.T) {
	path := writeConfig(t, testConfigYaml)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, int64(defaultMaxPhotoSize), conf.Store.MaxPhotoSize)
	assert.Equal(t, defaultBackupKeep, conf.Backup.Keep)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	path := writeConfig(t, testConfigYaml)
	t.Setenv("SIGHTD_LOG_LEVEL", "debug")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "debug", conf.Logger.Level)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "webServer:\n  host: \"\"\n  port: 0\n")
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
