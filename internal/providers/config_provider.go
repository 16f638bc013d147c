package providers

import (
	"fmt"
	"path/filepath"
	"sightd/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultMaxPhotoSize = 8 << 20 // 8 MB
	defaultBackupKeep   = 10
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("store.maxPhotoSize", defaultMaxPhotoSize)
	v.SetDefault("backup.interval", time.Hour)
	v.SetDefault("backup.keep", defaultBackupKeep)
	v.SetDefault("cache.ttl", 30*time.Second)

	_ = v.BindEnv("logger.level", "SIGHTD_LOG_LEVEL")
	_ = v.BindEnv("webServer.port", "SIGHTD_PORT")
	_ = v.BindEnv("store.filePath", "SIGHTD_STORE_FILE")
	_ = v.BindEnv("store.picturesDir", "SIGHTD_PICTURES_DIR")
	_ = v.BindEnv("backup.enabled", "SIGHTD_BACKUP_ENABLED")
	_ = v.BindEnv("cache.enabled", "SIGHTD_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "SIGHTD_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "SightDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
