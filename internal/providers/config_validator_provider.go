package providers

import (
	"errors"
	"fmt"
	"sightd/internal/structures"
	"time"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	v.StopOnError = false
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.String())
	}

	if cv.conf.Backup.Enabled {
		if cv.conf.Backup.Dir == "" {
			return errors.New("invalid config: backup.dir is required when backups are enabled")
		}
		if cv.conf.Backup.Interval <= 0 {
			return errors.New("invalid config: backup.interval must be positive")
		}
	}
	if cv.conf.Cache.Enabled && cv.conf.Cache.TTL < time.Second {
		return errors.New("invalid config: cache.ttl must be at least 1s")
	}
	return nil
}
