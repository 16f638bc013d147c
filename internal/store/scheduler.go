package store

import (
	"github.com/roylee0704/gron"
	"sightd/internal/providers"
	"sightd/internal/store/interfaces"
	"sightd/internal/structures"
	"sync"
)

type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	store  interfaces.SightStoreInterface
	backup *BackupManager
	cron   *gron.Cron
	opsMu  sync.Mutex
}

func (s *Scheduler) Init() {
	if !s.config.Backup.Enabled {
		s.logger.Infof(providers.TypeApp, "Backups disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Backup.Interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if _, err := s.backup.Snapshot(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while taking snapshot: %s", err)
		}
	})
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Snapshots of %s every %s into %s", s.store.Path(), s.config.Backup.Interval, s.config.Backup.Dir)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads the document once at startup, seeding it on first run, so a
// malformed document is reported before the server accepts requests.
func (s *Scheduler) Restore() error {
	all, err := s.store.LoadAll()
	if err != nil {
		return err
	}
	visible := 0
	for _, sight := range all {
		if sight.IsVisible() {
			visible++
		}
	}
	s.logger.Infof(providers.TypeApp, "Loaded %d sights (%d visible) from %s", len(all), visible, s.store.Path())
	return nil
}

// Persist takes a final snapshot on shutdown. The document itself is
// already written by every mutation.
func (s *Scheduler) Persist() error {
	if !s.config.Backup.Enabled {
		return nil
	}

	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Taking final snapshot...")
	if _, err := s.backup.Snapshot(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while taking snapshot: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store interfaces.SightStoreInterface, backup *BackupManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		store:  store,
		backup: backup,
	}
}
