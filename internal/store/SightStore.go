package store

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"sightd/internal/models"
	"sightd/internal/providers"
	"sightd/internal/store/interfaces"
	"sightd/internal/structures"
)

// SightStore owns the sights document. Every call reads the whole document
// and every mutation rewrites it; the mutex makes this process the single
// writer.
type SightStore struct {
	mu          sync.Mutex
	path        string
	template    []byte
	fileManager *FileManager
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
}

func NewSightStore(conf *structures.Config, fileManager *FileManager, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.SightStoreInterface, error) {
	template, err := LoadTemplate(conf.Store.TemplatePath)
	if err != nil {
		return nil, err
	}
	seed, err := DecodeDocument(template)
	if err != nil {
		return nil, fmt.Errorf("malformed template: %w", err)
	}
	if _, dups := models.IDSet(seed); len(dups) > 0 {
		return nil, fmt.Errorf("malformed template: duplicate ids %v", dups)
	}
	return &SightStore{
		path:        conf.Store.FilePath,
		template:    template,
		fileManager: fileManager,
		logger:      logger,
		metrics:     metrics,
	}, nil
}

func (s *SightStore) Path() string {
	return s.path
}

func (s *SightStore) LoadAll() ([]*models.Sight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAllLocked()
}

func (s *SightStore) LoadVisible() ([]*models.Sight, error) {
	all, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	visible := make([]*models.Sight, 0, len(all))
	for _, sight := range all {
		if sight.IsVisible() {
			visible = append(visible, sight)
		}
	}
	return visible, nil
}

// Add stores a copy of sight under the next free id and returns it.
func (s *SightStore) Add(sight *models.Sight) (*models.Sight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadAllLocked()
	if err != nil {
		return nil, err
	}

	record := *sight
	record.ID = models.MaxID(all) + 1
	record.Status = models.StatusActive
	all = append(all, &record)

	if err := s.persistLocked(all); err != nil {
		return nil, err
	}
	s.logger.Infof(providers.TypePost, "Sight %d %q added", record.ID, record.Name)

	added := record
	return &added, nil
}

// SoftDelete marks the first sight with id as deleted. It reports false
// when no such sight exists.
func (s *SightStore) SoftDelete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadAllLocked()
	if err != nil {
		return false, err
	}

	for _, sight := range all {
		if sight.ID != id {
			continue
		}
		if sight.Status == models.StatusDeleted {
			return true, nil
		}
		sight.Status = models.StatusDeleted
		if err := s.persistLocked(all); err != nil {
			return false, err
		}
		s.logger.Infof(providers.TypeDelete, "Sight %d deleted", id)
		return true, nil
	}
	return false, nil
}

func (s *SightStore) loadAllLocked() ([]*models.Sight, error) {
	all, err := s.fileManager.ReadDocument(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.seedLocked(); err != nil {
			return nil, err
		}
		all, err = s.fileManager.ReadDocument(s.path)
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Path: s.path, Err: err}
	}
	if _, dups := models.IDSet(all); len(dups) > 0 {
		s.logger.Warnf(providers.TypeApp, "Document %s has duplicate ids %v", s.path, dups)
	}
	s.observeCounts(all)
	return all, nil
}

func (s *SightStore) seedLocked() error {
	s.logger.Infof(providers.TypeApp, "Document %s not found, seeding from template", s.path)
	if err := s.fileManager.WriteFile(s.path, s.template); err != nil {
		return &StorageError{Op: "seed", Path: s.path, Err: err}
	}
	return nil
}

func (s *SightStore) persistLocked(all []*models.Sight) error {
	start := time.Now()
	if err := s.fileManager.WriteDocument(s.path, all); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting %s: %s", s.path, err)
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.observeCounts(all)
	return nil
}

func (s *SightStore) observeCounts(all []*models.Sight) {
	active := 0
	for _, sight := range all {
		if sight.IsVisible() {
			active++
		}
	}
	s.metrics.SetRecordsTotal(string(models.StatusActive), active)
	s.metrics.SetRecordsTotal(string(models.StatusDeleted), len(all)-active)
}
