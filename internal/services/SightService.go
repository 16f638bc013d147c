package services

import (
	"errors"
	"slices"

	"sightd/internal/models"
	"sightd/internal/providers"
	"sightd/internal/store/interfaces"
	"sightd/internal/structures"
)

var ErrSightNotFound = errors.New("sight not found")

type SightServiceInterface interface {
	List(kind, keyword string) ([]*models.Sight, error)
	Get(id int) (*models.Sight, error)
	Add(form *models.SightForm) (*models.Sight, error)
	Delete(id int) (bool, error)
	Kinds() ([]string, error)
	GeoJSON(kind, keyword string) (*models.FeatureCollection, error)
	Counts() (total int, visible int, err error)
}

type SightService struct {
	store  interfaces.SightStoreInterface
	kinds  []string
	logger providers.Logger
}

func NewSightService(conf *structures.Config, store interfaces.SightStoreInterface, logger providers.Logger) SightServiceInterface {
	return &SightService{
		store:  store,
		kinds:  conf.Store.Kinds,
		logger: logger,
	}
}

func (ss *SightService) List(kind, keyword string) ([]*models.Sight, error) {
	visible, err := ss.store.LoadVisible()
	if err != nil {
		return nil, err
	}
	return ByKeyword(ByKind(visible, kind), keyword), nil
}

func (ss *SightService) Get(id int) (*models.Sight, error) {
	visible, err := ss.store.LoadVisible()
	if err != nil {
		return nil, err
	}
	for _, s := range visible {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, ErrSightNotFound
}

// Add validates form against the selectable kinds and stores the sight.
// Validation failures come back as *models.ValidationError.
func (ss *SightService) Add(form *models.SightForm) (*models.Sight, error) {
	sight, err := form.ToSight(ss.selectableKinds())
	if err != nil {
		return nil, err
	}
	return ss.store.Add(sight)
}

func (ss *SightService) Delete(id int) (bool, error) {
	return ss.store.SoftDelete(id)
}

// Kinds returns the configured kind labels. Without configuration it
// lists the "all" label followed by the kinds in use, in first-seen order.
func (ss *SightService) Kinds() ([]string, error) {
	if len(ss.kinds) > 0 {
		return ss.kinds, nil
	}
	visible, err := ss.store.LoadVisible()
	if err != nil {
		return nil, err
	}
	kinds := []string{KindAllJa}
	for _, s := range visible {
		if !slices.Contains(kinds, s.Kind) {
			kinds = append(kinds, s.Kind)
		}
	}
	return kinds, nil
}

func (ss *SightService) GeoJSON(kind, keyword string) (*models.FeatureCollection, error) {
	sights, err := ss.List(kind, keyword)
	if err != nil {
		return nil, err
	}
	return models.NewFeatureCollection(sights), nil
}

func (ss *SightService) Counts() (int, int, error) {
	all, err := ss.store.LoadAll()
	if err != nil {
		return 0, 0, err
	}
	visible := 0
	for _, s := range all {
		if s.IsVisible() {
			visible++
		}
	}
	return len(all), visible, nil
}

// selectableKinds is the configured list without the "all" labels, or nil
// when any kind is accepted.
func (ss *SightService) selectableKinds() []string {
	var kinds []string
	for _, k := range ss.kinds {
		if !IsAllKind(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
