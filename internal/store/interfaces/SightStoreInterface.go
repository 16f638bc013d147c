package interfaces

import "sightd/internal/models"

type SightStoreInterface interface {
	LoadAll() ([]*models.Sight, error)
	LoadVisible() ([]*models.Sight, error)
	Add(sight *models.Sight) (*models.Sight, error)
	SoftDelete(id int) (bool, error)
	Path() string
}
